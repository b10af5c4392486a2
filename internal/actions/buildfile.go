package actions

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jeeftor/nsiskit/internal/buildfile"
	"github.com/jeeftor/nsiskit/internal/constants"
	"github.com/jeeftor/nsiskit/internal/host"
	"github.com/jeeftor/nsiskit/internal/logging"
)

// CreateBuildFile writes .atom-build.<syntax> next to an NSIS script and
// returns its path. An existing build file is only replaced after confirmation.
func (r *Runner) CreateBuildFile(ctx context.Context, doc host.ActiveDocument) (string, error) {
	if doc == nil {
		r.Notify.Warn("No active document", host.NotifyOptions{})
		return "", ErrNoActiveDocument
	}

	if doc.GrammarID() != constants.ScopeNSIS {
		r.Notify.Warn("Unsupported document type", host.NotifyOptions{
			Detail: fmt.Sprintf("%s is not an NSIS script", doc.FileName()),
		})
		return "", fmt.Errorf("%w: %s", ErrUnsupportedGrammar, doc.GrammarID())
	}

	scriptPath := doc.FilePath()
	if scriptPath == "" {
		r.Notify.Warn("File not saved", host.NotifyOptions{
			Detail:      "You need to save this file manually before you can create a build-file",
			Dismissable: true,
		})
		return "", ErrNotSaved
	}

	syntax := r.Resolver.ResolveBuildFileSyntax()
	if err := buildfile.CheckSyntax(syntax.Value); err != nil {
		logging.Error("Invalid build file syntax", "syntax", syntax.Value, "source", syntax.Source)
		r.Notify.Error("Invalid build file syntax", host.NotifyOptions{Detail: err.Error(), Dismissable: true})
		return "", err
	}
	fileName := buildfile.FileName(syntax.Value)
	target := filepath.Join(filepath.Dir(scriptPath), fileName)
	logging.Debug("Build file target", "path", target, "syntax", syntax.Value, "source", syntax.Source)

	tool := r.Resolver.ResolveMakensisPath()
	logging.Debug("Resolved makensis", "path", tool.Value, "source", tool.Source)

	content, err := buildfile.Generate(filepath.Base(scriptPath), tool.Value, syntax.Value)
	if err != nil {
		logging.Error("Build file generation failed", "error", err)
		r.Notify.Error(fmt.Sprintf("Failed to write %s", fileName), host.NotifyOptions{Detail: err.Error()})
		return "", err
	}

	unchanged, err := r.confirmOverwrite(ctx, target, "Do you really want to overwrite your existing build file?", string(content))
	if err != nil {
		return "", err
	}
	if unchanged {
		return target, nil
	}

	if err := r.FS.WriteText(target, string(content)); err != nil {
		logging.Error("Build file write failed", "path", target, "error", err)
		r.Notify.Error(fmt.Sprintf("Failed to write %s", fileName), host.NotifyOptions{Detail: err.Error()})
		return "", err
	}

	logging.SaveFile(target, "makensis: "+tool.Value)
	return target, nil
}
