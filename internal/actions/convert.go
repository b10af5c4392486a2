package actions

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jeeftor/nsiskit/internal/constants"
	"github.com/jeeftor/nsiskit/internal/filesystem"
	"github.com/jeeftor/nsiskit/internal/host"
	"github.com/jeeftor/nsiskit/internal/logging"
	"github.com/jeeftor/nsiskit/internal/nlf"
)

// Convert turns an NLF document into JSON or a JSON document into NLF,
// writing the result next to the source as <name>.json or <name>.nlf.
// It returns the path of the written file.
func (r *Runner) Convert(ctx context.Context, doc host.ActiveDocument) (string, error) {
	if doc == nil {
		r.Notify.Warn("No active document", host.NotifyOptions{})
		return "", ErrNoActiveDocument
	}

	switch grammar := doc.GrammarID(); grammar {
	case constants.ScopeNLF:
		return r.convertNLF(ctx, doc)
	case constants.ScopeJSON, constants.ScopeJSON5:
		return r.convertJSON(ctx, doc)
	default:
		r.Notify.Warn("Unsupported document type", host.NotifyOptions{
			Detail: fmt.Sprintf("%s is %s; only NLF and JSON documents can be converted", doc.FileName(), grammar),
		})
		return "", fmt.Errorf("%w: %s", ErrUnsupportedGrammar, grammar)
	}
}

func (r *Runner) convertNLF(ctx context.Context, doc host.ActiveDocument) (string, error) {
	logging.Convert(doc.FileName(), "nlf", "json")

	opts, err := r.Resolver.ResolveParseOptions()
	if err != nil {
		return "", r.conversionFailed(err)
	}
	opts = append(opts, nlf.WithStringify(true))

	var res *nlf.Result
	err = logging.LogOperation("parse_nlf", doc.FileName(), func() error {
		var parseErr error
		res, parseErr = nlf.Parse([]byte(doc.Text()), opts...)
		return parseErr
	})
	if err != nil {
		return "", r.conversionFailed(err)
	}

	policy := r.Resolver.DuplicatePolicy().String()
	for _, key := range res.Duplicates {
		logging.DuplicateKey(key, policy)
	}

	return r.openNewFile(ctx, doc, string(res.JSON), "json", res.Mapping.Len())
}

func (r *Runner) convertJSON(ctx context.Context, doc host.ActiveDocument) (string, error) {
	logging.Convert(doc.FileName(), "json", "nlf")

	var out []byte
	err := logging.LogOperation("stringify_nlf", doc.FileName(), func() error {
		var encErr error
		out, encErr = nlf.Stringify(doc.Text())
		return encErr
	})
	if err != nil {
		return "", r.conversionFailed(err)
	}

	res, err := nlf.Parse(out)
	if err != nil {
		return "", r.conversionFailed(err)
	}
	return r.openNewFile(ctx, doc, string(out), "nlf", res.Mapping.Len())
}

func (r *Runner) conversionFailed(err error) error {
	logging.Error("Conversion failed", "error", err)
	r.Notify.Error("Conversion Failed", host.NotifyOptions{Detail: err.Error(), Dismissable: true})
	return err
}

func (r *Runner) openNewFile(ctx context.Context, doc host.ActiveDocument, text, ext string, entries int) (string, error) {
	dir := ""
	if doc.FilePath() != "" {
		dir = filepath.Dir(doc.FilePath())
	}
	target := filesystem.SiblingPath(dir, doc.FileName(), ext)

	unchanged, err := r.confirmOverwrite(ctx, target, fmt.Sprintf("Do you really want to overwrite %s?", filepath.Base(target)), text)
	if errors.Is(err, ErrAborted) {
		return "", err
	}
	if err != nil {
		r.Notify.Error(err.Error(), host.NotifyOptions{Dismissable: true})
		return "", err
	}
	if unchanged {
		return target, nil
	}

	editor, err := r.FS.OpenAsEditor(target)
	if err != nil {
		logging.Error("Failed to open output", "path", target, "error", err)
		r.Notify.Error(err.Error(), host.NotifyOptions{Dismissable: true})
		return "", err
	}

	if err := editor.SetText(text); err != nil {
		logging.Fail("write "+editor.Path(), err.Error())
		r.Notify.Error(fmt.Sprintf("Failed to write %s", filepath.Base(target)), host.NotifyOptions{Detail: err.Error()})
		return "", err
	}

	logging.SaveFile(editor.Path(), fmt.Sprintf("%d entries", entries))
	return editor.Path(), nil
}
