package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeeftor/nsiskit/internal/host"
	"github.com/jeeftor/nsiskit/internal/logging"
	"github.com/jeeftor/nsiskit/internal/params"
)

var (
	// ErrNoActiveDocument is returned when an action is run without a document
	ErrNoActiveDocument = errors.New("no active document")

	// ErrUnsupportedGrammar is returned for documents the action cannot handle
	ErrUnsupportedGrammar = errors.New("unsupported document type")

	// ErrNotSaved is returned when an action needs a file path the document lacks
	ErrNotSaved = errors.New("document has not been saved")

	// ErrAborted is returned when the user declines to overwrite a file
	ErrAborted = errors.New("aborted by user")
)

// Runner carries the host capabilities shared by all actions
type Runner struct {
	Notify   host.NotificationSink
	Config   host.ConfigStore
	FS       host.FileSystem
	Confirm  host.Confirmer
	Resolver *params.ParameterResolver
}

// NewRunner wires a runner. The parameter resolver reads from config.
func NewRunner(notify host.NotificationSink, config host.ConfigStore, fs host.FileSystem, confirm host.Confirmer) *Runner {
	return &Runner{
		Notify:   notify,
		Config:   config,
		FS:       fs,
		Confirm:  confirm,
		Resolver: params.NewParameterResolver(config),
	}
}

// confirmOverwrite asks before replacing an existing file with content. A
// missing file needs no confirmation. unchanged reports that the file
// already holds content, in which case nothing is asked.
func (r *Runner) confirmOverwrite(ctx context.Context, path, detail, content string) (unchanged bool, err error) {
	exists, err := r.FS.Exists(path)
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	if !exists {
		return false, nil
	}

	if reader, ok := r.FS.(host.TextReader); ok {
		if current, err := reader.ReadText(path); err == nil {
			if current == content {
				logging.Skip(path, "unchanged")
				return true, nil
			}
			detail += "\n\n" + changeSummary(current, content)
		}
	}

	if r.Confirm == nil {
		return false, ErrAborted
	}

	ok, err := r.Confirm.Confirm(ctx, "File exists", detail)
	if err != nil {
		return false, err
	}
	if !ok {
		logging.Skip(path, "existing file kept")
		return false, ErrAborted
	}
	logging.Debug("Overwriting existing file", "path", path)
	return false, nil
}
