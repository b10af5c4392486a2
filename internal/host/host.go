// Package host defines the narrow capabilities the actions need from their
// environment: the document being worked on, a place to show notifications,
// configuration lookups, file access and overwrite confirmation.
package host

import "context"

// ActiveDocument is the document an action operates on
type ActiveDocument interface {
	Text() string
	GrammarID() string
	// FilePath is empty for a document that was never saved
	FilePath() string
	FileName() string
}

// NotifyOptions carries the optional parts of a notification
type NotifyOptions struct {
	Detail      string
	Dismissable bool
}

// NotificationSink shows messages to the user
type NotificationSink interface {
	Warn(msg string, opts NotifyOptions)
	Error(msg string, opts NotifyOptions)
}

// ConfigStore supplies configuration values
type ConfigStore interface {
	Get(key string) any
	GetString(key string) string
	GetBool(key string) bool
}

// EditorHandle is an opened output document
type EditorHandle interface {
	Path() string
	SetText(text string) error
}

// FileSystem is the file access the actions are allowed
type FileSystem interface {
	Exists(path string) (bool, error)
	WriteText(path, content string) error
	OpenAsEditor(path string) (EditorHandle, error)
}

// TextReader is implemented by file systems that can return current file
// contents, letting overwrites be skipped or summarized
type TextReader interface {
	ReadText(path string) (string, error)
}

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(ctx context.Context, title, detail string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface
type ConfirmFunc func(ctx context.Context, title, detail string) (bool, error)

// Confirm calls f
func (f ConfirmFunc) Confirm(ctx context.Context, title, detail string) (bool, error) {
	return f(ctx, title, detail)
}

// StaticConfirmer always gives the same answer, for --force and non-interactive runs
type StaticConfirmer bool

// Confirm returns the fixed answer
func (s StaticConfirmer) Confirm(ctx context.Context, title, detail string) (bool, error) {
	return bool(s), nil
}
