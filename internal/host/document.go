package host

import (
	"fmt"
	"path/filepath"

	"github.com/jeeftor/nsiskit/internal/constants"
	"github.com/jeeftor/nsiskit/internal/filesystem"
	"github.com/spf13/afero"
)

// UntitledName is the file name reported for documents without a path
const UntitledName = "untitled"

// Document is an in-memory ActiveDocument
type Document struct {
	text    string
	grammar string
	path    string
	name    string
}

// LoadDocument reads path from fs. The grammar is taken from the file
// extension unless grammar is non-empty.
func LoadDocument(fs afero.Fs, path string, grammar string) (*Document, error) {
	if err := filesystem.ValidateInputFile(fs, path, "document"); err != nil {
		return nil, err
	}

	data, err := filesystem.ReadFileWithLogging(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	abs := path
	if !filepath.IsAbs(abs) {
		if resolved, err := filepath.Abs(path); err == nil {
			abs = resolved
		}
	}

	if grammar == "" {
		grammar = GrammarForPath(path)
	}

	return &Document{
		text:    string(data),
		grammar: grammar,
		path:    abs,
		name:    filepath.Base(path),
	}, nil
}

// NewUnsavedDocument wraps text that has no backing file, e.g. standard input.
func NewUnsavedDocument(text, grammar string) *Document {
	return &Document{text: text, grammar: grammar, name: UntitledName}
}

// GrammarForPath derives the grammar scope from a file extension
func GrammarForPath(path string) string {
	return constants.ScopeForExtension(filesystem.GetFileExtension(path))
}

func (d *Document) Text() string      { return d.text }
func (d *Document) GrammarID() string { return d.grammar }
func (d *Document) FilePath() string  { return d.path }
func (d *Document) FileName() string  { return d.name }
