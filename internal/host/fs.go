package host

import (
	"github.com/jeeftor/nsiskit/internal/filesystem"
	"github.com/spf13/afero"
)

// AferoFS implements FileSystem on top of an afero.Fs
type AferoFS struct {
	fs afero.Fs
}

// NewAferoFS wraps fs; use afero.NewOsFs() for the real file system
func NewAferoFS(fs afero.Fs) *AferoFS {
	return &AferoFS{fs: fs}
}

// Fs returns the underlying afero file system
func (a *AferoFS) Fs() afero.Fs {
	return a.fs
}

// Exists reports whether path exists
func (a *AferoFS) Exists(path string) (bool, error) {
	return afero.Exists(a.fs, path)
}

// ReadText returns the contents of path
func (a *AferoFS) ReadText(path string) (string, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteText writes content to path, creating parent directories
func (a *AferoFS) WriteText(path, content string) error {
	return filesystem.WriteFileWithDirectory(a.fs, path, []byte(content), 0644)
}

// OpenAsEditor returns a handle whose SetText replaces the file contents.
// Nothing is written until SetText is called.
func (a *AferoFS) OpenAsEditor(path string) (EditorHandle, error) {
	return &fileEditor{fs: a, path: path}, nil
}

type fileEditor struct {
	fs   *AferoFS
	path string
}

func (e *fileEditor) Path() string {
	return e.path
}

func (e *fileEditor) SetText(text string) error {
	return e.fs.WriteText(e.path, text)
}
