package embedded

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/jeeftor/nsiskit/internal/constants"
	"github.com/jeeftor/nsiskit/internal/filesystem"
	"github.com/jeeftor/nsiskit/internal/logging"
	"github.com/spf13/afero"
)

//go:embed templates/*
var templatesFS embed.FS

const templatesDir = "templates"

// Template names
const (
	SampleConfig    = "nsiskit.yaml"
	StarterLanguage = "English.nlf"
)

// OutputName returns the file name a template is written as
func OutputName(name string) string {
	if name == SampleConfig {
		return constants.ConfigName + ".yaml"
	}
	return name
}

// ListTemplates lists all embedded templates
func ListTemplates() ([]string, error) {
	var names []string

	err := fs.WalkDir(templatesFS, templatesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			names = append(names, path.Base(p))
		}
		return nil
	})

	return names, err
}

// Template returns the content of an embedded template
func Template(name string) ([]byte, error) {
	return templatesFS.ReadFile(path.Join(templatesDir, name))
}

// ExtractTemplate writes template name to target
func ExtractTemplate(afs afero.Fs, name, target string) error {
	content, err := Template(name)
	if err != nil {
		return fmt.Errorf("failed to read embedded template %s: %w", name, err)
	}
	return filesystem.WriteFileWithDirectory(afs, target, content, 0644)
}

// ExtractAll writes every template into dir and returns the written paths.
// Existing files are skipped unless overwrite is set.
func ExtractAll(afs afero.Fs, dir string, overwrite bool) ([]string, error) {
	names, err := ListTemplates()
	if err != nil {
		return nil, err
	}

	var written []string
	for _, name := range names {
		target := filepath.Join(dir, OutputName(name))

		if !overwrite {
			if exists, _ := afero.Exists(afs, target); exists {
				logging.Skip(target, "already exists")
				continue
			}
		}

		if err := ExtractTemplate(afs, name, target); err != nil {
			return written, err
		}
		logging.Debug("Extracted template", "template", name, "path", target)
		written = append(written, target)
	}
	return written, nil
}
