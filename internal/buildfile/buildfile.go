package buildfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported output syntaxes. Anything other than SyntaxYAML is written as JSON.
const (
	SyntaxYAML = "yaml"
	SyntaxJSON = "json"
)

// Placeholders expanded by the task runner
const (
	FileActive     = "{FILE_ACTIVE}"
	FileActivePath = "{FILE_ACTIVE_PATH}"
)

// Diagnostic patterns for makensis output
const (
	ErrorMatch   = `(\r?\n)(?<message>.+)(\r?\n)Error in script "(?<file>[^"]+)" on line (?<line>\d+) -- aborting creation process`
	WarningMatch = `[^!]warning: (?<message>.*) \((?<file>(\w{1}:)?[^:]+):(?<line>\d+)\)`
)

// BuildFile is the task-runner record. Field order is the output key order.
type BuildFile struct {
	Name         string   `json:"name" yaml:"name"`
	Cmd          string   `json:"cmd" yaml:"cmd"`
	Args         []string `json:"args" yaml:"args"`
	Cwd          string   `json:"cwd" yaml:"cwd"`
	ErrorMatch   string   `json:"errorMatch" yaml:"errorMatch"`
	WarningMatch string   `json:"warningMatch" yaml:"warningMatch"`
}

// SerializationError wraps a failure to encode a build file
type SerializationError struct {
	Syntax string
	Err    error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serializing build file as %s: %v", e.Syntax, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// InvalidSyntaxError is returned for syntax names that cannot form a file extension
type InvalidSyntaxError struct {
	Syntax string
}

func (e *InvalidSyntaxError) Error() string {
	return fmt.Sprintf("invalid build file syntax %q: only letters and digits are allowed", e.Syntax)
}

var syntaxPattern = regexp.MustCompile(`^[a-z0-9]+$`)

// CheckSyntax rejects syntax names that would not yield a plain
// .atom-build.<syntax> file name, such as ones containing path separators.
// An empty syntax is accepted and written as JSON.
func CheckSyntax(syntax string) error {
	if n := NormalizeSyntax(syntax); n != "" && !syntaxPattern.MatchString(n) {
		return &InvalidSyntaxError{Syntax: syntax}
	}
	return nil
}

// New returns the build file for script compiled with the tool at toolPath.
func New(script, toolPath string) BuildFile {
	return BuildFile{
		Name:         script,
		Cmd:          toolPath,
		Args:         []string{FileActive},
		Cwd:          FileActivePath,
		ErrorMatch:   ErrorMatch,
		WarningMatch: WarningMatch,
	}
}

// Generate builds and serializes the build file in one step.
func Generate(script, toolPath, syntax string) ([]byte, error) {
	if err := CheckSyntax(syntax); err != nil {
		return nil, err
	}
	return New(script, toolPath).Marshal(syntax)
}

// NormalizeSyntax lower-cases and trims a configured syntax name.
func NormalizeSyntax(syntax string) string {
	return strings.ToLower(strings.TrimSpace(syntax))
}

// FileName returns the build file name for syntax, e.g. .atom-build.yaml
func FileName(syntax string) string {
	return ".atom-build." + NormalizeSyntax(syntax)
}

// Marshal writes YAML block form for "yaml" and two-space indented JSON otherwise.
func (b BuildFile) Marshal(syntax string) ([]byte, error) {
	if NormalizeSyntax(syntax) == SyntaxYAML {
		return b.marshalYAML()
	}
	return b.marshalJSON()
}

func (b BuildFile) marshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return nil, &SerializationError{Syntax: SyntaxJSON, Err: err}
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (b BuildFile) marshalYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return nil, &SerializationError{Syntax: SyntaxYAML, Err: err}
	}
	if err := enc.Close(); err != nil {
		return nil, &SerializationError{Syntax: SyntaxYAML, Err: err}
	}
	return buf.Bytes(), nil
}
