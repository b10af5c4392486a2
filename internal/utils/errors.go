package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jeeftor/nsiskit/internal/actions"
	"github.com/jeeftor/nsiskit/internal/buildfile"
	"github.com/jeeftor/nsiskit/internal/logging"
	"github.com/jeeftor/nsiskit/internal/nlf"
)

// ErrorExitCode represents different types of errors with their exit codes
type ErrorExitCode int

const (
	ExitCodeOK         ErrorExitCode = 0
	ExitCodeGeneral    ErrorExitCode = 1
	ExitCodeValidation ErrorExitCode = 1
	ExitCodeInput      ErrorExitCode = 2
	ExitCodeFileSystem ErrorExitCode = 3
	ExitCodePermission ErrorExitCode = 4
	ExitCodeAborted    ErrorExitCode = 5
)

// ExitCodeFor maps an error returned by a command to a process exit code
func ExitCodeFor(err error) int {
	if err == nil {
		return int(ExitCodeOK)
	}

	var (
		malformed *nlf.MalformedKeyError
		encoding  *nlf.EncodingError
		badJSON   *nlf.InvalidJSONError
		badKey    *nlf.InvalidKeyError
		badSyntax *buildfile.InvalidSyntaxError
	)

	switch {
	case errors.Is(err, actions.ErrAborted):
		return int(ExitCodeAborted)
	case errors.Is(err, fs.ErrPermission):
		return int(ExitCodePermission)
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, actions.ErrNotSaved):
		return int(ExitCodeFileSystem)
	case errors.As(err, &malformed), errors.As(err, &encoding),
		errors.As(err, &badJSON), errors.As(err, &badKey),
		errors.As(err, &badSyntax),
		errors.Is(err, actions.ErrUnsupportedGrammar):
		return int(ExitCodeInput)
	}
	return int(ExitCodeGeneral)
}

// FatalError handles fatal errors with consistent logging and exit behavior
func FatalError(err error, context string) {
	logging.UserErrorf("%s: %v", context, err)
	os.Exit(ExitCodeFor(err))
}

// WarnOnError logs a warning for non-fatal errors
func WarnOnError(err error, context string) {
	if err != nil {
		logging.UserWarnf("Warning: %s: %v", context, err)
	}
}

// MultiError represents multiple errors that occurred
type MultiError struct {
	Errors  []error
	Context string
}

func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors occurred: %v (and %d more)", len(m.Errors), m.Errors[0], len(m.Errors)-1)
}

// Unwrap exposes the collected errors to errors.Is and errors.As
func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// NewMultiError creates a new MultiError
func NewMultiError(context string) *MultiError {
	return &MultiError{
		Context: context,
		Errors:  make([]error, 0),
	}
}

// Add adds an error to the MultiError
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// HasErrors returns true if there are any errors
func (m *MultiError) HasErrors() bool {
	return len(m.Errors) > 0
}

// ErrorOrNil returns m when it holds errors
func (m *MultiError) ErrorOrNil() error {
	if m.HasErrors() {
		return m
	}
	return nil
}
