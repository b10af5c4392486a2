package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/jeeftor/nsiskit/internal/actions"
	"github.com/jeeftor/nsiskit/internal/buildfile"
	"github.com/jeeftor/nsiskit/internal/nlf"
	"github.com/stretchr/testify/assert"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorExitCode
	}{
		{name: "nil", err: nil, expected: ExitCodeOK},
		{name: "plain", err: errors.New("boom"), expected: ExitCodeGeneral},
		{name: "aborted", err: actions.ErrAborted, expected: ExitCodeAborted},
		{name: "not saved", err: actions.ErrNotSaved, expected: ExitCodeFileSystem},
		{name: "missing file", err: fmt.Errorf("reading x: %w", fs.ErrNotExist), expected: ExitCodeFileSystem},
		{name: "permission", err: &fs.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}, expected: ExitCodePermission},
		{name: "malformed key", err: &nlf.MalformedKeyError{Line: 3, Key: "", Reason: "missing separator"}, expected: ExitCodeInput},
		{name: "encoding", err: &nlf.EncodingError{Line: 1, Column: 2, Err: errors.New("bad")}, expected: ExitCodeInput},
		{name: "invalid json", err: &nlf.InvalidJSONError{Reason: "not an object"}, expected: ExitCodeInput},
		{name: "invalid key", err: &nlf.InvalidKeyError{Key: "a b"}, expected: ExitCodeInput},
		{name: "wrapped grammar", err: fmt.Errorf("%w: source.css", actions.ErrUnsupportedGrammar), expected: ExitCodeInput},
		{name: "invalid syntax", err: &buildfile.InvalidSyntaxError{Syntax: "a/b"}, expected: ExitCodeInput},
		{name: "serialization", err: &buildfile.SerializationError{Syntax: "yaml", Err: errors.New("x")}, expected: ExitCodeGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, int(tt.expected), ExitCodeFor(tt.err))
		})
	}
}

func TestMultiError(t *testing.T) {
	m := NewMultiError("converting")
	assert.NoError(t, m.ErrorOrNil())

	m.Add(nil)
	assert.False(t, m.HasErrors())

	m.Add(actions.ErrAborted)
	assert.Equal(t, "aborted by user", m.Error())

	m.Add(errors.New("second"))
	assert.Equal(t, "2 errors occurred: aborted by user (and 1 more)", m.Error())
	assert.ErrorIs(t, m.ErrorOrNil(), actions.ErrAborted)
	assert.Equal(t, int(ExitCodeAborted), ExitCodeFor(m))
}
