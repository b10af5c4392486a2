package nlf

import "fmt"

// MalformedKeyError is returned when a line cannot be read as a key-value record
type MalformedKeyError struct {
	Line   int // 1-based
	Key    string
	Reason string
}

func (e *MalformedKeyError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("line %d: malformed key %q: %s", e.Line, e.Key, e.Reason)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// EncodingError is returned when the input bytes cannot be decoded as text
type EncodingError struct {
	Line   int // 1-based, 0 when the position is unknown
	Column int // 1-based; bytes for UTF-8, code units for UTF-16, characters for other charsets
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d, column %d: invalid text encoding: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("invalid text encoding: %v", e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// InvalidJSONError is returned when JSON input is malformed or not a flat object of strings
type InvalidJSONError struct {
	Offset int64
	Reason string
	Err    error
}

func (e *InvalidJSONError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid JSON at offset %d: %s: %v", e.Offset, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid JSON at offset %d: %s", e.Offset, e.Reason)
}

func (e *InvalidJSONError) Unwrap() error {
	return e.Err
}

// InvalidKeyError is returned when a mapping key cannot be written as an NLF key
type InvalidKeyError struct {
	Key string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("key %q is not a valid NLF identifier", e.Key)
}
