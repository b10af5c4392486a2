package nlf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// Mapping is an insertion-ordered map of NLF keys to string values.
// The zero value is ready to use.
type Mapping struct {
	keys   []string
	values map[string]string
}

// NewMapping returns an empty mapping
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]string)}
}

// MappingFromMap builds a mapping from an unordered map, keys sorted.
func MappingFromMap(src map[string]string) *Mapping {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := NewMapping()
	for _, k := range keys {
		m.Set(k, src[k])
	}
	return m
}

// Set stores v under k. A new key is appended; an existing key keeps its position.
func (m *Mapping) Set(k, v string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// Get returns the value stored under k
func (m *Mapping) Get(k string) (string, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Has reports whether k is present
func (m *Mapping) Has(k string) bool {
	_, ok := m.values[k]
	return ok
}

// Keys returns the keys in insertion order
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Map returns an unordered copy of the entries
func (m *Mapping) Map() map[string]string {
	out := make(map[string]string, len(m.keys))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// MarshalJSON writes the mapping as a compact JSON object in insertion order.
// HTML characters are not escaped.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, m.values[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IndentedJSON renders the mapping with two-space indentation and no trailing newline.
func (m *Mapping) IndentedJSON() ([]byte, error) {
	compact, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

// UnmarshalJSON reads a flat JSON object of strings, keeping key order.
// Repeated keys keep their first position and take the last value.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	decoded, err := decodeJSON(data)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}

func decodeJSON(data []byte) (*Mapping, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, jsonError(dec, "expected an object", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, &InvalidJSONError{Offset: dec.InputOffset(), Reason: "top-level value must be an object"}
	}

	m := NewMapping()
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, jsonError(dec, "expected a key", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, &InvalidJSONError{Offset: dec.InputOffset(), Reason: "expected a string key"}
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, jsonError(dec, fmt.Sprintf("reading value for %q", key), err)
		}
		value, ok := tok.(string)
		if !ok {
			return nil, &InvalidJSONError{
				Offset: dec.InputOffset(),
				Reason: fmt.Sprintf("value for %q must be a string, got %s", key, describeToken(tok)),
			}
		}
		m.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, jsonError(dec, "unterminated object", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &InvalidJSONError{Offset: dec.InputOffset(), Reason: "unexpected data after object", Err: err}
	}
	return m, nil
}

func jsonError(dec *json.Decoder, reason string, err error) *InvalidJSONError {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	offset := dec.InputOffset()
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		offset = syntaxErr.Offset
	}
	return &InvalidJSONError{Offset: offset, Reason: reason, Err: err}
}

func describeToken(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		if v == '{' {
			return "object"
		}
		return "array"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", tok)
	}
}
