package nlf

import (
	"bytes"
	"fmt"
)

// Stringify renders input as NLF text. input may be JSON text (string or
// []byte), a *Mapping, or a map[string]string, which is written in sorted key
// order. Comments and blank lines cannot be recovered from JSON.
func Stringify(input any) ([]byte, error) {
	var m *Mapping
	switch v := input.(type) {
	case string:
		decoded, err := decodeJSON([]byte(v))
		if err != nil {
			return nil, err
		}
		m = decoded
	case []byte:
		decoded, err := decodeJSON(v)
		if err != nil {
			return nil, err
		}
		m = decoded
	case *Mapping:
		m = v
	case map[string]string:
		m = MappingFromMap(v)
	default:
		return nil, fmt.Errorf("nlf: cannot stringify %T", input)
	}
	return Encode(m)
}

// Encode writes one key=value line per entry, in insertion order, each
// terminated by a newline. An empty mapping encodes to no output.
func Encode(m *Mapping) ([]byte, error) {
	if m == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	for _, k := range m.keys {
		if !isWritableKey(k) {
			return nil, &InvalidKeyError{Key: k}
		}
		buf.WriteString(k)
		buf.WriteByte(Separator)
		buf.WriteString(escape(m.values[k]))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
