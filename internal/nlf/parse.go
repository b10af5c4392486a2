package nlf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

type parseOpts struct {
	stringify       bool
	includeMetadata bool
	duplicates      DuplicatePolicy
	charset         string
}

// ParseOption configures Parse
type ParseOption func(*parseOpts)

// WithStringify makes Parse also render the mapping as indented JSON.
func WithStringify(v bool) ParseOption {
	return func(o *parseOpts) { o.stringify = v }
}

// WithMetadata keeps @-prefixed metadata records in the mapping.
func WithMetadata(v bool) ParseOption {
	return func(o *parseOpts) { o.includeMetadata = v }
}

// WithDuplicates selects the duplicate-key policy. The default is LastWins.
func WithDuplicates(p DuplicatePolicy) ParseOption {
	return func(o *parseOpts) { o.duplicates = p }
}

// WithCharset decodes the input with a legacy IANA charset such as
// windows-1252 instead of detecting UTF-8/UTF-16.
func WithCharset(name string) ParseOption {
	return func(o *parseOpts) { o.charset = name }
}

// Result is the outcome of Parse
type Result struct {
	Document   *Document
	Mapping    *Mapping
	JSON       []byte // set only with WithStringify(true)
	Duplicates []string
}

// Parse decodes NLF bytes into an ordered mapping. Either the whole input
// parses or an error is returned; there is no partial result.
func Parse(data []byte, opts ...ParseOption) (*Result, error) {
	o := &parseOpts{}
	for _, f := range opts {
		f(o)
	}

	text, err := decodeText(data, o.charset)
	if err != nil {
		return nil, err
	}

	doc, err := Decode(text)
	if err != nil {
		return nil, err
	}

	mapping, dups := doc.Mapping(o.duplicates, o.includeMetadata)
	res := &Result{Document: doc, Mapping: mapping, Duplicates: dups}

	if o.stringify {
		res.JSON, err = mapping.IndentedJSON()
		if err != nil {
			return nil, fmt.Errorf("rendering JSON: %w", err)
		}
	}
	return res, nil
}

// Decode classifies every line of text. Both \n and \r\n line endings are accepted.
func Decode(text string) (*Document, error) {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		// trailing newline does not start a new record
		lines = lines[:len(lines)-1]
	}

	doc := &Document{Records: make([]Record, 0, len(lines))}
	for i, line := range lines {
		r, err := decodeLine(strings.TrimSuffix(line, "\r"), i+1)
		if err != nil {
			return nil, err
		}
		doc.Records = append(doc.Records, r)
	}
	return doc, nil
}

func decodeLine(line string, lineNumber int) (Record, error) {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return Record{Kind: BlankRecord, Line: lineNumber}, nil
	case trimmed[0] == '#' || trimmed[0] == ';':
		return Record{Kind: CommentRecord, Line: lineNumber, Text: line}, nil
	}

	idx := strings.IndexByte(line, Separator)
	if idx < 0 {
		return Record{}, &MalformedKeyError{Line: lineNumber, Key: trimmed, Reason: "missing '=' separator"}
	}

	key := strings.TrimSpace(line[:idx])
	kind := KeyValueRecord
	switch {
	case key == "":
		return Record{}, &MalformedKeyError{Line: lineNumber, Reason: "empty key"}
	case strings.HasPrefix(key, MetadataPrefix):
		if !IsMetadataKey(key) {
			return Record{}, &MalformedKeyError{Line: lineNumber, Key: key, Reason: "metadata name must be letters, digits or underscore"}
		}
		kind = MetadataRecord
	case !IsValidKey(key):
		return Record{}, &MalformedKeyError{Line: lineNumber, Key: key, Reason: "keys must start with a letter or underscore and contain only letters, digits or underscore"}
	}

	return Record{
		Kind:  kind,
		Line:  lineNumber,
		Key:   key,
		Value: unescape(trimValue(line[idx+1:])),
	}, nil
}

func decodeText(data []byte, charset string) (string, error) {
	forceUTF8 := false
	if charset != "" {
		enc, err := ianaindex.IANA.Encoding(charset)
		if err != nil {
			return "", &EncodingError{Err: fmt.Errorf("unknown charset %q: %w", charset, err)}
		}
		if enc == nil {
			return "", &EncodingError{Err: fmt.Errorf("charset %q is not supported", charset)}
		}
		if name, _ := ianaindex.IANA.Name(enc); name != "UTF-8" {
			out, err := enc.NewDecoder().Bytes(data)
			if err != nil {
				return "", &EncodingError{Err: err}
			}
			// x/text decoders substitute U+FFFD for undecodable input
			if strings.Count(string(out), replacementChar) > bytes.Count(data, []byte(replacementChar)) {
				return "", replacedRune(string(out), charset)
			}
			return string(out), nil
		}
		forceUTF8 = true
	}

	if !forceUTF8 && (bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE)) {
		if err := checkUTF16(data); err != nil {
			return "", err
		}
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err != nil {
			return "", &EncodingError{Err: err}
		}
		return string(out), nil
	}

	data = bytes.TrimPrefix(data, bomUTF8)
	if !utf8.Valid(data) {
		return "", invalidUTF8(data)
	}
	return string(data), nil
}

const replacementChar = "\uFFFD"

// checkUTF16 rejects BOM-marked UTF-16 with an odd byte count or unpaired
// surrogates. Lines and columns count code units after the BOM.
func checkUTF16(data []byte) *EncodingError {
	bigEndian := bytes.HasPrefix(data, bomUTF16BE)
	payload := data[2:]
	if len(payload)%2 != 0 {
		return &EncodingError{Err: fmt.Errorf("UTF-16 input has an odd byte count (%d)", len(data))}
	}

	unit := func(i int) uint16 {
		if bigEndian {
			return uint16(payload[i])<<8 | uint16(payload[i+1])
		}
		return uint16(payload[i+1])<<8 | uint16(payload[i])
	}

	line, col := 1, 1
	for i := 0; i < len(payload); i += 2 {
		u := unit(i)
		switch {
		case u >= 0xD800 && u < 0xDC00:
			if i+2 >= len(payload) {
				return &EncodingError{Line: line, Column: col, Err: fmt.Errorf("unpaired high surrogate 0x%04X", u)}
			}
			if next := unit(i + 2); next < 0xDC00 || next > 0xDFFF {
				return &EncodingError{Line: line, Column: col, Err: fmt.Errorf("unpaired high surrogate 0x%04X", u)}
			}
			i += 2
			col += 2
			continue
		case u >= 0xDC00 && u <= 0xDFFF:
			return &EncodingError{Line: line, Column: col, Err: fmt.Errorf("unpaired low surrogate 0x%04X", u)}
		case u == '\n':
			line++
			col = 1
			continue
		}
		col++
	}
	return nil
}

// replacedRune locates the first substituted rune in decoded text
func replacedRune(text, charset string) *EncodingError {
	line, col := 1, 1
	for _, r := range text {
		if r == utf8.RuneError {
			return &EncodingError{
				Line:   line,
				Column: col,
				Err:    fmt.Errorf("byte sequence not valid in %s", charset),
			}
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &EncodingError{Err: fmt.Errorf("byte sequence not valid in %s", charset)}
}

func invalidUTF8(data []byte) *EncodingError {
	line, col := 1, 1
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return &EncodingError{
				Line:   line,
				Column: col,
				Err:    fmt.Errorf("invalid UTF-8 byte 0x%02X", data[i]),
			}
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col += size
		}
		i += size
	}
	return &EncodingError{Err: errors.New("invalid UTF-8")}
}
