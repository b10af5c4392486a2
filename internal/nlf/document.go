package nlf

import (
	"fmt"
	"strings"
)

// RecordKind classifies a line of an NLF document
type RecordKind int

const (
	BlankRecord    RecordKind = iota // empty or whitespace-only line
	CommentRecord                    // line starting with # or ;
	MetadataRecord                   // @name=value
	KeyValueRecord                   // key=value
)

// String returns a human-readable representation of the RecordKind
func (k RecordKind) String() string {
	switch k {
	case BlankRecord:
		return "blank"
	case CommentRecord:
		return "comment"
	case MetadataRecord:
		return "metadata"
	case KeyValueRecord:
		return "key-value"
	default:
		return "unknown"
	}
}

// Record is a single classified line
type Record struct {
	Kind  RecordKind
	Line  int    // 1-based
	Key   string // includes the @ prefix for metadata
	Value string // decoded
	Text  string // verbatim comment text
}

// DuplicatePolicy decides which value survives when a key repeats
type DuplicatePolicy int

const (
	LastWins DuplicatePolicy = iota
	FirstWins
)

func (p DuplicatePolicy) String() string {
	if p == FirstWins {
		return "first"
	}
	return "last"
}

// ParseDuplicatePolicy accepts "first" or "last" (case-insensitive).
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last", "last-wins":
		return LastWins, nil
	case "first", "first-wins":
		return FirstWins, nil
	}
	return LastWins, fmt.Errorf("unknown duplicate policy %q: must be first or last", s)
}

// Document is an ordered list of records
type Document struct {
	Records []Record
}

// Mapping resolves the key-value records of the document into an ordered mapping.
// Metadata records are only included when includeMetadata is set. The returned
// slice lists every key that appeared more than once, in first-seen order.
func (d *Document) Mapping(policy DuplicatePolicy, includeMetadata bool) (*Mapping, []string) {
	m := NewMapping()
	seen := make(map[string]int)
	var duplicates []string

	for _, r := range d.Records {
		switch r.Kind {
		case KeyValueRecord:
		case MetadataRecord:
			if !includeMetadata {
				continue
			}
		default:
			continue
		}

		seen[r.Key]++
		if seen[r.Key] == 2 {
			duplicates = append(duplicates, r.Key)
		}
		if seen[r.Key] > 1 && policy == FirstWins {
			continue
		}
		m.Set(r.Key, r.Value)
	}
	return m, duplicates
}

// Metadata returns the value of the @name record, if any. The last occurrence wins.
func (d *Document) Metadata(name string) (string, bool) {
	key := MetadataPrefix + name
	value, found := "", false
	for _, r := range d.Records {
		if r.Kind == MetadataRecord && r.Key == key {
			value, found = r.Value, true
		}
	}
	return value, found
}

// String renders the document in canonical form, keeping comments and blank lines.
func (d *Document) String() string {
	var b strings.Builder
	for _, r := range d.Records {
		switch r.Kind {
		case CommentRecord:
			b.WriteString(r.Text)
		case MetadataRecord, KeyValueRecord:
			b.WriteString(r.Key)
			b.WriteByte(Separator)
			b.WriteString(escape(r.Value))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
