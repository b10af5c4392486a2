package nlf

import (
	"regexp"
	"strings"
)

const (
	// Separator splits a key from its value
	Separator = '='

	// MetadataPrefix marks a language-metadata key such as @language or @codepage
	MetadataPrefix = "@"
)

var keyRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsValidKey reports whether k satisfies the identifier rule.
func IsValidKey(k string) bool {
	return keyRegex.MatchString(k)
}

// IsMetadataKey reports whether k is an @-prefixed metadata key with a valid name.
func IsMetadataKey(k string) bool {
	name, ok := strings.CutPrefix(k, MetadataPrefix)
	return ok && IsValidKey(name)
}

func isWritableKey(k string) bool {
	return IsValidKey(k) || IsMetadataKey(k)
}

// trimValue strips unescaped spaces and tabs from both ends of a raw value.
func trimValue(raw string) string {
	raw = strings.TrimLeft(raw, " \t")
	trimmed := strings.TrimRight(raw, " \t")
	if len(trimmed) < len(raw) && trailingBackslashes(trimmed)%2 == 1 {
		// the first trimmed character belongs to an escape
		return raw[:len(trimmed)+1]
	}
	return trimmed
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}

// unescape decodes value-side escape sequences. Unknown escapes and a lone
// trailing backslash are kept as written.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}

		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		case Separator:
			b.WriteByte(Separator)
		case ' ':
			b.WriteByte(' ')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// escape is the inverse of trimValue followed by unescape.
func escape(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	last := len(s) - 1
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case Separator:
			b.WriteString(`\=`)
		case ' ':
			if i == 0 || i == last {
				b.WriteString(`\ `)
			} else {
				b.WriteByte(' ')
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
