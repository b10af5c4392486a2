package nlf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeClassifiesLines(t *testing.T) {
	text := "# header\r\n; alt comment\r\n\r\n@language=English\r\nTitle=Setup\r\n"

	doc, err := Decode(text)
	require.NoError(t, err)
	require.Len(t, doc.Records, 5)

	kinds := make([]RecordKind, 0, len(doc.Records))
	for _, r := range doc.Records {
		kinds = append(kinds, r.Kind)
	}
	assert.Equal(t, []RecordKind{CommentRecord, CommentRecord, BlankRecord, MetadataRecord, KeyValueRecord}, kinds)

	assert.Equal(t, "# header", doc.Records[0].Text)
	assert.Equal(t, "@language", doc.Records[3].Key)
	assert.Equal(t, "English", doc.Records[3].Value)
	assert.Equal(t, 5, doc.Records[4].Line)
	assert.Equal(t, "Setup", doc.Records[4].Value)
}

func TestDecodeValues(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{name: "plain", line: "k=value", expected: "value"},
		{name: "spaces around separator", line: "  k  =   value   ", expected: "value"},
		{name: "tabs trimmed", line: "k=\tvalue\t", expected: "value"},
		{name: "empty value", line: "k=", expected: ""},
		{name: "separator in value", line: "k=a=b", expected: "a=b"},
		{name: "escaped separator", line: `k=a\=b`, expected: "a=b"},
		{name: "newline escape", line: `k=one\ntwo`, expected: "one\ntwo"},
		{name: "carriage return and tab escapes", line: `k=a\r\tb`, expected: "a\r\tb"},
		{name: "escaped backslash", line: `k=C:\\Program Files`, expected: `C:\Program Files`},
		{name: "unknown escape kept", line: `k=$\"quoted$\"`, expected: `$\"quoted$\"`},
		{name: "lone trailing backslash kept", line: `k=dir\`, expected: `dir\`},
		{name: "escaped leading space", line: `k=\  indented`, expected: "  indented"},
		{name: "escaped trailing space", line: `k=end\ `, expected: "end "},
		{name: "escaped backslash before trimmed space", line: `k=end\\ `, expected: `end\`},
		{name: "hash inside value", line: "k=#1 choice", expected: "#1 choice"},
		{name: "unicode", line: "k=Добро пожаловать", expected: "Добро пожаловать"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode(tt.line)
			require.NoError(t, err)
			require.Len(t, doc.Records, 1)
			assert.Equal(t, "k", doc.Records[0].Key)
			assert.Equal(t, tt.expected, doc.Records[0].Value)
		})
	}
}

func TestDecodeMalformedKey(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
	}{
		{name: "key starting with digit", text: "1badkey=value", line: 1},
		{name: "key with space", text: "ok=1\n1 badkey=value", line: 2},
		{name: "key with dash", text: "ok=1\n\n# c\nbad-key=value", line: 4},
		{name: "empty key", text: "=value", line: 1},
		{name: "missing separator", text: "ok=1\njust some text", line: 2},
		{name: "bad metadata name", text: "@1lang=English", line: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.text)
			require.Error(t, err)

			var malformed *MalformedKeyError
			require.True(t, errors.As(err, &malformed), "expected MalformedKeyError, got %T", err)
			assert.Equal(t, tt.line, malformed.Line)
		})
	}
}

func TestParseMalformedKeyOnFirstLine(t *testing.T) {
	res, err := Parse([]byte("1 badkey=value\n"))
	assert.Nil(t, res)

	var malformed *MalformedKeyError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 1, malformed.Line)
	assert.Equal(t, "1 badkey", malformed.Key)
	assert.Contains(t, err.Error(), "line 1")
}

func TestParseDuplicateKeys(t *testing.T) {
	input := []byte("A=first\nB=middle\nA=second\nA=third\n")

	t.Run("last wins by default", func(t *testing.T) {
		res, err := Parse(input)
		require.NoError(t, err)

		assert.Equal(t, []string{"A", "B"}, res.Mapping.Keys())
		v, ok := res.Mapping.Get("A")
		assert.True(t, ok)
		assert.Equal(t, "third", v)
		assert.Equal(t, []string{"A"}, res.Duplicates)
	})

	t.Run("first wins", func(t *testing.T) {
		res, err := Parse(input, WithDuplicates(FirstWins))
		require.NoError(t, err)

		assert.Equal(t, []string{"A", "B"}, res.Mapping.Keys())
		v, _ := res.Mapping.Get("A")
		assert.Equal(t, "first", v)
	})
}

func TestParseStringify(t *testing.T) {
	input := []byte("@language=English\n# comment\nTitle=<b>Setup</b>\n\nBody=Line one\\nLine two\n")

	res, err := Parse(input, WithStringify(true))
	require.NoError(t, err)

	expected := "{\n  \"Title\": \"<b>Setup</b>\",\n  \"Body\": \"Line one\\nLine two\"\n}"
	assert.Equal(t, expected, string(res.JSON))
	assert.False(t, res.Mapping.Has("@language"))
}

func TestParseWithoutStringifyLeavesJSONEmpty(t *testing.T) {
	res, err := Parse([]byte("k=v"))
	require.NoError(t, err)
	assert.Nil(t, res.JSON)
	assert.Equal(t, 1, res.Mapping.Len())
}

func TestParseEmptyInput(t *testing.T) {
	res, err := Parse(nil, WithStringify(true))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Mapping.Len())
	assert.Equal(t, "{}", string(res.JSON))
}

func TestParseMetadata(t *testing.T) {
	input := []byte("@language=English\n@id=1033\nTitle=Setup\n")

	res, err := Parse(input, WithMetadata(true), WithStringify(true))
	require.NoError(t, err)

	assert.Equal(t, []string{"@language", "@id", "Title"}, res.Mapping.Keys())

	lang, ok := res.Document.Metadata("language")
	assert.True(t, ok)
	assert.Equal(t, "English", lang)

	_, ok = res.Document.Metadata("codepage")
	assert.False(t, ok)
}

func TestParseEncodings(t *testing.T) {
	t.Run("utf-8 bom stripped", func(t *testing.T) {
		res, err := Parse(append([]byte{0xEF, 0xBB, 0xBF}, "Title=Setup\n"...))
		require.NoError(t, err)
		assert.Equal(t, []string{"Title"}, res.Mapping.Keys())
	})

	t.Run("utf-16 little endian with bom", func(t *testing.T) {
		data := []byte{0xFF, 0xFE}
		for _, r := range "K=Ü\r\n" {
			data = append(data, byte(r), byte(r>>8))
		}
		res, err := Parse(data)
		require.NoError(t, err)
		v, ok := res.Mapping.Get("K")
		assert.True(t, ok)
		assert.Equal(t, "Ü", v)
	})

	t.Run("utf-16 big endian with bom", func(t *testing.T) {
		data := []byte{0xFE, 0xFF}
		for _, r := range "K=v\n" {
			data = append(data, byte(r>>8), byte(r))
		}
		res, err := Parse(data)
		require.NoError(t, err)
		v, _ := res.Mapping.Get("K")
		assert.Equal(t, "v", v)
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		_, err := Parse([]byte("ok=1\nK=caf\xe9\n"))

		var encErr *EncodingError
		require.ErrorAs(t, err, &encErr)
		assert.Equal(t, 2, encErr.Line)
		assert.Equal(t, 6, encErr.Column)
	})

	t.Run("legacy charset", func(t *testing.T) {
		res, err := Parse([]byte("K=caf\xe9\n"), WithCharset("windows-1252"))
		require.NoError(t, err)
		v, _ := res.Mapping.Get("K")
		assert.Equal(t, "café", v)
	})

	t.Run("utf-16 surrogate pair", func(t *testing.T) {
		data := []byte{0xFF, 0xFE, 'K', 0, '=', 0, 0x3D, 0xD8, 0x00, 0xDE, '\n', 0}
		res, err := Parse(data)
		require.NoError(t, err)
		v, _ := res.Mapping.Get("K")
		assert.Equal(t, "\U0001F600", v)
	})

	t.Run("utf-16 lone high surrogate", func(t *testing.T) {
		data := []byte{0xFF, 0xFE, 'A', 0, '=', 0, 0x00, 0xD8, '\n', 0}
		res, err := Parse(data)
		assert.Nil(t, res)

		var encErr *EncodingError
		require.ErrorAs(t, err, &encErr)
		assert.Equal(t, 1, encErr.Line)
		assert.Equal(t, 3, encErr.Column)
	})

	t.Run("utf-16 lone low surrogate", func(t *testing.T) {
		data := []byte{0xFE, 0xFF, 0, 'A', 0, '=', 0, '\n', 0, 'B', 0, '=', 0xDC, 0x00}
		_, err := Parse(data)

		var encErr *EncodingError
		require.ErrorAs(t, err, &encErr)
		assert.Equal(t, 2, encErr.Line)
		assert.Equal(t, 3, encErr.Column)
	})

	t.Run("utf-16 odd length", func(t *testing.T) {
		_, err := Parse([]byte{0xFF, 0xFE, 'A', 0, '='})

		var encErr *EncodingError
		require.ErrorAs(t, err, &encErr)
		assert.Contains(t, encErr.Error(), "odd byte count")
	})

	t.Run("explicit utf-8 charset rejects invalid bytes", func(t *testing.T) {
		_, err := Parse([]byte("A=\xff"), WithCharset("utf-8"))

		var encErr *EncodingError
		require.ErrorAs(t, err, &encErr)
		assert.Equal(t, 1, encErr.Line)
		assert.Equal(t, 3, encErr.Column)
	})

	t.Run("multi-byte charset rejects invalid sequence", func(t *testing.T) {
		_, err := Parse([]byte("ok=1\nK=\x81\n"), WithCharset("Shift_JIS"))

		var encErr *EncodingError
		require.ErrorAs(t, err, &encErr)
		assert.Equal(t, 2, encErr.Line)
		assert.Equal(t, 3, encErr.Column)
	})

	t.Run("unknown charset", func(t *testing.T) {
		_, err := Parse([]byte("K=v"), WithCharset("no-such-charset"))
		var encErr *EncodingError
		assert.ErrorAs(t, err, &encErr)
	})
}

func TestDocumentStringKeepsCommentsAndBlanks(t *testing.T) {
	text := "# header\n\nk = spaced value \nq=a\\=b\n"

	doc, err := Decode(text)
	require.NoError(t, err)
	assert.Equal(t, "# header\n\nk=spaced value\nq=a\\=b\n", doc.String())
}

func TestParseDuplicatePolicy(t *testing.T) {
	tests := []struct {
		in       string
		expected DuplicatePolicy
		wantErr  bool
	}{
		{in: "", expected: LastWins},
		{in: "last", expected: LastWins},
		{in: "FIRST", expected: FirstWins},
		{in: "first-wins", expected: FirstWins},
		{in: "random", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParseDuplicatePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}
