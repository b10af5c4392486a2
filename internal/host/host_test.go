package host

import (
	"bytes"
	"context"
	"testing"

	"github.com/jeeftor/nsiskit/internal/constants"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocument(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/lang/English.nlf", []byte("Title=Setup\n"), 0644))

	doc, err := LoadDocument(mem, "/lang/English.nlf", "")
	require.NoError(t, err)

	assert.Equal(t, "Title=Setup\n", doc.Text())
	assert.Equal(t, constants.ScopeNLF, doc.GrammarID())
	assert.Equal(t, "/lang/English.nlf", doc.FilePath())
	assert.Equal(t, "English.nlf", doc.FileName())
}

func TestLoadDocumentGrammarOverride(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/lang/strings.txt", []byte("{}"), 0644))

	doc, err := LoadDocument(mem, "/lang/strings.txt", constants.ScopeJSON)
	require.NoError(t, err)
	assert.Equal(t, constants.ScopeJSON, doc.GrammarID())
}

func TestLoadDocumentMissing(t *testing.T) {
	_, err := LoadDocument(afero.NewMemMapFs(), "/nope.nlf", "")
	assert.Error(t, err)
}

func TestGrammarForPath(t *testing.T) {
	tests := map[string]string{
		"English.nlf":   constants.ScopeNLF,
		"English.NLF":   constants.ScopeNLF,
		"strings.json":  constants.ScopeJSON,
		"strings.json5": constants.ScopeJSON5,
		"installer.nsi": constants.ScopeNSIS,
		"macros.nsh":    constants.ScopeNSIS,
		"readme.md":     constants.ScopePlainText,
		"no-extension":  constants.ScopePlainText,
	}

	for path, expected := range tests {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, expected, GrammarForPath(path))
		})
	}
}

func TestUnsavedDocument(t *testing.T) {
	doc := NewUnsavedDocument("k=v", constants.ScopeNLF)
	assert.Empty(t, doc.FilePath())
	assert.Equal(t, UntitledName, doc.FileName())
}

func TestAferoFS(t *testing.T) {
	fs := NewAferoFS(afero.NewMemMapFs())

	exists, err := fs.Exists("/out/English.json")
	require.NoError(t, err)
	assert.False(t, exists)

	editor, err := fs.OpenAsEditor("/out/English.json")
	require.NoError(t, err)
	assert.Equal(t, "/out/English.json", editor.Path())

	exists, _ = fs.Exists("/out/English.json")
	assert.False(t, exists, "opening must not create the file")

	require.NoError(t, editor.SetText("{}"))
	data, err := afero.ReadFile(fs.Fs(), "/out/English.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	text, err := fs.ReadText("/out/English.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", text)

	_, err = fs.ReadText("/out/missing.json")
	assert.Error(t, err)
}

func TestTerminalNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminalNotifier(&buf)

	n.Warn("File exists", NotifyOptions{Detail: "Do you really want to overwrite?"})
	n.Error("Conversion Failed", NotifyOptions{Detail: "line 1: bad key", Dismissable: true})

	out := buf.String()
	assert.Contains(t, out, "File exists")
	assert.Contains(t, out, "Do you really want to overwrite?")
	assert.Contains(t, out, "Conversion Failed")
	assert.Contains(t, out, "line 1: bad key")
}

func TestViperConfig(t *testing.T) {
	v := viper.New()
	v.Set(constants.KeyBuildFileSyntax, "json")
	v.Set(constants.KeyIncludeMetadata, true)

	cfg := NewViperConfig(v)
	assert.Equal(t, "json", cfg.GetString(constants.KeyBuildFileSyntax))
	assert.Equal(t, "json", cfg.Get(constants.KeyBuildFileSyntax))
	assert.True(t, cfg.GetBool(constants.KeyIncludeMetadata))
}

func TestStaticConfirmer(t *testing.T) {
	ok, err := StaticConfirmer(true).Confirm(context.Background(), "t", "d")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = StaticConfirmer(false).Confirm(context.Background(), "t", "d")
	assert.False(t, ok)
}
