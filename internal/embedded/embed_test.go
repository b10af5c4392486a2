package embedded

import (
	"testing"

	"github.com/jeeftor/nsiskit/internal/nlf"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestListTemplates(t *testing.T) {
	names, err := ListTemplates()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{SampleConfig, StarterLanguage}, names)
}

func TestStarterLanguageParses(t *testing.T) {
	data, err := Template(StarterLanguage)
	require.NoError(t, err)

	res, err := nlf.Parse(data, nlf.WithMetadata(true))
	require.NoError(t, err)
	assert.Empty(t, res.Duplicates)

	lang, ok := res.Document.Metadata("language")
	require.True(t, ok)
	assert.Equal(t, "English", lang)

	welcome, ok := res.Mapping.Get("WelcomeText")
	require.True(t, ok)
	assert.Contains(t, welcome, "\r\n\r\nClick Next")
}

func TestSampleConfigIsYAML(t *testing.T) {
	data, err := Template(SampleConfig)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "yaml", decoded["build_file_syntax"])
}

func TestExtractAll(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/out/English.nlf", []byte("mine=1\n"), 0644))

	written, err := ExtractAll(mem, "/out", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"/out/.nsiskit.yaml"}, written)

	kept, err := afero.ReadFile(mem, "/out/English.nlf")
	require.NoError(t, err)
	assert.Equal(t, "mine=1\n", string(kept))

	written, err = ExtractAll(mem, "/out", true)
	require.NoError(t, err)
	assert.Len(t, written, 2)

	replaced, err := afero.ReadFile(mem, "/out/English.nlf")
	require.NoError(t, err)
	assert.Contains(t, string(replaced), "@language=English")
}
