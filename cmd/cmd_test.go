package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeeftor/nsiskit/internal/constants"
	"github.com/jeeftor/nsiskit/internal/embedded"
	"github.com/jeeftor/nsiskit/internal/validation"
)

func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	mem := afero.NewMemMapFs()
	prev := appFs
	appFs = mem
	t.Cleanup(func() { appFs = prev })
	return mem
}

func run(t *testing.T, stdin string, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&bytes.Buffer{})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		convertGrammar, convertForce, buildFileForce = "", false, false
	})
	return rootCmd.Execute()
}

func TestSniffGrammar(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{text: `{"a":"b"}`, expected: constants.ScopeJSON},
		{text: "\uFEFF\n  {\n}", expected: constants.ScopeJSON},
		{text: "a=b\n", expected: constants.ScopeNLF},
		{text: "", expected: constants.ScopeNLF},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, sniffGrammar(tt.text), "%q", tt.text)
	}
}

func TestEnvVarName(t *testing.T) {
	assert.Equal(t, "NSISKIT_LOG_LEVEL", envVarName(constants.KeyLogLevel))
	assert.Equal(t, "NSISKIT_NLF_DUPLICATES", envVarName(constants.KeyDuplicates))
}

func TestSampleConfigIsValid(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	sample, err := embedded.Template(embedded.SampleConfig)
	require.NoError(t, err)
	require.NoError(t, v.ReadConfig(bytes.NewReader(sample)))

	settings, err := validation.LoadSettings(v)
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultBuildFileSyntax, settings.BuildFileSyntax)
	assert.Equal(t, constants.DefaultDuplicates, settings.NLF.Duplicates)

	result := validation.NewConfigValidator(afero.NewMemMapFs()).Validate(settings)
	assert.True(t, result.Valid, validation.FormatValidationErrors(result))
}

func TestConvertCommand(t *testing.T) {
	mem := useMemFs(t)
	require.NoError(t, afero.WriteFile(mem, "/lang/English.nlf", []byte("; English\nhello=Hello\n"), 0644))

	require.NoError(t, run(t, "", "convert", "/lang/English.nlf", "--force"))

	data, err := afero.ReadFile(mem, "/lang/English.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"hello\": \"Hello\"\n}", string(data))
}

func TestConvertCommandRejectsUnknownExtension(t *testing.T) {
	useMemFs(t)

	err := run(t, "", "convert", "/lang/readme.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--grammar")
}

func TestBuildFileCommand(t *testing.T) {
	mem := useMemFs(t)
	require.NoError(t, afero.WriteFile(mem, "/proj/installer.nsi", []byte("OutFile setup.exe\n"), 0644))

	require.NoError(t, run(t, "", "build-file", "/proj/installer.nsi",
		"--syntax", "json", "--makensis", "/opt/nsis/makensis", "--force"))

	data, err := afero.ReadFile(mem, "/proj/.atom-build.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cmd": "/opt/nsis/makensis"`)
	assert.Contains(t, string(data), `"name": "installer.nsi"`)
}

func TestTemplatesCommand(t *testing.T) {
	mem := useMemFs(t)
	t.Cleanup(func() { templatesOutput, templatesList, templatesForce = "", false, false })

	require.NoError(t, run(t, "", "templates", "--output", "/starter"))

	for _, name := range []string{"/starter/English.nlf", "/starter/.nsiskit.yaml"} {
		exists, err := afero.Exists(mem, name)
		require.NoError(t, err)
		assert.True(t, exists, name)
	}
}

func TestConfigInitCommand(t *testing.T) {
	mem := useMemFs(t)

	require.NoError(t, run(t, "", "config", "init", "/cfg/.nsiskit.yaml"))
	data, err := afero.ReadFile(mem, "/cfg/.nsiskit.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "build_file_syntax: yaml")

	err = run(t, "", "config", "init", "/cfg/.nsiskit.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
