package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jeeftor/nsiskit/internal/buildfile"
	"github.com/jeeftor/nsiskit/internal/logging"
	"github.com/jeeftor/nsiskit/internal/nlf"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"golang.org/x/text/encoding/ianaindex"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// ValidationResult holds the results of configuration validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []string
}

// AddError adds a validation error
func (vr *ValidationResult) AddError(field string, value interface{}, rule string, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	})
}

// AddWarning adds a validation warning
func (vr *ValidationResult) AddWarning(message string) {
	vr.Warnings = append(vr.Warnings, message)
}

// Settings mirrors the configuration file layout
type Settings struct {
	LogLevel        string      `mapstructure:"log_level" yaml:"log_level"`
	BuildFileSyntax string      `mapstructure:"build_file_syntax" yaml:"build_file_syntax"`
	MakensisPath    string      `mapstructure:"makensis_path" yaml:"makensis_path"`
	NLF             NLFSettings `mapstructure:"nlf" yaml:"nlf"`
}

// NLFSettings controls how language files are parsed
type NLFSettings struct {
	Duplicates      string `mapstructure:"duplicates" yaml:"duplicates"`
	IncludeMetadata bool   `mapstructure:"include_metadata" yaml:"include_metadata"`
	Charset         string `mapstructure:"charset" yaml:"charset"`
}

// LoadSettings decodes the merged viper configuration
func LoadSettings(v *viper.Viper) (*Settings, error) {
	if v == nil {
		v = viper.GetViper()
	}
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	return &s, nil
}

var validLogLevels = []string{"debug", "info", "warn", "warning", "error"}

// ConfigValidator checks settings before any action runs
type ConfigValidator struct {
	fs afero.Fs
}

// NewConfigValidator creates a validator that checks paths against fs
func NewConfigValidator(fs afero.Fs) *ConfigValidator {
	return &ConfigValidator{fs: fs}
}

// Validate performs all checks on s
func (cv *ConfigValidator) Validate(s *Settings) *ValidationResult {
	result := &ValidationResult{Valid: true}

	cv.validateLogLevel(s, result)
	cv.validateBuildFileSyntax(s, result)
	cv.validateMakensisPath(s, result)
	cv.validateNLF(s, result)

	return result
}

func (cv *ConfigValidator) validateLogLevel(s *Settings, result *ValidationResult) {
	if s.LogLevel == "" {
		return
	}
	level := strings.ToLower(s.LogLevel)
	for _, valid := range validLogLevels {
		if level == valid {
			return
		}
	}
	result.AddError("log_level", s.LogLevel, "one_of",
		fmt.Sprintf("must be one of %s", strings.Join(validLogLevels, ", ")))
}

func (cv *ConfigValidator) validateBuildFileSyntax(s *Settings, result *ValidationResult) {
	syntax := buildfile.NormalizeSyntax(s.BuildFileSyntax)
	switch syntax {
	case "", buildfile.SyntaxYAML, buildfile.SyntaxJSON:
	default:
		if err := buildfile.CheckSyntax(syntax); err != nil {
			result.AddError("build_file_syntax", s.BuildFileSyntax, "pattern", "must contain only letters and digits")
			return
		}
		// Still works: the file gets JSON content under the configured name
		result.AddWarning(fmt.Sprintf("build_file_syntax %q is not yaml or json; %s will contain JSON",
			s.BuildFileSyntax, buildfile.FileName(syntax)))
	}
}

func (cv *ConfigValidator) validateMakensisPath(s *Settings, result *ValidationResult) {
	path := strings.TrimSpace(s.MakensisPath)
	if path == "" {
		return
	}

	// A bare command name is resolved by the task runner at build time
	if !strings.ContainsRune(path, filepath.Separator) && !strings.ContainsRune(path, '/') {
		return
	}

	info, err := cv.fs.Stat(path)
	if err != nil {
		result.AddWarning(fmt.Sprintf("makensis_path does not exist: %s", path))
		return
	}
	if info.IsDir() {
		result.AddError("makensis_path", path, "file", "must point to the makensis executable, not a directory")
	}

	logging.Debug("makensis path validation", "path", path, "is_dir", info.IsDir())
}

func (cv *ConfigValidator) validateNLF(s *Settings, result *ValidationResult) {
	if _, err := nlf.ParseDuplicatePolicy(s.NLF.Duplicates); err != nil {
		result.AddError("nlf.duplicates", s.NLF.Duplicates, "one_of", "must be first or last")
	}

	if charset := strings.TrimSpace(s.NLF.Charset); charset != "" {
		enc, err := ianaindex.IANA.Encoding(charset)
		if err != nil || enc == nil {
			result.AddError("nlf.charset", s.NLF.Charset, "iana_name", "unknown or unsupported character set")
		}
	}

	logging.Debug("NLF settings validation",
		"duplicates", s.NLF.Duplicates,
		"include_metadata", s.NLF.IncludeMetadata,
		"charset", s.NLF.Charset)
}

// FormatValidationErrors formats validation errors for user display
func FormatValidationErrors(result *ValidationResult) string {
	if result.Valid {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Configuration validation failed:\n")

	for _, err := range result.Errors {
		sb.WriteString(fmt.Sprintf("  • %s\n", err.Error()))
	}

	if len(result.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, warning := range result.Warnings {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", warning))
		}
	}

	return sb.String()
}
