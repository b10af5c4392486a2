package logging

import "fmt"

// LogTemplate represents a logging template with standardized emoji and formatting
type LogTemplate struct {
	emoji  string
	prefix string
	level  LogLevel
}

// LogLevel represents the logging level for templates
type LogLevel int

const (
	LevelInfo LogLevel = iota
	LevelSuccess
	LevelWarn
	LevelError
	LevelDebug
)

// Common logging templates with standardized emojis and formats
var (
	LoadTemplate      = LogTemplate{emoji: "📂", prefix: "Loading", level: LevelInfo}
	ConvertTemplate   = LogTemplate{emoji: "🔄", prefix: "Converting", level: LevelInfo}
	SaveTemplate      = LogTemplate{emoji: "💾", prefix: "Saved", level: LevelSuccess}
	SkipTemplate      = LogTemplate{emoji: "⏭️", prefix: "Skipped", level: LevelWarn}
	DuplicateTemplate = LogTemplate{emoji: "⚠️", prefix: "Duplicate key", level: LevelWarn}
	FailTemplate      = LogTemplate{emoji: "✗", prefix: "Failed", level: LevelError}
	DebugTemplate     = LogTemplate{emoji: "🐛", prefix: "Debug", level: LevelDebug}
)

// Format formats the template with the provided message
func (t LogTemplate) Format(message string) string {
	if t.prefix != "" {
		return fmt.Sprintf("%s %s: %s", t.emoji, t.prefix, message)
	}
	return fmt.Sprintf("%s %s", t.emoji, message)
}

// Log logs the message using the appropriate logging function based on level
func (t LogTemplate) Log(message string) {
	formatted := t.Format(message)
	switch t.level {
	case LevelInfo:
		UserInfo(formatted)
	case LevelSuccess:
		Successf("%s", formatted)
	case LevelWarn:
		UserWarnf("%s", formatted)
	case LevelError:
		UserErrorf("%s", formatted)
	case LevelDebug:
		Debug(formatted)
	}
}

// Logf logs the message using printf-style formatting
func (t LogTemplate) Logf(format string, args ...any) {
	t.Log(fmt.Sprintf(format, args...))
}

// LoadFile logs file load operation
func LoadFile(path string) {
	LoadTemplate.Log(path)
}

// Convert logs a conversion between two formats
func Convert(path, from, to string) {
	ConvertTemplate.Logf("%s (%s → %s)", path, from, to)
}

// SaveFile logs file save operation
func SaveFile(path string, details string) {
	if details != "" {
		SaveTemplate.Logf("%s (%s)", path, details)
	} else {
		SaveTemplate.Log(path)
	}
}

// Skip logs an operation that was not carried out
func Skip(what string, reason string) {
	SkipTemplate.Logf("%s: %s", what, reason)
}

// DuplicateKey logs a key that was defined more than once
func DuplicateKey(key string, policy string) {
	DuplicateTemplate.Logf("%q (keeping %s value)", key, policy)
}

// Fail logs operation failure
func Fail(operation string, reason string) {
	if reason != "" {
		FailTemplate.Logf("%s: %s", operation, reason)
	} else {
		FailTemplate.Log(operation)
	}
}
