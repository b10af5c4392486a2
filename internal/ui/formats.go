package ui

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jeeftor/nsiskit/internal/styles"
)

// Icons for consistent UI messaging
const (
	SuccessIcon = "✅"
	ErrorIcon   = "❌"
	InfoIcon    = "ℹ️"
	WarningIcon = "⚠️"
	ResultIcon  = "📊"
	HeaderIcon  = "🔸"
	FolderIcon  = "📂"
)

// Out is where the message helpers print
var Out io.Writer = os.Stdout

// Helper functions for styling specific types of content
func Success(text string) string {
	return styles.SuccessStyle.Render(text)
}

func Error(text string) string {
	return styles.ErrorStyle.Render(text)
}

func Warning(text string) string {
	return styles.WarningStyle.Render(text)
}

func Bold(text string) string {
	return styles.BoldStyle.Render(text)
}

func Muted(text string) string {
	return styles.MutedStyle.Render(text)
}

func Key(text string) string {
	return styles.KeyStyle.Render(text)
}

func Value(text string) string {
	return styles.ValueStyle.Render(text)
}

func Code(text string) string {
	return styles.CodeStyle.Render(text)
}

// StatusMessage formats a status message with consistent styling
func StatusMessage(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(Out, "%s %s\n", SuccessIcon, message)
}

// ErrorMessage formats an error message with consistent styling
func ErrorMessage(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(Out, "%s %s\n", ErrorIcon, Error(message))
}

// InfoMessage formats an informational message with consistent styling
func InfoMessage(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(Out, "%s %s\n", InfoIcon, message)
}

// Title prints a top-level heading
func Title(text string) {
	fmt.Fprintln(Out, styles.TitleStyle.Render(text))
	fmt.Fprintln(Out)
}

// SectionHeader formats a section header with styling
func SectionHeader(title string) {
	fmt.Fprintln(Out, styles.SectionStyle.Render(fmt.Sprintf("%s %s", FolderIcon, title)))
}

// BulletPoint formats a bullet point with consistent styling
func BulletPoint(text string) {
	fmt.Fprintf(Out, "  • %s\n", text)
}

// Setting prints one configuration value and where it came from
func Setting(key string, value interface{}, source string) {
	fmt.Fprintf(Out, "  %s: %s %s\n",
		Key(key),
		Value(fmt.Sprintf("%v", value)),
		Muted(fmt.Sprintf("(%s)", source)))
}

// EnvironmentVariable prints an env var with its current and default value
func EnvironmentVariable(name, description, current, defaultValue string) {
	indicator, nameStyle := "○", styles.KeyStyle
	if current != "" {
		indicator, nameStyle = "●", styles.SuccessStyle
	}
	fmt.Fprintf(Out, "  %s %s\n", nameStyle.Render(indicator), nameStyle.Render(name))
	fmt.Fprintf(Out, "    %s\n", Muted(description))
	if current != "" {
		fmt.Fprintf(Out, "    Current: %s\n", Value(current))
	} else {
		fmt.Fprintf(Out, "    Current: %s\n", Muted("(not set)"))
	}
	fmt.Fprintf(Out, "    Default: %s\n", styles.DefaultStyle.Render(defaultValue))
}

// CommandExample formats command usage examples
func CommandExample(command, description string) {
	fmt.Fprintf(Out, "  %-40s # %s\n",
		Code(command),
		Muted(description))
}

// ValidationErrorMsg formats validation error messages
func ValidationErrorMsg(field, message string) {
	fmt.Fprintf(Out, "%s Validation error for %s: %s\n",
		ErrorIcon,
		Bold(field),
		Error(message))
}

// ResultSummary formats a results summary, keys sorted
func ResultSummary(operation string, results map[string]interface{}) {
	fmt.Fprintf(Out, "\n%s %s Summary:\n", ResultIcon, Bold(operation))
	keys := make([]string, 0, len(results))
	for key := range results {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(Out, "  %s: %v\n", Key(key), results[key])
	}
}
