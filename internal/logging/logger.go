package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	// Current minimum level
	minLevel = slog.LevelInfo

	// Default logger instance
	logger *slog.Logger

	// Destination for user-facing messages
	userOut io.Writer = os.Stdout
	userErr io.Writer = os.Stderr

	// Colors for different log levels
	infoColor    = color.New(color.FgGreen).SprintFunc()
	warnColor    = color.New(color.FgYellow).SprintFunc()
	errorColor   = color.New(color.FgRed).SprintFunc()
	debugColor   = color.New(color.FgCyan).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// ColorTextHandler is a simple handler that adds colors to log output
type ColorTextHandler struct {
	w     io.Writer
	attrs []slog.Attr
}

// NewColorTextHandler creates a new ColorTextHandler
func NewColorTextHandler(w io.Writer) *ColorTextHandler {
	return &ColorTextHandler{w: w}
}

// Handle handles the log record
func (h *ColorTextHandler) Handle(ctx context.Context, r slog.Record) error {
	var levelText string
	switch {
	case r.Level < slog.LevelInfo:
		levelText = debugColor("DEBUG")
	case r.Level < slog.LevelWarn:
		levelText = infoColor("INFO")
	case r.Level < slog.LevelError:
		levelText = warnColor("WARN")
	default:
		levelText = errorColor("ERROR")
	}

	var attrs strings.Builder
	for _, a := range h.attrs {
		attrs.WriteString(" " + a.Key + "=" + formatAttrValue(a.Value))
	}
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "source" {
			return true
		}
		attrs.WriteString(" " + a.Key + "=" + formatAttrValue(a.Value))
		return true
	})

	_, err := fmt.Fprintf(h.w, "%s %s%s\n", levelText, r.Message, attrs.String())
	return err
}

// formatAttrValue formats a slog.Value as a string
func formatAttrValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return fmt.Sprintf("%d", v.Int64())
	case slog.KindUint64:
		return fmt.Sprintf("%d", v.Uint64())
	case slog.KindFloat64:
		return fmt.Sprintf("%f", v.Float64())
	case slog.KindBool:
		return fmt.Sprintf("%t", v.Bool())
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format("15:04:05")
	case slog.KindAny:
		return fmt.Sprintf("%v", v.Any())
	default:
		return v.String()
	}
}

// WithAttrs returns a new handler with the given attributes
func (h *ColorTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &ColorTextHandler{w: h.w, attrs: merged}
}

// WithGroup returns a new handler with the given group
func (h *ColorTextHandler) WithGroup(name string) slog.Handler {
	return h
}

// Enabled reports whether the handler handles records at the given level
func (h *ColorTextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= minLevel
}

// ParseLevel maps a level name to a slog level. trace is treated as debug.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// InitWithLevel initializes the logger with a named level, falling back to info
func InitWithLevel(level string) {
	lvl, err := ParseLevel(level)
	minLevel = lvl

	logger = slog.New(NewColorTextHandler(userErr))
	slog.SetDefault(logger)

	if err != nil {
		Warn("Falling back to info logging", "error", err)
	}
}

// Init initializes the logger with the specified debug level
func Init(debug bool) {
	if debug {
		InitWithLevel("debug")
		Debug("Debug logging enabled")
		return
	}
	InitWithLevel("info")
}

// SetOutput sets the output writer for the logger and user messages
func SetOutput(w io.Writer) {
	userOut = w
	userErr = w
	logger = slog.New(NewColorTextHandler(w))
	slog.SetDefault(logger)
}

// IsDebugEnabled reports whether debug records are emitted
func IsDebugEnabled() bool {
	return minLevel <= slog.LevelDebug
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}

// UserInfo prints a plain message for the user
func UserInfo(msg string) {
	fmt.Fprintln(userOut, msg)
}

// UserInfof prints a formatted message for the user
func UserInfof(format string, args ...any) {
	fmt.Fprintf(userOut, format+"\n", args...)
}

// UserWarnf prints a formatted warning for the user
func UserWarnf(format string, args ...any) {
	fmt.Fprintln(userErr, warnColor(fmt.Sprintf(format, args...)))
}

// UserErrorf prints a formatted error for the user
func UserErrorf(format string, args ...any) {
	fmt.Fprintln(userErr, errorColor(fmt.Sprintf(format, args...)))
}

// Successf prints a formatted success message for the user
func Successf(format string, args ...any) {
	fmt.Fprintln(userOut, successColor(fmt.Sprintf(format, args...)))
}

// LogOperation runs fn and logs its duration and outcome at debug level
func LogOperation(operation, target string, fn func() error) error {
	start := time.Now()
	Debug("Operation started", "operation", operation, "target", target)

	err := fn()
	if err != nil {
		Debug("Operation failed",
			"operation", operation,
			"target", target,
			"duration", time.Since(start),
			"error", err)
		return err
	}

	Debug("Operation completed",
		"operation", operation,
		"target", target,
		"duration", time.Since(start))
	return nil
}
