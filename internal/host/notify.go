package host

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeeftor/nsiskit/internal/styles"
)

// Notification icons
const (
	WarningIcon = "⚠️"
	ErrorIcon   = "❌"
)

// TerminalNotifier renders notifications as styled terminal text.
// Dismissable notifications are drawn in a box.
type TerminalNotifier struct {
	w io.Writer
}

// NewTerminalNotifier writes notifications to w, normally os.Stderr
func NewTerminalNotifier(w io.Writer) *TerminalNotifier {
	return &TerminalNotifier{w: w}
}

// Warn shows a warning
func (n *TerminalNotifier) Warn(msg string, opts NotifyOptions) {
	n.render(WarningIcon, styles.WarningStyle, msg, opts)
}

// Error shows an error
func (n *TerminalNotifier) Error(msg string, opts NotifyOptions) {
	n.render(ErrorIcon, styles.ErrorStyle, msg, opts)
}

func (n *TerminalNotifier) render(icon string, style lipgloss.Style, msg string, opts NotifyOptions) {
	var b strings.Builder
	b.WriteString(icon + " " + style.Render(msg))
	if opts.Detail != "" {
		b.WriteString("\n" + styles.MutedStyle.Render(opts.Detail))
	}

	out := b.String()
	if opts.Dismissable {
		out = styles.BoxStyle.Render(out)
	}
	fmt.Fprintln(n.w, out)
}
