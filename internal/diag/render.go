package diag

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette shared with the CLI.
var (
	colorError   = lipgloss.Color("#EF4444") // Red
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorMuted   = lipgloss.Color("#6B7280") // Gray
)

var (
	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	posStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Renderer formats diagnostics for terminal output.
type Renderer struct {
	color bool
}

// NewRenderer creates a renderer. With color disabled it produces the
// plain "file:line:col: severity: message" form, suitable for pipes
// and for editors that parse diagnostic output.
func NewRenderer(color bool) *Renderer {
	return &Renderer{color: color}
}

// Render formats a single diagnostic as one line, without a trailing
// newline.
func (r *Renderer) Render(d Diagnostic) string {
	if !r.color {
		return d.String()
	}

	sev := errorStyle
	if d.Severity == SeverityWarning {
		sev = warningStyle
	}
	return posStyle.Render(d.Pos.String()+":") + " " +
		sev.Render(d.Severity.String()+":") + " " +
		d.Message
}

// RenderAll formats every diagnostic in the bag in position order, one
// per line.
func (r *Renderer) RenderAll(b *Bag) string {
	var sb strings.Builder
	for _, d := range b.All() {
		sb.WriteString(r.Render(d))
		sb.WriteByte('\n')
	}
	return sb.String()
}
