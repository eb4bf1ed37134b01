package notify

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// severityGlyphs are the leading markers per severity.
var severityGlyphs = map[Severity]string{
	SeveritySuccess: "✓",
	SeverityError:   "✗",
	SeverityInfo:    "•",
	SeverityWarning: "!",
}

// Renderer writes notifications to a terminal with severity styling.
type Renderer struct {
	out    io.Writer
	styles map[Severity]lipgloss.Style
}

// NewRenderer creates a Renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out: out,
		styles: map[Severity]lipgloss.Style{
			SeveritySuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		},
	}
}

// Render writes a single notification.
func (r *Renderer) Render(n Notification) {
	style, ok := r.styles[n.Severity]
	if !ok {
		style = r.styles[SeverityInfo]
	}
	glyph := severityGlyphs[n.Severity]
	if glyph == "" {
		glyph = severityGlyphs[SeverityInfo]
	}
	fmt.Fprintln(r.out, style.Render(glyph+" "+n.Message))
}

// RenderAll writes notifications in order.
func (r *Renderer) RenderAll(items []Notification) {
	for _, n := range items {
		r.Render(n)
	}
}
