// Package ui provides the visual styling for poetrypass terminal output.
// Styles are bound to a renderer for the destination writer, so piped or
// captured output carries no escape sequences.
package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	Primary = lipgloss.AdaptiveColor{Light: "#101F38", Dark: "#8BC34A"}
	Accent  = lipgloss.AdaptiveColor{Light: "#2196F3", Dark: "#4db6ac"}
	Muted   = lipgloss.AdaptiveColor{Light: "#6a737d", Dark: "#8b949e"}
)

// Styles holds the styled components used by the CLI.
type Styles struct {
	Label    lipgloss.Style
	Password lipgloss.Style
	Source   lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Muted    lipgloss.Style
}

// NewStyles creates styles that render for w.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Label: r.NewStyle().
			Foreground(Muted).
			Width(labelWidth),
		Password: r.NewStyle().
			Foreground(Primary).
			Bold(true),
		Source: r.NewStyle().
			Foreground(Accent),
		Header: r.NewStyle().
			Foreground(Primary).
			Bold(true).
			PaddingRight(2),
		Cell: r.NewStyle().
			PaddingRight(2),
		Muted: r.NewStyle().
			Foreground(Muted),
	}
}

const labelWidth = 10

// Field renders "label value" with the label padded to a fixed width.
func (s Styles) Field(label string, value lipgloss.Style, text string) string {
	return s.Label.Render(label) + value.Render(text)
}

// Table renders headers and rows as left-aligned columns.
func (s Styles) Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	var b strings.Builder
	b.WriteString(s.renderRow(s.Header, headers, widths))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(s.renderRow(s.Cell, row, widths))
		b.WriteString("\n")
	}
	return b.String()
}

func (s Styles) renderRow(style lipgloss.Style, cells []string, widths []int) string {
	parts := make([]string, 0, len(cells))
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		// Width includes the right padding.
		parts = append(parts, style.Width(widths[i]+2).Render(cell))
	}
	return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, parts...), " ")
}
