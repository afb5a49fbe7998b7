// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)

// Text styles.
var (
	Heading = lipgloss.NewStyle().Bold(true).Foreground(Iris)
	Muted   = lipgloss.NewStyle().Foreground(Slate)
	Success = lipgloss.NewStyle().Foreground(Green)
	Failure = lipgloss.NewStyle().Foreground(Red)
	Caution = lipgloss.NewStyle().Foreground(Yellow)
)

// Cell pads s to width and renders it with st. Text wider than the cell grows it instead of wrapping.
func Cell(st lipgloss.Style, s string, width int) string {
	if w := lipgloss.Width(s); w >= width {
		width = w + 1
	}
	return st.Width(width).Render(s)
}
