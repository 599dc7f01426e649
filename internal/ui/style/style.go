// Package style holds the colors and glyphs shared by the logger and the
// install summary.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "●"
)

// Header renders a section title.
var Header = lipgloss.NewStyle().Bold(true).Foreground(Iris)

// Muted renders secondary text such as directories.
var Muted = lipgloss.NewStyle().Foreground(Slate)
