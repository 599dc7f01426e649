// Package report renders the install summary printed after a run.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/setup-cpp/internal/ui/style"
)

// PlannedTool is one line of a dry-run plan.
type PlannedTool struct {
	Tool    string `json:"tool"`
	Version string `json:"version"`
	// Source is the download URL, or "pip" for Python tools.
	Source string `json:"source"`
}

// Renderer writes summaries to w with styles bound to w's color profile.
type Renderer struct {
	w      io.Writer
	header lipgloss.Style
	muted  lipgloss.Style
	ok     lipgloss.Style
	dot    lipgloss.Style
}

// New creates a Renderer for w.
func New(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		w:      w,
		header: r.NewStyle().Inherit(style.Header),
		muted:  r.NewStyle().Inherit(style.Muted),
		ok:     r.NewStyle().Foreground(style.Green),
		dot:    r.NewStyle().Foreground(style.Iris),
	}
}

// Summary writes one line per installed tool.
func (r *Renderer) Summary(entries []domain.CacheEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(r.w, r.muted.Render("no tools requested"))
		return err
	}

	var b strings.Builder
	b.WriteString(r.header.Render(fmt.Sprintf("setup-cpp installed %s", plural(len(entries)))))
	b.WriteString("\n")

	toolWidth, versionWidth := 0, 0
	for _, e := range entries {
		toolWidth = max(toolWidth, len(e.Tool))
		versionWidth = max(versionWidth, len(e.Version))
	}

	for _, e := range entries {
		line := fmt.Sprintf("  %s %-*s  %-*s  %s",
			r.ok.Render(style.Check), toolWidth, e.Tool, versionWidth, e.Version, r.muted.Render(e.Directory))
		if e.Cached {
			line += " " + r.muted.Render("(cached)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

// Plan writes the tools a dry run would install.
func (r *Renderer) Plan(planned []PlannedTool) error {
	if len(planned) == 0 {
		_, err := fmt.Fprintln(r.w, r.muted.Render("no tools requested"))
		return err
	}

	var b strings.Builder
	b.WriteString(r.header.Render(fmt.Sprintf("setup-cpp would install %s", plural(len(planned)))))
	b.WriteString("\n")

	toolWidth, versionWidth := 0, 0
	for _, p := range planned {
		toolWidth = max(toolWidth, len(p.Tool))
		versionWidth = max(versionWidth, len(p.Version))
	}

	for _, p := range planned {
		b.WriteString(fmt.Sprintf("  %s %-*s  %-*s  %s\n",
			r.dot.Render(style.Dot), toolWidth, p.Tool, versionWidth, p.Version, r.muted.Render(p.Source)))
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

// JSON writes v as indented JSON, for machine readable output.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func plural(n int) string {
	if n == 1 {
		return "1 tool"
	}
	return fmt.Sprintf("%d tools", n)
}
