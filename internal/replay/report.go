package replay

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/inamate/snapkit/internal/geometry"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
	styleSnapped = lipgloss.NewStyle().Foreground(colorGreen)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
)

var styleBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorDim).
	Padding(0, 1)

// Render writes a human-readable report.
func Render(w io.Writer, r *Report) error {
	var b strings.Builder

	title := r.Name
	if title == "" {
		title = "replay"
	}
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n")

	rows := []string{styleHeader.Render(fmt.Sprintf("%-5s %-6s %-8s %-8s %-6s %s", "step", "action", "drag", "snap", "lines", "nodes"))}
	for _, f := range r.Frames {
		snap := styleDim.Render(fmt.Sprintf("%-8s", "-"))
		if f.Snapped {
			snap = styleSnapped.Render(fmt.Sprintf("%-8s", "snapped"))
		}
		rows = append(rows, fmt.Sprintf("%-5d %-6s %-8t %s %-6d %s",
			f.Step, f.Action, f.Dragging, snap, f.SnapLines, nodeList(f)))
	}
	b.WriteString(styleBox.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")

	if len(r.Guides) > 0 {
		b.WriteString(styleHeader.Render("guides"))
		b.WriteString("\n")
		for _, g := range r.Guides {
			fmt.Fprintf(&b, "  %s %s\n", g.ID, styleDim.Render(fmt.Sprintf("%s → %s", formatPoint(g.Start), formatPoint(g.End))))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func nodeList(f Frame) string {
	parts := make([]string, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		parts = append(parts, fmt.Sprintf("%s %s", n.ID, formatRect(n.Rect)))
	}
	if len(parts) == 0 {
		return styleDim.Render("-")
	}
	return strings.Join(parts, ", ")
}

func formatPoint(p geometry.Point) string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func formatRect(r geometry.Rect) string {
	return fmt.Sprintf("[%g %g %g×%g]", r.X, r.Y, r.Width, r.Height)
}
