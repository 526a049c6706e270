// Package splitpanel renders two bordered panes side by side, each with
// its own scrollbar.
package splitpanel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// chrome is the horizontal space taken by border(2), padding(2) and
// scrollbar(2).
const chrome = 6

// Panel represents content for one side of the split
type Panel struct {
	Lines      []string // Visible lines, already scrolled
	ScrollPos  int      // Current scroll position (for scrollbar calculation)
	TotalItems int      // Total scrollable items
}

// Config holds layout configuration
type Config struct {
	SidebarWidthPercent float64 // e.g., 0.25 for 25%
	SidebarMinWidth     int
	SidebarMaxWidth     int
}

// Layout holds computed dimensions and renders the split panel
type Layout struct {
	Width        int
	Height       int
	SidebarWidth int
	ContentWidth int
	FocusSidebar bool

	// ActiveColor draws the focused border and scrollbar thumb.
	ActiveColor lipgloss.Color
	// DimColor draws unfocused borders and scrollbar tracks.
	DimColor lipgloss.Color
}

// NewLayout creates a new layout with calculated widths
func NewLayout(width int, cfg Config, active, dim lipgloss.Color) *Layout {
	sidebarWidth := int(float64(width) * cfg.SidebarWidthPercent)
	sidebarWidth = max(sidebarWidth, cfg.SidebarMinWidth)
	sidebarWidth = min(sidebarWidth, cfg.SidebarMaxWidth)

	return &Layout{
		Width:        width,
		SidebarWidth: sidebarWidth,
		ContentWidth: max(width-sidebarWidth, chrome+1),
		FocusSidebar: true,
		ActiveColor:  active,
		DimColor:     dim,
	}
}

// SetFocus sets which panel is focused
func (l *Layout) SetFocus(focusSidebar bool) {
	l.FocusSidebar = focusSidebar
}

// Render renders both panels at the given total height.
func (l *Layout) Render(sidebar, content Panel, height int) string {
	l.Height = height

	sidebarStr := l.buildPanel(sidebar, l.SidebarWidth, height, l.FocusSidebar)
	contentStr := l.buildPanel(content, l.ContentWidth, height, !l.FocusSidebar)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarStr, contentStr)
}

// buildPanel creates a single panel with border and scrollbar
func (l *Layout) buildPanel(panel Panel, width, height int, focused bool) string {
	contentWidth := max(width-chrome, 1)
	visibleHeight := max(height-2, 1)

	lines := panel.Lines
	if len(lines) > visibleHeight {
		lines = lines[:visibleHeight]
	}
	for len(lines) < visibleHeight {
		lines = append(lines, "")
	}

	if panel.TotalItems == 0 {
		panel.TotalItems = len(panel.Lines)
	}
	bar := scrollbar(visibleHeight, panel, l.ActiveColor, l.DimColor, focused)

	result := make([]string, 0, len(lines))
	for i, line := range lines {
		lineWidth := lipgloss.Width(line)
		if lineWidth > contentWidth {
			line = truncateString(line, contentWidth)
		} else if lineWidth < contentWidth {
			line += strings.Repeat(" ", contentWidth-lineWidth)
		}
		result = append(result, line+" "+bar[i])
	}

	borderColor := l.DimColor
	if focused {
		borderColor = l.ActiveColor
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(strings.Join(result, "\n"))
}

// truncateString shortens s to maxWidth cells, ending with "...".
func truncateString(s string, maxWidth int) string {
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for i := len(runes); i > 0; i-- {
		candidate := string(runes[:i])
		if lipgloss.Width(candidate) <= maxWidth-3 {
			return candidate + "..."
		}
	}
	return "..."
}

// MainContentWidth returns usable width for main content
func (l *Layout) MainContentWidth() int {
	return l.ContentWidth - chrome
}

// VisibleHeight returns visible lines in a panel
func (l *Layout) VisibleHeight() int {
	return l.Height - 2
}
