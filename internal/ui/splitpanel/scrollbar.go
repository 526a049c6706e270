package splitpanel

import "github.com/charmbracelet/lipgloss"

const (
	thumbChar = "█"
	trackChar = "│"
)

// thumb returns where the scrollbar thumb starts and how many rows it
// covers for a window of height rows over total rows scrolled by offset.
// size is zero when everything fits.
func thumb(height, total, offset int) (pos, size int) {
	if total <= height {
		return 0, 0
	}
	size = min(max(height*height/total, 1), max(height-2, 1))
	travel := max(height-size, 0)
	pos = offset * travel / max(total-height, 1)
	return min(max(pos, 0), travel), size
}

// scrollbar renders one cell per row. The thumb takes the active color
// only while its panel has focus.
func scrollbar(height int, p Panel, active, track lipgloss.Color, focused bool) []string {
	cells := make([]string, height)
	pos, size := thumb(height, p.TotalItems, p.ScrollPos)
	if size == 0 {
		for i := range cells {
			cells[i] = " "
		}
		return cells
	}

	thumbColor := track
	if focused {
		thumbColor = active
	}
	thumbStyle := lipgloss.NewStyle().Foreground(thumbColor)
	trackStyle := lipgloss.NewStyle().Foreground(track)

	for i := range cells {
		if i >= pos && i < pos+size {
			cells[i] = thumbStyle.Render(thumbChar)
		} else {
			cells[i] = trackStyle.Render(trackChar)
		}
	}
	return cells
}
