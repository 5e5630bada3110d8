// Package splitpanel renders the sidebar/content/drawer layout used by
// the interactive catalog browser, grounded on footprint-tools-cli's
// internal/ui/splitpanel package (same border-box-plus-scrollbar
// construction, retargeted from git log panels to catalog groups and
// commands).
package splitpanel

import (
	"github.com/charmbracelet/lipgloss"
)

// Scrollbar characters.
const (
	scrollThumbChar = "█"
	scrollTrackChar = "│"
)

// buildScrollbar creates a visual scrollbar for the given parameters.
func buildScrollbar(viewHeight, totalItems, scrollOffset int, activeColor, trackColor lipgloss.Color, focused bool) []string {
	scrollbar := make([]string, viewHeight)
	trackStyle := lipgloss.NewStyle().Foreground(trackColor)

	if totalItems <= viewHeight {
		for i := range scrollbar {
			scrollbar[i] = " "
		}
		return scrollbar
	}

	thumbSize := (viewHeight * viewHeight) / totalItems
	thumbSize = max(thumbSize, 1)
	maxThumbSize := max(viewHeight-2, 1)
	if thumbSize > maxThumbSize {
		thumbSize = maxThumbSize
	}

	maxScroll := max(totalItems-viewHeight, 1)
	trackSpace := max(viewHeight-thumbSize, 0)

	thumbPos := 0
	if maxScroll > 0 && trackSpace > 0 {
		thumbPos = (scrollOffset * trackSpace) / maxScroll
	}
	thumbPos = max(thumbPos, 0)
	thumbPos = min(thumbPos, trackSpace)

	thumbColor := trackColor
	if focused {
		thumbColor = activeColor
	}
	thumbStyle := lipgloss.NewStyle().Foreground(thumbColor)

	for i := range viewHeight {
		if i >= thumbPos && i < thumbPos+thumbSize {
			scrollbar[i] = thumbStyle.Render(scrollThumbChar)
		} else {
			scrollbar[i] = trackStyle.Render(scrollTrackChar)
		}
	}

	return scrollbar
}
