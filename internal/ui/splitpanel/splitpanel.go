package splitpanel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel holds the lines to render in one region of the layout, already
// scrolled to what should be visible.
type Panel struct {
	Lines      []string
	ScrollPos  int
	TotalItems int
}

// Config holds layout proportions for a Layout.
type Config struct {
	SidebarWidthPercent float64
	SidebarMinWidth     int
	SidebarMaxWidth     int
	HasDrawer           bool
	DrawerWidthPercent  float64
}

// Colors supplies the two colors a Layout needs to distinguish the
// focused panel from the rest.
type Colors struct {
	Active string
	Dim    string
}

// Layout computes panel widths and renders the browser's three regions:
// a group sidebar, a command/help content panel, and an optional detail
// drawer.
type Layout struct {
	Width        int
	Height       int
	SidebarWidth int
	ContentWidth int
	DrawerWidth  int
	FocusSidebar bool
	DrawerOpen   bool
	Colors       Colors
	config       Config
}

// NewLayout creates a Layout with widths computed from cfg.
func NewLayout(width int, cfg Config, colors Colors) *Layout {
	sidebarWidth := int(float64(width) * cfg.SidebarWidthPercent)
	sidebarWidth = max(sidebarWidth, cfg.SidebarMinWidth)
	sidebarWidth = min(sidebarWidth, cfg.SidebarMaxWidth)

	return &Layout{
		Width:        width,
		SidebarWidth: sidebarWidth,
		ContentWidth: width - sidebarWidth,
		Colors:       colors,
		FocusSidebar: true,
		config:       cfg,
	}
}

// SetFocus sets which panel is focused.
func (l *Layout) SetFocus(focusSidebar bool) {
	l.FocusSidebar = focusSidebar
}

// SetDrawerOpen opens or closes the detail drawer, recalculating widths.
func (l *Layout) SetDrawerOpen(open bool) {
	l.DrawerOpen = open

	if open && l.config.HasDrawer {
		l.DrawerWidth = int(float64(l.Width) * l.config.DrawerWidthPercent)
		l.ContentWidth = l.Width - l.SidebarWidth - l.DrawerWidth
	} else {
		l.DrawerWidth = 0
		l.ContentWidth = l.Width - l.SidebarWidth
	}
}

// Render renders the sidebar and content panel without a drawer.
func (l *Layout) Render(sidebar, content Panel, height int) string {
	return l.RenderWithDrawer(sidebar, content, nil, height)
}

// RenderWithDrawer renders all three regions, omitting the drawer when
// drawer is nil or closed.
func (l *Layout) RenderWithDrawer(sidebar, content Panel, drawer *Panel, height int) string {
	l.Height = height
	activeColor := lipgloss.Color(l.Colors.Active)
	dimColor := lipgloss.Color(l.Colors.Dim)

	sidebarStr := l.buildPanel(sidebar, l.SidebarWidth, height, l.FocusSidebar, activeColor, dimColor)

	contentFocused := !l.FocusSidebar && !l.DrawerOpen
	contentStr := l.buildPanel(content, l.ContentWidth, height, contentFocused, activeColor, dimColor)

	if drawer != nil && l.DrawerOpen && l.DrawerWidth > 0 {
		drawerStr := l.buildPanel(*drawer, l.DrawerWidth, height, true, activeColor, dimColor)
		return lipgloss.JoinHorizontal(lipgloss.Top, sidebarStr, contentStr, drawerStr)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarStr, contentStr)
}

func (l *Layout) buildPanel(panel Panel, width, height int, focused bool, activeColor, dimColor lipgloss.Color) string {
	contentWidth := max(width-6, 1)
	visibleHeight := max(height-2, 1)

	lines := panel.Lines
	if len(lines) > visibleHeight {
		lines = lines[:visibleHeight]
	}
	for len(lines) < visibleHeight {
		lines = append(lines, "")
	}

	totalItems := panel.TotalItems
	if totalItems == 0 {
		totalItems = len(panel.Lines)
	}
	scrollbar := buildScrollbar(visibleHeight, totalItems, panel.ScrollPos, activeColor, dimColor, focused)

	var result []string
	for i, line := range lines {
		lineWidth := lipgloss.Width(line)
		if lineWidth > contentWidth {
			line = truncateString(line, contentWidth)
		} else if lineWidth < contentWidth {
			line = line + strings.Repeat(" ", contentWidth-lineWidth)
		}

		scrollChar := " "
		if i < len(scrollbar) {
			scrollChar = scrollbar[i]
		}
		result = append(result, line+" "+scrollChar)
	}

	content := strings.Join(result, "\n")

	borderColor := dimColor
	if focused {
		borderColor = activeColor
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	return boxStyle.Render(content)
}

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

// SidebarContentWidth returns usable width for sidebar content.
func (l *Layout) SidebarContentWidth() int {
	return l.SidebarWidth - 6
}

// MainContentWidth returns usable width for main content.
func (l *Layout) MainContentWidth() int {
	return l.ContentWidth - 6
}

// DrawerContentWidth returns usable width for drawer content.
func (l *Layout) DrawerContentWidth() int {
	if l.DrawerWidth == 0 {
		return 0
	}
	return l.DrawerWidth - 6
}

// VisibleHeight returns visible lines in a panel.
func (l *Layout) VisibleHeight() int {
	return l.Height - 2
}
