// Package browser is the interactive catalog browser launched by
// --interactive: a sidebar of every registered Group and Command next to
// a detail panel, with a modal overlay for a command's full usage text.
// Grounded on footprint-tools-cli's internal/actions/help/browser.go
// (the sidebar/content bubbletea.Model) and internal/actions/config/
// interactive.go (the splitpanel.Layout + bubbletea-overlay composition),
// retargeted from footprint's fixed command tree and config key list to a
// generic catalog.Catalog.
package browser

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
	"golang.org/x/term"

	"github.com/cmdforge/cmdforge/catalog"
	"github.com/cmdforge/cmdforge/internal/ui/splitpanel"
)

// Run launches the browser over cat's current tree. It requires an
// interactive terminal on both stdin and stdout.
func Run(cat *catalog.Catalog) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("catalog browser requires an interactive terminal")
	}

	items := flatten(cat.Root(), nil)
	if len(items) == 0 {
		return errors.New("catalog has no registered commands")
	}

	m := model{items: items, help: help.New()}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if final.(model).cancelled {
		fmt.Println("cancelled")
	}
	return nil
}

type item struct {
	display string
	path    []string
	node    catalog.Node
	isGroup bool
}

// flatten walks the tree depth-first, producing one sidebar row per Group
// and per non-default Command, each carrying its full alias path.
func flatten(g *catalog.Group, prefix []string) []item {
	var out []item
	for _, child := range g.Children {
		name := primaryAlias(child)
		path := append(append([]string{}, prefix...), name)

		switch n := child.(type) {
		case *catalog.Group:
			out = append(out, item{display: strings.Join(path, " "), path: path, node: n, isGroup: true})
			out = append(out, flatten(n, path)...)
		case *catalog.Command:
			if n.IsDefault() {
				continue
			}
			out = append(out, item{display: strings.Join(path, " "), path: path, node: n})
		}
	}
	return out
}

func primaryAlias(n catalog.Node) string {
	if aliases := n.Aliases(); len(aliases) > 0 {
		return aliases[0]
	}
	return n.Name()
}

type model struct {
	items      []item
	cursor     int
	width      int
	height     int
	showDetail bool
	cancelled  bool
	help       help.Model
}

var browserKeys = []key.Binding{
	key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	key.NewBinding(key.WithKeys("g", "G"), key.WithHelp("g/G", "top/bottom")),
	key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail")),
	key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
}

var detailKeys = []key.Binding{
	key.NewBinding(key.WithKeys("enter", "esc", "q"), key.WithHelp("enter/esc/q", "close")),
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.showDetail {
			switch msg.Type {
			case tea.KeyEsc, tea.KeyEnter, tea.KeyCtrlC:
				m.showDetail = false
			case tea.KeyRunes:
				if string(msg.Runes) == "q" {
					m.showDetail = false
				}
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyUp:
			m.move(-1)
		case tea.KeyDown:
			m.move(1)
		case tea.KeyEnter:
			m.showDetail = true
		case tea.KeyRunes:
			switch string(msg.Runes) {
			case "q":
				m.cancelled = true
				return m, tea.Quit
			case "j":
				m.move(1)
			case "k":
				m.move(-1)
			case "g":
				m.cursor = 0
			case "G":
				m.cursor = len(m.items) - 1
			}
		}
	}
	return m, nil
}

func (m *model) move(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = len(m.items) - 1
	}
	if m.cursor >= len(m.items) {
		m.cursor = 0
	}
}

func (m model) View() string {
	width, height := m.width, m.height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	footerHeight := 2
	mainHeight := height - footerHeight

	layout := splitpanel.NewLayout(width, splitpanel.Config{
		SidebarWidthPercent: 0.3,
		SidebarMinWidth:     22,
		SidebarMaxWidth:     36,
	}, splitpanel.Colors{Active: "42", Dim: "238"})
	layout.SetFocus(true)

	sidebar := m.buildSidebar(mainHeight)
	content := m.buildContent(layout, mainHeight)

	main := layout.Render(sidebar, content, mainHeight)
	m.help.Width = width
	footer := m.renderFooter(width)
	base := lipgloss.JoinVertical(lipgloss.Left, main, footer)

	if m.showDetail {
		return overlay.Composite(m.renderDetailModal(), base, overlay.Center, overlay.Center, 0, 0)
	}
	return base
}

func (m model) buildSidebar(height int) splitpanel.Panel {
	var lines []string
	for i, it := range m.items {
		prefix := "  "
		line := it.display
		if it.isGroup {
			line = line + "/"
		}
		if i == m.cursor {
			prefix = "> "
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}
		lines = append(lines, prefix+line)
	}
	return splitpanel.Panel{Lines: lines, ScrollPos: 0, TotalItems: len(lines)}
}

func (m model) buildContent(layout *splitpanel.Layout, height int) splitpanel.Panel {
	it := m.items[m.cursor]

	var lines []string
	titleStyle := lipgloss.NewStyle().Bold(true)
	switch n := it.node.(type) {
	case *catalog.Group:
		lines = append(lines, titleStyle.Render(it.display))
		if n.Summary != "" {
			lines = append(lines, n.Summary)
		}
	case *catalog.Command:
		lines = append(lines, titleStyle.Render(it.display))
		if n.Summary != "" {
			lines = append(lines, n.Summary)
		}
		lines = append(lines, "")
		lines = append(lines, "usage: "+n.Usage)
	}

	visible := height - 2
	for len(lines) < visible {
		lines = append(lines, "")
	}
	return splitpanel.Panel{Lines: lines, ScrollPos: 0, TotalItems: len(lines)}
}

func (m model) renderDetailModal() string {
	it := m.items[m.cursor]
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", it.display)

	if cmd, ok := it.node.(*catalog.Command); ok {
		fmt.Fprintf(&b, "%s\n\n", cmd.Summary)
		fmt.Fprintf(&b, "usage: %s\n\n", cmd.Usage)
		fmt.Fprintf(&b, "parameters: %d (min %d, max %d)\n", len(cmd.Parameters), cmd.MinLength, cmd.MaxLength)
		if cmd.HasRemainder {
			b.WriteString("accepts a trailing remainder\n")
		}
	} else if grp, ok := it.node.(*catalog.Group); ok {
		fmt.Fprintf(&b, "%s\n\n", grp.Summary)
		fmt.Fprintf(&b, "%d children\n", len(grp.Children))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Render(b.String())
}

func (m model) renderFooter(width int) string {
	bindings := browserKeys
	if m.showDetail {
		bindings = detailKeys
	}
	return lipgloss.NewStyle().Width(width).Padding(0, 1).Render(m.help.ShortHelpView(bindings))
}
