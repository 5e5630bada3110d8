package dispatch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cmdforge/cmdforge/catalog"
	"github.com/cmdforge/cmdforge/internal/ui/style"
)

// RenderHelp produces a listing of g's immediate children, grouped by
// kind the way footprint-tools-cli's HelpAction lists subcommands under a
// node — groups first, then commands, each alphabetized by primary
// alias, primary alias in Info and summaries in Muted. style.Init
// controls whether that styling actually renders; RenderHelp itself
// makes no terminal-detection decision.
func RenderHelp(g *catalog.Group) string {
	var groups, commands []catalog.Node
	for _, c := range g.Children {
		switch c.(type) {
		case *catalog.Group:
			groups = append(groups, c)
		case *catalog.Command:
			if !c.IsDefault() {
				commands = append(commands, c)
			}
		}
	}

	sortByPrimaryAlias(groups)
	sortByPrimaryAlias(commands)

	var b strings.Builder
	if path := g.Path(); len(path) > 0 {
		fmt.Fprintf(&b, "%s\n\n", strings.Join(path, " "))
	}
	if g.Summary != "" {
		fmt.Fprintf(&b, "%s\n\n", g.Summary)
	}

	if len(groups) > 0 {
		b.WriteString("Command groups:\n")
		for _, n := range groups {
			fmt.Fprintf(&b, "  %s %s\n", style.Info(fmt.Sprintf("%-16s", primaryAlias(n))), style.Muted(n.(*catalog.Group).Summary))
		}
		b.WriteString("\n")
	}
	if len(commands) > 0 {
		b.WriteString("Commands:\n")
		for _, n := range commands {
			fmt.Fprintf(&b, "  %s %s\n", style.Info(fmt.Sprintf("%-16s", primaryAlias(n))), style.Muted(n.(*catalog.Command).Summary))
		}
	}
	return b.String()
}

func primaryAlias(n catalog.Node) string {
	if aliases := n.Aliases(); len(aliases) > 0 {
		return aliases[0]
	}
	return n.Name()
}

func sortByPrimaryAlias(nodes []catalog.Node) {
	sort.Slice(nodes, func(i, j int) bool {
		return primaryAlias(nodes[i]) < primaryAlias(nodes[j])
	})
}
