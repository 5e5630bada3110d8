package catalog

import "github.com/cmdforge/cmdforge/condition"

// Group is a named Component that contains children — other Groups or
// Commands (spec.md §3 "Group"). Children are appended through
// Catalog.Register, which also enforces the sibling alias-uniqueness
// invariant. PreConditions/PostConditions apply to every descendant
// Command — spec.md §4.5 "Conditions attached to a command are the union
// of its own and every ancestor group's".
type Group struct {
	Component
	Summary  string
	Children []Node

	PreConditions  []condition.Condition
	PostConditions []condition.Condition
}

// NewGroup constructs a bare, unregistered Group. Call Catalog.Register to
// attach it under a parent (or as the root) before adding children to it.
func NewGroup(name string, aliases []string, summary string, attrs ...Attribute) *Group {
	return &Group{
		Component: Component{
			name:       name,
			aliases:    aliases,
			attributes: attrs,
		},
		Summary: summary,
	}
}

// AncestorConditions returns cmd's own Pre- or Post-conditions followed by
// every ancestor Group's, nearest ancestor first (spec.md §4.5
// "Conditions attached to a command are the union of its own and every
// ancestor group's").
func AncestorConditions(cmd *Command, phase condition.Phase) []condition.Condition {
	var own []condition.Condition
	if phase == condition.Pre {
		own = cmd.PreConditions
	} else {
		own = cmd.PostConditions
	}

	out := append([]condition.Condition{}, own...)
	for g := cmd.Parent(); g != nil; g = g.Parent() {
		if phase == condition.Pre {
			out = append(out, g.PreConditions...)
		} else {
			out = append(out, g.PostConditions...)
		}
	}
	return out
}

// child looks up the first immediate child whose alias set contains token
// under the given comparer. Register does not use it; its duplicate check
// goes through childrenMatching.
func (g *Group) child(token string, eq func(a, b string) bool) (Node, bool) {
	for _, c := range g.Children {
		for _, alias := range c.Aliases() {
			if eq(alias, token) {
				return c, true
			}
		}
	}
	return nil, false
}

// childrenMatching returns every child whose alias set contains token.
// Ordinarily there is at most one (aliases are unique per group), except
// for a family of Command overloads that intentionally share an alias
// set — Search yields every member of that family as a separate
// candidate.
func (g *Group) childrenMatching(token string, eq func(a, b string) bool) []Node {
	var out []Node
	for _, c := range g.Children {
		for _, alias := range c.Aliases() {
			if eq(alias, token) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// aliasSetEqual reports whether two alias sets contain exactly the same
// names under eq, ignoring order.
func aliasSetEqual(a, b []string, eq func(x, y string) bool) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for i, y := range b {
			if used[i] {
				continue
			}
			if eq(x, y) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// defaultCommand returns this group's default command — the child command
// with an empty alias set — if one was registered.
func (g *Group) defaultCommand() *Command {
	for _, c := range g.Children {
		if cmd, ok := c.(*Command); ok && cmd.IsDefault() {
			return cmd
		}
	}
	return nil
}
