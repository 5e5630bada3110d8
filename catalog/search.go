package catalog

import "sort"

// Candidate is one yield of Search: a Command paired with the count of
// leading positional tokens consumed as its name path (spec.md §4.2
// "(command, search_height) pairs").
type Candidate struct {
	Command      *Command
	SearchHeight int
}

// PeekPositional is the subset of argsource.Source Search needs: a
// non-consuming lookup of the string token at an absolute positional
// index. *argsource.Source satisfies it; Search accepts any source with
// this one method.
type PeekPositional interface {
	TryPeekPositional(index int) (string, bool)
}

// Search walks the catalog from root against src's leading positional
// tokens and returns every matching candidate — recursing into matched
// Groups, yielding matched Commands, and yielding every visited Group's
// default command — ordered by priority desc, then score desc, then
// registration order (spec.md §4.2 "Search algorithm").
func (c *Catalog) Search(src PeekPositional) []Candidate {
	var out []Candidate
	c.searchGroup(c.root, src, 0, &out)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Command, out[j].Command
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.Score() != b.Score() {
			return a.Score() > b.Score()
		}
		return a.RegistrationIndex() < b.RegistrationIndex()
	})
	return out
}

func (c *Catalog) searchGroup(g *Group, src PeekPositional, index int, out *[]Candidate) {
	if def := g.defaultCommand(); def != nil {
		*out = append(*out, Candidate{Command: def, SearchHeight: index})
	}

	token, ok := src.TryPeekPositional(index)
	if !ok {
		return
	}

	for _, child := range g.Children {
		if !aliasSetContains(child.Aliases(), token, c.comparer.Equal) {
			continue
		}
		switch n := child.(type) {
		case *Group:
			c.searchGroup(n, src, index+1, out)
		case *Command:
			*out = append(*out, Candidate{Command: n, SearchHeight: index + 1})
		}
	}
}

func aliasSetContains(aliases []string, token string, eq func(a, b string) bool) bool {
	for _, a := range aliases {
		if eq(a, token) {
			return true
		}
	}
	return false
}
