package catalog

import (
	"sync/atomic"

	"github.com/cmdforge/cmdforge/argsource"
)

// Catalog owns every registered Group and Command (spec.md §3 "Ownership &
// lifecycle": "The Catalog exclusively owns Groups and Commands"). It is
// mutable only during registration; Execute freezes it on first use
// (spec.md §5 option (a): "freeze the catalog on first execution").
type Catalog struct {
	root         *Group
	comparer     argsource.Comparer
	nextRegIndex int

	frozen atomic.Bool
}

// NewCatalog creates a Catalog with an unnamed root group and the given
// alias comparer.
func NewCatalog(comparer argsource.Comparer) *Catalog {
	return &Catalog{
		root:     NewGroup("", nil, ""),
		comparer: comparer,
	}
}

// Root returns the catalog's root Group, under which all top-level
// commands and groups are registered.
func (c *Catalog) Root() *Group { return c.root }

// Comparer returns the alias comparer this catalog was built with.
func (c *Catalog) Comparer() argsource.Comparer { return c.comparer }

// Freeze marks the catalog read-only; every subsequent Register call
// fails with a FrozenCatalogError regardless of caller. Idempotent.
func (c *Catalog) Freeze() { c.frozen.Store(true) }

// Frozen reports whether Freeze has been called.
func (c *Catalog) Frozen() bool { return c.frozen.Load() }

// Register appends node as a child of parent (the root, if parent is nil),
// enforcing spec.md §8's invariant (1): sibling alias sets are pairwise
// disjoint under the configured comparer. Exactly one default command
// (empty alias set) is allowed per group. Commands additionally have
// their score computed and their shape invariants checked here, once
// their final Parameters list is known.
func (c *Catalog) Register(parent *Group, node Node) error {
	if c.frozen.Load() {
		return &FrozenCatalogError{Node: node.Name()}
	}

	if parent == nil {
		parent = c.root
	}

	if node.IsDefault() {
		if existing := parent.defaultCommand(); existing != nil {
			return &DuplicateAliasError{Group: parent.Name(), Alias: "<default>"}
		}
	}

	newCmd, isCmd := node.(*Command)
	for _, alias := range node.Aliases() {
		matches := parent.childrenMatching(alias, c.comparer.Equal)
		for _, m := range matches {
			existingCmd, ok := m.(*Command)
			if isCmd && ok && aliasSetEqual(existingCmd.Aliases(), newCmd.Aliases(), c.comparer.Equal) {
				// An overload family: siblings sharing an identical alias
				// set are allowed (spec.md §8 scenario 2). Runtime
				// disambiguation falls to the pipeline's per-candidate
				// parse-failure fallback, in registration order.
				continue
			}
			return &DuplicateAliasError{Group: parent.Name(), Alias: alias}
		}
	}
	// Reject a node whose own alias list names the same alias twice under
	// the comparer.
	seen := make(map[string]struct{}, len(node.Aliases()))
	for _, alias := range node.Aliases() {
		key := alias
		if c.comparer == argsource.OrdinalIgnoreCase {
			key = normalizeFold(alias)
		}
		if _, dup := seen[key]; dup {
			return &DuplicateAliasError{Group: parent.Name(), Alias: alias}
		}
		seen[key] = struct{}{}
	}

	if cmd, ok := node.(*Command); ok {
		cmd.computeScore()
		if err := cmd.validate(); err != nil {
			return err
		}
	}

	node.setParent(parent)
	node.setRegIndex(c.nextRegIndex)
	c.nextRegIndex++
	parent.Children = append(parent.Children, node)
	return nil
}

func normalizeFold(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}
