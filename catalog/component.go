// Package catalog implements the Component Catalog described in spec.md
// §4.2: the trie-like hierarchy of Groups and Commands, alias lookup,
// duplicate-alias detection, per-command specificity scoring, and the
// Search algorithm that walks the hierarchy against a leading run of
// positional tokens.
package catalog

// Attribute is an open metadata tag attached to a Component. spec.md §3
// lists "attributes: sequence of metadata tags" on every Component without
// fixing their shape; this SPEC_FULL's §11 generalizes footprint-tools-cli's
// closed CommandCategory enum into an open key/value tag so a host can
// invent its own categorization without the framework knowing about it.
type Attribute struct {
	Key   string
	Value string
}

// Component is the data shared by every catalog entry — Groups and
// Commands alike (spec.md §3's "Component (abstract)"). It is embedded,
// never used standalone.
type Component struct {
	name       string
	aliases    []string
	parent     *Group
	score      float64
	attributes []Attribute
	isDefault  bool
	regIndex   int
}

// Name is the component's canonical display name — by convention its
// first alias, or an explicit name for the catalog root and for default
// commands (which may carry no aliases at all).
func (c *Component) Name() string { return c.name }

// Aliases returns every lookup name registered for this component. A
// default command's alias set is empty.
func (c *Component) Aliases() []string { return c.aliases }

// Parent returns the owning Group, or nil for the catalog root.
func (c *Component) Parent() *Group { return c.parent }

// Score is this component's structural specificity, computed once at
// registration (spec.md §4.2 "Score").
func (c *Component) Score() float64 { return c.score }

// Attributes returns the component's metadata tags.
func (c *Component) Attributes() []Attribute { return c.attributes }

// AttributeValue returns the value of the first attribute with the given
// key, and whether one was found.
func (c *Component) AttributeValue(key string) (string, bool) {
	for _, a := range c.attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// IsDefault reports whether this is a group's default command — the
// child command with an empty alias set, invoked when the group's own
// name ends the path (spec.md glossary "Default command").
func (c *Component) IsDefault() bool { return c.isDefault }

// RegistrationIndex is this component's position in overall registration
// order, used as the final, stable tie-break in Search ordering.
func (c *Component) RegistrationIndex() int { return c.regIndex }

// Path returns the full name path from the catalog root to this
// component, inclusive, by walking parent back-references. The root
// itself (whose Parent is nil) is omitted unless it has a non-empty name.
func (c *Component) Path() []string {
	var path []string
	for p := c.parent; p != nil; p = p.parent {
		if p.name != "" {
			path = append([]string{p.name}, path...)
		}
	}
	if c.name != "" {
		path = append(path, c.name)
	}
	return path
}

// Node is the umbrella type for Groups and Commands stored as catalog
// children — spec.md glossary "Component — umbrella term for groups and
// commands." The interface is satisfied only by *Group and *Command; no
// other type should implement it.
type Node interface {
	Name() string
	Aliases() []string
	Parent() *Group
	Score() float64
	Attributes() []Attribute
	IsDefault() bool
	RegistrationIndex() int
	Path() []string

	setParent(*Group)
	setRegIndex(int)
}

func (c *Component) setParent(g *Group)  { c.parent = g }
func (c *Component) setRegIndex(i int)   { c.regIndex = i }
