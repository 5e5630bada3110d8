// Package builder implements the Builder / Registration API described in
// spec.md §4.2/§6: a fluent surface over catalog.Catalog and
// parser.Registry that turns a declarative CommandSpec/ParameterSpec into
// registered catalog types, translating every registration-time failure
// into a single typed BuildError (spec.md §7).
package builder

import (
	"math"

	"github.com/cmdforge/cmdforge/argsource"
	"github.com/cmdforge/cmdforge/catalog"
	"github.com/cmdforge/cmdforge/parser"
)

// Builder owns the Catalog and Parser Registry being populated. It is a
// thin, imperative surface (spec.md §2 "Treated as a thin surface") —
// Build() hands the finished pair to dispatch.New.
type Builder struct {
	catalog *catalog.Catalog
	parsers *parser.Registry
}

// New creates a Builder over a fresh Catalog and Parser Registry using
// comparer for alias matching.
func New(comparer argsource.Comparer) *Builder {
	return &Builder{
		catalog: catalog.NewCatalog(comparer),
		parsers: parser.New(),
	}
}

// Parsers exposes the Parser Registry so a host can register primitive
// parsers before declaring commands that reference their types.
func (b *Builder) Parsers() *parser.Registry { return b.parsers }

// Catalog exposes the Catalog under construction — useful for a host that
// wants to register Groups across multiple files before wiring Commands.
func (b *Builder) Catalog() *catalog.Catalog { return b.catalog }

// RegisterParser installs p for its exact target type.
func (b *Builder) RegisterParser(p parser.Parser) { b.parsers.Register(p) }

// RegisterEnum installs an enum member table, enabling the registry to
// synthesize an Enum Parser for it.
func (b *Builder) RegisterEnum(d parser.EnumDescriptor) { b.parsers.RegisterEnum(d) }

// Group registers a new Group under parent (the root, if nil) and returns
// it for further nesting or attaching commands.
func (b *Builder) Group(parent *catalog.Group, name string, aliases []string, summary string, attrs ...catalog.Attribute) (*catalog.Group, error) {
	g := catalog.NewGroup(name, aliases, summary, attrs...)
	if err := b.catalog.Register(parent, g); err != nil {
		return nil, translateRegisterErr(err)
	}
	return g, nil
}

// Command resolves spec's parameters against the Parser Registry, derives
// the command's length bounds, and registers it under parent.
func (b *Builder) Command(parent *catalog.Group, spec CommandSpec) (*catalog.Command, error) {
	if spec.Invoke == nil {
		return nil, wrap(KindMissingInvoker, "command \""+spec.Name+"\" has no invoker", nil)
	}

	params := make([]*catalog.Parameter, len(spec.Parameters))
	for i, ps := range spec.Parameters {
		p, err := b.resolveParameter(ps)
		if err != nil {
			return nil, err
		}
		params[i] = p
	}

	min, max, hasRemainder := flattenBounds(spec.Parameters)

	cmd := catalog.NewCommand(spec.Name, spec.Aliases, spec.Summary, spec.Usage, spec.Priority, spec.Attributes...)
	cmd.Parameters = params
	cmd.MinLength = min
	cmd.MaxLength = max
	if hasRemainder {
		cmd.MaxLength = math.MaxInt
	}
	cmd.HasRemainder = hasRemainder
	cmd.PreConditions = spec.PreConditions
	cmd.PostConditions = spec.PostConditions
	cmd.Invoke = spec.Invoke

	if err := b.catalog.Register(parent, cmd); err != nil {
		return nil, translateRegisterErr(err)
	}
	return cmd, nil
}

func (b *Builder) resolveParameter(spec ParameterSpec) (*catalog.Parameter, error) {
	p := &catalog.Parameter{
		Name:         spec.Name,
		DeclaredType: spec.Type,
		ExposedType:  spec.ExposedType,
		IsOptional:   spec.Optional,
		Default:      spec.Default,
		IsCollection: spec.Collection,
		IsRemainder:  spec.Remainder,
		Activator:    spec.Activator,
	}

	if spec.isConstructible() {
		if spec.Activator == nil {
			return nil, wrap(KindInvalidShape, "constructible parameter \""+spec.Name+"\" has no activator", nil)
		}
		children := make([]*catalog.Parameter, len(spec.Children))
		for i, cs := range spec.Children {
			child, err := b.resolveParameter(cs)
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		p.Children = children
		return p, nil
	}

	if spec.Remainder {
		// Remainder parameters are consumed wholesale by the pipeline
		// (joined string or raw slice); no per-element parser needed.
		return p, nil
	}

	resolved, err := b.parsers.Get(spec.Type)
	if err != nil {
		return nil, wrap(KindUnsupportedType, "parameter \""+spec.Name+"\"", err)
	}
	p.Parser = resolved
	return p, nil
}

// flattenBounds recursively derives (min, max, hasRemainder) from a
// parameter list: each leaf contributes 1 to max and, unless optional, to
// min; a constructible parameter contributes the sum of its children's
// bounds; a remainder parameter sets hasRemainder and contributes nothing
// further to max (spec.md §3 "remainder ⇒ max-length may be ∞").
func flattenBounds(params []ParameterSpec) (min, max int, hasRemainder bool) {
	for _, p := range params {
		switch {
		case p.Remainder:
			hasRemainder = true
		case p.isConstructible():
			cmin, cmax, _ := flattenBounds(p.Children)
			max += cmax
			if !p.Optional {
				min += cmin
			}
		default:
			max++
			if !p.Optional {
				min++
			}
		}
	}
	return min, max, hasRemainder
}

func translateRegisterErr(err error) *BuildError {
	switch err.(type) {
	case *catalog.DuplicateAliasError:
		return wrap(KindDuplicateAlias, "duplicate alias", err)
	case *catalog.InvalidCommandShapeError:
		return wrap(KindInvalidShape, "invalid command shape", err)
	case *catalog.FrozenCatalogError:
		return wrap(KindCatalogFrozen, "catalog is frozen", err)
	default:
		return wrap(KindUnknown, "registration failed", err)
	}
}
