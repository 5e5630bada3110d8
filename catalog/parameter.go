package catalog

import (
	"reflect"

	"github.com/cmdforge/cmdforge/parser"
)

// Parameter is a single formal argument of a Command — either a leaf,
// resolved through the Parser Registry, or a constructible aggregate built
// from its own child Parameters (spec.md §3's two Parameter rows).
type Parameter struct {
	Name string

	// DeclaredType is the native Go type the parameter parses into.
	// ExposedType, when non-nil and different, is the nullable/optional
	// wrapper the invoker actually receives (spec.md §3 "exposed type
	// (may be nullable wrapper)").
	DeclaredType reflect.Type
	ExposedType  reflect.Type

	IsOptional  bool
	Default     any
	IsCollection bool
	IsRemainder bool

	// Parser is set for leaf parameters. Children+Activator are set for
	// constructible parameters. Exactly one of the two shapes applies.
	Parser parser.Parser

	Children  []*Parameter
	Activator func(values []any) (any, error)
}

// IsConstructible reports whether this parameter is built from child
// parameters rather than parsed directly.
func (p *Parameter) IsConstructible() bool {
	return len(p.Children) > 0
}

// score is this parameter's contribution to its owning Command's score
// (spec.md §4.2 "Score"): +1.0 per parameter, -0.5 if optional, -0.25 if
// nullable (ExposedType differs from DeclaredType), recursively summed for
// constructible parameters.
func (p *Parameter) score() float64 {
	if p.IsConstructible() {
		var total float64
		for _, child := range p.Children {
			total += child.score()
		}
		if p.IsOptional {
			total -= 0.5
		}
		return total
	}

	s := 1.0
	if p.IsOptional {
		s -= 0.5
	}
	if p.ExposedType != nil && p.ExposedType != p.DeclaredType {
		s -= 0.25
	}
	return s
}
