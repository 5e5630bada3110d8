package builder

import (
	"reflect"

	"github.com/cmdforge/cmdforge/catalog"
	"github.com/cmdforge/cmdforge/condition"
)

// ParameterSpec is the declarative description of one Command parameter
// passed to Builder.Command — the fluent-API counterpart of spec.md §3's
// two Parameter rows. Exactly one of (Type) or (Children+Activator) is
// expected to be set, matching the leaf/constructible split.
type ParameterSpec struct {
	Name string

	Type        reflect.Type
	ExposedType reflect.Type

	Optional   bool
	Default    any
	Collection bool
	Remainder  bool

	Children  []ParameterSpec
	Activator func(values []any) (any, error)
}

// CommandSpec is the declarative description of a whole Command.
type CommandSpec struct {
	Name     string
	Aliases  []string
	Summary  string
	Usage    string
	Priority int

	Parameters []ParameterSpec

	PreConditions  []condition.Condition
	PostConditions []condition.Condition

	// Invoke holds either *catalog.StaticInvoker or
	// *catalog.InstanceInvoker.
	Invoke any

	Attributes []catalog.Attribute
}

func (p ParameterSpec) isConstructible() bool { return len(p.Children) > 0 }
