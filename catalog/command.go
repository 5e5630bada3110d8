package catalog

import (
	"context"

	"github.com/cmdforge/cmdforge/condition"
	"github.com/cmdforge/cmdforge/host"
)

// Instance is a command module instance built by an InstanceInvoker's
// Factory, paired with the cleanup the pipeline must run on every exit
// path (spec.md §5 "scoped resources...released on all exit paths").
type Instance struct {
	Value any
	Close func()
}

// StaticInvoker is the free-function/closure invocation shape (spec.md
// §4.6 "static/closure"). The caller context is injected at position 0 of
// Args when the command declares it.
type StaticInvoker struct {
	Func func(ctx context.Context, caller host.Caller, services host.Services, args []any) (any, error)
}

// InstanceInvoker is the module-object invocation shape (spec.md §4.6
// "instance"): a module object is constructed from the scope, then its
// method is called.
type InstanceInvoker struct {
	Build  func(ctx context.Context, services host.Services) (Instance, error)
	Method func(ctx context.Context, instance any, caller host.Caller, args []any) (any, error)
}

// Command is a named, executable leaf Component (spec.md §3 "Command").
type Command struct {
	Component
	Summary string
	Usage   string

	Parameters   []*Parameter
	MinLength    int
	MaxLength    int // math.MaxInt when HasRemainder allows unbounded length
	HasRemainder bool

	Priority int

	PreConditions  []condition.Condition
	PostConditions []condition.Condition

	// Invoke holds either *StaticInvoker or *InstanceInvoker.
	Invoke any
}

// NewCommand constructs a bare, unregistered Command. Call
// Catalog.Register to attach it under a parent before it can be found by
// Search. Length bounds and the remainder invariant are validated there,
// once the command's final shape (including an empty Aliases for a
// default command) is known.
func NewCommand(name string, aliases []string, summary, usage string, priority int, attrs ...Attribute) *Command {
	return &Command{
		Component: Component{
			name:       name,
			aliases:    aliases,
			attributes: attrs,
			isDefault:  len(aliases) == 0,
		},
		Summary:  summary,
		Usage:    usage,
		Priority: priority,
	}
}

// computeScore derives Component.score from the current Parameters, per
// spec.md §4.2. Called by Catalog.Register once the command's parameter
// list is final.
func (cmd *Command) computeScore() {
	total := 1.0
	for _, p := range cmd.Parameters {
		total += p.score()
	}
	cmd.score = total
}

// validate enforces spec.md §3's Command invariants: min ≤ max, at most
// one remainder parameter and it is last, aliases non-empty unless this is
// a default command.
func (cmd *Command) validate() error {
	if cmd.MinLength > cmd.MaxLength {
		return &InvalidCommandShapeError{Command: cmd.name, Reason: "min-length exceeds max-length"}
	}
	remainderCount := 0
	for i, p := range cmd.Parameters {
		if p.IsRemainder {
			remainderCount++
			if i != len(cmd.Parameters)-1 {
				return &InvalidCommandShapeError{Command: cmd.name, Reason: "remainder parameter is not last"}
			}
		}
	}
	if remainderCount > 1 {
		return &InvalidCommandShapeError{Command: cmd.name, Reason: "more than one remainder parameter"}
	}
	if len(cmd.aliases) == 0 && !cmd.isDefault {
		return &InvalidCommandShapeError{Command: cmd.name, Reason: "non-default command has no aliases"}
	}
	return nil
}
