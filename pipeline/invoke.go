package pipeline

import (
	"context"
	"fmt"

	"github.com/cmdforge/cmdforge/catalog"
	"github.com/cmdforge/cmdforge/host"
)

// invokeError wraps a command body's error or error-sentinel return,
// carrying no structured reason beyond the underlying error (spec.md §7
// "InvokeFailure{reason}").
type invokeError struct {
	Cause error
}

func (e *invokeError) Error() string { return fmt.Sprintf("invoke failed: %v", e.Cause) }
func (e *invokeError) Unwrap() error { return e.Cause }

// invoke dispatches to cmd's Static or Instance shape (spec.md §4.6
// "Invocation") and returns the unboxed return value. A nil return value
// is VoidResult — represented here simply as a nil any, which callers
// render as no payload.
func invoke(ctx context.Context, caller host.Caller, cmd *catalog.Command, args []any, services host.Services) (any, error) {
	switch inv := cmd.Invoke.(type) {
	case *catalog.StaticInvoker:
		value, err := inv.Func(ctx, caller, services, args)
		if err != nil {
			return nil, &invokeError{Cause: err}
		}
		return value, nil

	case *catalog.InstanceInvoker:
		instance, err := inv.Build(ctx, services)
		if err != nil {
			return nil, &invokeError{Cause: err}
		}
		if instance.Close != nil {
			defer instance.Close()
		}
		value, err := inv.Method(ctx, instance.Value, caller, args)
		if err != nil {
			return nil, &invokeError{Cause: err}
		}
		return value, nil

	default:
		return nil, &invokeError{Cause: fmt.Errorf("command %q has no invoker configured", cmd.Name())}
	}
}
