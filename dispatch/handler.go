package dispatch

import (
	"context"
	"fmt"

	"github.com/cmdforge/cmdforge/host"
	"github.com/cmdforge/cmdforge/internal/log"
	"github.com/cmdforge/cmdforge/internal/ui/style"
	"github.com/cmdforge/cmdforge/pipeline"
)

// ResultHandler receives a pipeline.Result at the end of an Execute* call
// and returns whether it handled delivery (spec.md §4.7). Multiple
// handlers compose in registration order; the first returning true
// terminates the chain.
type ResultHandler func(caller host.Caller, result pipeline.Result, services host.Services) bool

// DefaultHandler replies to caller with a styled rendering of result and
// always returns true, making it suitable as the last entry in a handler
// chain so every call is guaranteed a response. Every non-Success Kind
// is also logged at Warn (Canceled) or Error (everything else), the same
// split footprint-tools-cli's own error path uses between a user-facing
// message and its log file.
func DefaultHandler(ctx context.Context) ResultHandler {
	return func(caller host.Caller, result pipeline.Result, services host.Services) bool {
		caller.Respond(ctx, renderResult(result))
		logResult(caller, result)
		return true
	}
}

func logResult(caller host.Caller, result pipeline.Result) {
	switch result.Kind {
	case pipeline.Success:
	case pipeline.Canceled:
		log.Warn("%s: invocation %s canceled", caller.Identifier(), result.InvocationID)
	default:
		log.Error("%s: invocation %s failed: %s", caller.Identifier(), result.InvocationID, renderResult(result))
	}
}

func renderResult(result pipeline.Result) string {
	switch result.Kind {
	case pipeline.Success:
		if result.Value == nil {
			return style.Success("ok")
		}
		return style.Success(fmt.Sprintf("%v", result.Value))
	case pipeline.SearchFailure:
		if len(result.Suggestions) > 0 {
			return style.Error(fmt.Sprintf("unknown command (did you mean: %v?)", result.Suggestions))
		}
		return style.Error("unknown command")
	case pipeline.LengthMismatch:
		if result.Direction == pipeline.TooShort {
			return style.Error(fmt.Sprintf("too few arguments (got %d, need at least %d)", result.Length, result.MinLength))
		}
		return style.Error(fmt.Sprintf("too many arguments (got %d, accepts at most %d)", result.Length, result.MaxLength))
	case pipeline.ParseFailure:
		return style.Error(fmt.Sprintf("invalid value for %q: %v", result.Parameter, result.Err))
	case pipeline.ConditionFailure:
		return style.Error(fmt.Sprintf("%s-condition failed: %v", result.Phase, result.Err))
	case pipeline.InvokeFailure:
		return style.Error(fmt.Sprintf("command failed: %v", result.Err))
	case pipeline.Canceled:
		return style.Muted("canceled")
	default:
		return style.Error("unknown result")
	}
}
