// Package condition implements the two-phase Condition Set described in
// spec.md §4.5: pre-invoke and post-invoke evaluators, grouped by a
// user-supplied key with OR-within-group / AND-across-groups semantics and
// sequential short-circuit evaluation.
package condition

import (
	"context"

	"github.com/cmdforge/cmdforge/host"
)

// Phase identifies when a Condition runs.
type Phase int

const (
	// Pre runs after successful parsing, before invocation.
	Pre Phase = iota
	// Post runs after a successful invocation, against its result.
	Post
)

func (p Phase) String() string {
	if p == Post {
		return "post"
	}
	return "pre"
}

// Condition is a single pre- or post-invoke evaluator (spec.md §6
// "Condition contract"). Subject is the command being considered (Pre) or
// its invocation result (Post) — left as `any` here so this package never
// needs to import the catalog or pipeline packages that define those
// concrete types.
type Condition interface {
	Phase() Phase
	GroupKey() string
	Evaluate(ctx context.Context, caller host.Caller, subject any, services host.Services) error
}

// Func adapts a plain function into a Condition.
type Func struct {
	PhaseValue    Phase
	GroupKeyValue string
	Fn            func(ctx context.Context, caller host.Caller, subject any, services host.Services) error
}

func (f Func) Phase() Phase       { return f.PhaseValue }
func (f Func) GroupKey() string   { return f.GroupKeyValue }

func (f Func) Evaluate(ctx context.Context, caller host.Caller, subject any, services host.Services) error {
	return f.Fn(ctx, caller, subject, services)
}

// Error is the structured rejection a Condition returns, carrying the
// phase it ran in (spec.md §7 ConditionFailure{phase, reason}).
type Error struct {
	Phase  Phase
	Reason string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Phase.String() + "-condition failed: " + e.Reason + ": " + e.Cause.Error()
	}
	return e.Phase.String() + "-condition failed: " + e.Reason
}

func (e *Error) Unwrap() error { return e.Cause }
