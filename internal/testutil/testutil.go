// Package testutil holds fixtures shared by the framework packages'
// tests: a recording Caller and a pair of canned Conditions — grounded
// on the teacher's own internal/testutil package, retargeted from
// database fixtures (no longer needed once persistence dropped) to
// dispatch-pipeline fixtures.
package testutil

import (
	"context"
	"sync"

	"github.com/cmdforge/cmdforge/condition"
	"github.com/cmdforge/cmdforge/host"
)

// RecordingCaller is a host.Caller that records every payload it is
// asked to Respond with, for assertion in pipeline/dispatch tests.
type RecordingCaller struct {
	Name string

	mu        sync.Mutex
	responses []any
	failWith  error
}

// NewRecordingCaller creates a RecordingCaller identified by name.
func NewRecordingCaller(name string) *RecordingCaller {
	return &RecordingCaller{Name: name}
}

func (c *RecordingCaller) Identifier() string { return c.Name }

// FailRespondWith makes every subsequent Respond call return err.
func (c *RecordingCaller) FailRespondWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failWith = err
}

func (c *RecordingCaller) Respond(_ context.Context, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWith != nil {
		return c.failWith
	}
	c.responses = append(c.responses, payload)
	return nil
}

// Responses returns every payload recorded so far.
func (c *RecordingCaller) Responses() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]any, len(c.responses))
	copy(out, c.responses)
	return out
}

// AlwaysPass returns a Condition that never rejects, useful as filler in
// a ConditionSet a test doesn't care about.
func AlwaysPass(phase condition.Phase, groupKey string) condition.Condition {
	return condition.Func{
		PhaseValue:    phase,
		GroupKeyValue: groupKey,
		Fn: func(context.Context, host.Caller, any, host.Services) error {
			return nil
		},
	}
}

// AlwaysFail returns a Condition that always rejects with reason.
func AlwaysFail(phase condition.Phase, groupKey, reason string) condition.Condition {
	return condition.Func{
		PhaseValue:    phase,
		GroupKeyValue: groupKey,
		Fn: func(context.Context, host.Caller, any, host.Services) error {
			return &condition.Error{Phase: phase, Reason: reason}
		},
	}
}
