package condition

import (
	"context"
	"errors"
	"testing"

	"github.com/cmdforge/cmdforge/host"
	"github.com/stretchr/testify/require"
)

func alwaysFail(phase Phase, group, reason string) Condition {
	return Func{
		PhaseValue:    phase,
		GroupKeyValue: group,
		Fn: func(context.Context, host.Caller, any, host.Services) error {
			return &Error{Phase: phase, Reason: reason}
		},
	}
}

func alwaysPass(phase Phase, group string) Condition {
	return Func{
		PhaseValue:    phase,
		GroupKeyValue: group,
		Fn: func(context.Context, host.Caller, any, host.Services) error {
			return nil
		},
	}
}

func TestEvaluate_AllGroupsSatisfied_Succeeds(t *testing.T) {
	set := NewSet([]Condition{
		alwaysPass(Pre, "role"),
		alwaysPass(Pre, "quota"),
	})

	err := set.Evaluate(context.Background(), nil, nil, nil)
	require.NoError(t, err)
}

func TestEvaluate_OneSuccessSatisfiesGroup(t *testing.T) {
	set := NewSet([]Condition{
		alwaysFail(Pre, "role", "not admin"),
		alwaysPass(Pre, "role"),
	})

	err := set.Evaluate(context.Background(), nil, nil, nil)
	require.NoError(t, err, "any success in a group satisfies the OR")
}

func TestEvaluate_GroupFullyFailed_ReturnsDecisiveFailure(t *testing.T) {
	set := NewSet([]Condition{
		alwaysFail(Pre, "role", "not admin"),
		alwaysFail(Pre, "role", "not owner"),
	})

	err := set.Evaluate(context.Background(), nil, nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not owner", "the last member's failure in the group is reported")
}

func TestEvaluate_ShortCircuitsAcrossGroups(t *testing.T) {
	evaluated := false
	neverRuns := Func{
		PhaseValue:    Pre,
		GroupKeyValue: "second",
		Fn: func(context.Context, host.Caller, any, host.Services) error {
			evaluated = true
			return nil
		},
	}

	set := NewSet([]Condition{
		alwaysFail(Pre, "first", "denied"),
		neverRuns,
	})

	err := set.Evaluate(context.Background(), nil, nil, nil)
	require.Error(t, err)
	require.False(t, evaluated, "evaluation stops at the first fully-failed group")
}

func TestEvaluate_RespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	set := NewSet([]Condition{alwaysPass(Pre, "role")})
	err := set.Evaluate(ctx, nil, nil, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEvaluate_EmptySetSucceeds(t *testing.T) {
	set := NewSet(nil)
	require.NoError(t, set.Evaluate(context.Background(), nil, nil, nil))
}

func TestEvaluate_PostConditionReceivesResultSubject(t *testing.T) {
	var seen any
	c := Func{
		PhaseValue:    Post,
		GroupKeyValue: "audit",
		Fn: func(_ context.Context, _ host.Caller, subject any, _ host.Services) error {
			seen = subject
			return nil
		},
	}
	set := NewSet([]Condition{c})

	require.NoError(t, set.Evaluate(context.Background(), nil, "invocation-result", nil))
	require.Equal(t, "invocation-result", seen)
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Phase: Pre, Reason: "x", Cause: cause}
	require.ErrorIs(t, err, cause)
}
