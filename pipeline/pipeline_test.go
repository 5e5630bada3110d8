package pipeline

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/cmdforge/cmdforge/argsource"
	"github.com/cmdforge/cmdforge/catalog"
	"github.com/cmdforge/cmdforge/condition"
	"github.com/cmdforge/cmdforge/host"
	"github.com/cmdforge/cmdforge/parser"
	"github.com/stretchr/testify/require"
)

type fakeCaller struct{ id string }

func (f fakeCaller) Identifier() string                             { return f.id }
func (f fakeCaller) Respond(ctx context.Context, payload any) error { return nil }

func intParser() parser.Parser {
	return parser.Func{
		Target: reflect.TypeOf(0),
		Fn: func(ctx context.Context, caller host.Caller, info parser.ParameterInfo, raw any, services host.Services) (any, error) {
			s, _ := raw.(string)
			return strconv.Atoi(s)
		},
	}
}

func boolParser() parser.Parser {
	return parser.Func{
		Target: reflect.TypeOf(false),
		Fn: func(ctx context.Context, caller host.Caller, info parser.ParameterInfo, raw any, services host.Services) (any, error) {
			s, _ := raw.(string)
			return strconv.ParseBool(s)
		},
	}
}

func newCatalogWithSum(t *testing.T) (*catalog.Catalog, *catalog.Command) {
	c := catalog.NewCatalog(argsource.OrdinalIgnoreCase)
	math := catalog.NewGroup("math", []string{"math"}, "")
	require.NoError(t, c.Register(nil, math))

	sum := catalog.NewCommand("sum", []string{"sum"}, "", "", 0)
	sum.Parameters = []*catalog.Parameter{
		{Name: "a", DeclaredType: reflect.TypeOf(0), Parser: intParser()},
		{Name: "b", DeclaredType: reflect.TypeOf(0), Parser: intParser()},
	}
	sum.MinLength, sum.MaxLength = 2, 2
	sum.Invoke = &catalog.StaticInvoker{
		Func: func(ctx context.Context, caller host.Caller, services host.Services, args []any) (any, error) {
			return args[0].(int) + args[1].(int), nil
		},
	}
	require.NoError(t, c.Register(math, sum))
	return c, sum
}

func TestRun_SuccessInvokesAndReturnsValue(t *testing.T) {
	c, _ := newCatalogWithSum(t)
	src := argsource.NewFromTokens([]string{"math", "sum", "2", "3"}, argsource.OrdinalIgnoreCase)

	r := Run(context.Background(), fakeCaller{"u1"}, c, src, nil, Options{})
	require.Equal(t, Success, r.Kind)
	require.Equal(t, 5, r.Value)
}

func TestRun_SearchFailureWhenNoTokenMatches(t *testing.T) {
	c, _ := newCatalogWithSum(t)
	src := argsource.NewFromTokens([]string{"nope"}, argsource.OrdinalIgnoreCase)

	r := Run(context.Background(), fakeCaller{"u1"}, c, src, nil, Options{})
	require.Equal(t, SearchFailure, r.Kind)
}

func TestRun_LengthMismatchWhenTooFewArgs(t *testing.T) {
	c, _ := newCatalogWithSum(t)
	src := argsource.NewFromTokens([]string{"math", "sum", "2"}, argsource.OrdinalIgnoreCase)

	r := Run(context.Background(), fakeCaller{"u1"}, c, src, nil, Options{})
	require.Equal(t, LengthMismatch, r.Kind)
	require.Equal(t, TooShort, r.Direction)
}

func TestRun_OverloadFallsBackToNextCandidateOnParseFailure(t *testing.T) {
	c := catalog.NewCatalog(argsource.OrdinalIgnoreCase)

	boolCmd := catalog.NewCommand("multi-bool", []string{"multi"}, "", "", 0)
	boolCmd.Parameters = []*catalog.Parameter{
		{Name: "a", DeclaredType: reflect.TypeOf(false), Parser: boolParser()},
		{Name: "b", DeclaredType: reflect.TypeOf(false), Parser: boolParser()},
	}
	boolCmd.MinLength, boolCmd.MaxLength = 2, 2
	boolCmd.Invoke = &catalog.StaticInvoker{Func: func(ctx context.Context, caller host.Caller, services host.Services, args []any) (any, error) {
		return "bool-overload", nil
	}}
	require.NoError(t, c.Register(nil, boolCmd))

	intCmd := catalog.NewCommand("multi-int", []string{"multi"}, "", "", 0)
	intCmd.Parameters = []*catalog.Parameter{
		{Name: "a", DeclaredType: reflect.TypeOf(0), Parser: intParser()},
		{Name: "b", DeclaredType: reflect.TypeOf(0), Parser: intParser()},
	}
	intCmd.MinLength, intCmd.MaxLength = 2, 2
	intCmd.Invoke = &catalog.StaticInvoker{Func: func(ctx context.Context, caller host.Caller, services host.Services, args []any) (any, error) {
		return "int-overload", nil
	}}
	require.NoError(t, c.Register(nil, intCmd))

	src := argsource.NewFromTokens([]string{"multi", "1", "2"}, argsource.OrdinalIgnoreCase)
	r := Run(context.Background(), fakeCaller{"u1"}, c, src, nil, Options{})

	require.Equal(t, Success, r.Kind)
	require.Equal(t, "int-overload", r.Value, "bool overload fails to parse \"2\", falls through to the int overload")
}

func TestRun_PostConditionFailureIsTerminalNotFallback(t *testing.T) {
	c, sum := newCatalogWithSum(t)
	sum.PostConditions = []condition.Condition{
		condition.Func{
			PhaseValue:    condition.Post,
			GroupKeyValue: "always-reject",
			Fn: func(ctx context.Context, caller host.Caller, subject any, services host.Services) error {
				return &condition.Error{Phase: condition.Post, Reason: "rejected for test"}
			},
		},
	}

	src := argsource.NewFromTokens([]string{"math", "sum", "2", "3"}, argsource.OrdinalIgnoreCase)
	r := Run(context.Background(), fakeCaller{"u1"}, c, src, nil, Options{})

	require.Equal(t, ConditionFailure, r.Kind)
	require.Equal(t, "post", r.Phase)
}

func TestRun_CanceledContextShortCircuits(t *testing.T) {
	c, _ := newCatalogWithSum(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := argsource.NewFromTokens([]string{"math", "sum", "2", "3"}, argsource.OrdinalIgnoreCase)
	r := Run(ctx, fakeCaller{"u1"}, c, src, nil, Options{})

	require.Equal(t, Canceled, r.Kind)
}

// testPoint is a constructible parameter's activated value: built from
// two leaf children rather than parsed directly (spec.md §3/§4.4).
type testPoint struct{ X, Y int }

func TestRun_ConstructibleParameterBuildsFromChildValues(t *testing.T) {
	c := catalog.NewCatalog(argsource.OrdinalIgnoreCase)

	cmd := catalog.NewCommand("point", []string{"point"}, "", "", 0)
	cmd.Parameters = []*catalog.Parameter{
		{
			Name: "p",
			Children: []*catalog.Parameter{
				{Name: "x", DeclaredType: reflect.TypeOf(0), Parser: intParser()},
				{Name: "y", DeclaredType: reflect.TypeOf(0), Parser: intParser()},
			},
			Activator: func(values []any) (any, error) {
				return testPoint{X: values[0].(int), Y: values[1].(int)}, nil
			},
		},
	}
	cmd.MinLength, cmd.MaxLength = 2, 2
	cmd.Invoke = &catalog.StaticInvoker{
		Func: func(ctx context.Context, caller host.Caller, services host.Services, args []any) (any, error) {
			p := args[0].(testPoint)
			return p.X + p.Y, nil
		},
	}
	require.NoError(t, c.Register(nil, cmd))

	src := argsource.NewFromTokens([]string{"point", "3", "4"}, argsource.OrdinalIgnoreCase)
	r := Run(context.Background(), fakeCaller{"u1"}, c, src, nil, Options{})

	require.Equal(t, Success, r.Kind)
	require.Equal(t, 7, r.Value)
}

func TestRun_ConstructibleParameterActivatorErrorIsParseFailure(t *testing.T) {
	c := catalog.NewCatalog(argsource.OrdinalIgnoreCase)

	cmd := catalog.NewCommand("point", []string{"point"}, "", "", 0)
	cmd.Parameters = []*catalog.Parameter{
		{
			Name: "p",
			Children: []*catalog.Parameter{
				{Name: "x", DeclaredType: reflect.TypeOf(0), Parser: intParser()},
				{Name: "y", DeclaredType: reflect.TypeOf(0), Parser: intParser()},
			},
			Activator: func(values []any) (any, error) {
				return nil, errors.New("activator failed")
			},
		},
	}
	cmd.MinLength, cmd.MaxLength = 2, 2
	cmd.Invoke = &catalog.StaticInvoker{
		Func: func(ctx context.Context, caller host.Caller, services host.Services, args []any) (any, error) {
			return nil, nil
		},
	}
	require.NoError(t, c.Register(nil, cmd))

	src := argsource.NewFromTokens([]string{"point", "3", "4"}, argsource.OrdinalIgnoreCase)
	r := Run(context.Background(), fakeCaller{"u1"}, c, src, nil, Options{})

	require.Equal(t, ParseFailure, r.Kind)
	require.Equal(t, "p", r.Parameter)
}

func TestRun_InvokeCancellationWrappedByInvokeErrorSurfacesAsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	c := catalog.NewCatalog(argsource.OrdinalIgnoreCase)
	cmd := catalog.NewCommand("slow", []string{"slow"}, "", "", 0)
	cmd.MinLength, cmd.MaxLength = 0, 0
	cmd.Invoke = &catalog.StaticInvoker{
		Func: func(ctx context.Context, caller host.Caller, services host.Services, args []any) (any, error) {
			cancel()
			return nil, ctx.Err()
		},
	}
	require.NoError(t, c.Register(nil, cmd))

	src := argsource.NewFromTokens([]string{"slow"}, argsource.OrdinalIgnoreCase)
	r := Run(ctx, fakeCaller{"u1"}, c, src, nil, Options{})

	require.Equal(t, Canceled, r.Kind)
}
