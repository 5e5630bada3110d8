package main

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/cmdforge/cmdforge/builder"
	"github.com/cmdforge/cmdforge/catalog"
	"github.com/cmdforge/cmdforge/condition"
	"github.com/cmdforge/cmdforge/host"
	"github.com/cmdforge/cmdforge/internal/scope"
	"github.com/cmdforge/cmdforge/parser"
	"github.com/cmdforge/cmdforge/pipeline"
)

// registerPrimitiveParsers installs the leaf parsers every command below
// depends on. A real host typically does this once, before declaring any
// command that references these types — mirroring how
// footprint-tools-cli's internal/dispatchers/builder.go has a fixed
// switch over flag kinds, just made pluggable here.
func registerPrimitiveParsers(b *builder.Builder) {
	b.RegisterParser(parser.Func{
		Target: reflect.TypeOf(0),
		Fn: func(_ context.Context, _ host.Caller, info parser.ParameterInfo, raw any, _ host.Services) (any, error) {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("expected string input for %q", info.Name)
			}
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("%q is not an integer", s)
			}
			return n, nil
		},
	})

	b.RegisterParser(parser.Func{
		Target: reflect.TypeOf(false),
		Fn: func(_ context.Context, _ host.Caller, info parser.ParameterInfo, raw any, _ host.Services) (any, error) {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("expected string input for %q", info.Name)
			}
			v, err := strconv.ParseBool(s)
			if err != nil {
				return nil, fmt.Errorf("%q is not a boolean", s)
			}
			return v, nil
		},
	})

	b.RegisterParser(parser.Func{
		Target: reflect.TypeOf(""),
		Fn: func(_ context.Context, _ host.Caller, info parser.ParameterInfo, raw any, _ host.Services) (any, error) {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("expected string input for %q", info.Name)
			}
			return s, nil
		},
	})
}

// registerDemoCommands builds the command tree this binary exposes,
// covering every pipeline scenario SPEC_FULL.md calls out: a plain static
// command, an overload family disambiguated by parse fallback, optional
// parameters with defaults, a remainder parameter, a conditionally gated
// command, a module-object (instance) invocation with cleanup, and a
// cancellation-aware long-running command.
func registerDemoCommands(b *builder.Builder) error {
	root := b.Catalog().Root()

	if _, err := b.Command(root, builder.CommandSpec{
		Name:     "sum",
		Aliases:  []string{"sum"},
		Summary:  "add two integers",
		Usage:    "sum <a> <b>",
		Priority: 1,
		Parameters: []builder.ParameterSpec{
			{Name: "a", Type: reflect.TypeOf(0)},
			{Name: "b", Type: reflect.TypeOf(0)},
		},
		Invoke: &catalog.StaticInvoker{
			Func: func(_ context.Context, _ host.Caller, _ host.Services, args []any) (any, error) {
				return args[0].(int) + args[1].(int), nil
			},
		},
	}); err != nil {
		return err
	}

	if _, err := b.Command(root, builder.CommandSpec{
		Name:     "point",
		Aliases:  []string{"point"},
		Summary:  "build a point from two integers and report its coordinates",
		Usage:    "point <x> <y>",
		Priority: 1,
		Parameters: []builder.ParameterSpec{
			{
				Name: "at",
				Children: []builder.ParameterSpec{
					{Name: "x", Type: reflect.TypeOf(0)},
					{Name: "y", Type: reflect.TypeOf(0)},
				},
				Activator: func(values []any) (any, error) {
					return pointValue{X: values[0].(int), Y: values[1].(int)}, nil
				},
			},
		},
		Invoke: &catalog.StaticInvoker{
			Func: func(_ context.Context, _ host.Caller, _ host.Services, args []any) (any, error) {
				at := args[0].(pointValue)
				return fmt.Sprintf("(%d, %d)", at.X, at.Y), nil
			},
		},
	}); err != nil {
		return err
	}

	multiBoolBool := builder.CommandSpec{
		Name:     "multi",
		Aliases:  []string{"multi"},
		Summary:  "combine two booleans with AND",
		Usage:    "multi <bool> <bool>",
		Priority: 1,
		Parameters: []builder.ParameterSpec{
			{Name: "x", Type: reflect.TypeOf(false)},
			{Name: "y", Type: reflect.TypeOf(false)},
		},
		Invoke: &catalog.StaticInvoker{
			Func: func(_ context.Context, _ host.Caller, _ host.Services, args []any) (any, error) {
				return args[0].(bool) && args[1].(bool), nil
			},
		},
	}
	if _, err := b.Command(root, multiBoolBool); err != nil {
		return err
	}

	multiIntInt := builder.CommandSpec{
		Name:     "multi",
		Aliases:  []string{"multi"},
		Summary:  "multiply two integers",
		Usage:    "multi <int> <int>",
		Priority: 1,
		Parameters: []builder.ParameterSpec{
			{Name: "x", Type: reflect.TypeOf(0)},
			{Name: "y", Type: reflect.TypeOf(0)},
		},
		Invoke: &catalog.StaticInvoker{
			Func: func(_ context.Context, _ host.Caller, _ host.Services, args []any) (any, error) {
				return args[0].(int) * args[1].(int), nil
			},
		},
	}
	if _, err := b.Command(root, multiIntInt); err != nil {
		return err
	}

	// greetCmd is assigned once registration below succeeds; the Func
	// closure only runs on later invocations, by which point it is set —
	// this lets the invoker fall back to the Parameter's own Default
	// (spec.md §4.4 step 3: "Missing placeholder, invoker substitutes the
	// default") instead of duplicating the literal a second time.
	var greetCmd *catalog.Command
	cmd, err := b.Command(root, builder.CommandSpec{
		Name:     "greet",
		Aliases:  []string{"greet"},
		Summary:  "greet someone, politely by default",
		Usage:    "greet <name> [greeting]",
		Priority: 1,
		Parameters: []builder.ParameterSpec{
			{Name: "name", Type: reflect.TypeOf("")},
			{Name: "greeting", Type: reflect.TypeOf(""), Optional: true, Default: "Hello"},
		},
		Invoke: &catalog.StaticInvoker{
			Func: func(_ context.Context, _ host.Caller, _ host.Services, args []any) (any, error) {
				greeting := greetCmd.Parameters[1].Default.(string)
				if len(args) > 1 && args[1] != pipeline.Missing {
					greeting = args[1].(string)
				}
				return fmt.Sprintf("%s, %s!", greeting, args[0].(string)), nil
			},
		},
	})
	if err != nil {
		return err
	}
	greetCmd = cmd

	if _, err := b.Command(root, builder.CommandSpec{
		Name:     "echo",
		Aliases:  []string{"echo"},
		Summary:  "print every remaining argument joined by a space",
		Usage:    "echo <words...>",
		Priority: 1,
		Parameters: []builder.ParameterSpec{
			{Name: "words", Remainder: true},
		},
		Invoke: &catalog.StaticInvoker{
			Func: func(_ context.Context, _ host.Caller, _ host.Services, args []any) (any, error) {
				return args[0], nil
			},
		},
	}); err != nil {
		return err
	}

	adminGroup, err := b.Group(root, "admin", []string{"admin"}, "administrative commands")
	if err != nil {
		return err
	}
	adminGroup.PreConditions = []condition.Condition{
		condition.Func{
			PhaseValue:    condition.Pre,
			GroupKeyValue: "authorized",
			Fn: func(_ context.Context, caller host.Caller, _ any, _ host.Services) error {
				if caller.Identifier() != "root" {
					return &condition.Error{Phase: condition.Pre, Reason: "caller is not an administrator"}
				}
				return nil
			},
		},
	}
	if _, err := b.Command(adminGroup, builder.CommandSpec{
		Name:     "reset",
		Aliases:  []string{"reset"},
		Summary:  "reset demo state",
		Usage:    "admin reset",
		Priority: 1,
		Invoke: &catalog.StaticInvoker{
			Func: func(_ context.Context, _ host.Caller, _ host.Services, _ []any) (any, error) {
				return "state reset", nil
			},
		},
	}); err != nil {
		return err
	}

	if _, err := b.Command(root, builder.CommandSpec{
		Name:     "slowcmd",
		Aliases:  []string{"slowcmd"},
		Summary:  "simulate a slow operation, honoring cancellation",
		Usage:    "slowcmd <seconds>",
		Priority: 1,
		Parameters: []builder.ParameterSpec{
			{Name: "seconds", Type: reflect.TypeOf(0)},
		},
		Invoke: &catalog.StaticInvoker{
			Func: func(ctx context.Context, _ host.Caller, _ host.Services, args []any) (any, error) {
				d := time.Duration(args[0].(int)) * time.Second
				select {
				case <-time.After(d):
					return "done", nil
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			},
		},
	}); err != nil {
		return err
	}

	if _, err := b.Command(root, builder.CommandSpec{
		Name:     "counter",
		Aliases:  []string{"counter"},
		Summary:  "increment a counter module constructed per invocation",
		Usage:    "counter <by>",
		Priority: 1,
		Parameters: []builder.ParameterSpec{
			{Name: "by", Type: reflect.TypeOf(0)},
		},
		Invoke: &catalog.InstanceInvoker{
			Build: func(_ context.Context, services host.Services) (catalog.Instance, error) {
				c := &counterModule{}
				sc, _ := services.(*scope.Scope)
				if sc != nil && sc.Logger != nil {
					sc.Logger.Debug("counter module constructed")
				}
				return catalog.Instance{
					Value: c,
					Close: func() {
						if sc != nil && sc.Logger != nil {
							sc.Logger.Debug("counter module closed, final value %d", c.value)
						}
					},
				}, nil
			},
			Method: func(_ context.Context, instance any, _ host.Caller, args []any) (any, error) {
				c := instance.(*counterModule)
				c.value += args[0].(int)
				return c.value, nil
			},
		},
	}); err != nil {
		return err
	}

	return nil
}

// counterModule is a trivial module object exercising the
// InstanceInvoker shape: a fresh instance per invocation, with state that
// only survives for the duration of one call.
type counterModule struct {
	value int
}

// pointValue is the activated value of the "point" command's
// constructible "at" parameter: built from two leaf children rather
// than parsed directly.
type pointValue struct {
	X, Y int
}
