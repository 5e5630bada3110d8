package pipeline

import (
	"context"
	"fmt"

	"github.com/cmdforge/cmdforge/argsource"
	"github.com/cmdforge/cmdforge/catalog"
	"github.com/cmdforge/cmdforge/host"
	"github.com/cmdforge/cmdforge/parser"
)

func pinfo(p *catalog.Parameter) parser.ParameterInfo {
	return parser.ParameterInfo{Name: p.Name, Type: p.DeclaredType}
}

// missing is the sentinel placeholder substituted for an absent optional
// argument (spec.md §4.4 step 3 "Not found but optional → Missing
// placeholder (invoker substitutes the default)"). The invoker is
// expected to detect it and fall back to the parameter's Default.
type missing struct{}

// Missing is the exported sentinel value; invokers compare against it to
// detect an omitted optional argument.
var Missing any = missing{}

// parseError is a local mirror of parser.Error/catalog-level failures so
// this package can build a ParseFailure Result without importing a
// specific parser implementation's error type.
type parseError struct {
	Parameter string
	Reason    string
	Cause     error
}

func (e *parseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse %q: %s: %v", e.Parameter, e.Reason, e.Cause)
	}
	return fmt.Sprintf("parse %q: %s", e.Parameter, e.Reason)
}

func (e *parseError) Unwrap() error { return e.Cause }

// checkLength applies spec.md §4.4's length gate ahead of parsing: parse
// if mn ≤ L ≤ mx, or the command has a remainder and L ≥ mn.
func checkLength(cmd *catalog.Command, length int) (ok bool, direction LengthDirection) {
	if length < cmd.MinLength {
		return false, TooShort
	}
	if cmd.HasRemainder {
		return true, 0
	}
	if length > cmd.MaxLength {
		return false, TooLong
	}
	return true, 0
}

// parseParameters resolves cmd's Parameters in declared order from src,
// implementing spec.md §4.4 steps 1–3 (remainder, constructible,
// leaf). It returns the parsed argument vector in parameter order, or the
// first error encountered.
func parseParameters(ctx context.Context, caller host.Caller, params []*catalog.Parameter, src *argsource.Source, services host.Services, remainderSeparator string) ([]any, error) {
	values := make([]any, len(params))
	for i, p := range params {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch {
		case p.IsRemainder:
			if p.IsCollection {
				values[i] = src.TakeRemaining()
			} else {
				values[i] = src.JoinRemaining(remainderSeparator)
			}

		case p.IsConstructible():
			childValues, err := parseParameters(ctx, caller, p.Children, src, services, remainderSeparator)
			if err != nil {
				if p.IsOptional {
					values[i] = Missing
					continue
				}
				return nil, err
			}
			built, err := p.Activator(childValues)
			if err != nil {
				return nil, &parseError{Parameter: p.Name, Reason: "activator failed", Cause: err}
			}
			values[i] = built

		default:
			raw, found := src.TryNext(p.Name)
			if !found {
				if p.IsOptional {
					values[i] = Missing
					continue
				}
				return nil, &parseError{Parameter: p.Name, Reason: "missing required argument"}
			}
			if p.Parser == nil {
				return nil, &parseError{Parameter: p.Name, Reason: "no parser registered for parameter"}
			}
			info := pinfo(p)
			parsed, err := p.Parser.Parse(ctx, caller, info, raw, services)
			if err != nil {
				return nil, &parseError{Parameter: p.Name, Reason: "parser rejected value", Cause: err}
			}
			values[i] = parsed
		}
	}
	return values, nil
}
