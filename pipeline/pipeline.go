package pipeline

import (
	"context"
	"errors"

	"github.com/cmdforge/cmdforge/argsource"
	"github.com/cmdforge/cmdforge/catalog"
	"github.com/cmdforge/cmdforge/condition"
	"github.com/cmdforge/cmdforge/host"
	"github.com/google/uuid"
)

// Options controls a single pipeline run (spec.md §4.6, §5 "Modes").
type Options struct {
	// SkipPreConditions/SkipPostConditions let a caller bypass a phase
	// entirely (spec.md §4.5 "Either phase may be skipped by a pipeline
	// option").
	SkipPreConditions  bool
	SkipPostConditions bool

	// FallBackOnInvokeFailure opts into treating an InvokeFailure as a
	// local (per-candidate) failure that falls through to the next
	// candidate, rather than terminal (spec.md §7's default: do not
	// fall back).
	FallBackOnInvokeFailure bool

	// SuggestOnSearchFailure attaches SuggestSiblings output to a
	// SearchFailure Result when the first positional token had no
	// match at the root.
	SuggestOnSearchFailure bool

	MaxSuggestions int

	// RemainderSeparator joins a non-collection remainder parameter's
	// consumed tokens (spec.md §6 Options "remainder_separator: char =
	// ' '"). Empty means the default single space.
	RemainderSeparator string
}

// canceled reports whether err is ctx's own cancellation, including when
// a command body, parser, or condition wraps it (spec.md §5:
// "cancellation observed at any of the four suspension points produces a
// Canceled result") — a plain `err == ctx.Err()` misses that case since
// invoke.go's invokeError and similar wrappers never compare equal to
// the context's sentinel.
func canceled(ctx context.Context, err error) bool {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Is(err, ctxErr)
	}
	return false
}

// remainderSeparator returns the configured separator, defaulting to a
// single space when unset.
func (o Options) remainderSeparator() string {
	if o.RemainderSeparator == "" {
		return " "
	}
	return o.RemainderSeparator
}

// newID exists so tests can stub it; production code always calls
// uuid.New.
var newID = uuid.New

// Run executes spec.md §4.6's algorithm: search, then for each candidate
// in priority/score/registration order, length-gate, parse, evaluate
// pre-conditions, invoke, evaluate post-conditions — advancing to the
// next candidate on any local failure and stopping at the first success.
// Exactly one Result is returned, matching spec.md §7's delivery
// guarantee; the caller (dispatch.Manager) is responsible for handing it
// to the Result Handler chain.
func Run(ctx context.Context, caller host.Caller, cat *catalog.Catalog, src *argsource.Source, services host.Services, opts Options) Result {
	id := newID()

	if err := ctx.Err(); err != nil {
		return Result{Kind: Canceled, InvocationID: id, Err: err}
	}

	candidates := cat.Search(src)
	if len(candidates) == 0 {
		r := newResult(id, SearchFailure)
		if opts.SuggestOnSearchFailure {
			if token, ok := src.TryPeekPositional(0); ok {
				max := opts.MaxSuggestions
				if max <= 0 {
					max = 3
				}
				r.Suggestions = catalog.SuggestSiblings(token, cat.Root(), max)
			}
		}
		return r
	}

	var bestLengthMismatch, bestParseFailure, bestConditionFailure *Result

	for _, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return Result{Kind: Canceled, InvocationID: id, Err: err}
		}

		cmd := cand.Command
		length := src.SetSize(cand.SearchHeight)

		if ok, direction := checkLength(cmd, length); !ok {
			r := newResult(id, LengthMismatch)
			r.Direction = direction
			r.Length = length
			r.MinLength = cmd.MinLength
			r.MaxLength = cmd.MaxLength
			bestLengthMismatch = &r
			continue
		}

		args, err := parseParameters(ctx, caller, cmd.Parameters, src, services, opts.remainderSeparator())
		if err != nil {
			if canceled(ctx, err) {
				return Result{Kind: Canceled, InvocationID: id, Err: err}
			}
			r := newResult(id, ParseFailure)
			r.Err = err
			if pe, ok := err.(*parseError); ok {
				r.Parameter = pe.Parameter
				r.Reason = pe.Reason
			}
			bestParseFailure = &r
			continue
		}

		if !opts.SkipPreConditions {
			pre := condition.NewSet(catalog.AncestorConditions(cmd, condition.Pre))
			if err := pre.Evaluate(ctx, caller, cmd, services); err != nil {
				if canceled(ctx, err) {
					return Result{Kind: Canceled, InvocationID: id, Err: err}
				}
				r := newResult(id, ConditionFailure)
				r.Err = err
				r.Phase = condition.Pre.String()
				if ce, ok := err.(*condition.Error); ok {
					r.Reason = ce.Reason
				}
				bestConditionFailure = &r
				continue
			}
		}

		value, err := invoke(ctx, caller, cmd, args, services)
		if err != nil {
			if canceled(ctx, err) {
				return Result{Kind: Canceled, InvocationID: id, Err: err}
			}
			if opts.FallBackOnInvokeFailure {
				continue
			}
			return Result{Kind: InvokeFailure, InvocationID: id, Err: err}
		}

		if !opts.SkipPostConditions {
			post := condition.NewSet(catalog.AncestorConditions(cmd, condition.Post))
			if err := post.Evaluate(ctx, caller, value, services); err != nil {
				if canceled(ctx, err) {
					return Result{Kind: Canceled, InvocationID: id, Err: err}
				}
				// Post-condition failures are terminal: the command
				// already ran (spec.md §7 "Post-condition failures are
				// terminal — they do not cause fallback").
				r := Result{Kind: ConditionFailure, InvocationID: id, Err: err, Phase: condition.Post.String()}
				if ce, ok := err.(*condition.Error); ok {
					r.Reason = ce.Reason
				}
				return r
			}
		}

		return Result{Kind: Success, InvocationID: id, Value: value}
	}

	// No candidate succeeded: surface the most-informative recorded
	// failure, preferring condition > parse > length > search-miss
	// (spec.md §7 "Propagation policy").
	switch {
	case bestConditionFailure != nil:
		return *bestConditionFailure
	case bestParseFailure != nil:
		return *bestParseFailure
	case bestLengthMismatch != nil:
		return *bestLengthMismatch
	default:
		return newResult(id, SearchFailure)
	}
}
