// Package pipeline implements the Pipeline and Result Model described in
// spec.md §4.4, §4.6, §4.7, and §7: per-candidate length gating and
// parameter parsing, grouped pre/post condition evaluation, invocation of
// either command shape, and production of a single terminal Result, which
// dispatch.Manager hands to its chain of Result Handlers.
package pipeline

import "github.com/google/uuid"

// Kind discriminates the Result variants of spec.md §7.
type Kind int

const (
	Success Kind = iota
	SearchFailure
	LengthMismatch
	ParseFailure
	ConditionFailure
	InvokeFailure
	Canceled
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case SearchFailure:
		return "search-failure"
	case LengthMismatch:
		return "length-mismatch"
	case ParseFailure:
		return "parse-failure"
	case ConditionFailure:
		return "condition-failure"
	case InvokeFailure:
		return "invoke-failure"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// LengthDirection tells a LengthMismatch whether the argument vector was
// too short or too long for the matched command.
type LengthDirection int

const (
	TooShort LengthDirection = iota
	TooLong
)

// Result is the tagged union spec.md §3 and §7 describe: only the payload
// fields that belong to Kind are populated. InvocationID
// identifies this particular pipeline run — generated once per Execute
// call regardless of how many candidates are tried — for correlation in
// logs and Result Handlers.
type Result struct {
	Kind         Kind
	InvocationID uuid.UUID

	// Success
	Value any

	// LengthMismatch
	Direction LengthDirection
	Length    int
	MinLength int
	MaxLength int

	// ParseFailure / ConditionFailure / InvokeFailure / SearchFailure
	Parameter   string
	Phase       string // "pre" or "post", set only for ConditionFailure
	Reason      string
	Err         error
	Suggestions []string // populated on SearchFailure when available
}

func (r Result) Error() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Reason
}

func newResult(id uuid.UUID, kind Kind) Result {
	return Result{Kind: kind, InvocationID: id}
}
