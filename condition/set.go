package condition

import (
	"context"

	"github.com/cmdforge/cmdforge/host"
)

// Set is an ordered collection of Conditions for a single phase, evaluated
// with OR-within-group, AND-across-groups semantics (spec.md §4.5). Groups
// are identified by GroupKey and take the evaluation order of their first
// member; within a group, members are tried in registration order and the
// first success satisfies the whole group.
type Set struct {
	conditions []Condition
}

// NewSet builds a Set from conditions already filtered to a single phase
// and already including every inherited ancestor condition, in
// registration order (own conditions first, then each ancestor group's,
// outward — see spec.md §4.5 "the union of its own and every ancestor
// group's").
func NewSet(conditions []Condition) *Set {
	return &Set{conditions: conditions}
}

// Len reports how many conditions the set holds.
func (s *Set) Len() int { return len(s.conditions) }

// Evaluate runs the set's conditions, returning nil if every group is
// satisfied and the first decisive failure otherwise. Evaluation stops the
// moment a group is fully exhausted without a success — groups after it
// are never evaluated, matching spec.md's "short-circuiting on the first
// decisive failure".
func (s *Set) Evaluate(ctx context.Context, caller host.Caller, subject any, services host.Services) error {
	groups := groupInOrder(s.conditions)

	for _, g := range groups {
		var lastErr error
		satisfied := false
		for _, c := range g.members {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := c.Evaluate(ctx, caller, subject, services)
			if err == nil {
				satisfied = true
				break
			}
			lastErr = err
		}
		if !satisfied {
			if lastErr == nil {
				// A group with no members never blocks the set.
				continue
			}
			return lastErr
		}
	}
	return nil
}

type group struct {
	key     string
	members []Condition
}

// groupInOrder buckets conditions by GroupKey, preserving the order in
// which each key first appears — that order is what "sequential in
// registration order" means for the AND-across-groups combination.
func groupInOrder(conditions []Condition) []group {
	index := make(map[string]int)
	var groups []group
	for _, c := range conditions {
		key := c.GroupKey()
		if i, ok := index[key]; ok {
			groups[i].members = append(groups[i].members, c)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, group{key: key, members: []Condition{c}})
	}
	return groups
}
