// Package argsource implements the Argument Source described in spec.md
// §4.3: an ordered consumable over positional and named raw values, used
// by Search to peek at leading name tokens and by the parser plumbing to
// pull values out in declared-parameter order.
package argsource

import "strings"

// Comparer controls how named argument keys are matched.
type Comparer int

const (
	// Ordinal compares named keys byte-for-byte.
	Ordinal Comparer = iota
	// OrdinalIgnoreCase compares named keys case-insensitively. This is the
	// default per spec.md §9 Open Question (3).
	OrdinalIgnoreCase
)

// Equal reports whether a and b match under this comparer.
func (c Comparer) Equal(a, b string) bool {
	if c == OrdinalIgnoreCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// Source is an ordered consumable over two disjoint stores: positional
// values and name-keyed values. It is transient — a pipeline creates one
// per execution and discards it at the end (spec.md §3 "Ownership &
// lifecycle").
type Source struct {
	positional []any
	cursor     int // index of the next unconsumed positional value

	names    []string // preserves registration/insertion order for stable iteration
	named    map[string]any
	consumed map[string]bool

	comparer Comparer
}

// New builds a Source from a purely positional object sequence.
func New(positional []any, comparer Comparer) *Source {
	return &Source{
		positional: positional,
		named:      make(map[string]any),
		consumed:   make(map[string]bool),
		comparer:   comparer,
	}
}

// KV is one entry of a key/value sequence passed to NewFromPairs. A nil
// Value demotes the entry to a positional argument named by Key, per
// spec.md §4.3 "Construction accepts... a key-value sequence (any entry
// whose value is null is demoted to a positional of the key string)".
type KV struct {
	Key   string
	Value any
}

// NewFromPairs builds a Source from a key/value sequence, demoting
// null-valued entries to positional arguments.
func NewFromPairs(pairs []KV, comparer Comparer) *Source {
	s := &Source{
		named:    make(map[string]any),
		consumed: make(map[string]bool),
		comparer: comparer,
	}
	for _, p := range pairs {
		if p.Value == nil {
			s.positional = append(s.positional, p.Key)
			continue
		}
		s.names = append(s.names, p.Key)
		s.named[p.Key] = p.Value
	}
	return s
}

// NewFromTokens builds a Source from a pre-tokenized string, one token per
// positional slot.
func NewFromTokens(tokens []string, comparer Comparer) *Source {
	positional := make([]any, len(tokens))
	for i, t := range tokens {
		positional[i] = t
	}
	return New(positional, comparer)
}

func (s *Source) lookupNamed(name string) (any, bool) {
	if s.comparer == Ordinal {
		if s.consumed[name] {
			return nil, false
		}
		v, ok := s.named[name]
		return v, ok
	}
	for _, k := range s.names {
		if s.consumed[k] {
			continue
		}
		if s.comparer.Equal(k, name) {
			return s.named[k], true
		}
	}
	return nil, false
}

func (s *Source) markConsumed(name string) {
	for _, k := range s.names {
		if !s.consumed[k] && s.comparer.Equal(k, name) {
			s.consumed[k] = true
			return
		}
	}
}

// TryNext probes the named map first (consuming the entry on a hit), then
// falls back to the next unconsumed positional value, advancing the cursor.
func (s *Source) TryNext(parameterName string) (value any, found bool) {
	if v, ok := s.lookupNamed(parameterName); ok {
		s.markConsumed(parameterName)
		return v, true
	}
	if s.cursor < len(s.positional) {
		v := s.positional[s.cursor]
		s.cursor++
		return v, true
	}
	return nil, false
}

// TryPeekPositional returns the positional value at index i without
// consuming it, and only when that slot holds a string — used by Search to
// inspect name-path tokens. Index is absolute (from the start of the
// positional store), not relative to the cursor.
func (s *Source) TryPeekPositional(index int) (value string, found bool) {
	if index < 0 || index >= len(s.positional) {
		return "", false
	}
	str, ok := s.positional[index].(string)
	if !ok {
		return "", false
	}
	return str, true
}

// SetSize advances the positional cursor past the leading searchHeight
// tokens consumed as the command's name path, and returns the count of
// positional values remaining.
func (s *Source) SetSize(searchHeight int) int {
	s.cursor = searchHeight
	return s.Length()
}

// Length reports how many positional values remain unconsumed.
func (s *Source) Length() int {
	if s.cursor >= len(s.positional) {
		return 0
	}
	return len(s.positional) - s.cursor
}

// TakeRemaining consumes and returns every unconsumed positional value.
func (s *Source) TakeRemaining() []any {
	if s.cursor >= len(s.positional) {
		return nil
	}
	rest := s.positional[s.cursor:]
	s.cursor = len(s.positional)
	out := make([]any, len(rest))
	copy(out, rest)
	return out
}

// JoinRemaining consumes every unconsumed positional value, stringifies
// each, and joins them with sep — used for remainder parameters exposed as
// a single string.
func (s *Source) JoinRemaining(sep string) string {
	rest := s.TakeRemaining()
	parts := make([]string, len(rest))
	for i, v := range rest {
		if str, ok := v.(string); ok {
			parts[i] = str
		} else {
			parts[i] = ""
		}
	}
	return strings.Join(parts, sep)
}
