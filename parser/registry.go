package parser

import (
	"fmt"
	"reflect"
	"sync"
)

// Registry resolves a target type to a Parser, synthesizing composite
// parsers on demand per spec.md §4.1's five-step resolution order. It is
// read-only after registration completes (spec.md §5 "The... Parser
// Registry are read-only after startup and safely shared across
// invocations without locking") — the mutex here guards the registration
// window and the lazy-synthesis memoization, not steady-state reads.
type Registry struct {
	mu       sync.RWMutex
	exact    map[reflect.Type]Parser
	enums    map[reflect.Type]EnumDescriptor
	synth    map[reflect.Type]Parser // memoized array/list/set/enum parsers, keyed by the composite type itself
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		exact: make(map[reflect.Type]Parser),
		enums: make(map[reflect.Type]EnumDescriptor),
		synth: make(map[reflect.Type]Parser),
	}
}

// Register installs a Parser for its exact target type. Registering a
// second parser for the same type replaces the first — last registration
// wins, matching the builder's general "last call configures" idiom.
func (r *Registry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exact[p.TargetType()] = p
}

// RegisterEnum installs the member table for an enum-shaped type, enabling
// Get to synthesize an Enum Parser for it.
func (r *Registry) RegisterEnum(d EnumDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enums[d.Type] = d
}

// Get resolves t to a Parser following spec.md §4.1's order: exact hit,
// then enum, then array (T[]), then named List/Set collection shapes.
// Nested collections (an array of lists, a set of sets, ...) are rejected.
// Synthesized parsers are memoized per element type, so Get is idempotent
// per T (spec.md §8 round-trip property).
func (r *Registry) Get(t reflect.Type) (Parser, error) {
	r.mu.RLock()
	if p, ok := r.exact[t]; ok {
		r.mu.RUnlock()
		return p, nil
	}
	if d, ok := r.enums[t]; ok {
		r.mu.RUnlock()
		return r.synthesizeEnum(d)
	}
	if p, ok := r.synth[t]; ok {
		r.mu.RUnlock()
		return p, nil
	}
	r.mu.RUnlock()

	switch {
	case t.Kind() == reflect.Slice && t.Name() == "":
		return r.synthesizeArray(t)
	case isNamedList(t):
		return r.synthesizeList(t)
	case isNamedSet(t):
		return r.synthesizeSet(t)
	default:
		return nil, &UnsupportedTypeError{Type: t}
	}
}

func isNamedList(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && t.Name() != ""
}

func isNamedSet(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.Name() != "" && t.Elem().Kind() == reflect.Struct && t.Elem().NumField() == 0
}

func isCollectionShape(t reflect.Type) bool {
	return (t.Kind() == reflect.Slice) || isNamedSet(t)
}

func (r *Registry) synthesizeEnum(d EnumDescriptor) (Parser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.synth[d.Type]; ok {
		return p, nil
	}
	p := &enumParser{descriptor: d}
	r.synth[d.Type] = p
	return p, nil
}

func (r *Registry) synthesizeArray(t reflect.Type) (Parser, error) {
	elemType := t.Elem()
	if isCollectionShape(elemType) {
		return nil, &UnsupportedTypeError{Type: t}
	}
	elem, err := r.Get(elemType)
	if err != nil {
		return nil, fmt.Errorf("array element type %s: %w", elemType, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.synth[t]; ok {
		return p, nil
	}
	p := &arrayParser{elemType: elemType, elem: elem, self: t}
	r.synth[t] = p
	return p, nil
}

func (r *Registry) synthesizeList(t reflect.Type) (Parser, error) {
	elemType := t.Elem()
	if isCollectionShape(elemType) {
		return nil, &UnsupportedTypeError{Type: t}
	}
	elem, err := r.Get(elemType)
	if err != nil {
		return nil, fmt.Errorf("list element type %s: %w", elemType, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.synth[t]; ok {
		return p, nil
	}
	p := &listParser{arrayParser{elemType: elemType, elem: elem, self: t}}
	r.synth[t] = p
	return p, nil
}

func (r *Registry) synthesizeSet(t reflect.Type) (Parser, error) {
	elemType := t.Key()
	if isCollectionShape(elemType) {
		return nil, &UnsupportedTypeError{Type: t}
	}
	elem, err := r.Get(elemType)
	if err != nil {
		return nil, fmt.Errorf("set element type %s: %w", elemType, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.synth[t]; ok {
		return p, nil
	}
	p := &setParser{arrayParser{elemType: elemType, elem: elem, self: t}}
	r.synth[t] = p
	return p, nil
}
