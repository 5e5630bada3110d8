// Package parser implements the Parser Registry described in spec.md §4.1:
// a mapping from target type to Parser, with on-demand synthesis of enum,
// array, list, and set parsers layered over registered element parsers.
package parser

import (
	"context"
	"fmt"
	"reflect"

	"github.com/cmdforge/cmdforge/host"
)

// ParameterInfo describes the parameter a raw value is being parsed for.
// Parsers receive it so error messages and context-sensitive parsing (e.g.
// an enum parser needing its own member set) have the name and type to
// work with.
type ParameterInfo struct {
	Name string
	Type reflect.Type
}

// Parser converts a single raw value into a native value of TargetType.
// Implementations must be side-effect-free and idempotent over (raw,
// context) per spec.md §3's Parser invariants. The raw value is one of
// string, a host-supplied object, or []any for composite parsers.
type Parser interface {
	TargetType() reflect.Type
	Parse(ctx context.Context, caller host.Caller, info ParameterInfo, raw any, services host.Services) (any, error)
}

// Error is the structured rejection a Parser returns instead of a bare
// error, carrying the parameter name and machine-checkable reason (spec.md
// §7 ParseError{parameter, reason}).
type Error struct {
	Parameter string
	Reason    string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse %q: %s: %v", e.Parameter, e.Reason, e.Cause)
	}
	return fmt.Sprintf("parse %q: %s", e.Parameter, e.Reason)
}

func (e *Error) Unwrap() error { return e.Cause }

// UnsupportedTypeError is returned by Registry.Get when no parser, and no
// synthesis rule, covers the requested type.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("parser: unsupported type %s", e.Type)
}

// Func adapts a plain function into a Parser, mirroring the host language's
// allowance for registering "plug-in" primitive parsers without a full
// struct (spec.md §1 treats concrete primitive parsers as plug-ins).
type Func struct {
	Target reflect.Type
	Fn     func(ctx context.Context, caller host.Caller, info ParameterInfo, raw any, services host.Services) (any, error)
}

func (f Func) TargetType() reflect.Type { return f.Target }

func (f Func) Parse(ctx context.Context, caller host.Caller, info ParameterInfo, raw any, services host.Services) (any, error) {
	return f.Fn(ctx, caller, info, raw, services)
}
