package parser

import (
	"context"
	"fmt"
	"reflect"

	"github.com/cmdforge/cmdforge/host"
)

// arrayParser parses each element of an object sequence independently with
// the wrapped element parser, short-circuiting on the first failure with an
// index-tagged error (spec.md §4.1 "the first element failure
// short-circuits with an index-tagged error").
type arrayParser struct {
	elemType reflect.Type
	elem     Parser
	self     reflect.Type
}

func (p *arrayParser) TargetType() reflect.Type { return p.self }

func (p *arrayParser) parseElements(ctx context.Context, caller host.Caller, info ParameterInfo, raw any, services host.Services) ([]any, error) {
	seq, ok := raw.([]any)
	if !ok {
		return nil, &Error{Parameter: info.Name, Reason: "expected a sequence of values"}
	}
	out := make([]any, len(seq))
	elemInfo := ParameterInfo{Name: info.Name, Type: p.elemType}
	for i, raw := range seq {
		v, err := p.elem.Parse(ctx, caller, elemInfo, raw, services)
		if err != nil {
			return nil, &Error{
				Parameter: info.Name,
				Reason:    fmt.Sprintf("element %d: %v", i, err),
				Cause:     err,
			}
		}
		out[i] = v
	}
	return out, nil
}

func (p *arrayParser) Parse(ctx context.Context, caller host.Caller, info ParameterInfo, raw any, services host.Services) (any, error) {
	elems, err := p.parseElements(ctx, caller, info, raw, services)
	if err != nil {
		return nil, err
	}
	slice := reflect.MakeSlice(reflect.SliceOf(p.elemType), len(elems), len(elems))
	for i, v := range elems {
		if v == nil {
			continue
		}
		slice.Index(i).Set(reflect.ValueOf(v))
	}
	return slice.Interface(), nil
}

// listParser wraps arrayParser and re-tags the result as the registry's
// named List[T] shape instead of a plain slice.
type listParser struct {
	arrayParser
}

func (p *listParser) Parse(ctx context.Context, caller host.Caller, info ParameterInfo, raw any, services host.Services) (any, error) {
	elems, err := p.parseElements(ctx, caller, info, raw, services)
	if err != nil {
		return nil, err
	}
	listVal := reflect.MakeSlice(p.self, len(elems), len(elems))
	for i, v := range elems {
		if v == nil {
			continue
		}
		listVal.Index(i).Set(reflect.ValueOf(v))
	}
	return listVal.Interface(), nil
}

// setParser wraps arrayParser and folds the result into a Set[T] keyed by
// membership rather than position.
type setParser struct {
	arrayParser
}

func (p *setParser) Parse(ctx context.Context, caller host.Caller, info ParameterInfo, raw any, services host.Services) (any, error) {
	elems, err := p.parseElements(ctx, caller, info, raw, services)
	if err != nil {
		return nil, err
	}
	setVal := reflect.MakeMapWithSize(p.self, len(elems))
	unit := reflect.ValueOf(struct{}{})
	for _, v := range elems {
		if v == nil {
			continue
		}
		setVal.SetMapIndex(reflect.ValueOf(v), unit)
	}
	return setVal.Interface(), nil
}
