package parser

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cmdforge/cmdforge/host"
)

// EnumMember is one named value of an enum type, in declaration order —
// order matters because "case-insensitive name or ordinal text" (spec.md
// §4.1 item 2) resolves an ordinal string to the member at that index.
type EnumMember struct {
	Name  string
	Value any
}

// EnumDescriptor registers the members of an enum-shaped type so the
// registry can synthesize an Enum Parser for it on demand.
type EnumDescriptor struct {
	Type    reflect.Type
	Members []EnumMember
}

func (d EnumDescriptor) parse(raw string) (any, bool) {
	for i, m := range d.Members {
		if strings.EqualFold(m.Name, raw) {
			return m.Value, true
		}
		if strconv.Itoa(i) == raw {
			return m.Value, true
		}
	}
	return nil, false
}

// enumParser is the parser synthesized by Registry.Get for a registered
// EnumDescriptor.
type enumParser struct {
	descriptor EnumDescriptor
}

func (p *enumParser) TargetType() reflect.Type { return p.descriptor.Type }

func (p *enumParser) Parse(_ context.Context, _ host.Caller, info ParameterInfo, raw any, _ host.Services) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, &Error{Parameter: info.Name, Reason: "enum value must be a string"}
	}
	if v, ok := p.descriptor.parse(s); ok {
		return v, nil
	}
	names := make([]string, len(p.descriptor.Members))
	for i, m := range p.descriptor.Members {
		names[i] = m.Name
	}
	return nil, &Error{
		Parameter: info.Name,
		Reason:    fmt.Sprintf("%q is not one of: %s", s, strings.Join(names, ", ")),
	}
}
