package skema

import "context"

// UnknownPolicy controls how unknown keys are handled.
type UnknownPolicy int

const (
	UnknownStrip       UnknownPolicy = iota // Drop unknown keys (Zod default).
	UnknownStrict                           // Reject unknown keys with an error.
	UnknownPassthrough                      // Preserve unknown keys in the output.
)

// String returns the policy name as used in logs and CLI flags.
func (p UnknownPolicy) String() string {
	switch p {
	case UnknownStrict:
		return "strict"
	case UnknownPassthrough:
		return "passthrough"
	default:
		return "strip"
	}
}

// ParseUnknownPolicy maps a policy name back to its value. Unrecognized names
// yield UnknownStrip and false.
func ParseUnknownPolicy(s string) (UnknownPolicy, bool) {
	switch s {
	case "strip", "":
		return UnknownStrip, true
	case "strict":
		return UnknownStrict, true
	case "passthrough":
		return UnknownPassthrough, true
	}
	return UnknownStrip, false
}

// TypeName is the type tag a schema reports through Def.
type TypeName string

const (
	TypeString   TypeName = "string"
	TypeNumber   TypeName = "number"
	TypeBoolean  TypeName = "boolean"
	TypeDatetime TypeName = "datetime"
	TypeLiteral  TypeName = "literal"
	TypeObject   TypeName = "object"
	TypeArray    TypeName = "array"
	TypeUnion    TypeName = "union"
	TypeOptional TypeName = "optional"
	TypeDefault  TypeName = "default"
	TypeLazy     TypeName = "lazy"
	TypeUnknown  TypeName = "unknown"
)

// Property is one entry of an object shape.
type Property struct {
	Name   string
	Schema Schema[any]
}

// Def is the introspection record of a schema. Only the fields relevant to
// Type are populated:
//
//	optional, default -> Inner (default also sets DefaultValue)
//	array             -> Element
//	object            -> Shape (declaration order)
//	union             -> Options
//	literal           -> Value
//
// Inner, Element and Options are typed as any so that consumers can treat
// them as opaque schemas and probe them for capabilities.
type Def struct {
	Type         TypeName
	Description  string
	Inner        any
	Element      any
	Shape        []Property
	Options      []any
	Value        any
	DefaultValue func() any
}

// Introspector is implemented by schemas that can describe their own
// construction.
type Introspector interface {
	Def() Def
}

// AbsentHandler is implemented by schemas that decide what happens when an
// object key is missing entirely. present=false means the key stays absent
// in the output.
type AbsentHandler interface {
	ParseAbsent(ctx context.Context) (v any, present bool, err error)
}
