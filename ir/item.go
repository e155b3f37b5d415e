package ir

import "github.com/google/uuid"

// Kind is the shape tag of a SchemaItem.
type Kind string

const (
	KindString   Kind = "string"
	KindNumber   Kind = "number"
	KindBoolean  Kind = "boolean"
	KindDatetime Kind = "datetime"
	KindLiteral  Kind = "literal"
	KindObject   Kind = "object"
	KindUnion    Kind = "union"
)

// Kinds lists every kind in editor order.
var Kinds = []Kind{KindString, KindNumber, KindBoolean, KindDatetime, KindLiteral, KindObject, KindUnion}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindString, KindNumber, KindBoolean, KindDatetime, KindLiteral, KindObject, KindUnion:
		return true
	}
	return false
}

// IsScalar reports whether k is a primitive kind.
func (k Kind) IsScalar() bool {
	switch k {
	case KindString, KindNumber, KindBoolean, KindDatetime:
		return true
	}
	return false
}

// RootID is the fixed id of every RootSchema.
const RootID = "root"

// LazyRef points at another node by id.
type LazyRef struct {
	RefID string `json:"refId" yaml:"refId"`
}

// SchemaItem is one node of the schema tree.
//
// Fields is only meaningful for KindObject, Options for KindUnion and
// LiteralValue for KindLiteral. When Lazy is set the node defers to the
// referenced node and every other shape field is ignored.
type SchemaItem struct {
	ID           string        `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	Kind         Kind          `json:"type" yaml:"type"`
	Required     bool          `json:"required" yaml:"required"`
	IsArray      bool          `json:"isArray" yaml:"isArray"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	Default      any           `json:"default,omitempty" yaml:"default,omitempty"`
	Fields       []*SchemaItem `json:"fields,omitempty" yaml:"fields,omitempty"`
	Options      []*SchemaItem `json:"options,omitempty" yaml:"options,omitempty"`
	LiteralValue any           `json:"literalValue,omitempty" yaml:"literalValue,omitempty"`
	Lazy         *LazyRef      `json:"lazy,omitempty" yaml:"lazy,omitempty"`
}

// RootSchema is the top-level object of a schema document. Its Kind is
// always KindObject and its ID always RootID.
type RootSchema struct {
	Kind   Kind          `json:"type" yaml:"type"`
	ID     string        `json:"id" yaml:"id"`
	Fields []*SchemaItem `json:"fields" yaml:"fields"`
}

// GenerateID returns a fresh node id.
func GenerateID() string {
	return "item_" + uuid.NewString()
}

// NewItem creates a node with the default shape for kind: required, not an
// array, empty description, and an empty child list or literal where the
// kind calls for one.
func NewItem(kind Kind, name string) *SchemaItem {
	it := &SchemaItem{
		ID:       GenerateID(),
		Name:     name,
		Kind:     kind,
		Required: true,
	}
	switch kind {
	case KindObject:
		it.Fields = []*SchemaItem{}
	case KindUnion:
		it.Options = []*SchemaItem{}
	case KindLiteral:
		it.LiteralValue = ""
	}
	return it
}

// NewRoot creates an empty root.
func NewRoot() *RootSchema {
	return &RootSchema{Kind: KindObject, ID: RootID, Fields: []*SchemaItem{}}
}

// NewLazy creates a node referring to target.
func NewLazy(name, target string) *SchemaItem {
	it := NewItem(KindObject, name)
	it.Fields = nil
	it.Lazy = &LazyRef{RefID: target}
	return it
}

// IsLazy reports whether the node is a lazy reference.
func (it *SchemaItem) IsLazy() bool { return it != nil && it.Lazy != nil }

func IsObject(it *SchemaItem) bool    { return it.Kind == KindObject }
func IsUnion(it *SchemaItem) bool     { return it.Kind == KindUnion }
func IsContainer(it *SchemaItem) bool { return IsObject(it) || IsUnion(it) }
func IsLeaf(it *SchemaItem) bool      { return !IsContainer(it) }

// HasDefault reports whether a default value is attached. A nil Default is
// indistinguishable from "no default".
func (it *SchemaItem) HasDefault() bool { return it.Default != nil }

// Add appends children to an object node and returns it.
func (it *SchemaItem) Add(fields ...*SchemaItem) *SchemaItem {
	it.Fields = append(it.Fields, fields...)
	return it
}

// AddOption appends options to a union node and returns it.
func (it *SchemaItem) AddOption(opts ...*SchemaItem) *SchemaItem {
	it.Options = append(it.Options, opts...)
	return it
}

// Add appends top-level fields and returns the root.
func (r *RootSchema) Add(fields ...*SchemaItem) *RootSchema {
	r.Fields = append(r.Fields, fields...)
	return r
}
