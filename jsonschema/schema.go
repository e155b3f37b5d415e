// Package jsonschema converts between ir trees and JSON Schema (draft
// 2020-12) documents. FromRoot serves consumers such as AI tool definitions
// that read JSON Schema rather than Zod; ToRoot brings existing schemas,
// including Kubernetes CRDs, into the editor.
//
// Lazy references become "$ref": "#/$defs/<id>" with each target rendered
// once under $defs, so recursive schemas export as finite documents.
// Semantics follow package builder: unknown keys are allowed unless Strict
// is requested, a field with a default is not required, and anything the
// builder accepts without checking exports as the empty (true) schema.
package jsonschema

import (
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	gjs "github.com/google/jsonschema-go/jsonschema"

	"github.com/reoring/skema/ir"
)

// Draft is the $schema URI written by FromRoot.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Option configures an export.
type Option func(*config)

type config struct {
	title  string
	strict bool
}

// WithTitle sets the document title.
func WithTitle(t string) Option { return func(c *config) { c.title = t } }

// WithStrict forbids properties outside each object's shape, mirroring
// builder.WithUnknownPolicy(skema.UnknownStrict).
func WithStrict() Option { return func(c *config) { c.strict = true } }

// FromRoot converts root into a JSON Schema. It fails only when a default
// value cannot be serialized.
func FromRoot(root *ir.RootSchema, opts ...Option) (*gjs.Schema, error) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	x := &exporter{cfg: cfg, idx: ir.NewIndex(root), defs: map[string]*gjs.Schema{}}

	var fields []*ir.SchemaItem
	if root != nil {
		fields = root.Fields
	}
	out, err := x.object(fields)
	if err != nil {
		return nil, err
	}
	if err := x.drainDefs(); err != nil {
		return nil, err
	}
	out.Schema = Draft
	out.Title = cfg.title
	if len(x.defs) > 0 {
		out.Defs = x.defs
	}
	return out, nil
}

// Marshal renders s as indented JSON.
func Marshal(s *gjs.Schema) ([]byte, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json schema: %w", err)
	}
	return append(b, '\n'), nil
}

type exporter struct {
	cfg     config
	idx     *ir.Index
	defs    map[string]*gjs.Schema
	pending []string
}

// drainDefs renders every referenced target. Rendering a target can
// reference further targets, so it loops until nothing is pending.
func (x *exporter) drainDefs() error {
	for len(x.pending) > 0 {
		id := x.pending[0]
		x.pending = x.pending[1:]
		target, _ := x.idx.Lookup(id)
		s, err := x.node(target)
		if err != nil {
			return err
		}
		x.defs[id] = s
	}
	return nil
}

func (x *exporter) field(it *ir.SchemaItem) (*gjs.Schema, error) {
	s, err := x.node(it)
	if err != nil {
		return nil, err
	}
	if it.IsArray {
		s = &gjs.Schema{Type: "array", Items: s}
	}
	if it.HasDefault() {
		raw, err := json.Marshal(it.Default)
		if err != nil {
			return nil, fmt.Errorf("default of %q: %w", it.Name, err)
		}
		s.Default = raw
	}
	return s, nil
}

func (x *exporter) node(it *ir.SchemaItem) (*gjs.Schema, error) {
	if it.Lazy != nil {
		return x.ref(it.Lazy.RefID), nil
	}
	var (
		s   *gjs.Schema
		err error
	)
	switch it.Kind {
	case ir.KindString:
		s = &gjs.Schema{Type: "string"}
	case ir.KindNumber:
		s = &gjs.Schema{Type: "number"}
	case ir.KindBoolean:
		s = &gjs.Schema{Type: "boolean"}
	case ir.KindDatetime:
		s = &gjs.Schema{Type: "string", Format: "date-time"}
	case ir.KindLiteral:
		var v any = ""
		if ir.IsLiteralValue(it.LiteralValue) {
			v = it.LiteralValue
		}
		s = &gjs.Schema{Const: &v}
	case ir.KindObject:
		s, err = x.object(it.Fields)
	case ir.KindUnion:
		s, err = x.union(it.Options)
	default:
		return &gjs.Schema{}, nil
	}
	if err != nil {
		return nil, err
	}
	s.Description = it.Description
	return s, nil
}

func (x *exporter) object(fields []*ir.SchemaItem) (*gjs.Schema, error) {
	s := &gjs.Schema{Type: "object", Properties: map[string]*gjs.Schema{}}
	required := map[string]bool{}
	for _, f := range fields {
		if f == nil {
			continue
		}
		p, err := x.field(f)
		if err != nil {
			return nil, err
		}
		// a repeated name takes the last definition
		s.Properties[f.Name] = p
		required[f.Name] = f.Required && !f.HasDefault()
	}
	for name, req := range required {
		if req {
			s.Required = append(s.Required, name)
		}
	}
	sort.Strings(s.Required)
	if x.cfg.strict {
		s.AdditionalProperties = &gjs.Schema{Not: &gjs.Schema{}}
	}
	return s, nil
}

func (x *exporter) union(options []*ir.SchemaItem) (*gjs.Schema, error) {
	var branches []*gjs.Schema
	for _, o := range options {
		if o == nil {
			continue
		}
		b, err := x.node(o)
		if err != nil {
			return nil, err
		}
		if o.IsArray {
			b = &gjs.Schema{Type: "array", Items: b}
		}
		branches = append(branches, b)
	}
	if len(branches) < 2 {
		return &gjs.Schema{}, nil
	}
	return &gjs.Schema{AnyOf: branches}, nil
}

// ref points at the $defs entry for id, scheduling the target for
// rendering. Missing targets, lazy targets and the root resolve to the empty
// schema, as they do in the builder.
func (x *exporter) ref(id string) *gjs.Schema {
	target, ok := x.idx.Lookup(id)
	if !ok || target.Lazy != nil {
		return &gjs.Schema{}
	}
	// nil marks a target scheduled but not yet rendered
	if _, seen := x.defs[id]; !seen {
		x.defs[id] = nil
		x.pending = append(x.pending, id)
	}
	return &gjs.Schema{Ref: "#/$defs/" + escapePointer(id)}
}

func escapePointer(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
