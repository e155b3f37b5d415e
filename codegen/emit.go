// Package codegen renders an ir tree as Zod TypeScript source.
//
// The output is a single module:
//
//	import { z } from "zod";
//
//	export const schema = z.object({
//	  name: z.string(),
//	  age: z.number().optional().default(0),
//	});
//
//	export type Schema = z.infer<typeof schema>;
//
// Rendering is purely textual and does not share state with package builder.
// Names, descriptions and string literals are emitted as JSON string literals,
// which are valid JavaScript.
package codegen

import (
	"strings"

	"github.com/reoring/skema/ir"
)

// Option configures Emit.
type Option func(*config)

type config struct {
	schemaName string
	typeName   string
	indent     string
}

// WithSchemaName sets the exported const name. Defaults to "schema".
func WithSchemaName(name string) Option {
	return func(c *config) {
		if isIdentifier(name) {
			c.schemaName = name
		}
	}
}

// WithTypeName sets the exported inferred type name. Defaults to "Schema".
func WithTypeName(name string) Option {
	return func(c *config) {
		if isIdentifier(name) {
			c.typeName = name
		}
	}
}

// WithIndent sets the indentation unit. Defaults to two spaces.
func WithIndent(unit string) Option {
	return func(c *config) {
		if unit != "" && strings.Trim(unit, " \t") == "" {
			c.indent = unit
		}
	}
}

// Emit renders root as a Zod module. Lines are joined with "\n" and there is
// no trailing newline.
func Emit(root *ir.RootSchema, opts ...Option) string {
	cfg := config{schemaName: "schema", typeName: "Schema", indent: "  "}
	for _, o := range opts {
		o(&cfg)
	}
	e := &emitter{cfg: cfg, idx: ir.NewIndex(root)}

	lines := []string{
		`import { z } from "zod";`,
		"",
		"export const " + cfg.schemaName + " = z.object({",
	}
	var fields []*ir.SchemaItem
	if root != nil {
		fields = root.Fields
	}
	for _, f := range e.fieldEntries(fields, 1) {
		lines = append(lines, cfg.indent+f.key+": "+f.code+",")
	}
	lines = append(lines, "});", "", "export type "+cfg.typeName+" = z.infer<typeof "+cfg.schemaName+">;")
	return strings.Join(lines, "\n")
}

// EmitItem renders a single node as an expression, with the same positional
// wrapping a field would get.
func EmitItem(it *ir.SchemaItem, opts ...Option) string {
	cfg := config{schemaName: "schema", typeName: "Schema", indent: "  "}
	for _, o := range opts {
		o(&cfg)
	}
	if it == nil {
		return "z.unknown()"
	}
	e := &emitter{cfg: cfg, idx: ir.NewItemIndex(it)}
	return e.field(it, 0)
}

type emitter struct {
	cfg config
	idx *ir.Index
}

type fieldEntry struct {
	key  string
	code string
}

// fieldEntries renders the fields of one object. A repeated name keeps its
// first position and takes the last rendering, as a JS object literal would.
func (e *emitter) fieldEntries(fields []*ir.SchemaItem, depth int) []fieldEntry {
	var out []fieldEntry
	pos := map[string]int{}
	for _, f := range fields {
		if f == nil {
			continue
		}
		ent := fieldEntry{key: renderKey(f.Name), code: e.field(f, depth)}
		if i, ok := pos[f.Name]; ok {
			out[i] = ent
			continue
		}
		pos[f.Name] = len(out)
		out = append(out, ent)
	}
	return out
}

// field renders a node followed by its positional suffixes: array, then
// optional, then default.
func (e *emitter) field(it *ir.SchemaItem, depth int) string {
	code := e.node(it, depth)
	if it.IsArray {
		code = "z.array(" + code + ")"
	}
	if !it.Required {
		code += ".optional()"
	}
	if it.HasDefault() {
		if lit, ok := renderValue(it.Default); ok {
			code += ".default(" + lit + ")"
		}
	}
	return code
}

// node renders the node itself. The description belongs to the node, so it
// is appended here once and never again by the callers.
func (e *emitter) node(it *ir.SchemaItem, depth int) string {
	if it.Lazy != nil {
		return e.lazy(it)
	}
	var code string
	switch it.Kind {
	case ir.KindString:
		code = "z.string()"
	case ir.KindNumber:
		code = "z.number()"
	case ir.KindBoolean:
		code = "z.boolean()"
	case ir.KindDatetime:
		code = "z.iso.datetime()"
	case ir.KindLiteral:
		code = "z.literal(" + renderLiteral(it.LiteralValue) + ")"
	case ir.KindObject:
		code = e.object(it.Fields, depth)
	case ir.KindUnion:
		code = e.union(it.Options, depth)
	default:
		return "z.unknown()"
	}
	if it.Description != "" {
		code += ".describe(" + quote(it.Description) + ")"
	}
	return code
}

func (e *emitter) object(fields []*ir.SchemaItem, depth int) string {
	entries := e.fieldEntries(fields, depth+1)
	if len(entries) == 0 {
		return "z.object({})"
	}
	pad := strings.Repeat(e.cfg.indent, depth)
	lines := make([]string, len(entries))
	for i, f := range entries {
		lines[i] = pad + e.cfg.indent + f.key + ": " + f.code
	}
	return "z.object({\n" + strings.Join(lines, ",\n") + "\n" + pad + "})"
}

func (e *emitter) union(options []*ir.SchemaItem, depth int) string {
	codes := make([]string, 0, len(options))
	for _, o := range options {
		if o == nil {
			continue
		}
		c := e.node(o, depth)
		if o.IsArray {
			c = "z.array(" + c + ")"
		}
		codes = append(codes, c)
	}
	if len(codes) < 2 {
		return "z.unknown()"
	}
	return "z.union([" + strings.Join(codes, ", ") + "])"
}

// lazy refers to the target by its name, assuming the surrounding module
// declares it. Targets that are missing or whose name is not an identifier
// defer to z.unknown().
func (e *emitter) lazy(it *ir.SchemaItem) string {
	target, ok := e.idx.Lookup(it.Lazy.RefID)
	if !ok || !isIdentifier(target.Name) {
		return "z.lazy(() => z.unknown())"
	}
	return "z.lazy(() => " + target.Name + ")"
}
