package jsonschema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/ir"
)

// Imported is the outcome of converting a JSON Schema into an ir document.
type Imported struct {
	Root *ir.RootSchema
	// Unknown is the policy the root's additionalProperties (or
	// x-kubernetes-preserve-unknown-fields) asks for.
	Unknown skema.UnknownPolicy
	// Warnings lists every construct that had to be approximated.
	Warnings []string
}

// ToRoot decodes a JSON or YAML JSON Schema and converts it with ToRootMap.
func ToRoot(data []byte, f ir.Format) (*Imported, error) {
	var doc map[string]any
	switch f {
	case ir.FormatJSON, "":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json schema: %w", err)
		}
	case ir.FormatYAML:
		// through JSON so numbers come out as float64 like in the JSON path
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode yaml schema: %w", err)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("decode yaml schema: %w", err)
		}
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml schema: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ir.ErrUnsupportedFormat, f)
	}
	if doc == nil {
		return nil, fmt.Errorf("decode schema: top-level value is not an object")
	}
	return ToRootMap(doc), nil
}

// ToRootMap converts a decoded JSON Schema into an ir document. A
// Kubernetes CRD or a bare openAPIV3Schema wrapper is unwrapped first.
//
// Properties are imported in name order. Local references into $defs (or
// definitions) are materialized at their first use; later and recursive uses
// become lazy references to that node. Schemas accepting anything import as
// a union without options, which builds to an unknown validator.
func ToRootMap(doc map[string]any) *Imported {
	if spec, ok := doc["openAPIV3Schema"].(map[string]any); ok {
		doc = spec
	} else if crd := unwrapCRDSchema(doc); crd != nil {
		doc = crd
	}
	im := &schemaImporter{
		defs:      defsOf(doc),
		targets:   map[string]string{},
		expanding: map[string]bool{},
	}
	out := &Imported{Root: ir.NewRoot()}

	if ref, ok := doc["$ref"].(string); ok {
		key, ok := im.defKey(ref)
		def, found := im.defs[key].(map[string]any)
		if !ok || !found {
			im.warnf("/", "root $ref %q does not resolve; importing an empty root", ref)
			out.Warnings = im.warnings
			return out
		}
		doc = def
	}
	if t, _ := doc["type"].(string); t != "" && t != "object" {
		im.warnf("/", "root type %q treated as object", t)
	}
	holder := ir.NewItem(ir.KindObject, "")
	im.fillObject("", holder, doc)
	out.Root.Fields = holder.Fields
	out.Unknown = unknownPolicyOf(doc)
	out.Warnings = im.warnings
	return out
}

// unwrapCRDSchema extracts spec.versions[].schema.openAPIV3Schema from a
// CustomResourceDefinition, preferring a served version, then falls back to
// the legacy spec.validation.openAPIV3Schema.
func unwrapCRDSchema(root map[string]any) map[string]any {
	spec, ok := root["spec"].(map[string]any)
	if !ok {
		return nil
	}
	if vers, ok := spec["versions"].([]any); ok {
		var first map[string]any
		for _, v := range vers {
			vm, _ := v.(map[string]any)
			sch, _ := vm["schema"].(map[string]any)
			oas, ok := sch["openAPIV3Schema"].(map[string]any)
			if !ok {
				continue
			}
			if served, ok := vm["served"].(bool); !ok || served {
				return oas
			}
			if first == nil {
				first = oas
			}
		}
		if first != nil {
			return first
		}
	}
	if val, ok := spec["validation"].(map[string]any); ok {
		if oas, ok := val["openAPIV3Schema"].(map[string]any); ok {
			return oas
		}
	}
	return nil
}

func defsOf(doc map[string]any) map[string]any {
	if m, ok := doc["$defs"].(map[string]any); ok {
		return m
	}
	if m, ok := doc["definitions"].(map[string]any); ok {
		return m
	}
	return nil
}

func unknownPolicyOf(doc map[string]any) skema.UnknownPolicy {
	if v, ok := doc["x-kubernetes-preserve-unknown-fields"].(bool); ok && v {
		return skema.UnknownPassthrough
	}
	if closed(doc["additionalProperties"]) {
		return skema.UnknownStrict
	}
	return skema.UnknownStrip
}

// closed reports whether v is the schema rejecting everything: false, or
// its object form {"not": {}}.
func closed(v any) bool {
	switch t := v.(type) {
	case bool:
		return !t
	case map[string]any:
		not, ok := t["not"]
		if !ok || len(t) != 1 {
			return false
		}
		if b, ok := not.(bool); ok {
			return b
		}
		m, ok := not.(map[string]any)
		return ok && len(m) == 0
	}
	return false
}

type schemaImporter struct {
	defs map[string]any
	// targets maps a def key to the id of the node materialized for it.
	targets   map[string]string
	expanding map[string]bool
	warnings  []string
}

func (im *schemaImporter) warnf(path, format string, args ...any) {
	if path == "" {
		path = "/"
	}
	im.warnings = append(im.warnings, path+": "+fmt.Sprintf(format, args...))
}

// anything is the ir form of the empty schema.
func anything(name string) *ir.SchemaItem {
	return ir.NewItem(ir.KindUnion, name)
}

func optionName(i int) string { return "option_" + strconv.Itoa(i+1) }

func (im *schemaImporter) schema(path, name string, raw any) *ir.SchemaItem {
	s, ok := raw.(map[string]any)
	if !ok {
		if b, isBool := raw.(bool); isBool && !b {
			im.warnf(path, "false schema imported as accepting anything")
		}
		return anything(name)
	}
	var it *ir.SchemaItem
	if ref, ok := s["$ref"].(string); ok {
		it = im.ref(path, name, ref)
	} else {
		it = im.typed(path, name, s)
	}
	im.annotate(it, s)
	return it
}

// annotate copies description and default. References keep no description.
func (im *schemaImporter) annotate(it *ir.SchemaItem, s map[string]any) {
	if d, ok := s["description"].(string); ok && it.Lazy == nil {
		it.Description = d
	}
	if v, ok := s["default"]; ok && v != nil {
		it.Default = v
	}
}

func (im *schemaImporter) typed(path, name string, s map[string]any) *ir.SchemaItem {
	if v, ok := s["const"]; ok {
		return im.literal(path, name, v)
	}
	if e, ok := s["enum"].([]any); ok && len(e) > 0 {
		if len(e) == 1 {
			return im.literal(path, name, e[0])
		}
		u := ir.NewItem(ir.KindUnion, name)
		for i, v := range e {
			u.AddOption(im.literal(path, optionName(i), v))
		}
		return u
	}
	if v, _ := s["x-kubernetes-int-or-string"].(bool); v {
		return ir.NewItem(ir.KindUnion, name).AddOption(
			ir.NewItem(ir.KindNumber, optionName(0)),
			ir.NewItem(ir.KindString, optionName(1)),
		)
	}
	if _, ok := unionBranches(s); ok {
		u := ir.NewItem(ir.KindUnion, name)
		im.fillUnion(path, u, s)
		return u
	}
	if all, ok := s["allOf"].([]any); ok && len(all) > 0 {
		if len(all) > 1 {
			im.warnf(path, "allOf with %d schemas: only the first is imported", len(all))
		}
		return im.schema(path, name, all[0])
	}

	types := typesOf(s)
	if len(types) > 1 {
		u := ir.NewItem(ir.KindUnion, name)
		for i, t := range types {
			u.AddOption(im.scalarOrContainer(path, optionName(i), t, s))
		}
		return u
	}
	t := ""
	if len(types) == 1 {
		t = types[0]
	}
	return im.scalarOrContainer(path, name, t, s)
}

func (im *schemaImporter) scalarOrContainer(path, name, t string, s map[string]any) *ir.SchemaItem {
	switch t {
	case "string":
		if f, _ := s["format"].(string); f == "date-time" {
			return ir.NewItem(ir.KindDatetime, name)
		}
		return ir.NewItem(ir.KindString, name)
	case "number", "integer":
		return ir.NewItem(ir.KindNumber, name)
	case "boolean":
		return ir.NewItem(ir.KindBoolean, name)
	case "array":
		el := im.schema(path, name, s["items"])
		if el.IsArray {
			im.warnf(path, "nested arrays are not representable; elements accept anything")
			el = anything(name)
		}
		el.IsArray = true
		return el
	case "object":
		it := ir.NewItem(ir.KindObject, name)
		im.fillObject(path, it, s)
		return it
	case "":
		if _, ok := s["properties"]; ok {
			it := ir.NewItem(ir.KindObject, name)
			im.fillObject(path, it, s)
			return it
		}
		return anything(name)
	}
	im.warnf(path, "type %q imported as accepting anything", t)
	return anything(name)
}

// typesOf returns the declared types. "null" is dropped from type lists,
// where it only marks the field nullable.
func typesOf(s map[string]any) []string {
	switch t := s["type"].(type) {
	case string:
		return []string{t}
	case []any:
		var out []string
		for _, v := range t {
			if str, ok := v.(string); ok && str != "null" {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

func unionBranches(s map[string]any) ([]any, bool) {
	for _, k := range []string{"anyOf", "oneOf"} {
		if b, ok := s[k].([]any); ok {
			return b, true
		}
	}
	return nil, false
}

func (im *schemaImporter) literal(path, name string, v any) *ir.SchemaItem {
	if !ir.IsLiteralValue(v) {
		im.warnf(path, "literal of type %T imported as accepting anything", v)
		return anything(name)
	}
	it := ir.NewItem(ir.KindLiteral, name)
	it.LiteralValue = v
	return it
}

func (im *schemaImporter) fillObject(path string, it *ir.SchemaItem, s map[string]any) {
	props, _ := s["properties"].(map[string]any)
	names := make([]string, 0, len(props))
	for k := range props {
		names = append(names, k)
	}
	sort.Strings(names)

	required := map[string]bool{}
	if req, ok := s["required"].([]any); ok {
		for _, r := range req {
			if n, ok := r.(string); ok {
				required[n] = true
			}
		}
	}
	for _, n := range names {
		f := im.schema(path+"/"+escapePointer(n), n, props[n])
		f.Required = required[n]
		it.Add(f)
	}
	if ap, ok := s["additionalProperties"].(map[string]any); ok && !closed(ap) {
		im.warnf(path, "additionalProperties schema is not representable; extra keys follow the unknown-key policy")
	}
	if _, ok := s["patternProperties"]; ok {
		im.warnf(path, "patternProperties are not representable")
	}
}

func (im *schemaImporter) fillUnion(path string, it *ir.SchemaItem, s map[string]any) {
	branches, _ := unionBranches(s)
	for i, b := range branches {
		it.AddOption(im.schema(path+"/"+strconv.Itoa(i), optionName(i), b))
	}
}

func (im *schemaImporter) defKey(ref string) (string, bool) {
	for _, prefix := range []string{"#/$defs/", "#/definitions/"} {
		if key, ok := strings.CutPrefix(ref, prefix); ok {
			key = strings.ReplaceAll(key, "~1", "/")
			return strings.ReplaceAll(key, "~0", "~"), true
		}
	}
	return "", false
}

// ref materializes the referenced def at its first use. Objects and unions
// are registered before their children are imported, so recursive uses turn
// into lazy references; other defs are inlined at every use.
func (im *schemaImporter) ref(path, name, ref string) *ir.SchemaItem {
	key, ok := im.defKey(ref)
	if !ok {
		im.warnf(path, "$ref %q is not a local definition; imported as accepting anything", ref)
		return anything(name)
	}
	if id, ok := im.targets[key]; ok {
		return ir.NewLazy(name, id)
	}
	def, ok := im.defs[key]
	if !ok {
		im.warnf(path, "$ref to unknown definition %q; imported as accepting anything", key)
		return anything(name)
	}
	if im.expanding[key] {
		im.warnf(path, "cyclic $ref to %q through a non-object; imported as accepting anything", key)
		return anything(name)
	}
	im.expanding[key] = true
	defer delete(im.expanding, key)

	s, _ := def.(map[string]any)
	switch containerKind(s) {
	case ir.KindObject:
		it := ir.NewItem(ir.KindObject, name)
		im.targets[key] = it.ID
		im.fillObject(path, it, s)
		im.annotate(it, s)
		return it
	case ir.KindUnion:
		it := ir.NewItem(ir.KindUnion, name)
		im.targets[key] = it.ID
		im.fillUnion(path, it, s)
		im.annotate(it, s)
		return it
	}
	return im.schema(path, name, def)
}

// containerKind mirrors the precedence of typed for schemas that import as
// an object or a union.
func containerKind(s map[string]any) ir.Kind {
	if s == nil {
		return ""
	}
	if _, ok := s["$ref"]; ok {
		return ""
	}
	if _, ok := s["const"]; ok {
		return ""
	}
	if _, ok := s["enum"]; ok {
		return ""
	}
	if v, _ := s["x-kubernetes-int-or-string"].(bool); v {
		return ""
	}
	if _, ok := unionBranches(s); ok {
		return ir.KindUnion
	}
	if _, ok := s["allOf"]; ok {
		return ""
	}
	types := typesOf(s)
	if len(types) == 1 && types[0] == "object" {
		return ir.KindObject
	}
	if len(types) == 0 {
		if _, ok := s["properties"]; ok {
			return ir.KindObject
		}
	}
	return ""
}
