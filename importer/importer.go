// Package importer reconstructs an ir tree from a runtime schema.
//
// It reads schemas only through skema.Introspector, so any validation
// library binding that reports a skema.Def can be imported. The conversion
// is best-effort and never fails: constructs without an ir counterpart
// degrade to the closest kind, usually string.
package importer

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/ir"
)

// Option configures an import.
type Option func(*config)

type config struct {
	newID  func() string
	logger *zap.Logger
}

// WithIDGenerator sets the id source for created nodes. Defaults to
// ir.GenerateID.
func WithIDGenerator(fn func() string) Option {
	return func(c *config) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithLogger sets the logger used to report lossy conversions. Defaults to
// zap.L().
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

type importer struct {
	newID func() string
	log   *zap.SugaredLogger
}

func newImporter(opts []Option) *importer {
	c := config{newID: ir.GenerateID, logger: zap.L()}
	for _, o := range opts {
		o(&c)
	}
	return &importer{newID: c.newID, log: c.logger.Sugar()}
}

// Import converts schema into a node called name. It returns nil only for a
// nil schema.
func Import(ctx context.Context, schema any, name string, opts ...Option) *ir.SchemaItem {
	if schema == nil {
		return nil
	}
	return newImporter(opts).item(ctx, schema, name)
}

// ImportRoot converts an object schema into a root document whose fields are
// the object's properties in declaration order. Optional and default
// wrappers around the object are looked through; any other schema yields an
// empty root.
func ImportRoot(ctx context.Context, schema any, opts ...Option) *ir.RootSchema {
	im := newImporter(opts)
	root := ir.NewRoot()
	def, ok := skema.DefOf(schema)
	for ok && (def.Type == skema.TypeOptional || def.Type == skema.TypeDefault) {
		def, ok = skema.DefOf(def.Inner)
	}
	if !ok || def.Type != skema.TypeObject {
		im.log.Debugw("top-level schema is not an object, importing an empty root", "type", def.Type)
		return root
	}
	root.Fields = im.fields(ctx, def.Shape)
	return root
}

func (im *importer) node(kind ir.Kind, name string) *ir.SchemaItem {
	it := ir.NewItem(kind, name)
	it.ID = im.newID()
	return it
}

func (im *importer) item(ctx context.Context, s any, name string) *ir.SchemaItem {
	def, ok := skema.DefOf(s)
	if !ok {
		return im.probe(ctx, s, name)
	}

	var it *ir.SchemaItem
	switch def.Type {
	case skema.TypeOptional:
		// unwrap first, then flag
		it = im.item(ctx, def.Inner, name)
		it.Required = false
	case skema.TypeArray:
		it = im.item(ctx, def.Element, name)
		it.IsArray = true
	case skema.TypeDefault:
		it = im.item(ctx, def.Inner, name)
		if def.DefaultValue != nil {
			it.Default = def.DefaultValue()
		}
	case skema.TypeString:
		it = im.node(ir.KindString, name)
	case skema.TypeNumber:
		it = im.node(ir.KindNumber, name)
	case skema.TypeBoolean:
		it = im.node(ir.KindBoolean, name)
	case skema.TypeDatetime:
		it = im.node(ir.KindDatetime, name)
	case skema.TypeLiteral:
		it = im.node(ir.KindLiteral, name)
		it.LiteralValue = def.Value
	case skema.TypeObject:
		it = im.node(ir.KindObject, name)
		it.Fields = im.fields(ctx, def.Shape)
	case skema.TypeUnion:
		it = im.node(ir.KindUnion, name)
		for i, o := range def.Options {
			if o == nil {
				continue
			}
			it.Options = append(it.Options, im.item(ctx, o, "option_"+strconv.Itoa(i+1)))
		}
	default:
		im.log.Debugw("no ir counterpart, importing as string", "name", name, "type", def.Type)
		it = im.node(ir.KindString, name)
	}
	if def.Description != "" {
		it.Description = def.Description
	}
	return it
}

func (im *importer) fields(ctx context.Context, shape []skema.Property) []*ir.SchemaItem {
	out := make([]*ir.SchemaItem, 0, len(shape))
	for _, p := range shape {
		if p.Schema == nil {
			continue
		}
		out = append(out, im.item(ctx, p.Schema, p.Name))
	}
	return out
}

type validator interface {
	Validate(ctx context.Context, v any) error
}

// probes are tried in order against schemas that cannot describe
// themselves. The order decides ties for schemas accepting several samples.
var probes = []struct {
	sample any
	kind   ir.Kind
}{
	{"test", ir.KindString},
	{float64(123), ir.KindNumber},
	{true, ir.KindBoolean},
}

// probe guesses a kind by trial validation. It is a heuristic for opaque
// schemas, not type inference; anything undecided becomes a string.
func (im *importer) probe(ctx context.Context, s any, name string) *ir.SchemaItem {
	if v, ok := s.(validator); ok {
		for _, p := range probes {
			if v.Validate(ctx, p.sample) == nil {
				return im.node(p.kind, name)
			}
		}
	}
	im.log.Debugw("opaque schema rejected every probe, importing as string", "name", name)
	return im.node(ir.KindString, name)
}
