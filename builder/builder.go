// Package builder turns an ir tree into a runtime validator from package dsl.
//
// Every Build call owns its registry of id -> validator used to resolve lazy
// references, so concurrent and repeated builds never see each other's
// nodes. Malformed input never fails the build; each degenerate construct
// has a permissive fallback which is logged at debug level.
package builder

import (
	"fmt"

	"go.uber.org/zap"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/dsl"
	"github.com/reoring/skema/ir"
)

// Option configures a build.
type Option func(*config)

type config struct {
	logger  *zap.Logger
	unknown skema.UnknownPolicy
}

// WithLogger sets the logger used to report fallbacks. Defaults to zap.L().
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUnknownPolicy sets the unknown-key policy of every object built.
// Defaults to skema.UnknownStrip.
func WithUnknownPolicy(p skema.UnknownPolicy) Option {
	return func(c *config) { c.unknown = p }
}

func newConfig(opts []Option) config {
	c := config{logger: zap.L(), unknown: skema.UnknownStrip}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Build converts root into an object validator whose shape is root.Fields in
// declaration order.
func Build(root *ir.RootSchema, opts ...Option) *dsl.ObjectSchema {
	b := newBuild(newConfig(opts))
	var fields []*ir.SchemaItem
	if root != nil {
		fields = root.Fields
	}
	s := b.object(fields)
	b.finish()
	return s
}

// BuildItem converts a single node. Lazy references resolve only to nodes
// inside it.
func BuildItem(it *ir.SchemaItem, opts ...Option) skema.Schema[any] {
	b := newBuild(newConfig(opts))
	if it == nil {
		return dsl.Unknown()
	}
	s := b.item(it)
	b.finish()
	return s
}

type build struct {
	cfg   config
	log   *zap.SugaredLogger
	reg   *registry
	lazys []*ir.SchemaItem
}

func newBuild(cfg config) *build {
	log := cfg.logger.Sugar()
	return &build{cfg: cfg, log: log, reg: newRegistry(log)}
}

// item builds the node itself, without the array/optional/default wrapping
// that depends on its position.
func (b *build) item(it *ir.SchemaItem) skema.Schema[any] {
	if it.Lazy != nil {
		return b.lazy(it)
	}

	var s skema.Schema[any]
	switch it.Kind {
	case ir.KindString:
		s = describe(dsl.String(), it.Description)
	case ir.KindNumber:
		s = describe(dsl.Number(), it.Description)
	case ir.KindBoolean:
		s = describe(dsl.Boolean(), it.Description)
	case ir.KindDatetime:
		s = describe(dsl.Datetime(), it.Description)
	case ir.KindLiteral:
		s = describe(b.literal(it), it.Description)
	case ir.KindObject:
		s = describe(b.object(it.Fields), it.Description)
	case ir.KindUnion:
		s = describe(b.union(it), it.Description)
	default:
		b.log.Debugw("unknown node type, accepting anything", "id", it.ID, "name", it.Name, "type", it.Kind)
		s = dsl.Unknown()
	}
	b.reg.set(it.ID, s)
	return s
}

// field applies the positional wrapping in its fixed order: array, then
// optional, then default.
func (b *build) field(it *ir.SchemaItem) skema.Schema[any] {
	s := b.item(it)
	if it.IsArray {
		s = dsl.Array(s)
	}
	if !it.Required {
		s = dsl.Optional(s)
	}
	if it.HasDefault() {
		s = dsl.Default(s, it.Default)
	}
	return s
}

func (b *build) object(fields []*ir.SchemaItem) *dsl.ObjectSchema {
	props := make([]skema.Property, 0, len(fields))
	for _, f := range fields {
		if f == nil {
			continue
		}
		props = append(props, dsl.Field(f.Name, b.field(f)))
	}
	o := dsl.Object(props...)
	switch b.cfg.unknown {
	case skema.UnknownStrict:
		o = o.Strict()
	case skema.UnknownPassthrough:
		o = o.Passthrough()
	}
	return o
}

func (b *build) union(it *ir.SchemaItem) skema.Schema[any] {
	opts := make([]skema.Schema[any], 0, len(it.Options))
	for _, o := range it.Options {
		if o == nil {
			continue
		}
		s := b.item(o)
		if o.IsArray {
			s = dsl.Array(s)
		}
		opts = append(opts, s)
	}
	if len(opts) < 2 {
		b.log.Debugw("union needs at least 2 options, accepting anything", "id", it.ID, "name", it.Name, "options", len(opts))
		return dsl.Unknown()
	}
	return dsl.Union(opts...)
}

func (b *build) literal(it *ir.SchemaItem) skema.Schema[any] {
	if ir.IsLiteralValue(it.LiteralValue) {
		return dsl.Literal(it.LiteralValue)
	}
	b.log.Debugw("unsupported literal value, falling back to empty string", "id", it.ID, "name", it.Name, "valueType", typeName(it.LiteralValue))
	return dsl.Literal("")
}

// lazy defers the registry lookup to parse time so that forward and
// circular references resolve once the whole tree is built.
func (b *build) lazy(it *ir.SchemaItem) skema.Schema[any] {
	b.lazys = append(b.lazys, it)
	reg, ref := b.reg, it.Lazy.RefID
	return dsl.Lazy(func() skema.Schema[any] {
		if s, ok := reg.get(ref); ok {
			return s
		}
		return nil
	})
}

// finish reports references that will never resolve.
func (b *build) finish() {
	for _, it := range b.lazys {
		if _, ok := b.reg.get(it.Lazy.RefID); !ok {
			b.log.Debugw("dangling lazy reference, resolves to unknown", "id", it.ID, "name", it.Name, "refId", it.Lazy.RefID)
		}
	}
	b.log.Debugw("schema built", "nodes", b.reg.len(), "lazyRefs", len(b.lazys))
}

func describe(s skema.Schema[any], d string) skema.Schema[any] {
	if d == "" {
		return s
	}
	return dsl.Describe(s, d)
}

func typeName(v any) string { return fmt.Sprintf("%T", v) }
