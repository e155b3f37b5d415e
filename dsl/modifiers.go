package dsl

import (
	"context"

	skema "github.com/reoring/skema"
)

// describable is implemented by every schema in this package. Describe uses
// it to attach a description without an extra wrapper layer.
type describable interface {
	withDescription(d string) skema.Schema[any]
}

// Describe attaches a human-readable description (.describe(d)). Schemas
// from other packages are wrapped so that Def reports the description.
func Describe(s skema.Schema[any], d string) skema.Schema[any] {
	if s == nil {
		s = Unknown()
	}
	if ds, ok := s.(describable); ok {
		return ds.withDescription(d)
	}
	return &describedSchema{inner: s, desc: d}
}

// DescriptionOf returns the description attached to s, if any.
func DescriptionOf(s any) string {
	def, ok := skema.DefOf(s)
	if !ok {
		return ""
	}
	return def.Description
}

type describedSchema struct {
	inner skema.Schema[any]
	desc  string
}

func (d *describedSchema) Parse(ctx context.Context, v any) (any, error) { return d.inner.Parse(ctx, v) }
func (d *describedSchema) Validate(ctx context.Context, v any) error      { return d.inner.Validate(ctx, v) }

func (d *describedSchema) Def() skema.Def {
	def, _ := skema.DefOf(d.inner)
	def.Description = d.desc
	return def
}

func (d *describedSchema) ParseAbsent(ctx context.Context) (any, bool, error) {
	if ah, ok := d.inner.(skema.AbsentHandler); ok {
		return ah.ParseAbsent(ctx)
	}
	return nil, false, requiredIssue()
}

func (d *describedSchema) withDescription(desc string) skema.Schema[any] {
	return &describedSchema{inner: d.inner, desc: desc}
}

// ---- optional ----

// OptionalSchema lets an object key be absent (.optional()). Present values,
// including null, are passed to the inner schema.
type OptionalSchema struct {
	inner skema.Schema[any]
	desc  string
}

var (
	_ skema.AbsentHandler = (*OptionalSchema)(nil)
	_ skema.Introspector  = (*OptionalSchema)(nil)
)

// Optional wraps inner so that a missing key is accepted and left absent.
func Optional(inner skema.Schema[any]) *OptionalSchema {
	if inner == nil {
		inner = Unknown()
	}
	return &OptionalSchema{inner: inner}
}

// Unwrap returns the inner schema.
func (o *OptionalSchema) Unwrap() skema.Schema[any] { return o.inner }

func (o *OptionalSchema) Parse(ctx context.Context, v any) (any, error) { return o.inner.Parse(ctx, v) }
func (o *OptionalSchema) Validate(ctx context.Context, v any) error      { return o.inner.Validate(ctx, v) }

// ParseAbsent implements skema.AbsentHandler: the key stays absent.
func (o *OptionalSchema) ParseAbsent(context.Context) (any, bool, error) { return nil, false, nil }

func (o *OptionalSchema) Def() skema.Def {
	return skema.Def{Type: skema.TypeOptional, Description: o.desc, Inner: o.inner}
}

func (o *OptionalSchema) withDescription(d string) skema.Schema[any] {
	cp := *o
	cp.desc = d
	return &cp
}

// ---- default ----

// DefaultSchema substitutes a value for a missing key (.default(v)). Each
// substitution receives its own deep copy of the value.
type DefaultSchema struct {
	inner skema.Schema[any]
	value any
	desc  string
}

var (
	_ skema.AbsentHandler = (*DefaultSchema)(nil)
	_ skema.Introspector  = (*DefaultSchema)(nil)
)

// Default wraps inner with a default value. The value is copied on
// construction so later mutation by the caller has no effect.
func Default(inner skema.Schema[any], value any) *DefaultSchema {
	if inner == nil {
		inner = Unknown()
	}
	return &DefaultSchema{inner: inner, value: cloneValue(value)}
}

// Unwrap returns the inner schema.
func (d *DefaultSchema) Unwrap() skema.Schema[any] { return d.inner }

// Value returns a fresh copy of the default value.
func (d *DefaultSchema) Value() any { return cloneValue(d.value) }

func (d *DefaultSchema) Parse(ctx context.Context, v any) (any, error) { return d.inner.Parse(ctx, v) }
func (d *DefaultSchema) Validate(ctx context.Context, v any) error      { return d.inner.Validate(ctx, v) }

// ParseAbsent implements skema.AbsentHandler: the key takes the default.
func (d *DefaultSchema) ParseAbsent(context.Context) (any, bool, error) {
	return cloneValue(d.value), true, nil
}

func (d *DefaultSchema) Def() skema.Def {
	return skema.Def{Type: skema.TypeDefault, Description: d.desc, Inner: d.inner, DefaultValue: d.Value}
}

func (d *DefaultSchema) withDescription(desc string) skema.Schema[any] {
	cp := *d
	cp.desc = desc
	return &cp
}

// cloneValue deep-copies JSON-shaped values (maps, slices, scalars).
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	}
	return v
}

// ---- lazy ----

// LazySchema defers to a schema produced by a thunk (z.lazy(() => s)). The
// thunk runs on every Parse so that it can refer to schemas constructed
// after it.
type LazySchema struct {
	thunk func() skema.Schema[any]
}

var (
	_ skema.Schema[any]  = (*LazySchema)(nil)
	_ skema.Introspector = (*LazySchema)(nil)
)

// Lazy returns a schema that resolves thunk at parse time. A nil thunk or a
// thunk returning nil behaves like Unknown.
func Lazy(thunk func() skema.Schema[any]) *LazySchema {
	return &LazySchema{thunk: thunk}
}

// Resolve evaluates the thunk.
func (l *LazySchema) Resolve() skema.Schema[any] {
	if l.thunk == nil {
		return Unknown()
	}
	if s := l.thunk(); s != nil {
		return s
	}
	return Unknown()
}

func (l *LazySchema) Parse(ctx context.Context, v any) (any, error) { return l.Resolve().Parse(ctx, v) }
func (l *LazySchema) Validate(ctx context.Context, v any) error      { return l.Resolve().Validate(ctx, v) }

// Def implements skema.Introspector. The target is not resolved here so that
// walking a recursive schema terminates.
func (l *LazySchema) Def() skema.Def { return skema.Def{Type: skema.TypeLazy} }

// lazy nodes do not carry descriptions
func (l *LazySchema) withDescription(string) skema.Schema[any] { return l }
