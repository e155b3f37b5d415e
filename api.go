package skema

import (
	"context"
)

// Schema is the runtime validator contract shared by every dsl schema.
type Schema[T any] interface {
	// Parse checks v and returns the parsed value (defaults applied, unknown
	// keys handled). Failures are returned as Issues.
	Parse(ctx context.Context, v any) (T, error)

	// Validate reports whether v conforms without returning the parsed value.
	Validate(ctx context.Context, v any) error
}

// SafeParse parses v into T, returning (zero, false) on validation error.
func SafeParse[T any](ctx context.Context, s Schema[T], v any) (T, bool) {
	val, err := s.Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, false
	}
	return val, true
}

// Is returns true if v conforms to the schema s.
func Is[T any](ctx context.Context, s Schema[T], v any) bool {
	return s.Validate(ctx, v) == nil
}

// DefOf returns the introspection record of s, or a zero Def when s does not
// implement Introspector.
func DefOf(s any) (Def, bool) {
	in, ok := s.(Introspector)
	if !ok || in == nil {
		return Def{}, false
	}
	return in.Def(), true
}

// ---- Parse-time context options ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context that marks fail-fast parsing behavior.
// Objects and arrays stop at the first issue when it is set.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
