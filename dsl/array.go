package dsl

import (
	"context"
	"reflect"
	"strconv"

	skema "github.com/reoring/skema"
)

// ArraySchema validates list values element by element (z.array(elem)).
// The parsed output is always []any.
type ArraySchema struct {
	elem skema.Schema[any]
	desc string
}

var (
	_ skema.Schema[any]  = (*ArraySchema)(nil)
	_ skema.Introspector = (*ArraySchema)(nil)
)

// Array returns an array schema over elem. A nil elem accepts any element.
func Array(elem skema.Schema[any]) *ArraySchema {
	if elem == nil {
		elem = Unknown()
	}
	return &ArraySchema{elem: elem}
}

// Element returns the element schema.
func (a *ArraySchema) Element() skema.Schema[any] { return a.elem }

// Def implements skema.Introspector.
func (a *ArraySchema) Def() skema.Def {
	return skema.Def{Type: skema.TypeArray, Description: a.desc, Element: a.elem}
}

func (a *ArraySchema) withDescription(d string) skema.Schema[any] {
	cp := *a
	cp.desc = d
	return &cp
}

// Parse accepts []any and typed Go slices or arrays. Element issues are
// reported under "/<index>".
func (a *ArraySchema) Parse(ctx context.Context, v any) (any, error) {
	items, ok := asList(v)
	if !ok {
		return nil, invalidType("array")
	}
	failFast := skema.IsFailFast(ctx)
	out := make([]any, len(items))
	var iss skema.Issues
	for i, it := range items {
		parsed, err := a.elem.Parse(ctx, it)
		if err != nil {
			iss = append(iss, skema.RebaseIssues("/"+strconv.Itoa(i), err)...)
			if failFast {
				return nil, iss
			}
			continue
		}
		out[i] = parsed
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// Validate implements skema.Schema.
func (a *ArraySchema) Validate(ctx context.Context, v any) error {
	_, err := a.Parse(ctx, v)
	return err
}

func asList(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	// []byte is a string-like value on the wire, not a list
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
