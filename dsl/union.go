package dsl

import (
	"context"
	"strconv"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/i18n"
)

// UnionSchema tries its options in declaration order and returns the first
// successful parse (z.union([...])).
type UnionSchema struct {
	options []skema.Schema[any]
	desc    string
}

var (
	_ skema.Schema[any]  = (*UnionSchema)(nil)
	_ skema.Introspector = (*UnionSchema)(nil)
)

// Union returns a union over options. Nil options are skipped.
func Union(options ...skema.Schema[any]) *UnionSchema {
	u := &UnionSchema{options: make([]skema.Schema[any], 0, len(options))}
	for _, o := range options {
		if o != nil {
			u.options = append(u.options, o)
		}
	}
	return u
}

// Options returns the option schemas in order.
func (u *UnionSchema) Options() []skema.Schema[any] {
	out := make([]skema.Schema[any], len(u.options))
	copy(out, u.options)
	return out
}

// Def implements skema.Introspector.
func (u *UnionSchema) Def() skema.Def {
	opts := make([]any, len(u.options))
	for i, o := range u.options {
		opts[i] = o
	}
	return skema.Def{Type: skema.TypeUnion, Description: u.desc, Options: opts}
}

func (u *UnionSchema) withDescription(d string) skema.Schema[any] {
	cp := *u
	cp.desc = d
	return &cp
}

// Parse returns the output of the first option that accepts v. When none
// does, a single invalid_union issue is returned with the per-option issues
// in Params["options"].
func (u *UnionSchema) Parse(ctx context.Context, v any) (any, error) {
	branches := make([]skema.Issues, 0, len(u.options))
	for _, o := range u.options {
		out, err := o.Parse(ctx, v)
		if err == nil {
			return out, nil
		}
		branches = append(branches, asIssues(err))
	}
	return nil, skema.Issues{{
		Path:    "/",
		Code:    skema.CodeInvalidUnion,
		Message: i18n.T(skema.CodeInvalidUnion, nil),
		Hint:    "tried " + strconv.Itoa(len(u.options)) + " options",
		Params:  map[string]any{"options": branches},
	}}
}

// Validate implements skema.Schema.
func (u *UnionSchema) Validate(ctx context.Context, v any) error {
	_, err := u.Parse(ctx, v)
	return err
}
