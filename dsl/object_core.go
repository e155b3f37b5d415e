package dsl

import (
	"context"
	"sort"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/i18n"
)

// ObjectSchema validates map[string]any values against an ordered shape.
// Unknown keys are stripped unless Strict or Passthrough is selected.
type ObjectSchema struct {
	props         []skema.Property
	index         map[string]int
	unknownPolicy skema.UnknownPolicy
	desc          string
}

var (
	_ skema.Schema[any]  = (*ObjectSchema)(nil)
	_ skema.Introspector = (*ObjectSchema)(nil)
)

// Field pairs a key with its schema for use in Object.
func Field(name string, s skema.Schema[any]) skema.Property {
	return skema.Property{Name: name, Schema: s}
}

// Object builds an object schema (z.object({...})). A repeated name replaces
// the earlier schema but keeps the first position.
func Object(props ...skema.Property) *ObjectSchema {
	o := &ObjectSchema{index: make(map[string]int, len(props))}
	for _, p := range props {
		if p.Schema == nil {
			p.Schema = Unknown()
		}
		if i, ok := o.index[p.Name]; ok {
			o.props[i] = p
			continue
		}
		o.index[p.Name] = len(o.props)
		o.props = append(o.props, p)
	}
	return o
}

// Strict returns a copy that rejects unknown keys.
func (o *ObjectSchema) Strict() *ObjectSchema { return o.withPolicy(skema.UnknownStrict) }

// Strip returns a copy that drops unknown keys.
func (o *ObjectSchema) Strip() *ObjectSchema { return o.withPolicy(skema.UnknownStrip) }

// Passthrough returns a copy that keeps unknown keys as-is.
func (o *ObjectSchema) Passthrough() *ObjectSchema { return o.withPolicy(skema.UnknownPassthrough) }

// UnknownPolicy reports how keys outside the shape are handled.
func (o *ObjectSchema) UnknownPolicy() skema.UnknownPolicy { return o.unknownPolicy }

// Shape returns the declared properties in order.
func (o *ObjectSchema) Shape() []skema.Property {
	out := make([]skema.Property, len(o.props))
	copy(out, o.props)
	return out
}

func (o *ObjectSchema) withPolicy(p skema.UnknownPolicy) *ObjectSchema {
	cp := *o
	cp.unknownPolicy = p
	return &cp
}

func (o *ObjectSchema) withDescription(d string) skema.Schema[any] {
	cp := *o
	cp.desc = d
	return &cp
}

// Def implements skema.Introspector.
func (o *ObjectSchema) Def() skema.Def {
	return skema.Def{Type: skema.TypeObject, Description: o.desc, Shape: o.Shape()}
}

// Parse checks every declared key in shape order, then handles the keys the
// shape does not know about according to the unknown policy.
func (o *ObjectSchema) Parse(ctx context.Context, v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalidType("object")
	}
	failFast := skema.IsFailFast(ctx)
	out := make(map[string]any, len(o.props))
	var iss skema.Issues

	for _, p := range o.props {
		base := "/" + skema.EscapePointerToken(p.Name)
		raw, present := m[p.Name]
		if present {
			parsed, err := p.Schema.Parse(ctx, raw)
			if err != nil {
				iss = append(iss, skema.RebaseIssues(base, err)...)
				if failFast {
					return nil, iss
				}
				continue
			}
			out[p.Name] = parsed
			continue
		}
		if ah, ok := p.Schema.(skema.AbsentHandler); ok {
			val, keep, err := ah.ParseAbsent(ctx)
			if err != nil {
				iss = append(iss, skema.RebaseIssues(base, err)...)
				if failFast {
					return nil, iss
				}
				continue
			}
			if keep {
				out[p.Name] = val
			}
			continue
		}
		iss = append(iss, skema.Issue{
			Path:    base,
			Code:    skema.CodeRequired,
			Message: i18n.T(skema.CodeRequired, nil),
			Hint:    "missing property '" + p.Name + "'",
		})
		if failFast {
			return nil, iss
		}
	}

	if o.unknownPolicy != skema.UnknownStrip {
		for _, k := range o.unknownKeys(m) {
			switch o.unknownPolicy {
			case skema.UnknownStrict:
				iss = append(iss, skema.Issue{
					Path:    "/" + skema.EscapePointerToken(k),
					Code:    skema.CodeUnknownKey,
					Message: i18n.T(skema.CodeUnknownKey, nil),
					Hint:    "unknown key '" + k + "'",
				})
				if failFast {
					return nil, iss
				}
			case skema.UnknownPassthrough:
				out[k] = m[k]
			}
		}
	}

	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// Validate implements skema.Schema.
func (o *ObjectSchema) Validate(ctx context.Context, v any) error {
	_, err := o.Parse(ctx, v)
	return err
}

// unknownKeys returns the keys of m outside the shape in ascending order for
// deterministic issue ordering.
func (o *ObjectSchema) unknownKeys(m map[string]any) []string {
	var ks []string
	for k := range m {
		if _, ok := o.index[k]; !ok {
			ks = append(ks, k)
		}
	}
	sort.Strings(ks)
	return ks
}
