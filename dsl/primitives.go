package dsl

import (
	"context"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/i18n"
)

// String returns the string schema (z.string()).
func String() skema.Schema[any] { return stringSchema{} }

// Number returns the number schema (z.number()). Any Go numeric type and
// json.Number are accepted; NaN and ±Inf are rejected.
func Number() skema.Schema[any] { return numberSchema{} }

// Boolean returns the boolean schema (z.boolean()).
func Boolean() skema.Schema[any] { return boolSchema{} }

// Datetime returns the ISO datetime schema (z.iso.datetime()). It accepts
// RFC3339 instants in UTC ("Z" designator) with any fractional precision.
func Datetime() skema.Schema[any] { return datetimeSchema{} }

// Unknown returns the accept-anything schema (z.unknown()).
func Unknown() skema.Schema[any] { return unknownSchema{} }

// Literal returns a schema accepting exactly v. Numbers are compared by value
// regardless of their Go type.
func Literal(v any) skema.Schema[any] { return literalSchema{value: v} }

type stringSchema struct{ desc string }

func (stringSchema) Parse(ctx context.Context, v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, invalidType("string")
	}
	return s, nil
}

func (s stringSchema) Validate(ctx context.Context, v any) error { _, err := s.Parse(ctx, v); return err }
func (s stringSchema) Def() skema.Def                            { return skema.Def{Type: skema.TypeString, Description: s.desc} }
func (s stringSchema) withDescription(d string) skema.Schema[any] { s.desc = d; return s }

type numberSchema struct{ desc string }

func (numberSchema) Parse(ctx context.Context, v any) (any, error) {
	f, ok := toFloat(v)
	if !ok {
		return nil, invalidType("number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, invalidType("number")
	}
	return v, nil
}

func (s numberSchema) Validate(ctx context.Context, v any) error { _, err := s.Parse(ctx, v); return err }
func (s numberSchema) Def() skema.Def                            { return skema.Def{Type: skema.TypeNumber, Description: s.desc} }
func (s numberSchema) withDescription(d string) skema.Schema[any] { s.desc = d; return s }

type boolSchema struct{ desc string }

func (boolSchema) Parse(ctx context.Context, v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, invalidType("boolean")
	}
	return b, nil
}

func (s boolSchema) Validate(ctx context.Context, v any) error { _, err := s.Parse(ctx, v); return err }
func (s boolSchema) Def() skema.Def                            { return skema.Def{Type: skema.TypeBoolean, Description: s.desc} }
func (s boolSchema) withDescription(d string) skema.Schema[any] { s.desc = d; return s }

type datetimeSchema struct{ desc string }

func (datetimeSchema) Parse(ctx context.Context, v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, invalidType("string")
	}
	if err := checkDatetime(s); err != nil {
		return nil, skema.Issues{{
			Path:    "/",
			Code:    skema.CodeInvalidFormat,
			Message: i18n.T(skema.CodeInvalidFormat, map[string]string{"format": "datetime"}),
			Hint:    "expected ISO 8601 datetime in UTC, e.g. 2025-01-01T00:00:00Z",
			Cause:   err,
			Params:  map[string]any{"format": "datetime"},
		}}
	}
	return s, nil
}

func (s datetimeSchema) Validate(ctx context.Context, v any) error { _, err := s.Parse(ctx, v); return err }
func (s datetimeSchema) Def() skema.Def                            { return skema.Def{Type: skema.TypeDatetime, Description: s.desc} }
func (s datetimeSchema) withDescription(d string) skema.Schema[any] { s.desc = d; return s }

var errDatetimeOffset = &time.ParseError{Message: ": only the Z designator is accepted"}

func checkDatetime(s string) error {
	if !strings.HasSuffix(s, "Z") {
		return errDatetimeOffset
	}
	// RFC3339Nano accepts any number of fractional digits (trailing zeros optional)
	if _, err := time.Parse(time.RFC3339Nano, s); err != nil {
		return err
	}
	return nil
}

type literalSchema struct {
	value any
	desc  string
}

func (l literalSchema) Parse(ctx context.Context, v any) (any, error) {
	if !literalEqual(v, l.value) {
		exp := formatLiteral(l.value)
		return nil, skema.Issues{{
			Path:    "/",
			Code:    skema.CodeInvalidLiteral,
			Message: i18n.T(skema.CodeInvalidLiteral, map[string]string{"expected": exp}),
			Params:  map[string]any{"expected": l.value},
		}}
	}
	return v, nil
}

func (l literalSchema) Validate(ctx context.Context, v any) error { _, err := l.Parse(ctx, v); return err }
func (l literalSchema) Def() skema.Def {
	return skema.Def{Type: skema.TypeLiteral, Description: l.desc, Value: l.value}
}
func (l literalSchema) withDescription(d string) skema.Schema[any] { l.desc = d; return l }

type unknownSchema struct{ desc string }

func (unknownSchema) Parse(ctx context.Context, v any) (any, error) { return v, nil }
func (unknownSchema) Validate(ctx context.Context, v any) error      { return nil }
func (s unknownSchema) Def() skema.Def                              { return skema.Def{Type: skema.TypeUnknown, Description: s.desc} }
func (s unknownSchema) withDescription(d string) skema.Schema[any]  { s.desc = d; return s }

// ---- helpers ----

func invalidType(expected string) error {
	return skema.Issues{{
		Path:    "/",
		Code:    skema.CodeInvalidType,
		Message: i18n.T(skema.CodeInvalidType, map[string]string{"expected": expected}),
		Hint:    "expected " + expected,
		Params:  map[string]any{"expected": expected},
	}}
}

// toFloat reports the numeric value of v for every Go number type and
// json.Number.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int, int8, int16, int32, int64:
		return float64(reflect.ValueOf(n).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(n).Uint()), true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func literalEqual(v, want any) bool {
	if wf, ok := toFloat(want); ok {
		vf, ok := toFloat(v)
		return ok && vf == wf
	}
	switch w := want.(type) {
	case string:
		s, ok := v.(string)
		return ok && s == w
	case bool:
		b, ok := v.(bool)
		return ok && b == w
	case nil:
		return v == nil
	}
	return false
}

func formatLiteral(v any) string {
	switch t := v.(type) {
	case string:
		return strconv.Quote(t)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return "null"
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return "?"
}
