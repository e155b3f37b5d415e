package skema

import (
	"bytes"
	"context"
	"errors"
	"io"

	json "github.com/goccy/go-json"
)

// NumberMode dictates how JSON numbers are decoded before validation.
type NumberMode int

const (
	NumberFloat64    NumberMode = iota // Decode into float64.
	NumberJSONNumber                   // Preserve json.Number.
)

// ParseOpt bundles options for ParseJSON.
type ParseOpt struct {
	NumberMode NumberMode
	FailFast   bool
}

// ParseJSON decodes a single JSON document and parses it with s.
func ParseJSON[T any](ctx context.Context, s Schema[T], data []byte, opts ...ParseOpt) (T, error) {
	var zero T
	if s == nil {
		return zero, Issues{{Path: "/", Code: CodeParseError, Message: "nil schema"}}
	}
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	v, err := decodeJSON(data, opt)
	if err != nil {
		return zero, Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return s.Parse(ctx, v)
}

func decodeJSON(data []byte, opt ParseOpt) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if opt.NumberMode == NumberJSONNumber {
		dec.UseNumber()
	}
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	// reject trailing documents
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, errors.New("unexpected data after top-level value")
		}
		return nil, err
	}
	return v, nil
}
