package ir

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for encodings other than JSON and YAML.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// FormatOf picks a format from a file extension. Unknown extensions and "-"
// are treated as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Decode parses a root document in the given format.
func Decode(data []byte, f Format) (*RootSchema, error) {
	switch f {
	case FormatJSON, "":
		return DecodeJSON(data)
	case FormatYAML:
		return DecodeYAML(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// Encode renders a root document in the given format.
func Encode(r *RootSchema, f Format) ([]byte, error) {
	switch f {
	case FormatJSON, "":
		return EncodeJSON(r)
	case FormatYAML:
		return EncodeYAML(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// DecodeJSON parses a root document. Kind and ID are normalized to their
// fixed values; node ids are left as found (see EnsureIDs).
func DecodeJSON(data []byte) (*RootSchema, error) {
	var r RootSchema
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("decode schema json: %w", err)
	}
	r.Kind, r.ID = KindObject, RootID
	if r.Fields == nil {
		r.Fields = []*SchemaItem{}
	}
	return &r, nil
}

// EncodeJSON renders r as indented JSON.
func EncodeJSON(r *RootSchema) ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode schema json: %w", err)
	}
	return append(b, '\n'), nil
}

// DecodeYAML parses a YAML root document. The document is bridged through
// JSON so that defaults and literal values get the same Go types (float64,
// map[string]any, []any) as a JSON document would.
func DecodeYAML(data []byte) (*RootSchema, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode schema yaml: %w", err)
	}
	if doc == nil {
		return NewRoot(), nil
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("decode schema yaml: %w", err)
	}
	return DecodeJSON(b)
}

// EncodeYAML renders r as YAML with two-space indentation.
func EncodeYAML(r *RootSchema) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encode schema yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode schema yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeItemJSON parses a single node.
func DecodeItemJSON(data []byte) (*SchemaItem, error) {
	var it SchemaItem
	if err := json.Unmarshal(data, &it); err != nil {
		return nil, fmt.Errorf("decode item json: %w", err)
	}
	return &it, nil
}

// EnsureIDs assigns a fresh id to every node without one and returns how
// many were assigned.
func EnsureIDs(r *RootSchema) int {
	n := 0
	Walk(r, func(it *SchemaItem, _ int) bool {
		if it.ID == "" {
			it.ID = GenerateID()
			n++
		}
		return true
	})
	return n
}
