package codegen

import (
	"unicode"

	json "github.com/goccy/go-json"

	"github.com/reoring/skema/ir"
)

// quote renders s as a double-quoted JS string literal.
func quote(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

// renderKey leaves identifiers bare and quotes everything else.
func renderKey(name string) string {
	if isIdentifier(name) {
		return name
	}
	return quote(name)
}

// renderLiteral renders a literal argument: quoted text, a number or bool
// token, and "" for anything else.
func renderLiteral(v any) string {
	if s, ok := v.(string); ok {
		return quote(s)
	}
	if !ir.IsLiteralValue(v) {
		return `""`
	}
	if lit, ok := renderValue(v); ok {
		return lit
	}
	return `""`
}

// renderValue serializes a JSON-shaped value (map keys sorted). ok is false
// for values JSON cannot represent.
func renderValue(v any) (string, bool) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(b), true
}

var reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true,
}

// isIdentifier reports whether s can be used as a bare JS identifier. Property
// keys could be reserved words too, but quoting them keeps one rule for keys
// and lazy target names.
func isIdentifier(s string) bool {
	if s == "" || reserved[s] {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
