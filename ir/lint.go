package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Severity grades a Diagnostic.
type Severity int

const (
	SeverityWarn Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warn"
}

// Diagnostic codes reported by Lint.
const (
	DiagDuplicateName      = "duplicate_name"
	DiagEmptyName          = "empty_name"
	DiagDuplicateID        = "duplicate_id"
	DiagDanglingRef        = "dangling_ref"
	DiagRefToRoot          = "ref_to_root"
	DiagDegenerateUnion    = "degenerate_union"
	DiagShapeMismatch      = "shape_mismatch"
	DiagUnsupportedLiteral = "unsupported_literal"
	DiagUnknownKind        = "unknown_kind"
)

// Diagnostic is one finding of Lint. Path addresses the node by field name,
// with union options addressed by index ("/user/contact/1").
type Diagnostic struct {
	Path     string
	ID       string
	Code     string
	Message  string
	Severity Severity
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s at %s: %s", d.Severity, d.Code, d.Path, d.Message)
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Lint checks the semantic rules a well-formed document follows but the
// types cannot express. Builder and emitter degrade gracefully on every
// finding reported here; Lint exists so editors and CI can surface them.
func Lint(r *RootSchema) []Diagnostic {
	if r == nil {
		return nil
	}
	l := &linter{idx: NewIndex(r), ids: map[string]int{}}
	if r.ID != "" && r.ID != RootID {
		l.report("", r.ID, DiagShapeMismatch, SeverityWarn, "root id is %q, want %q", r.ID, RootID)
	}
	if r.Kind != "" && r.Kind != KindObject {
		l.report("", r.ID, DiagShapeMismatch, SeverityWarn, "root type is %q, want object", r.Kind)
	}
	l.fields("", r.Fields)
	return l.out
}

type linter struct {
	idx *Index
	ids map[string]int
	out []Diagnostic
}

func (l *linter) report(path, id, code string, sev Severity, format string, args ...any) {
	if path == "" {
		path = "/"
	}
	l.out = append(l.out, Diagnostic{Path: path, ID: id, Code: code, Message: fmt.Sprintf(format, args...), Severity: sev})
}

func (l *linter) fields(base string, fs []*SchemaItem) {
	seen := map[string]bool{}
	for i, f := range fs {
		if f == nil {
			continue
		}
		seg := escapeSegment(f.Name)
		if f.Name == "" {
			seg = "#" + strconv.Itoa(i)
			l.report(base+"/"+seg, f.ID, DiagEmptyName, SeverityError, "field %d has no name", i)
		} else if seen[f.Name] {
			l.report(base+"/"+seg, f.ID, DiagDuplicateName, SeverityError, "field name %q is already used in this object", f.Name)
		}
		seen[f.Name] = true
		l.item(base+"/"+seg, f)
	}
}

func (l *linter) item(path string, it *SchemaItem) {
	if it.ID != "" {
		l.ids[it.ID]++
		if l.ids[it.ID] == 2 {
			l.report(path, it.ID, DiagDuplicateID, SeverityError, "id %q is used by more than one node", it.ID)
		}
	}

	if it.Lazy != nil {
		switch ref := it.Lazy.RefID; {
		case ref == RootID:
			l.report(path, it.ID, DiagRefToRoot, SeverityWarn, "root cannot be referenced; resolves to unknown")
		default:
			target, ok := l.idx.Lookup(ref)
			switch {
			case !ok:
				l.report(path, it.ID, DiagDanglingRef, SeverityWarn, "reference %q has no target; resolves to unknown", ref)
			case target.Lazy != nil:
				// lazy nodes are never registered as targets
				l.report(path, it.ID, DiagDanglingRef, SeverityWarn, "reference %q points at another reference; resolves to unknown", ref)
			}
		}
		if len(it.Fields) > 0 || len(it.Options) > 0 {
			l.report(path, it.ID, DiagShapeMismatch, SeverityWarn, "lazy node has children; they are ignored")
		}
		return
	}

	if !it.Kind.Valid() {
		l.report(path, it.ID, DiagUnknownKind, SeverityWarn, "unknown type %q; accepts anything", it.Kind)
	}
	if it.Kind != KindObject && len(it.Fields) > 0 {
		l.report(path, it.ID, DiagShapeMismatch, SeverityWarn, "%s node has fields", it.Kind)
	}
	if it.Kind != KindUnion && len(it.Options) > 0 {
		l.report(path, it.ID, DiagShapeMismatch, SeverityWarn, "%s node has options", it.Kind)
	}
	if it.Kind != KindLiteral && it.LiteralValue != nil {
		l.report(path, it.ID, DiagShapeMismatch, SeverityWarn, "%s node has a literal value", it.Kind)
	}

	switch it.Kind {
	case KindLiteral:
		if !IsLiteralValue(it.LiteralValue) {
			l.report(path, it.ID, DiagUnsupportedLiteral, SeverityWarn, "literal value of type %T is not string, number or boolean; falls back to \"\"", it.LiteralValue)
		}
	case KindUnion:
		if len(it.Options) < 2 {
			l.report(path, it.ID, DiagDegenerateUnion, SeverityWarn, "union has %d option(s), needs at least 2; accepts anything", len(it.Options))
		}
	}

	l.fields(path, it.Fields)
	for i, o := range it.Options {
		if o != nil {
			l.item(path+"/"+strconv.Itoa(i), o)
		}
	}
}

// IsLiteralValue reports whether v can be stored as a literal: a string, a
// bool or any Go number.
func IsLiteralValue(v any) bool {
	switch v.(type) {
	case string, bool,
		float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func escapeSegment(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
