package dsl_test

import (
	"context"
	"reflect"
	"testing"

	skema "github.com/reoring/skema"
	g "github.com/reoring/skema/dsl"
)

// TestZodBasics_Object_Required_Optional_Default exercises required, optional,
// and default handling on objects.
func TestZodBasics_Object_Required_Optional_Default(t *testing.T) {
	ctx := context.Background()
	user := g.Object(
		g.Field("id", g.String()),
		g.Field("nickname", g.Optional(g.String())),
		g.Field("active", g.Default(g.Boolean(), true)),
	)

	out, err := user.Parse(ctx, map[string]any{"id": "u1"})
	if err != nil {
		t.Fatalf("parse ok expected: %v", err)
	}
	want := map[string]any{"id": "u1", "active": true}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("got %#v, want %#v", out, want)
	}

	// present values go through the inner schema
	out, err = user.Parse(ctx, map[string]any{"id": "u1", "nickname": "al", "active": false})
	if err != nil {
		t.Fatalf("parse ok expected: %v", err)
	}
	if m := out.(map[string]any); m["nickname"] != "al" || m["active"] != false {
		t.Fatalf("unexpected output: %#v", m)
	}

	// required missing
	_, err = user.Parse(ctx, map[string]any{})
	iss, ok := skema.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != skema.CodeRequired || iss[0].Path != "/id" {
		t.Fatalf("expected required at /id, got %v", err)
	}

	// default does not accept null as absence
	if _, err := user.Parse(ctx, map[string]any{"id": "u1", "active": nil}); err == nil {
		t.Fatalf("null must be passed to the inner boolean schema")
	}
}

func TestObject_UnknownPolicies(t *testing.T) {
	ctx := context.Background()
	base := g.Object(g.Field("a", g.String()))
	in := map[string]any{"a": "x", "z": 1, "b": 2}

	out, err := base.Parse(ctx, in)
	if err != nil {
		t.Fatalf("strip: %v", err)
	}
	if !reflect.DeepEqual(out, map[string]any{"a": "x"}) {
		t.Fatalf("strip should drop unknown keys, got %#v", out)
	}

	out, err = base.Passthrough().Parse(ctx, in)
	if err != nil {
		t.Fatalf("passthrough: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("passthrough should keep unknown keys, got %#v", out)
	}

	_, err = base.Strict().Parse(ctx, in)
	iss, ok := skema.AsIssues(err)
	if !ok || len(iss) != 2 {
		t.Fatalf("strict: expected 2 issues, got %v", err)
	}
	// sorted by key
	if iss[0].Path != "/b" || iss[1].Path != "/z" || iss[0].Code != skema.CodeUnknownKey {
		t.Fatalf("unexpected strict issues: %+v", iss)
	}

	if base.UnknownPolicy() != skema.UnknownStrip {
		t.Fatalf("Strict must not modify the receiver")
	}
}

func TestObject_NestedIssuePaths(t *testing.T) {
	ctx := context.Background()
	s := g.Object(
		g.Field("items", g.Array(g.Object(g.Field("price", g.Number())))),
		g.Field("a/b", g.String()),
	)
	_, err := s.Parse(ctx, map[string]any{
		"items": []any{map[string]any{"price": 1}, map[string]any{"price": "x"}},
		"a/b":   1,
	})
	iss, ok := skema.AsIssues(err)
	if !ok || len(iss) != 2 {
		t.Fatalf("expected 2 issues, got %v", err)
	}
	if iss[0].Path != "/items/1/price" {
		t.Fatalf("unexpected path: %s", iss[0].Path)
	}
	if iss[1].Path != "/a~1b" {
		t.Fatalf("expected escaped pointer, got %s", iss[1].Path)
	}
}

func TestObject_FailFastStopsAtFirstIssue(t *testing.T) {
	s := g.Object(g.Field("a", g.String()), g.Field("b", g.String()))
	ctx := skema.WithFailFast(context.Background(), true)
	_, err := s.Parse(ctx, map[string]any{})
	iss, _ := skema.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/a" {
		t.Fatalf("expected a single issue at /a, got %v", iss)
	}
}

func TestObject_DuplicateFieldReplacesInPlace(t *testing.T) {
	s := g.Object(
		g.Field("a", g.String()),
		g.Field("b", g.String()),
		g.Field("a", g.Number()),
	)
	shape := s.Shape()
	if len(shape) != 2 || shape[0].Name != "a" || shape[1].Name != "b" {
		t.Fatalf("unexpected shape: %+v", shape)
	}
	if err := s.Validate(context.Background(), map[string]any{"a": 1, "b": "x"}); err != nil {
		t.Fatalf("later definition should win: %v", err)
	}
}

func TestObject_RejectsNonMap(t *testing.T) {
	for _, v := range []any{nil, "x", []any{}} {
		if err := g.Object().Validate(context.Background(), v); err == nil {
			t.Fatalf("object should reject %T", v)
		}
	}
}

func TestDefault_IsCopiedPerParse(t *testing.T) {
	ctx := context.Background()
	seed := []any{"x"}
	s := g.Object(g.Field("tags", g.Default(g.Array(g.String()), seed)))

	// caller mutation after construction has no effect
	seed[0] = "mutated"

	first, err := s.Parse(ctx, map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	tags := first.(map[string]any)["tags"].([]any)
	if tags[0] != "x" {
		t.Fatalf("default leaked caller mutation: %v", tags)
	}
	tags[0] = "changed"

	second, _ := s.Parse(ctx, map[string]any{})
	if got := second.(map[string]any)["tags"].([]any)[0]; got != "x" {
		t.Fatalf("default shared between parses: %v", got)
	}
}

func TestArray_TypedSlicesAndIndexPaths(t *testing.T) {
	ctx := context.Background()
	arr := g.Array(g.String())

	out, err := arr.Parse(ctx, []string{"a", "b"})
	if err != nil {
		t.Fatalf("typed slice should pass: %v", err)
	}
	if !reflect.DeepEqual(out, []any{"a", "b"}) {
		t.Fatalf("unexpected output %#v", out)
	}

	_, err = arr.Parse(ctx, []any{"a", 1, 2})
	iss, _ := skema.AsIssues(err)
	if len(iss) != 2 || iss[0].Path != "/1" || iss[1].Path != "/2" {
		t.Fatalf("unexpected issues: %v", iss)
	}

	if err := arr.Validate(ctx, []byte("ab")); err == nil {
		t.Fatalf("[]byte is not an array")
	}
	if err := arr.Validate(ctx, "ab"); err == nil {
		t.Fatalf("string is not an array")
	}
}

func TestLazy_RecursiveTree(t *testing.T) {
	ctx := context.Background()
	var node skema.Schema[any]
	node = g.Object(
		g.Field("value", g.Number()),
		g.Field("children", g.Optional(g.Array(g.Lazy(func() skema.Schema[any] { return node })))),
	)

	tree := map[string]any{
		"value": 1,
		"children": []any{
			map[string]any{"value": 2},
			map[string]any{"value": 3, "children": []any{map[string]any{"value": 4}}},
		},
	}
	if err := node.Validate(ctx, tree); err != nil {
		t.Fatalf("tree should pass: %v", err)
	}

	bad := map[string]any{"value": 1, "children": []any{map[string]any{"value": "x"}}}
	_, err := node.Parse(ctx, bad)
	iss, _ := skema.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/children/0/value" {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestLazy_EvaluatedAtParseTime(t *testing.T) {
	ctx := context.Background()
	var target skema.Schema[any]
	l := g.Lazy(func() skema.Schema[any] { return target })

	// unresolved target accepts anything
	if err := l.Validate(ctx, 1); err != nil {
		t.Fatalf("nil target should behave like unknown: %v", err)
	}
	target = g.String()
	if err := l.Validate(ctx, 1); err == nil {
		t.Fatalf("target assigned later must be used")
	}
	if def, _ := skema.DefOf(l); def.Type != skema.TypeLazy {
		t.Fatalf("unexpected def type %s", def.Type)
	}
}
