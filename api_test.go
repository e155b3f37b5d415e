package skema_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	skema "github.com/reoring/skema"
	g "github.com/reoring/skema/dsl"
)

func TestSafeParseAndIs(t *testing.T) {
	ctx := context.Background()
	s := g.Object(g.Field("n", g.Number()))

	if _, ok := skema.SafeParse(ctx, s, map[string]any{"n": "x"}); ok {
		t.Fatalf("expected SafeParse to fail")
	}
	v, ok := skema.SafeParse(ctx, s, map[string]any{"n": 1.0})
	if !ok || v.(map[string]any)["n"] != 1.0 {
		t.Fatalf("unexpected SafeParse result: %v %v", v, ok)
	}
	if !skema.Is(ctx, g.String(), "a") || skema.Is(ctx, g.String(), 1) {
		t.Fatalf("Is disagrees with Validate")
	}
}

func TestParseJSON(t *testing.T) {
	ctx := context.Background()
	s := g.Object(g.Field("n", g.Number()), g.Field("s", g.String()))

	v, err := skema.ParseJSON[any](ctx, s, []byte(`{"n":1.5,"s":"x"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(map[string]any)["n"] != 1.5 {
		t.Fatalf("unexpected value: %#v", v)
	}

	v, err = skema.ParseJSON[any](ctx, s, []byte(`{"n":12345678901234567890,"s":"x"}`), skema.ParseOpt{NumberMode: skema.NumberJSONNumber})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v.(map[string]any)["n"].(json.Number); !ok {
		t.Fatalf("expected json.Number, got %T", v.(map[string]any)["n"])
	}

	for _, doc := range []string{`{"n":`, `{"n":1,"s":"x"} {}`} {
		_, err = skema.ParseJSON[any](ctx, s, []byte(doc))
		iss, ok := skema.AsIssues(err)
		if !ok || len(iss) != 1 || iss[0].Code != skema.CodeParseError || iss[0].Path != "/" {
			t.Fatalf("%s: expected a single parse_error at /, got %v", doc, err)
		}
	}

	_, err = skema.ParseJSON[any](ctx, s, []byte(`{"n":"x"}`), skema.ParseOpt{FailFast: true})
	iss, _ := skema.AsIssues(err)
	if len(iss) != 1 {
		t.Fatalf("fail-fast should stop at the first issue, got %v", iss)
	}

	if _, err := skema.ParseJSON[any](ctx, nil, []byte(`{}`)); err == nil {
		t.Fatalf("expected error for nil schema")
	}
}

func TestIssuesError(t *testing.T) {
	iss := skema.Issues{
		{Path: "/a", Code: skema.CodeRequired},
		{Path: "/b", Code: skema.CodeInvalidType},
		{Path: "/c", Code: skema.CodeUnknownKey},
		{Path: "/d", Code: skema.CodeUnknownKey},
	}
	want := "required at /a; invalid_type at /b; unknown_key at /c; ... (total 4)"
	if got := iss.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if skema.Issues(nil).Error() != "" {
		t.Fatalf("empty issues should render empty")
	}

	wrapped := errors.Join(errors.New("context"), iss)
	got, ok := skema.AsIssues(wrapped)
	if !ok || len(got) != 4 {
		t.Fatalf("AsIssues should see through wrapping")
	}
	if _, ok := skema.AsIssues(errors.New("plain")); ok {
		t.Fatalf("plain errors are not issues")
	}
}

func TestRebaseIssues(t *testing.T) {
	child := skema.Issues{
		{Path: "/", Code: skema.CodeInvalidType},
		{Path: "/x", Code: skema.CodeRequired},
		{Path: "y", Code: skema.CodeRequired},
	}
	got := skema.RebaseIssues("/base", child)
	want := []string{"/base", "/base/x", "/base/y"}
	for i, it := range got {
		if it.Path != want[i] {
			t.Fatalf("issue %d path = %q, want %q", i, it.Path, want[i])
		}
	}

	plain := skema.RebaseIssues("/p", errors.New("boom"))
	if len(plain) != 1 || plain[0].Code != skema.CodeParseError || plain[0].Path != "/p" {
		t.Fatalf("unexpected rebase of plain error: %v", plain)
	}
	if skema.RebaseIssues("/p", nil) != nil {
		t.Fatalf("nil error rebases to nil")
	}
}

func TestEscapePointerToken(t *testing.T) {
	if got := skema.EscapePointerToken("a/b~c"); got != "a~1b~0c" {
		t.Fatalf("got %q", got)
	}
	if got := skema.EscapePointerToken("plain"); got != "plain" {
		t.Fatalf("got %q", got)
	}
}

func TestFailFastContext(t *testing.T) {
	ctx := context.Background()
	if skema.IsFailFast(ctx) {
		t.Fatalf("fail-fast is off by default")
	}
	if !skema.IsFailFast(skema.WithFailFast(ctx, true)) {
		t.Fatalf("WithFailFast(true) not observed")
	}
}

func TestUnknownPolicyNames(t *testing.T) {
	for _, p := range []skema.UnknownPolicy{skema.UnknownStrip, skema.UnknownStrict, skema.UnknownPassthrough} {
		back, ok := skema.ParseUnknownPolicy(p.String())
		if !ok || back != p {
			t.Fatalf("%v does not round-trip through its name", p)
		}
	}
	if _, ok := skema.ParseUnknownPolicy("Strict"); ok {
		t.Fatalf("bogus policy accepted")
	}
}
