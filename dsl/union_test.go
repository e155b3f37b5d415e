package dsl_test

import (
	"context"
	"testing"

	skema "github.com/reoring/skema"
	g "github.com/reoring/skema/dsl"
)

func TestUnion_FirstMatchWins(t *testing.T) {
	ctx := context.Background()

	card := g.Object(g.Field("number", g.String()))
	bank := g.Object(g.Field("iban", g.String())).Passthrough()
	u := g.Union(card, bank)

	// both accept; card strips iban, proving card was chosen
	v, err := u.Parse(ctx, map[string]any{"number": "4111", "iban": "DE00"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	m := v.(map[string]any)
	if _, ok := m["iban"]; ok || m["number"] != "4111" {
		t.Fatalf("expected first option output, got %#v", m)
	}

	// only bank accepts
	v, err = u.Parse(ctx, map[string]any{"iban": "DE00"})
	if err != nil || v.(map[string]any)["iban"] != "DE00" {
		t.Fatalf("bank should match, got v=%v err=%v", v, err)
	}
}

func TestUnion_NoMatch(t *testing.T) {
	u := g.Union(g.String(), g.Number())
	_, err := u.Parse(context.Background(), true)
	iss, ok := skema.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != skema.CodeInvalidUnion || iss[0].Path != "/" {
		t.Fatalf("expected invalid_union at /, got %v", err)
	}
	branches, _ := iss[0].Params["options"].([]skema.Issues)
	if len(branches) != 2 {
		t.Fatalf("expected per-option issues, got %#v", iss[0].Params)
	}
	if branches[0][0].Code != skema.CodeInvalidType {
		t.Fatalf("unexpected branch issue: %+v", branches[0])
	}
}

func TestUnion_NestedPathIsRebased(t *testing.T) {
	s := g.Object(g.Field("v", g.Union(g.String(), g.Boolean())))
	_, err := s.Parse(context.Background(), map[string]any{"v": 1})
	iss, _ := skema.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/v" {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestUnion_Def(t *testing.T) {
	u := g.Union(g.String(), nil, g.Number())
	def, ok := skema.DefOf(u)
	if !ok || def.Type != skema.TypeUnion || len(def.Options) != 2 {
		t.Fatalf("unexpected def: %+v", def)
	}
}
