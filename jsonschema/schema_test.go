package jsonschema

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	gjs "github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/skema/ir"
)

func resolve(t *testing.T, s *gjs.Schema) *gjs.Resolved {
	t.Helper()
	// round-trip through JSON so the resolver sees exactly what consumers see
	b, err := Marshal(s)
	require.NoError(t, err)
	var back gjs.Schema
	require.NoError(t, json.Unmarshal(b, &back))
	r, err := back.Resolve(&gjs.ResolveOptions{})
	require.NoError(t, err)
	return r
}

func decode(t *testing.T, doc string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(doc), &v))
	return v
}

func TestFromRoot_Basics(t *testing.T) {
	name := ir.NewItem(ir.KindString, "name")
	name.Description = "display name"
	age := ir.NewItem(ir.KindNumber, "age")
	age.Required = false
	age.Default = float64(0)
	at := ir.NewItem(ir.KindDatetime, "at")
	kind := ir.NewItem(ir.KindLiteral, "kind")
	kind.LiteralValue = "user"
	tags := ir.NewItem(ir.KindString, "tags")
	tags.IsArray = true
	tags.Default = []any{}

	s, err := FromRoot(ir.NewRoot().Add(name, age, at, kind, tags), WithTitle("User"))
	require.NoError(t, err)
	assert.Equal(t, Draft, s.Schema)
	assert.Equal(t, "User", s.Title)
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"at", "kind", "name"}, s.Required)
	assert.Equal(t, "display name", s.Properties["name"].Description)
	assert.Equal(t, "date-time", s.Properties["at"].Format)
	assert.Equal(t, "0", string(s.Properties["age"].Default))
	assert.Equal(t, "array", s.Properties["tags"].Type)
	assert.Equal(t, "string", s.Properties["tags"].Items.Type)
	require.NotNil(t, s.Properties["kind"].Const)
	assert.Equal(t, "user", *s.Properties["kind"].Const)
	assert.Nil(t, s.Defs)

	r := resolve(t, s)
	assert.NoError(t, r.Validate(decode(t, `{"name":"a","at":"2025-01-01T00:00:00Z","kind":"user","extra":1}`)))
	assert.Error(t, r.Validate(decode(t, `{"name":"a","at":"x","kind":"admin"}`)))
	assert.Error(t, r.Validate(decode(t, `{"at":"x","kind":"user"}`)))
	assert.Error(t, r.Validate(decode(t, `{"name":"a","at":"x","kind":"user","tags":[1]}`)))
}

func TestFromRoot_UnionAndFallbacks(t *testing.T) {
	nums := ir.NewItem(ir.KindNumber, "")
	nums.IsArray = true
	u := ir.NewItem(ir.KindUnion, "id").AddOption(ir.NewItem(ir.KindString, ""), nums)
	lone := ir.NewItem(ir.KindUnion, "lone").AddOption(ir.NewItem(ir.KindString, ""))
	badLit := ir.NewItem(ir.KindLiteral, "bad")
	badLit.LiteralValue = []any{1}
	weird := &ir.SchemaItem{ID: "w", Name: "weird", Kind: "map", Required: true}

	s, err := FromRoot(ir.NewRoot().Add(u, lone, badLit, weird))
	require.NoError(t, err)
	require.Len(t, s.Properties["id"].AnyOf, 2)
	assert.Equal(t, "array", s.Properties["id"].AnyOf[1].Type)
	assert.Empty(t, s.Properties["lone"].AnyOf)
	assert.Equal(t, "", *s.Properties["bad"].Const)

	r := resolve(t, s)
	assert.NoError(t, r.Validate(decode(t, `{"id":[1,2],"lone":true,"bad":"","weird":{"x":1}}`)))
	assert.NoError(t, r.Validate(decode(t, `{"id":"a","lone":null,"bad":"","weird":1}`)))
	assert.Error(t, r.Validate(decode(t, `{"id":true,"lone":1,"bad":"","weird":1}`)))
	assert.Error(t, r.Validate(decode(t, `{"id":"a","lone":1,"bad":"x","weird":1}`)))
}

func TestFromRoot_RecursiveRefs(t *testing.T) {
	node := ir.NewItem(ir.KindObject, "node")
	children := ir.NewLazy("children", node.ID)
	children.IsArray = true
	children.Required = false
	node.Add(ir.NewItem(ir.KindNumber, "value"), children)
	ghost := ir.NewLazy("ghost", "item_missing")
	ghost.Required = false

	s, err := FromRoot(ir.NewRoot().Add(node, ghost))
	require.NoError(t, err)
	require.Len(t, s.Defs, 1)
	require.Contains(t, s.Defs, node.ID)
	assert.Equal(t, "#/$defs/"+node.ID, s.Defs[node.ID].Properties["children"].Items.Ref)
	assert.Equal(t, "", s.Properties["ghost"].Ref)

	b, err := Marshal(s)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), `"$ref": "#/$defs/`+node.ID+`"`))

	r := resolve(t, s)
	assert.NoError(t, r.Validate(decode(t, `{"node":{"value":1,"children":[{"value":2,"children":[{"value":3}]}]},"ghost":[1]}`)))
	assert.Error(t, r.Validate(decode(t, `{"node":{"value":1,"children":[{"value":"x"}]}}`)))
}

func TestFromRoot_MutualRefs(t *testing.T) {
	a := ir.NewItem(ir.KindObject, "a")
	b := ir.NewItem(ir.KindObject, "b")
	toB := ir.NewLazy("b", b.ID)
	toB.Required = false
	toA := ir.NewLazy("a", a.ID)
	toA.Required = false
	a.Add(ir.NewItem(ir.KindString, "name"), toB)
	b.Add(ir.NewItem(ir.KindString, "title"), toA)

	s, err := FromRoot(ir.NewRoot().Add(a))
	require.NoError(t, err)
	assert.Len(t, s.Defs, 2)

	r := resolve(t, s)
	assert.NoError(t, r.Validate(decode(t, `{"a":{"name":"x","b":{"title":"y","a":{"name":"z"}}}}`)))
	assert.Error(t, r.Validate(decode(t, `{"a":{"name":"x","b":{"a":{"name":"z"}}}}`)))
}

func TestFromRoot_Strict(t *testing.T) {
	s, err := FromRoot(ir.NewRoot().Add(ir.NewItem(ir.KindString, "a")), WithStrict())
	require.NoError(t, err)
	r := resolve(t, s)
	assert.NoError(t, r.Validate(decode(t, `{"a":"x"}`)))
	assert.Error(t, r.Validate(decode(t, `{"a":"x","b":1}`)))
}

func TestFromRoot_UnserializableDefault(t *testing.T) {
	f := ir.NewItem(ir.KindString, "f")
	f.Default = func() {}
	_, err := FromRoot(ir.NewRoot().Add(f))
	assert.Error(t, err)
}
