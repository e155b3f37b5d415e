package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/ir"
)

func userDoc() *ir.RootSchema {
	age := ir.NewItem(ir.KindNumber, "age")
	age.Required = false
	age.Default = float64(18)
	nums := ir.NewItem(ir.KindNumber, "")
	nums.IsArray = true
	id := ir.NewItem(ir.KindUnion, "id").AddOption(ir.NewItem(ir.KindString, ""), nums)
	return ir.NewRoot().Add(ir.NewItem(ir.KindString, "name"), age, id)
}

func runCheck(t *testing.T, data string, policy skema.UnknownPolicy) (bool, string) {
	t.Helper()
	var buf bytes.Buffer
	ok, err := checkData(context.Background(), &buf, userDoc(), []byte(data), checkOpts{
		policy: policy,
		pal:    newPalette(false),
		log:    zap.NewNop(),
	})
	require.NoError(t, err)
	return ok, buf.String()
}

func TestCheckData_Valid(t *testing.T) {
	ok, out := runCheck(t, `{"name":"ann","id":[1,2],"extra":true}`, skema.UnknownStrip)
	require.True(t, ok, out)
	assert.Contains(t, out, `"age": 18`)
	assert.NotContains(t, out, "extra")
}

func TestCheckData_Issues(t *testing.T) {
	ok, out := runCheck(t, `{"id":true,"extra":1}`, skema.UnknownStrict)
	require.False(t, ok)
	assert.Contains(t, out, "/name required: ")
	assert.Contains(t, out, "/extra unknown_key: ")
	assert.Contains(t, out, "/id invalid_union: ")
	assert.Contains(t, out, "  option 1:\n")
	assert.Contains(t, out, "  option 2:\n")
	assert.NotContains(t, out, "\x1b[")

	ok, out = runCheck(t, `{"name":`, skema.UnknownStrip)
	require.False(t, ok)
	assert.True(t, strings.HasPrefix(out, "/ parse_error: "), out)
}

func TestWriteIssues_Colored(t *testing.T) {
	var buf bytes.Buffer
	writeIssues(&buf, skema.Issues{{Path: "/a", Code: skema.CodeRequired, Message: "missing"}}, newPalette(true), "")
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "missing")
}

func TestWriteDiagnostics(t *testing.T) {
	doc := ir.NewRoot().Add(ir.NewItem(ir.KindString, "a"), ir.NewLazy("b", "item_missing"), ir.NewItem(ir.KindString, "a"))
	diags := ir.Lint(doc)
	require.True(t, ir.HasErrors(diags))

	var buf bytes.Buffer
	writeDiagnostics(&buf, "doc.json", diags, newPalette(false))
	assert.Contains(t, buf.String(), "doc.json: warn dangling_ref at /b: ")
	assert.Contains(t, buf.String(), "doc.json: error duplicate_name at /a: ")
}

func TestDrift(t *testing.T) {
	src := emitSource(userDoc(), "", "")
	require.True(t, strings.HasSuffix(src, ";\n"))

	var buf bytes.Buffer
	assert.False(t, writeDrift(&buf, lineDiff(src, src), newPalette(false)))
	assert.Empty(t, buf.String())

	stale := strings.Replace(src, "z.number().optional().default(18)", "z.number()", 1)
	assert.True(t, writeDrift(&buf, lineDiff(stale, src), newPalette(false)))
	assert.Equal(t, "-   age: z.number(),\n+   age: z.number().optional().default(18),\n", buf.String())
}

func TestEmitSource_Names(t *testing.T) {
	src := emitSource(ir.NewRoot(), "user", "User")
	assert.Contains(t, src, "export const user = z.object({")
	assert.Contains(t, src, "export type User = z.infer<typeof user>;\n")
}

func TestNormalized(t *testing.T) {
	doc := userDoc()
	doc.Fields = append(doc.Fields, ir.NewLazy("self", "item_missing"))
	out := normalized(context.Background(), doc, zap.NewNop())
	require.Len(t, out.Fields, 4)
	assert.Equal(t, ir.KindNumber, out.Fields[1].Kind)
	assert.Equal(t, float64(18), out.Fields[1].Default)
	assert.Equal(t, "option_2", out.Fields[2].Options[1].Name)
	// references do not survive a build
	assert.Equal(t, ir.KindString, out.Fields[3].Kind)
	assert.Nil(t, out.Fields[3].Lazy)
}
