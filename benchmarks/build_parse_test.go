package benchmarks

import (
	"context"
	"fmt"
	"strings"
	"testing"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/builder"
	"github.com/reoring/skema/codegen"
	"github.com/reoring/skema/ir"
)

// wideDoc has n scalar fields plus one recursive object.
func wideDoc(n int) *ir.RootSchema {
	root := ir.NewRoot()
	for i := 0; i < n; i++ {
		kind := ir.KindString
		if i%2 == 1 {
			kind = ir.KindNumber
		}
		root.Add(ir.NewItem(kind, fmt.Sprintf("f%d", i)))
	}
	node := ir.NewItem(ir.KindObject, "node")
	next := ir.NewLazy("next", node.ID)
	next.Required = false
	node.Add(ir.NewItem(ir.KindNumber, "v"), next)
	return root.Add(node)
}

func wideInput(n, depth int) []byte {
	var b strings.Builder
	b.WriteString("{")
	for i := 0; i < n; i++ {
		if i%2 == 1 {
			fmt.Fprintf(&b, `"f%d":%d,`, i, i)
		} else {
			fmt.Fprintf(&b, `"f%d":"x",`, i)
		}
	}
	b.WriteString(`"node":`)
	for i := 0; i < depth; i++ {
		b.WriteString(`{"v":1,"next":`)
	}
	b.WriteString(`{"v":1}`)
	b.WriteString(strings.Repeat("}", depth))
	b.WriteString("}")
	return []byte(b.String())
}

func Benchmark_Build_Wide(b *testing.B) {
	doc := wideDoc(64)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = builder.Build(doc)
	}
}

func Benchmark_Emit_Wide(b *testing.B) {
	doc := wideDoc(64)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = codegen.Emit(doc)
	}
}

func benchmarkParse(b *testing.B, mode skema.NumberMode) {
	ctx := context.Background()
	s := builder.Build(wideDoc(64))
	data := wideInput(64, 16)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := skema.ParseJSON[any](ctx, s, data, skema.ParseOpt{NumberMode: mode}); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Parse_Float64(b *testing.B)    { benchmarkParse(b, skema.NumberFloat64) }
func Benchmark_Parse_JSONNumber(b *testing.B) { benchmarkParse(b, skema.NumberJSONNumber) }
