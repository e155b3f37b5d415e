// Package skema is the runtime side of a schema toolkit built around a
// tree-shaped intermediate representation (package ir).
//
// The toolkit converts in three directions:
//
//   - builder: ir tree -> runtime validator (dsl schemas implementing Schema[any])
//   - codegen: ir tree -> Zod TypeScript source
//   - importer: runtime validator -> ir tree (best-effort, via Introspector)
//
// This package holds the contract every validator implements (Schema,
// Introspector, AbsentHandler), the Issues error model, and small parse
// helpers. Concrete schemas live in package dsl.
//
// Example
//
//	root := ir.NewRoot()
//	name := ir.NewItem(ir.KindString, "name")
//	root.Fields = append(root.Fields, name)
//
//	s := builder.Build(root)
//	_, err := skema.ParseJSON(ctx, s, []byte(`{"name":"alice"}`))
//	_ = err
//
//	src := codegen.Emit(root) // import { z } from "zod"; ...
//	_ = src
package skema
