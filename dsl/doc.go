// Package dsl provides the concrete runtime schemas of skema, modelled on
// Zod's building blocks.
//
// Every constructor returns a value implementing skema.Schema[any] and
// skema.Introspector, so a schema built here can be parsed against decoded
// JSON and walked back into an ir tree by package importer.
//
// Entry points
//   - String(), Number(), Boolean(), Datetime(), Unknown(), Literal(v)
//   - Object(Field(name, s)...) with Strict()/Strip()/Passthrough()
//   - Array(elem), Union(a, b, ...)
//   - Optional(s), Default(s, v), Describe(s, d), Lazy(func() skema.Schema[any])
//
// Object semantics
//   - Keys are checked in declaration order; issues are reported under
//     "/<key>" and array elements under "/<index>".
//   - A missing key is delegated to the field schema when it implements
//     skema.AbsentHandler (Optional leaves it absent, Default fills it in);
//     otherwise a required issue is reported.
//   - Unknown keys are stripped by default.
//
// Example
//
//	user := dsl.Object(
//		dsl.Field("name", dsl.Describe(dsl.String(), "display name")),
//		dsl.Field("tags", dsl.Default(dsl.Array(dsl.String()), []any{})),
//	)
//	out, err := user.Parse(ctx, map[string]any{"name": "alice"})
//	// out: map[string]any{"name": "alice", "tags": []any{}}
package dsl
