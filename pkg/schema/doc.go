// Package schema describes the flow document format and checks documents
// against it.
//
// The JSON Schema is generated from the Go types in this package, so the
// schema, the validator and the documentation cannot drift apart:
//
//	data, err := schema.Generate()
//
// Validation runs in three phases and stops at the first phase that reports
// an error:
//
//   - structural: the document is YAML (or JSON) with a mapping at the top.
//   - semantic: the document satisfies the JSON Schema.
//   - domain: flow rules the schema cannot express, such as duplicate step
//     IDs, nextStepId targets that do not exist and regex patterns that do
//     not compile.
//
// Domain findings are warnings. The engine itself never rejects a flow: a
// malformed document still normalizes to defaults. Validation exists for
// authors who want to catch mistakes before an agent does.
package schema
