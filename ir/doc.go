// Package ir is the tree-shaped intermediate representation of a schema
// document: a RootSchema holding ordered SchemaItem fields.
//
// Nodes refer to each other only through lazy refIds, resolved with an
// Index, so recursive schemas are still plain trees. Documents are read and
// written as JSON (the editor wire format) or YAML, and can be edited in
// place with JSON Patch.
package ir
