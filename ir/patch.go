package ir

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
)

// ApplyPatch applies an RFC 6902 JSON Patch to the JSON form of r and returns
// the patched document. r is not modified.
//
// Paths address the document as serialized, e.g. "/fields/0/required".
func ApplyPatch(r *RootSchema, patch []byte) (*RootSchema, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	doc, err := EncodeJSON(r)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(doc)
	if err != nil {
		return nil, fmt.Errorf("apply patch: %w", err)
	}
	return DecodeJSON(out)
}
