// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema and
// decodes them into Go values.
//
// Parsing follows three steps: compile the schema, unify the user document
// with a schema definition, then validate and decode. Validation failures
// are reported as *ValidationError values that carry the file name and the
// JSON-style path of the offending field.
//
//	//go:embed config_schema.cue
//	var schema string
//
//	result, err := cueutil.ParseAndDecodeString[map[string]any](
//	    schema, data, "#Config",
//	    cueutil.WithFilename(path),
//	    cueutil.WithConcrete(false),
//	)
package cueutil
