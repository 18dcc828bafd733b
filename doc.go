// Package linkvalidate compiles schemas written either as async-validator
// style field rules or as JSON-Schema-shaped canonical schemas into one
// reusable Validator.
//
// It provides:
//
//   - Format detection, with WithFormat to force a reading
//   - Normalization of rule syntax to the canonical schema, reporting
//     recognized-but-unsupported rule constructs (validator, asyncValidator,
//     trigger, whitespace, transform) as warnings
//   - A stable error model via Issues (JSON Pointer path, code, message)
//   - Error rendering that follows the input syntax: instancePath for
//     canonical schemas, field for rule syntax
//
// A compiled Validator is immutable and safe for concurrent Validate calls.
//
// Typical usage:
//
//	v, diag, err := linkvalidate.Compile(schema)
//	for _, w := range diag.Warnings() { log.Println(w) }
//	res := v.Validate(ctx, data)
//	out, _ := json.Marshal(res.Rendered())
package linkvalidate
