// Package protocol owns the BITS packet grammar and its interpretation.
//
// Ownership boundary:
// - packet tree types (literal and operator shapes)
// - recursive-descent decode over a bits.Cursor
// - expression evaluation and version summing
// - tree traversal and rendering helpers
package protocol
