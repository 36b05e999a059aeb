// Package export turns a decoded packet tree into a serializable document.
//
// Ownership boundary:
// - document and node shapes
// - output formats (text, yaml, json, cbor)
// - input digest
package export
