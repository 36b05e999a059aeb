// Package bits owns the bit-level primitives under the packet decoder.
//
// Ownership boundary:
// - hex text to MSB-first bit sequences
// - forward-only cursor with bounds checking
// - big-endian interpretation of bit runs
package bits
