package bits

import (
	"fmt"
	"math/big"
	"strings"
)

// Sequence is an immutable MSB-first view over packed bits. Slicing shares
// the backing buffer.
type Sequence struct {
	buf []byte
	off int
	n   int
}

// FromBytes views b as a sequence of 8*len(b) bits.
func FromBytes(b []byte) Sequence {
	return Sequence{buf: b, n: 8 * len(b)}
}

// Len returns the number of bits in the sequence.
func (s Sequence) Len() int {
	return s.n
}

// At returns bit i as 0 or 1. It panics when i is out of range.
func (s Sequence) At(i int) uint8 {
	if i < 0 || i >= s.n {
		panic(fmt.Sprintf("bits: index %d out of range [0,%d)", i, s.n))
	}
	idx := s.off + i
	return (s.buf[idx>>3] >> (7 - uint(idx&7))) & 1
}

// Slice returns bits [i, j) as a new view. It panics when the bounds are
// invalid, like slicing does.
func (s Sequence) Slice(i, j int) Sequence {
	if i < 0 || j < i || j > s.n {
		panic(fmt.Sprintf("bits: slice [%d:%d] out of range [0,%d]", i, j, s.n))
	}
	return Sequence{buf: s.buf, off: s.off + i, n: j - i}
}

// Uint64 interprets the sequence as a big-endian unsigned integer.
func (s Sequence) Uint64() (uint64, error) {
	if s.n > 64 {
		return 0, fmt.Errorf("%w: %d bits do not fit uint64", ErrInvalidWidth, s.n)
	}
	var v uint64
	for i := 0; i < s.n; i++ {
		v = v<<1 | uint64(s.At(i))
	}
	return v, nil
}

// AppendTo shifts z left by Len bits and ORs the sequence into the low bits,
// returning z. A nil z allocates a new integer.
func (s Sequence) AppendTo(z *big.Int) *big.Int {
	if z == nil {
		z = new(big.Int)
	}
	chunk := new(big.Int)
	for start := 0; start < s.n; start += 64 {
		end := min(start+64, s.n)
		v, _ := s.Slice(start, end).Uint64()
		z.Lsh(z, uint(end-start))
		z.Or(z, chunk.SetUint64(v))
	}
	return z
}

// String renders the bits as '0' and '1' characters.
func (s Sequence) String() string {
	var b strings.Builder
	b.Grow(s.n)
	for i := 0; i < s.n; i++ {
		b.WriteByte('0' + s.At(i))
	}
	return b.String()
}
