package bits

import "fmt"

// Cursor reads a sequence front to back. The position only moves forward
// and a failed read leaves it where it was.
type Cursor struct {
	seq Sequence
	pos int
}

func NewCursor(seq Sequence) *Cursor {
	return &Cursor{seq: seq}
}

// Len returns the total number of bits behind the cursor.
func (c *Cursor) Len() int {
	return c.seq.Len()
}

// Position returns the number of bits consumed so far.
func (c *Cursor) Position() int {
	return c.pos
}

// Remaining returns the number of bits left to consume.
func (c *Cursor) Remaining() int {
	return c.seq.Len() - c.pos
}

// TakeBit consumes one bit.
func (c *Cursor) TakeBit() (uint8, error) {
	if c.Remaining() < 1 {
		return 0, c.endError(1)
	}
	b := c.seq.At(c.pos)
	c.pos++
	return b, nil
}

// TakeBits consumes n bits and returns them uninterpreted.
func (c *Cursor) TakeBits(n int) (Sequence, error) {
	if n < 0 {
		return Sequence{}, fmt.Errorf("%w: negative width %d", ErrInvalidWidth, n)
	}
	if c.Remaining() < n {
		return Sequence{}, c.endError(n)
	}
	out := c.seq.Slice(c.pos, c.pos+n)
	c.pos += n
	return out, nil
}

// TakeUint consumes n bits, n in [0, 64], as a big-endian unsigned integer.
func (c *Cursor) TakeUint(n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, fmt.Errorf("%w: %d bits requested as uint64", ErrInvalidWidth, n)
	}
	seq, err := c.TakeBits(n)
	if err != nil {
		return 0, err
	}
	return seq.Uint64()
}

func (c *Cursor) endError(want int) error {
	return &EndError{Position: c.pos, Want: want, Have: c.Remaining()}
}
