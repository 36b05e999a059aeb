package protocol

import (
	"fmt"
	"math/big"

	"github.com/danmuck/bitsctl/internal/protocol/bits"
)

// Limits constrains decoder resource use.
type Limits struct {
	// MaxDepth bounds packet nesting. Zero or less disables the check.
	MaxDepth int
}

func DefaultLimits() Limits {
	return Limits{MaxDepth: 512}
}

// Decoder decodes packets under a fixed set of limits.
type Decoder struct {
	limits Limits
}

func NewDecoder(limits Limits) *Decoder {
	return &Decoder{limits: limits}
}

// Result is one decoded top-level packet and the bit accounting of its line.
type Result struct {
	Packet Packet
	// Bits is the length of the whole input sequence.
	Bits int
	// Consumed is the number of bits the packet occupied.
	Consumed int
	// Trailing is the padding left after the packet. It is not validated.
	Trailing int
}

// Decode reads exactly one packet, and its sub-packets, from c using
// DefaultLimits.
func Decode(c *bits.Cursor) (Packet, error) {
	return NewDecoder(DefaultLimits()).Decode(c)
}

// DecodeHex converts line to bits and decodes one top-level packet using
// DefaultLimits.
func DecodeHex(line string) (*Result, error) {
	return NewDecoder(DefaultLimits()).DecodeHex(line)
}

// Decode reads exactly one packet, and its sub-packets, from c.
func (d *Decoder) Decode(c *bits.Cursor) (Packet, error) {
	p, err := d.decodePacket(c, 0)
	if err != nil {
		return nil, &DecodeError{Offset: c.Position(), Err: err}
	}
	return p, nil
}

func (d *Decoder) DecodeHex(line string) (*Result, error) {
	seq, err := bits.FromHex(line)
	if err != nil {
		return nil, err
	}
	c := bits.NewCursor(seq)
	p, err := d.Decode(c)
	if err != nil {
		return nil, err
	}
	return &Result{
		Packet:   p,
		Bits:     seq.Len(),
		Consumed: c.Position(),
		Trailing: c.Remaining(),
	}, nil
}

func (d *Decoder) decodePacket(c *bits.Cursor, depth int) (Packet, error) {
	if d.limits.MaxDepth > 0 && depth >= d.limits.MaxDepth {
		return nil, fmt.Errorf("%w: limit %d", ErrTooDeep, d.limits.MaxDepth)
	}

	version, err := c.TakeUint(VersionBits)
	if err != nil {
		return nil, err
	}
	typeID, err := c.TakeUint(TypeIDBits)
	if err != nil {
		return nil, err
	}

	if uint8(typeID) == TypeLiteral {
		return decodeLiteral(c, uint8(version))
	}

	kind, err := ParseKind(uint8(typeID))
	if err != nil {
		return nil, err
	}
	lengthType, err := c.TakeBit()
	if err != nil {
		return nil, err
	}

	var children []Packet
	if lengthType == LengthTypeCount {
		children, err = d.decodeByCount(c, depth)
	} else {
		children, err = d.decodeByLength(c, depth)
	}
	if err != nil {
		return nil, err
	}
	return &Operator{Version: uint8(version), Kind: kind, Children: children}, nil
}

func decodeLiteral(c *bits.Cursor, version uint8) (Packet, error) {
	value := new(big.Int)
	groups := 0
	for {
		more, err := c.TakeBit()
		if err != nil {
			return nil, err
		}
		group, err := c.TakeBits(GroupBits)
		if err != nil {
			return nil, err
		}
		group.AppendTo(value)
		groups++
		if more == 0 {
			return &Literal{Version: version, Value: value, Groups: groups}, nil
		}
	}
}

// decodeByCount reads an 11-bit sub-packet count and exactly that many
// children.
func (d *Decoder) decodeByCount(c *bits.Cursor, depth int) ([]Packet, error) {
	count, err := c.TakeUint(CountBits)
	if err != nil {
		return nil, err
	}
	children := make([]Packet, 0, count)
	for i := uint64(0); i < count; i++ {
		child, err := d.decodePacket(c, depth+1)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

// decodeByLength reads a 15-bit sub-packet length and decodes children until
// exactly that many bits are consumed.
func (d *Decoder) decodeByLength(c *bits.Cursor, depth int) ([]Packet, error) {
	length, err := c.TakeUint(LengthBits)
	if err != nil {
		return nil, err
	}
	declared := int(length)
	if declared > c.Remaining() {
		return nil, fmt.Errorf("%w: sub-packets declare %d bits, %d remain",
			bits.ErrUnexpectedEnd, declared, c.Remaining())
	}

	start := c.Remaining()
	var children []Packet
	for {
		consumed := start - c.Remaining()
		if consumed == declared {
			return children, nil
		}
		if consumed > declared {
			return nil, fmt.Errorf("%w: declared %d bits, consumed %d",
				ErrFramingOverrun, declared, consumed)
		}
		child, err := d.decodePacket(c, depth+1)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
}
