package protocol

import (
	"fmt"
	"math/big"
)

// Field widths of the packet grammar, in bits.
const (
	VersionBits = 3
	TypeIDBits  = 3
	GroupBits   = 4
	CountBits   = 11
	LengthBits  = 15
)

// TypeLiteral is the type id of a literal packet. It is never an operator.
const TypeLiteral uint8 = 4

// Length-type bit values of an operator header.
const (
	LengthTypeBits  uint8 = 0
	LengthTypeCount uint8 = 1
)

// Kind is the operator applied to an operator packet's children.
type Kind uint8

const (
	KindSum         Kind = 0
	KindProduct     Kind = 1
	KindMinimum     Kind = 2
	KindMaximum     Kind = 3
	KindGreaterThan Kind = 5
	KindLessThan    Kind = 6
	KindEqualTo     Kind = 7
)

// ParseKind maps an operator type id to its Kind.
func ParseKind(typeID uint8) (Kind, error) {
	switch k := Kind(typeID); k {
	case KindSum, KindProduct, KindMinimum, KindMaximum,
		KindGreaterThan, KindLessThan, KindEqualTo:
		return k, nil
	default:
		return 0, fmt.Errorf("%w: type id %d", ErrInvalidOperatorKind, typeID)
	}
}

func (k Kind) String() string {
	switch k {
	case KindSum:
		return "sum"
	case KindProduct:
		return "product"
	case KindMinimum:
		return "minimum"
	case KindMaximum:
		return "maximum"
	case KindGreaterThan:
		return "greater_than"
	case KindLessThan:
		return "less_than"
	case KindEqualTo:
		return "equal_to"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Symbol returns the short operator form used by Format.
func (k Kind) Symbol() string {
	switch k {
	case KindSum:
		return "+"
	case KindProduct:
		return "*"
	case KindMinimum:
		return "min"
	case KindMaximum:
		return "max"
	case KindGreaterThan:
		return ">"
	case KindLessThan:
		return "<"
	case KindEqualTo:
		return "=="
	default:
		return "?"
	}
}

// Packet is a decoded BITS packet: either *Literal or *Operator.
type Packet interface {
	PacketVersion() uint8
	packet()
}

// Literal directly encodes one integer value.
type Literal struct {
	Version uint8
	Value   *big.Int
	// Groups is the number of 4-bit groups the value was encoded in.
	Groups int
}

// Operator applies Kind to the values of its children, in order.
type Operator struct {
	Version  uint8
	Kind     Kind
	Children []Packet
}

func (l *Literal) PacketVersion() uint8  { return l.Version }
func (o *Operator) PacketVersion() uint8 { return o.Version }

func (*Literal) packet()  {}
func (*Operator) packet() {}

// TypeName labels a packet as "literal" or by its operator kind.
func TypeName(p Packet) string {
	switch p := p.(type) {
	case *Literal:
		return "literal"
	case *Operator:
		return p.Kind.String()
	default:
		return "unknown"
	}
}
