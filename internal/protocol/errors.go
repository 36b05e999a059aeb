package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOperatorKind = errors.New("protocol: invalid operator kind")
	ErrFramingOverrun      = errors.New("protocol: sub-packets overran declared length")
	ErrArityMismatch       = errors.New("protocol: operator arity mismatch")
	ErrEmptyOperator       = errors.New("protocol: operator has no operands")
	ErrTooDeep             = errors.New("protocol: packet nesting too deep")
	ErrValueOverflow       = errors.New("protocol: value overflows uint64")
	ErrNilPacket           = errors.New("protocol: nil packet")
)

// DecodeError records the bit offset at which decoding stopped.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("protocol: decode failed at bit %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
