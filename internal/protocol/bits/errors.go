package bits

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDigit  = errors.New("bits: invalid hex digit")
	ErrUnexpectedEnd = errors.New("bits: unexpected end of input")
	ErrInvalidWidth  = errors.New("bits: invalid width")
)

// InvalidDigitError reports the first non-hex character of an input line.
type InvalidDigitError struct {
	Index int
	Char  byte
}

func (e *InvalidDigitError) Error() string {
	return fmt.Sprintf("bits: invalid hex digit %q at index %d", e.Char, e.Index)
}

func (e *InvalidDigitError) Unwrap() error {
	return ErrInvalidDigit
}

// EndError reports a read past the end of a sequence.
type EndError struct {
	Position int
	Want     int
	Have     int
}

func (e *EndError) Error() string {
	return fmt.Sprintf("bits: unexpected end of input at bit %d: want %d, have %d", e.Position, e.Want, e.Have)
}

func (e *EndError) Unwrap() error {
	return ErrUnexpectedEnd
}
