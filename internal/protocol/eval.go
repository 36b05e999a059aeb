package protocol

import (
	"fmt"
	"math/big"
)

// Evaluate reduces a packet tree to its integer value.
func Evaluate(p Packet) (*big.Int, error) {
	switch p := p.(type) {
	case *Literal:
		if p.Value == nil {
			return new(big.Int), nil
		}
		return new(big.Int).Set(p.Value), nil
	case *Operator:
		return evaluateOperator(p)
	case nil:
		return nil, ErrNilPacket
	default:
		return nil, fmt.Errorf("protocol: unknown packet type %T", p)
	}
}

// EvaluateUint64 is Evaluate for callers that need a machine integer.
func EvaluateUint64(p Packet) (uint64, error) {
	v, err := Evaluate(p)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: %s", ErrValueOverflow, v.String())
	}
	return v.Uint64(), nil
}

func evaluateOperator(op *Operator) (*big.Int, error) {
	switch op.Kind {
	case KindSum:
		acc := new(big.Int)
		for _, child := range op.Children {
			v, err := Evaluate(child)
			if err != nil {
				return nil, err
			}
			acc.Add(acc, v)
		}
		return acc, nil
	case KindProduct:
		acc := big.NewInt(1)
		for _, child := range op.Children {
			v, err := Evaluate(child)
			if err != nil {
				return nil, err
			}
			acc.Mul(acc, v)
		}
		return acc, nil
	case KindMinimum, KindMaximum:
		if len(op.Children) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyOperator, op.Kind)
		}
		var best *big.Int
		for _, child := range op.Children {
			v, err := Evaluate(child)
			if err != nil {
				return nil, err
			}
			cmp := 0
			if best != nil {
				cmp = v.Cmp(best)
			}
			if best == nil || (op.Kind == KindMinimum && cmp < 0) || (op.Kind == KindMaximum && cmp > 0) {
				best = v
			}
		}
		return best, nil
	case KindGreaterThan, KindLessThan, KindEqualTo:
		if len(op.Children) != 2 {
			return nil, fmt.Errorf("%w: %s needs 2 operands, has %d",
				ErrArityMismatch, op.Kind, len(op.Children))
		}
		lhs, err := Evaluate(op.Children[0])
		if err != nil {
			return nil, err
		}
		rhs, err := Evaluate(op.Children[1])
		if err != nil {
			return nil, err
		}
		cmp := lhs.Cmp(rhs)
		holds := (op.Kind == KindGreaterThan && cmp > 0) ||
			(op.Kind == KindLessThan && cmp < 0) ||
			(op.Kind == KindEqualTo && cmp == 0)
		if holds {
			return big.NewInt(1), nil
		}
		return new(big.Int), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidOperatorKind, op.Kind)
	}
}
