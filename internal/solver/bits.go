package solver

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/danmuck/bitsctl/internal/observability"
	"github.com/danmuck/bitsctl/internal/protocol"
	"github.com/danmuck/bitsctl/internal/protocol/bits"
	"github.com/rs/zerolog/log"
)

const (
	VersionSumID = "bits.versions"
	EvaluateID   = "bits.eval"
)

var ErrNoInput = errors.New("solver: no input line")

// VersionSum answers with the sum of every packet version in the tree.
type VersionSum struct {
	decoder *protocol.Decoder
}

// Evaluate answers with the value of the packet expression.
type Evaluate struct {
	decoder *protocol.Decoder
}

func NewVersionSum(limits protocol.Limits) *VersionSum {
	return &VersionSum{decoder: protocol.NewDecoder(limits)}
}

func NewEvaluate(limits protocol.Limits) *Evaluate {
	return &Evaluate{decoder: protocol.NewDecoder(limits)}
}

func (s *VersionSum) Metadata() Metadata {
	return Metadata{
		ID:          VersionSumID,
		Part:        1,
		Name:        "Version sum",
		Description: "Sum of the version field of every packet",
	}
}

func (s *VersionSum) Solve(lines []string) (string, error) {
	return run(VersionSumID, s.decoder, lines, func(p protocol.Packet) (string, error) {
		return strconv.FormatUint(protocol.VersionSum(p), 10), nil
	})
}

func (s *Evaluate) Metadata() Metadata {
	return Metadata{
		ID:          EvaluateID,
		Part:        2,
		Name:        "Evaluate",
		Description: "Value of the expression encoded by the packet tree",
	}
}

func (s *Evaluate) Solve(lines []string) (string, error) {
	return run(EvaluateID, s.decoder, lines, func(p protocol.Packet) (string, error) {
		v, err := protocol.Evaluate(p)
		if err != nil {
			return "", err
		}
		return v.String(), nil
	})
}

// FirstLine returns the first non-blank line, trimmed.
func FirstLine(lines []string) (string, error) {
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
	return "", ErrNoInput
}

// DecodeLine decodes one input line and records decode metrics.
func DecodeLine(decoder *protocol.Decoder, line string) (*protocol.Result, error) {
	res, err := decoder.DecodeHex(line)
	if err != nil {
		observability.RecordError(Reason(err))
		return nil, err
	}
	observability.RecordDecodeBits(res.Consumed)
	protocol.Walk(res.Packet, func(p protocol.Packet, _ int) bool {
		observability.RecordPacket(protocol.TypeName(p))
		return true
	})
	log.Debug().
		Int("bits", res.Bits).
		Int("consumed", res.Consumed).
		Int("trailing", res.Trailing).
		Msg("decoded packet")
	return res, nil
}

func run(id string, decoder *protocol.Decoder, lines []string, answer func(protocol.Packet) (string, error)) (out string, err error) {
	start := time.Now()
	defer func() {
		observability.RecordSolve(id, time.Since(start), err == nil)
	}()

	line, err := FirstLine(lines)
	if err != nil {
		observability.RecordError(Reason(err))
		return "", err
	}
	res, err := DecodeLine(decoder, line)
	if err != nil {
		return "", err
	}
	out, err = answer(res.Packet)
	if err != nil {
		observability.RecordError(Reason(err))
		return "", err
	}
	log.Debug().Str("solver", id).Str("answer", out).Msg("solved")
	return out, nil
}

// Reason maps an error to a stable metric label.
func Reason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, bits.ErrInvalidDigit):
		return "invalid_digit"
	case errors.Is(err, bits.ErrUnexpectedEnd):
		return "unexpected_end"
	case errors.Is(err, protocol.ErrInvalidOperatorKind):
		return "invalid_operator_kind"
	case errors.Is(err, protocol.ErrFramingOverrun):
		return "framing_overrun"
	case errors.Is(err, protocol.ErrArityMismatch):
		return "arity_mismatch"
	case errors.Is(err, protocol.ErrEmptyOperator):
		return "empty_operator"
	case errors.Is(err, protocol.ErrTooDeep):
		return "too_deep"
	case errors.Is(err, ErrNoInput):
		return "no_input"
	default:
		return "other"
	}
}
