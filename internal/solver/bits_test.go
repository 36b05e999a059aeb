package solver

import (
	"errors"
	"testing"

	"github.com/danmuck/bitsctl/internal/protocol"
	"github.com/danmuck/bitsctl/internal/protocol/bits"
	"github.com/danmuck/bitsctl/internal/testutil/testlog"
)

func TestVersionSumSolve(t *testing.T) {
	testlog.Start(t)
	s := NewVersionSum(protocol.DefaultLimits())
	cases := map[string]string{
		"8A004A801A8002F478":             "16",
		"620080001611562C8802118E34":     "12",
		"C0015000016115A2E0802F182340":   "23",
		"A0016C880162017C3686B18A3D4780": "31",
	}
	for line, want := range cases {
		got, err := s.Solve([]string{line})
		if err != nil {
			t.Fatalf("solve %s: %v", line, err)
		}
		if got != want {
			t.Fatalf("solve %s = %q, want %q", line, got, want)
		}
	}
}

func TestEvaluateSolve(t *testing.T) {
	testlog.Start(t)
	s := NewEvaluate(protocol.DefaultLimits())
	cases := map[string]string{
		"C200B40A82":                    "3",
		"04005AC33890":                  "54",
		"880086C3E88112":                "7",
		"CE00C43D881120":                "9",
		"D8005AC2A8F0":                  "1",
		"F600BC2D8F":                    "0",
		"9C005AC2F8F0":                  "0",
		"9C0141080250320F1802104A08":    "1",
		"020084FFFFFFFFFFFFFFFFFFEF102": "18446744073709551616",
	}
	for line, want := range cases {
		got, err := s.Solve([]string{line})
		if err != nil {
			t.Fatalf("solve %s: %v", line, err)
		}
		if got != want {
			t.Fatalf("solve %s = %q, want %q", line, got, want)
		}
	}
}

func TestSolveUsesFirstNonBlankLine(t *testing.T) {
	testlog.Start(t)
	s := NewEvaluate(protocol.DefaultLimits())
	got, err := s.Solve([]string{"", "   ", "  C200B40A82\r", "04005AC33890"})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if got != "3" {
		t.Fatalf("unexpected answer: %q", got)
	}
}

func TestSolveErrors(t *testing.T) {
	testlog.Start(t)
	s := NewEvaluate(protocol.Limits{MaxDepth: 2})
	cases := []struct {
		lines  []string
		want   error
		reason string
	}{
		{lines: nil, want: ErrNoInput, reason: "no_input"},
		{lines: []string{"  "}, want: ErrNoInput, reason: "no_input"},
		{lines: []string{"D2FEXX"}, want: bits.ErrInvalidDigit, reason: "invalid_digit"},
		{lines: []string{"D2FE"}, want: bits.ErrUnexpectedEnd, reason: "unexpected_end"},
		{lines: []string{"000028408"}, want: protocol.ErrFramingOverrun, reason: "framing_overrun"},
		{lines: []string{"480000"}, want: protocol.ErrEmptyOperator, reason: "empty_operator"},
		{lines: []string{"3600C40882106"}, want: protocol.ErrArityMismatch, reason: "arity_mismatch"},
		{lines: []string{"8A004A801A8002F478"}, want: protocol.ErrTooDeep, reason: "too_deep"},
	}
	for _, tc := range cases {
		_, err := s.Solve(tc.lines)
		if !errors.Is(err, tc.want) {
			t.Fatalf("lines %q: expected %v, got %v", tc.lines, tc.want, err)
		}
		if got := Reason(err); got != tc.reason {
			t.Fatalf("lines %q: reason %q, want %q", tc.lines, got, tc.reason)
		}
	}
}

func TestReasonFallbacks(t *testing.T) {
	if Reason(nil) != "none" {
		t.Fatalf("nil error should map to none")
	}
	if Reason(errors.New("boom")) != "other" {
		t.Fatalf("unknown error should map to other")
	}
	if Reason(protocol.ErrInvalidOperatorKind) != "invalid_operator_kind" {
		t.Fatalf("unexpected reason for invalid operator kind")
	}
}
