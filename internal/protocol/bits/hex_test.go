package bits

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromHexMSBFirst(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "0", want: "0000"},
		{in: "F", want: "1111"},
		{in: "a", want: "1010"},
		{in: "D2FE28", want: "110100101111111000101000"},
		{in: "d2fe28", want: "110100101111111000101000"},
		{in: "1c3", want: "000111000011"},
	}
	for _, tc := range cases {
		seq, err := FromHex(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, 4*len(tc.in), seq.Len(), tc.in)
		require.Equal(t, tc.want, seq.String(), tc.in)
	}
}

func TestFromHexInvalidDigit(t *testing.T) {
	_, err := FromHex("38006G")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidDigit))

	var digitErr *InvalidDigitError
	require.True(t, errors.As(err, &digitErr))
	require.Equal(t, 5, digitErr.Index)
	require.Equal(t, byte('G'), digitErr.Char)
}

func TestFromHexRejectsSeparators(t *testing.T) {
	for _, in := range []string{"D2 FE", "D2-FE", "0x12", "D2FE28\n"} {
		_, err := FromHex(in)
		require.ErrorIs(t, err, ErrInvalidDigit, in)
	}
}
