package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRowLabel(t *testing.T) {
	cases := map[int]string{1: "A", 2: "B", 26: "Z", 27: "AA", 52: "AZ", 53: "BA", 702: "ZZ", 703: "AAA"}
	for n, want := range cases {
		got, err := EncodeRowLabel(n)
		require.NoError(t, err)
		assert.Equal(t, want, got, "n=%d", n)
	}
}

func TestEncodeRowLabelRejectsNonPositive(t *testing.T) {
	for _, n := range []int{0, -1, -27} {
		_, err := EncodeRowLabel(n)
		assert.ErrorIs(t, err, ErrInvalidRowIndex)
	}
}

func TestDecodeRowLabelIsInverse(t *testing.T) {
	for n := 1; n <= 2000; n++ {
		label, err := EncodeRowLabel(n)
		require.NoError(t, err)
		back, err := DecodeRowLabel(label)
		require.NoError(t, err)
		assert.Equal(t, n, back)
	}
}

func TestDecodeRowLabelInput(t *testing.T) {
	n, err := DecodeRowLabel(" ab ")
	require.NoError(t, err)
	assert.Equal(t, 28, n)

	_, err = DecodeRowLabel("")
	assert.Error(t, err)
	_, err = DecodeRowLabel("A1")
	assert.Error(t, err)
}
