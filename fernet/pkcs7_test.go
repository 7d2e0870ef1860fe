package fernet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPad(t *testing.T) {
	for n := 0; n <= 48; n++ {
		in := bytes.Repeat([]byte{'a'}, n)
		out := pad(in)

		want := 16 - n%16
		require.Equal(t, n+want, len(out), "len %d", n)
		assert.Equal(t, bytes.Repeat([]byte{byte(want)}, want), out[n:], "len %d", n)

		got, err := unpad(out)
		require.NoError(t, err, "len %d", n)
		assert.Equal(t, in, got, "len %d", n)
	}
}

func TestUnpad_Invalid(t *testing.T) {
	block := func(tail ...byte) []byte {
		b := bytes.Repeat([]byte{'x'}, 16-len(tail))
		return append(b, tail...)
	}

	tests := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"unaligned", []byte{1, 1, 1}},
		{"zero pad", block(0)},
		{"pad 17", block(17)},
		{"pad 255", block(255)},
		{"mismatched pad bytes", block(3, 2, 3)},
		{"full block pad with wrong bytes", append(bytes.Repeat([]byte{'x'}, 16), block(2, 16)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := unpad(tt.in)
			assert.ErrorIs(t, err, errPadding)
		})
	}
}

func TestUnpad_FullBlock(t *testing.T) {
	got, err := unpad(bytes.Repeat([]byte{16}, 16))
	require.NoError(t, err)
	assert.Empty(t, got)
}
