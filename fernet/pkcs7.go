package fernet

import (
	"crypto/aes"
	"crypto/subtle"
	"errors"
)

var errPadding = errors.New("invalid padding")

// pad appends PKCS7 padding. A full block is added when len(b) is already
// a multiple of the block size.
func pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	out := make([]byte, len(b)+n)
	copy(out, b)
	for i := len(b); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

// unpad strips PKCS7 padding. The pad bytes are checked without early exit
// so the running time depends only on the length of b.
func unpad(b []byte) ([]byte, error) {
	if len(b) == 0 || len(b)%aes.BlockSize != 0 {
		return nil, errPadding
	}
	n := int(b[len(b)-1])

	good := subtle.ConstantTimeLessOrEq(1, n) & subtle.ConstantTimeLessOrEq(n, aes.BlockSize)
	tail := b[len(b)-aes.BlockSize:]
	for i := 0; i < aes.BlockSize; i++ {
		// Only the last n bytes of the final block are padding.
		inPad := subtle.ConstantTimeLessOrEq(aes.BlockSize-i, n)
		match := subtle.ConstantTimeByteEq(tail[i], byte(n))
		good &= subtle.ConstantTimeSelect(inPad, match, 1)
	}
	if good != 1 {
		return nil, errPadding
	}
	return b[:len(b)-n], nil
}
