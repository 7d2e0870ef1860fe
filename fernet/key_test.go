package fernet

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	k := GenerateKey()
	require.True(t, k.valid())

	enc := k.String()
	assert.Len(t, enc, 44)

	raw, err := base64.URLEncoding.DecodeString(enc)
	require.NoError(t, err)
	assert.Len(t, raw, KeySize)
}

func TestGenerateKey_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := GenerateKey().String()
		require.False(t, seen[s], "GenerateKey() produced duplicate key")
		seen[s] = true
	}
}

func TestParseKey(t *testing.T) {
	k := GenerateKey()

	parsed, err := ParseKey(k.Encode())
	require.NoError(t, err)
	assert.Equal(t, k.b, parsed.b)
	assert.Equal(t, k.String(), parsed.String())
}

func TestParseKey_Invalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"31 bytes", base64.URLEncoding.EncodeToString(make([]byte, 31))},
		{"33 bytes", base64.URLEncoding.EncodeToString(make([]byte, 33))},
		{"16 bytes", base64.URLEncoding.EncodeToString(make([]byte, 16))},
		{"standard alphabet", "+/+/+/+/+/+/+/+/+/+/+/+/+/+/+/+/+/+/+/+/+/8="},
		{"missing padding", "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"},
		{"not base64", strings.Repeat("!", 44)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := ParseKeyString(tt.text)
			require.Error(t, err)
			assert.Nil(t, k)
			assert.ErrorIs(t, err, ErrBadKey)
			assert.Equal(t, MsgBadKey, err.Error())

			var ke *KeyError
			require.ErrorAs(t, err, &ke)
			assert.NotEmpty(t, ke.Detail())
		})
	}
}

func TestNewKey(t *testing.T) {
	raw := bytes.Repeat([]byte{7}, KeySize)
	k, err := NewKey(raw)
	require.NoError(t, err)

	// The key owns its own copy.
	raw[0] = 0
	assert.Equal(t, byte(7), k.b[0])

	assert.Equal(t, bytes.Repeat([]byte{7}, subKeySize), k.signingKey())
	assert.Equal(t, bytes.Repeat([]byte{7}, subKeySize), k.encryptionKey())

	_, err = NewKey(raw[:31])
	assert.ErrorIs(t, err, ErrBadKey)
}

func TestKeyHalves(t *testing.T) {
	raw := make([]byte, KeySize)
	for i := range raw {
		raw[i] = byte(i)
	}
	k, err := NewKey(raw)
	require.NoError(t, err)

	assert.Equal(t, raw[:16], k.signingKey())
	assert.Equal(t, raw[16:], k.encryptionKey())
}

func TestKeyDestroy(t *testing.T) {
	k := GenerateKey()
	material := k.b

	k.Destroy()

	assert.Equal(t, make([]byte, KeySize), material)
	assert.Nil(t, k.Encode())
	assert.Empty(t, k.String())

	_, err := Encrypt(k, []byte("x"))
	assert.ErrorIs(t, err, ErrBadKey)

	_, err = Decrypt(k, []byte("x"))
	assert.ErrorIs(t, err, ErrBadKey)

	// Destroying twice or destroying nil is harmless.
	k.Destroy()
	var nilKey *Key
	nilKey.Destroy()
}

func TestZeroBytes(t *testing.T) {
	b := []byte("secret key text")
	ZeroBytes(b)
	assert.Equal(t, make([]byte, len("secret key text")), b)

	ZeroBytes(nil)
}
