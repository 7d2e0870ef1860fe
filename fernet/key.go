package fernet

import (
	"runtime"

	"github.com/tink-crypto/tink-go/v2/subtle/random"
)

const (
	// KeySize is the raw length of a Fernet key.
	KeySize = 32
	// subKeySize is the length of each half of the key.
	subKeySize = 16
)

// Key is a Fernet key: a 16-byte signing key followed by a 16-byte
// AES-128 encryption key.
type Key struct {
	b []byte
}

// GenerateKey returns a new random key. It panics if the system random
// source fails.
func GenerateKey() *Key {
	return &Key{b: random.GetRandomBytes(KeySize)}
}

// NewKey builds a key from 32 raw bytes. The input is copied.
func NewKey(raw []byte) (*Key, error) {
	if len(raw) != KeySize {
		return nil, &KeyError{Reason: "key must be 32 bytes"}
	}
	b := make([]byte, KeySize)
	copy(b, raw)
	return &Key{b: b}, nil
}

// ParseKey decodes the URL-safe base64 form of a key.
func ParseKey(text []byte) (*Key, error) {
	raw, err := decode(text)
	if err != nil {
		return nil, &KeyError{Reason: "invalid encoding", Err: err}
	}
	defer ZeroBytes(raw)

	if len(raw) != KeySize {
		return nil, &KeyError{Reason: "key must decode to 32 bytes"}
	}
	return NewKey(raw)
}

// ParseKeyString is ParseKey for strings.
func ParseKeyString(s string) (*Key, error) {
	return ParseKey([]byte(s))
}

// Encode returns the canonical URL-safe base64 form, always 44 bytes long.
func (k *Key) Encode() []byte {
	if !k.valid() {
		return nil
	}
	return encode(k.b)
}

func (k *Key) String() string {
	return string(k.Encode())
}

// Destroy zeroes the key material. The key is unusable afterwards.
func (k *Key) Destroy() {
	if k == nil {
		return
	}
	ZeroBytes(k.b)
	k.b = nil
}

func (k *Key) valid() bool {
	return k != nil && len(k.b) == KeySize
}

func (k *Key) check() error {
	if !k.valid() {
		return &KeyError{Reason: "key is nil or destroyed"}
	}
	return nil
}

func (k *Key) signingKey() []byte {
	return k.b[:subKeySize]
}

func (k *Key) encryptionKey() []byte {
	return k.b[subKeySize:]
}

// ZeroBytes overwrites b with zeros. Use it on key text, passphrases and
// plaintext once they are no longer needed.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
