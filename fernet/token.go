package fernet

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"errors"
	"time"

	"github.com/tink-crypto/tink-go/v2/subtle/random"
)

// Token layout: version | timestamp | iv | ciphertext | tag.
const (
	Version = 0x80

	versionSize   = 1
	timestampSize = 8
	ivSize        = aes.BlockSize
	tagSize       = 32

	headerSize = versionSize + timestampSize + ivSize
	overhead   = headerSize + tagSize

	// MinTokenSize is the smallest structurally valid binary token.
	MinTokenSize = overhead
)

var (
	errIVSize    = errors.New("fernet: iv must be 16 bytes")
	errTimestamp = errors.New("fernet: timestamp before the Unix epoch")
)

// Encrypt seals plaintext into a token using the current time and a fresh
// random IV.
func Encrypt(k *Key, plaintext []byte) ([]byte, error) {
	return EncryptAt(k, plaintext, time.Now(), random.GetRandomBytes(ivSize))
}

// EncryptAt seals plaintext with an explicit timestamp and IV. The same
// inputs always produce the same token; never reuse an IV with one key in
// production.
func EncryptAt(k *Key, plaintext []byte, now time.Time, iv []byte) ([]byte, error) {
	if err := k.check(); err != nil {
		return nil, err
	}
	if len(iv) != ivSize {
		return nil, errIVSize
	}
	if now.Unix() < 0 {
		return nil, errTimestamp
	}

	block, err := aes.NewCipher(k.encryptionKey())
	if err != nil {
		return nil, &KeyError{Reason: "encryption key", Err: err}
	}

	padded := pad(plaintext)
	defer ZeroBytes(padded)

	raw := make([]byte, headerSize+len(padded), headerSize+len(padded)+tagSize)
	raw[0] = Version
	binary.BigEndian.PutUint64(raw[versionSize:], uint64(now.Unix()))
	copy(raw[versionSize+timestampSize:], iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(raw[headerSize:], padded)

	tag, err := sign(k, raw)
	if err != nil {
		return nil, err
	}
	raw = append(raw, tag...)

	return encode(raw), nil
}

// Decrypt verifies token and returns its plaintext. Without WithTTL the
// token age is not checked.
//
// The tag is verified before the timestamp is looked at and before anything
// is decrypted. All failures are *AuthError values with the same message.
func Decrypt(k *Key, token []byte, opts ...Option) ([]byte, error) {
	if err := k.check(); err != nil {
		return nil, err
	}
	v := newVerifier(opts)

	raw, err := decode(token)
	if err != nil {
		return nil, authErr(Malformed)
	}
	if len(raw) < MinTokenSize || (len(raw)-MinTokenSize)%aes.BlockSize != 0 {
		return nil, authErr(Malformed)
	}
	if raw[0] != Version {
		return nil, authErr(Malformed)
	}

	signed, tag := raw[:len(raw)-tagSize], raw[len(raw)-tagSize:]
	if err := verify(k, signed, tag); err != nil {
		return nil, err
	}

	ts := timestamp(signed)
	if err := v.checkTime(ts); err != nil {
		return nil, err
	}

	iv := signed[versionSize+timestampSize : headerSize]
	ciphertext := signed[headerSize:]

	block, err := aes.NewCipher(k.encryptionKey())
	if err != nil {
		return nil, &KeyError{Reason: "encryption key", Err: err}
	}
	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := unpad(padded)
	if err != nil {
		return nil, authErr(Malformed)
	}
	return plaintext, nil
}

// Timestamp returns the creation time embedded in a token without verifying
// it. Use it for diagnostics only.
func Timestamp(token []byte) (time.Time, error) {
	raw, err := decode(token)
	if err != nil || len(raw) < headerSize || raw[0] != Version {
		return time.Time{}, authErr(Malformed)
	}
	return time.Unix(int64(timestamp(raw)), 0), nil
}

func timestamp(raw []byte) uint64 {
	return binary.BigEndian.Uint64(raw[versionSize : versionSize+timestampSize])
}
