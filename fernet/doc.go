// Package fernet implements the Fernet authenticated-encryption token format.
//
// A token is the URL-safe base64 encoding of
//
//	version (0x80) | timestamp (8 bytes, big endian) | IV (16) | ciphertext | HMAC-SHA256 (32)
//
// The ciphertext is AES-128-CBC over the PKCS7-padded message. Keys are 32
// bytes: the first half signs, the second half encrypts. Tokens and keys are
// compatible with every implementation of https://github.com/fernet/spec.
//
// Usage:
//
//	k := fernet.GenerateKey()
//	tok, err := fernet.Encrypt(k, []byte("hello"))
//	msg, err := fernet.Decrypt(k, tok, fernet.WithTTL(time.Minute))
//
// Decrypt reports every rejection as an *AuthError whose message is always
// "authentication error"; the Kind field carries the reason for logs and
// tests. Fernet is meant for small messages that fit in memory.
package fernet
