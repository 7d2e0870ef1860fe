package fernet

// EncryptWithKey parses keyText as an encoded key, encrypts plaintext with it
// and destroys the parsed key before returning. keyText is left untouched;
// clear it with ZeroBytes when done.
func EncryptWithKey(keyText, plaintext []byte) ([]byte, error) {
	k, err := ParseKey(keyText)
	if err != nil {
		return nil, err
	}
	defer k.Destroy()

	return Encrypt(k, plaintext)
}

// DecryptWithKey parses keyText as an encoded key, verifies and decrypts
// token with it and destroys the parsed key before returning.
func DecryptWithKey(keyText, token []byte, opts ...Option) ([]byte, error) {
	k, err := ParseKey(keyText)
	if err != nil {
		return nil, err
	}
	defer k.Destroy()

	return Decrypt(k, token, opts...)
}

// EncryptString is EncryptWithKey for key text held in a string.
func EncryptString(keyText string, plaintext []byte) ([]byte, error) {
	return EncryptWithKey([]byte(keyText), plaintext)
}

// DecryptString is DecryptWithKey for key text held in a string.
func DecryptString(keyText string, token []byte, opts ...Option) ([]byte, error) {
	return DecryptWithKey([]byte(keyText), token, opts...)
}
