package fernet

import "encoding/base64"

// Keys and tokens use padded URL-safe base64.
var encoding = base64.URLEncoding

func encode(src []byte) []byte {
	dst := make([]byte, encoding.EncodedLen(len(src)))
	encoding.Encode(dst, src)
	return dst
}

func decode(src []byte) ([]byte, error) {
	dst := make([]byte, encoding.DecodedLen(len(src)))
	n, err := encoding.Decode(dst, src)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}
