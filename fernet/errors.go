package fernet

import (
	"errors"
	"fmt"
)

// Messages reported to users. They are the only text an error from this
// package ever carries outward.
const (
	MsgBadKey  = "bad key"
	MsgAuthErr = "authentication error"
)

var (
	// ErrBadKey matches every *KeyError via errors.Is.
	ErrBadKey = errors.New(MsgBadKey)
	// ErrInvalidToken matches every *AuthError via errors.Is.
	ErrInvalidToken = errors.New(MsgAuthErr)
)

// KeyError reports a key that could not be constructed or is no longer usable.
type KeyError struct {
	Reason string
	Err    error
}

func (e *KeyError) Error() string {
	return MsgBadKey
}

// Detail returns the diagnostic reason. Do not show it to untrusted parties.
func (e *KeyError) Detail() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

func (e *KeyError) Is(target error) bool {
	return target == ErrBadKey
}

// AuthKind classifies why a token was rejected.
type AuthKind int

const (
	// Malformed covers bad encoding, bad length, unknown version and bad padding.
	Malformed AuthKind = iota + 1
	// InvalidSignature means the HMAC tag did not match.
	InvalidSignature
	// Expired means the token is older than the TTL.
	Expired
	// FromFuture means the token timestamp is beyond the allowed clock skew.
	FromFuture
)

func (k AuthKind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case InvalidSignature:
		return "invalid signature"
	case Expired:
		return "expired"
	case FromFuture:
		return "timestamp in the future"
	default:
		return "unknown"
	}
}

// AuthError reports a rejected token. Its Error text is identical for every
// Kind so that callers cannot leak the reason by printing it.
type AuthError struct {
	Kind AuthKind
}

func (e *AuthError) Error() string {
	return MsgAuthErr
}

func (e *AuthError) Is(target error) bool {
	return target == ErrInvalidToken
}

func authErr(kind AuthKind) error {
	return &AuthError{Kind: kind}
}

// Message maps an error from this package to the text shown to users:
// "bad key" or "authentication error". Other errors keep their own text.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBadKey):
		return MsgBadKey
	case errors.Is(err, ErrInvalidToken):
		return MsgAuthErr
	default:
		return err.Error()
	}
}
