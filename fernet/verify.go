package fernet

import (
	"crypto/subtle"
	"time"

	macsubtle "github.com/tink-crypto/tink-go/v2/mac/subtle"
)

// MaxClockSkew is how far in the future a token timestamp may be when a TTL
// is enforced.
const MaxClockSkew = 60 * time.Second

// Option configures Decrypt.
type Option func(*verifier)

// WithTTL rejects tokens older than ttl, truncated to whole seconds. A
// negative ttl is treated as zero. It also enables the clock-skew check.
func WithTTL(ttl time.Duration) Option {
	return func(v *verifier) {
		if ttl < 0 {
			ttl = 0
		}
		v.ttl = ttl
		v.checkTTL = true
	}
}

// WithNow sets the verification time. The default is time.Now.
func WithNow(now time.Time) Option {
	return func(v *verifier) {
		v.now = func() time.Time { return now }
	}
}

type verifier struct {
	ttl      time.Duration
	checkTTL bool
	now      func() time.Time
}

func newVerifier(opts []Option) *verifier {
	v := &verifier{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// checkTime applies the TTL and clock-skew rules to a token timestamp, both
// in whole seconds since the epoch.
func (v *verifier) checkTime(ts uint64) error {
	if !v.checkTTL {
		return nil
	}

	var now uint64
	if n := v.now().Unix(); n > 0 {
		now = uint64(n)
	}
	ttl := uint64(v.ttl / time.Second)
	skew := uint64(MaxClockSkew / time.Second)

	if ts < now && now-ts > ttl {
		return authErr(Expired)
	}
	if ts > now && ts-now > skew {
		return authErr(FromFuture)
	}
	return nil
}

// sign computes HMAC-SHA256 over data with the signing half of k.
func sign(k *Key, data []byte) ([]byte, error) {
	mac, err := macsubtle.NewHMAC("SHA256", k.signingKey(), tagSize)
	if err != nil {
		return nil, &KeyError{Reason: "signing key", Err: err}
	}
	return mac.ComputeMAC(data)
}

// verify recomputes the tag over signed and compares it with tag in
// constant time.
func verify(k *Key, signed, tag []byte) error {
	expected, err := sign(k, signed)
	if err != nil {
		return err
	}
	defer ZeroBytes(expected)

	if subtle.ConstantTimeCompare(expected, tag) != 1 {
		return authErr(InvalidSignature)
	}
	return nil
}
