package main

import "time"

const (
	// ConfigEnvVar names the configuration file when --config is not given.
	ConfigEnvVar = "BITTER_CONFIG"
	// PassphraseEnvVar supplies the passphrase for derive non-interactively.
	PassphraseEnvVar = "BITTER_PASSPHRASE"
	// EnvPrefix prefixes environment overrides of configuration keys.
	EnvPrefix = "BITTER_"

	metaConfig = "config"
	metaLogger = "logger"
)

// PredefinedTokenAnnotation is an explanatory annotation that can be
// appended to new tokens.
const PredefinedTokenAnnotation = "This is a bitter token file. The above line contains a fernet token.\n" +
	"Bitter: https://github.com/giucal/bitter\n" +
	"Fernet: https://github.com/fernet/spec/blob/master/Spec.md"

// EncryptOptions holds encrypt parameters
type EncryptOptions struct {
	Annotate bool
}

// DecryptOptions holds decrypt parameters
type DecryptOptions struct {
	TTL    time.Duration
	HasTTL bool
}

// DeriveOptions holds Argon2id parameters for the derive command
type DeriveOptions struct {
	Salt         []byte
	Argon2Memory uint32 // in KB
	Argon2Time   uint32
}
