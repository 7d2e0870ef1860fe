package main

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v2"

	"bitter/fernet"
)

// Config holds settings that apply when the matching flag is absent.
type Config struct {
	// TTL is the default decrypt TTL in seconds; 0 disables it.
	TTL int `koanf:"ttl"`
	// Annotate appends the annotation to every new token.
	Annotate bool `koanf:"annotate"`

	Log LogConfig `koanf:"log"`
	KDF KDFConfig `koanf:"kdf"`
}

// LogConfig configures diagnostics output.
type LogConfig struct {
	Level string `koanf:"level"`
}

// KDFConfig holds Argon2id costs for derive.
type KDFConfig struct {
	// Memory accepts the same forms as --memory, e.g. "64M" or "1G".
	Memory     string `koanf:"memory"`
	Iterations uint32 `koanf:"iterations"`
}

// defaultConfig is the configuration used when no file or environment
// overrides are present. The KDF costs follow fernet.DefaultKDFParams.
func defaultConfig() *Config {
	p := fernet.DefaultKDFParams()
	return &Config{
		Log: LogConfig{Level: "warn"},
		KDF: KDFConfig{
			Memory:     formatMemory(p.Memory),
			Iterations: p.Time,
		},
	}
}

func defaults() map[string]any {
	d := defaultConfig()
	return map[string]any{
		"ttl":            d.TTL,
		"annotate":       d.Annotate,
		"log.level":      d.Log.Level,
		"kdf.memory":     d.KDF.Memory,
		"kdf.iterations": d.KDF.Iterations,
	}
}

// LoadConfig merges defaults, the YAML file at path (if any) and BITTER_*
// environment variables, later sources winning.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// BITTER_LOG_LEVEL -> log.level
	transform := func(s string) string {
		if s == ConfigEnvVar || s == PassphraseEnvVar {
			return ""
		}
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "_", ".")
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", transform), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.TTL < 0 {
		return nil, fmt.Errorf("invalid config: ttl must not be negative")
	}
	return &cfg, nil
}

// config returns the configuration loaded by the Before hook, or the
// built-in defaults when the hook has not run.
func config(c *cli.Context) *Config {
	if cfg, ok := c.App.Metadata[metaConfig].(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
