package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"bitter/fernet"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.TTL)
	assert.False(t, cfg.Annotate)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "64M", cfg.KDF.Memory)

	p := fernet.DefaultKDFParams()
	mem, err := parseMemory(cfg.KDF.Memory)
	require.NoError(t, err)
	assert.Equal(t, p.Memory, mem)
	assert.Equal(t, p.Time, cfg.KDF.Iterations)
}

func TestConfig_WithoutBeforeHook(t *testing.T) {
	t.Setenv("BITTER_TTL", "-1")

	c := cli.NewContext(&cli.App{}, nil, nil)
	cfg := config(c)
	require.NotNil(t, cfg)

	assert.Equal(t, defaultConfig(), cfg)
	assert.Equal(t, 0, cfg.TTL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestFormatMemory(t *testing.T) {
	for _, kib := range []uint32{1024, 64 * 1024, 1024 * 1024, 1536, 65537} {
		got, err := parseMemory(formatMemory(kib))
		require.NoError(t, err)
		assert.Equal(t, kib, got)
	}
	assert.Equal(t, "64M", formatMemory(64*1024))
	assert.Equal(t, "1536K", formatMemory(1536))
}

func TestLoadConfig_File(t *testing.T) {
	path := writeFile(t, "bitter.yaml", `
ttl: 300
annotate: true
log:
  level: debug
kdf:
  memory: 256M
  iterations: 4
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.TTL)
	assert.True(t, cfg.Annotate)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "256M", cfg.KDF.Memory)
	assert.Equal(t, uint32(4), cfg.KDF.Iterations)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "bitter.yaml", "ttl: 300\nlog:\n  level: info\n")
	t.Setenv("BITTER_TTL", "30")
	t.Setenv("BITTER_LOG_LEVEL", "error")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.TTL)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("/nonexistent/bitter.yaml")
	assert.Error(t, err)

	bad := writeFile(t, "bad.yaml", "ttl: [unterminated\n")
	_, err = LoadConfig(bad)
	assert.Error(t, err)

	negative := writeFile(t, "neg.yaml", "ttl: -5\n")
	_, err = LoadConfig(negative)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ttl must not be negative")
}

func TestParseMemory(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"64", 64 * 1024, false},
		{"64M", 64 * 1024, false},
		{"64mb", 64 * 1024, false},
		{"1G", 1024 * 1024, false},
		{"2GB", 2 * 1024 * 1024, false},
		{"2048K", 2048, false},
		{"2048kb", 2048, false},
		{"65536K", 64 * 1024, false},
		{"1GG", 0, true},
		{"64B", 0, true},
		{"4096G", 0, true},
		{" 1M ", 1024, false},
		{"512K", 0, true},
		{"0", 0, true},
		{"abc", 0, true},
		{"5000G", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseMemory(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(&buf, "info")
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("shown")
	require.NoError(t, log.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = newLogger(&buf, "chatty")
	assert.Error(t, err)
}

func TestReadLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"newline", "abc\nrest", "abc"},
		{"crlf", "abc\r\nrest", "abc"},
		{"no newline", "abc", "abc"},
		{"surrounding space", "  abc  \n", "abc"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readLine(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
