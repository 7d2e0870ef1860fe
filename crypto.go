package main

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"bitter/fernet"
)

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "generate a random fernet key",
		Action: func(c *cli.Context) error {
			key := fernet.GenerateKey()
			defer key.Destroy()

			return writeKey(c, key)
		},
	}
}

func deriveCommand() *cli.Command {
	return &cli.Command{
		Name:  "derive",
		Usage: "derive a fernet key from a passphrase",
		Description: "Derive a key with Argon2id. Without -s a random salt is generated and\n" +
			"printed to stderr; pass the same salt again to re-derive the key.\n" +
			"The passphrase is read from " + PassphraseEnvVar + " or the terminal.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "salt",
				Aliases: []string{"s"},
				Usage:   "URL-safe base64 `salt` of 16 bytes",
			},
			&cli.StringFlag{
				Name:    "memory",
				Aliases: []string{"m"},
				Usage:   "Argon2 memory cost, e.g. 64M or 1G (bare numbers are MB)",
			},
			&cli.UintFlag{
				Name:    "iterations",
				Aliases: []string{"t"},
				Usage:   "Argon2 iterations",
			},
		},
		Action: func(c *cli.Context) error {
			opts, err := deriveOptions(c)
			if err != nil {
				return err
			}
			return derive(c, opts)
		},
	}
}

func deriveOptions(c *cli.Context) (DeriveOptions, error) {
	cfg := config(c)

	memory := cfg.KDF.Memory
	if c.IsSet("memory") {
		memory = c.String("memory")
	}
	mem, err := parseMemory(memory)
	if err != nil {
		return DeriveOptions{}, fmt.Errorf("invalid memory value: %w", err)
	}

	iterations := cfg.KDF.Iterations
	if c.IsSet("iterations") {
		iterations = uint32(c.Uint("iterations"))
	}
	if iterations < 1 {
		return DeriveOptions{}, fmt.Errorf("iterations must be at least 1")
	}

	opts := DeriveOptions{Argon2Memory: mem, Argon2Time: iterations}
	if c.IsSet("salt") {
		salt, err := base64.URLEncoding.DecodeString(strings.TrimSpace(c.String("salt")))
		if err != nil {
			return DeriveOptions{}, fmt.Errorf("invalid salt encoding: %w", err)
		}
		if len(salt) != fernet.SaltSize {
			return DeriveOptions{}, fmt.Errorf("salt must be %d bytes, got %d", fernet.SaltSize, len(salt))
		}
		opts.Salt = salt
	}
	return opts, nil
}

func derive(c *cli.Context, opts DeriveOptions) error {
	var (
		passphrase []byte
		err        error
	)
	if opts.Salt == nil {
		passphrase, err = getPassphraseWithConfirm(c.App.Reader, c.App.ErrWriter, "Enter passphrase: ", "Confirm passphrase: ")
	} else {
		passphrase, err = getPassphrase(c.App.Reader, c.App.ErrWriter, "Enter passphrase: ")
	}
	if err != nil {
		return fmt.Errorf("failed to get passphrase: %w", err)
	}
	defer fernet.ZeroBytes(passphrase)

	if len(passphrase) == 0 {
		return fmt.Errorf("passphrase cannot be empty")
	}

	salt := opts.Salt
	if salt == nil {
		salt = fernet.NewSalt()
		fmt.Fprintf(c.App.ErrWriter, "salt: %s\n", base64.URLEncoding.EncodeToString(salt))
	}

	params := fernet.KDFParams{
		Time:    opts.Argon2Time,
		Memory:  opts.Argon2Memory,
		Threads: fernet.DefaultKDFParams().Threads,
	}
	logger(c).Debug("deriving key",
		zap.Uint32("iterations", params.Time),
		zap.Uint32("memory_kib", params.Memory))

	key, err := fernet.DeriveKey(passphrase, salt, params)
	if err != nil {
		return err
	}
	defer key.Destroy()

	return writeKey(c, key)
}

func writeKey(c *cli.Context, key *fernet.Key) error {
	out := append(key.Encode(), '\n')
	defer fernet.ZeroBytes(out)

	if _, err := c.App.Writer.Write(out); err != nil {
		return fmt.Errorf("write key: %w", err)
	}
	return nil
}

// memoryUnits maps size suffixes to KiB multipliers. Longer suffixes come
// first so "MB" is not read as "B".
var memoryUnits = []struct {
	suffix string
	kib    uint64
}{
	{"GB", 1 << 20}, {"G", 1 << 20},
	{"MB", 1 << 10}, {"M", 1 << 10},
	{"KB", 1}, {"K", 1},
}

// parseMemory converts an Argon2 memory cost such as "64", "64M", "1GB" or
// "65536K" to KiB. A number without a unit is in MB.
func parseMemory(s string) (uint32, error) {
	s = strings.ToUpper(strings.TrimSpace(s))

	unit := uint64(1 << 10)
	for _, u := range memoryUnits {
		if n, ok := strings.CutSuffix(s, u.suffix); ok {
			s, unit = n, u.kib
			break
		}
	}

	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	kib := n * unit
	switch {
	case kib > math.MaxUint32:
		return 0, fmt.Errorf("memory value too large")
	case kib < 1<<10:
		return 0, fmt.Errorf("memory must be at least 1MB")
	}
	return uint32(kib), nil
}

// formatMemory renders a KiB amount in the form parseMemory accepts.
func formatMemory(kib uint32) string {
	if kib%(1<<10) == 0 {
		return strconv.FormatUint(uint64(kib>>10), 10) + "M"
	}
	return strconv.FormatUint(uint64(kib), 10) + "K"
}
