package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"bitter/fernet"
)

func decryptCommand() *cli.Command {
	return &cli.Command{
		Name:        "decrypt",
		Usage:       "decrypt a token",
		Description: "Decrypt the first line of stdin (or <file>).",
		Flags: append(dataFlags(),
			&cli.Int64Flag{
				Name:  "ttl",
				Usage: "reject tokens older than `n` seconds",
			},
		),
		Action: func(c *cli.Context) error {
			opts, err := decryptOptions(c)
			if err != nil {
				return err
			}
			return decrypt(c, opts)
		},
	}
}

func decryptOptions(c *cli.Context) (DecryptOptions, error) {
	if c.IsSet("ttl") {
		ttl := c.Int64("ttl")
		if ttl < 0 {
			return DecryptOptions{}, fmt.Errorf("invalid ttl %d: must not be negative", ttl)
		}
		return DecryptOptions{TTL: time.Duration(ttl) * time.Second, HasTTL: true}, nil
	}
	if ttl := config(c).TTL; ttl > 0 {
		return DecryptOptions{TTL: time.Duration(ttl) * time.Second, HasTTL: true}, nil
	}
	return DecryptOptions{}, nil
}

func decrypt(c *cli.Context, opts DecryptOptions) error {
	log := logger(c)

	s, err := openStreams(c)
	if err != nil {
		return err
	}
	defer s.Close()

	keyText, err := readKey(s, c.App.Reader, c.App.ErrWriter)
	if err != nil {
		return err
	}
	defer fernet.ZeroBytes(keyText)

	token, err := readLine(s.input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var verify []fernet.Option
	if opts.HasTTL {
		verify = append(verify, fernet.WithTTL(opts.TTL))
	}

	plaintext, err := fernet.DecryptWithKey(keyText, token, verify...)
	if err != nil {
		var ae *fernet.AuthError
		if errors.As(err, &ae) {
			log.Debug("token rejected", zap.Stringer("reason", ae.Kind))
		}
		logKeyError(log, err)
		return err
	}
	defer fernet.ZeroBytes(plaintext)

	if _, err := c.App.Writer.Write(plaintext); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
