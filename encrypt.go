package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"bitter/fernet"
)

func encryptCommand() *cli.Command {
	return &cli.Command{
		Name:        "encrypt",
		Usage:       "encrypt data into a token",
		Description: "Encrypt stdin (or <file>) into a fernet token.",
		Flags: append(dataFlags(),
			&cli.BoolFlag{
				Name:  "x",
				Usage: "append an explanatory annotation",
			},
		),
		Action: func(c *cli.Context) error {
			opts := EncryptOptions{Annotate: c.Bool("x")}
			if !c.IsSet("x") {
				opts.Annotate = config(c).Annotate
			}
			return encrypt(c, opts)
		},
	}
}

// dataFlags are shared by encrypt and decrypt.
func dataFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      "k",
			Usage:     "read key from `file`",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:      "i",
			Usage:     "read input from `file` (and key from stdin)",
			TakesFile: true,
		},
	}
}

func encrypt(c *cli.Context, opts EncryptOptions) error {
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

	plaintext, err := io.ReadAll(s.input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	defer fernet.ZeroBytes(plaintext)

	token, err := fernet.EncryptWithKey(keyText, plaintext)
	if err != nil {
		logKeyError(log, err)
		return err
	}
	log.Debug("token created", zap.Int("plaintext_bytes", len(plaintext)), zap.Int("token_bytes", len(token)))

	w := bufio.NewWriter(c.App.Writer)
	w.Write(token)
	w.WriteString("\n")
	if opts.Annotate {
		w.WriteString(PredefinedTokenAnnotation)
		w.WriteString("\n")
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func logKeyError(log *zap.Logger, err error) {
	var ke *fernet.KeyError
	if errors.As(err, &ke) {
		log.Debug("key rejected", zap.String("reason", ke.Detail()))
	}
}
