package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"bitter/fernet"
)

// terminalFd reports the descriptor of r when it is an interactive terminal.
func terminalFd(r io.Reader) (int, bool) {
	f, ok := r.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// readKey returns the key text from the first line of s.key. When the key
// comes from an interactive terminal it is read without echo.
func readKey(s *streams, stdin io.Reader, prompt io.Writer) ([]byte, error) {
	if s.keyFromStdin {
		if fd, ok := terminalFd(stdin); ok {
			fmt.Fprint(prompt, "Enter key: ")
			key, err := term.ReadPassword(fd)
			fmt.Fprintln(prompt)
			if err != nil {
				return nil, fmt.Errorf("read key: %w", err)
			}
			return bytes.TrimSpace(key), nil
		}
	}

	key, err := readLine(s.key)
	if err != nil {
		return nil, fmt.Errorf("read key: %w", err)
	}
	return key, nil
}

func getPassphrase(stdin io.Reader, prompt io.Writer, msg string) ([]byte, error) {
	// First check environment variable
	if envPass := os.Getenv(PassphraseEnvVar); envPass != "" {
		return []byte(envPass), nil
	}

	return readPassword(stdin, prompt, msg)
}

func getPassphraseWithConfirm(stdin io.Reader, prompt io.Writer, msg, confirmMsg string) ([]byte, error) {
	if envPass := os.Getenv(PassphraseEnvVar); envPass != "" {
		return []byte(envPass), nil
	}

	passphrase, err := readPassword(stdin, prompt, msg)
	if err != nil {
		return nil, err
	}

	confirm, err := readPassword(stdin, prompt, confirmMsg)
	if err != nil {
		fernet.ZeroBytes(passphrase)
		return nil, err
	}
	defer fernet.ZeroBytes(confirm)

	if !bytes.Equal(passphrase, confirm) {
		fernet.ZeroBytes(passphrase)
		return nil, fmt.Errorf("passphrases do not match")
	}
	return passphrase, nil
}

func readPassword(stdin io.Reader, prompt io.Writer, msg string) ([]byte, error) {
	fmt.Fprint(prompt, msg)

	var passphrase []byte
	var err error

	if fd, ok := terminalFd(stdin); ok {
		passphrase, err = term.ReadPassword(fd)
		fmt.Fprintln(prompt)
	} else {
		// STDIN is not a terminal (piped), try to read from /dev/tty
		tty, ttyErr := os.Open("/dev/tty")
		if ttyErr != nil {
			return nil, fmt.Errorf("cannot read passphrase: stdin is not a terminal and /dev/tty is not available; set %s", PassphraseEnvVar)
		}
		defer tty.Close()

		passphrase, err = term.ReadPassword(int(tty.Fd()))
		fmt.Fprintln(prompt)
	}

	if err != nil {
		return nil, fmt.Errorf("read passphrase: %w", err)
	}
	return passphrase, nil
}
