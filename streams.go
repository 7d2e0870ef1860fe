package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// stdinName selects the app's input stream instead of a file.
const stdinName = "-"

// streams resolves where the key and the data come from. Exactly one of -k
// and -i is given; whichever is missing is read from stdin.
type streams struct {
	stdin *bufio.Reader
	key   io.Reader
	input io.Reader

	keyFromStdin bool
	closers      []io.Closer
}

func openStreams(c *cli.Context) (*streams, error) {
	keyFile, inputFile := c.String("k"), c.String("i")
	switch {
	case c.IsSet("k") && c.IsSet("i"):
		return nil, errors.New("-k and -i are mutually exclusive")
	case !c.IsSet("k") && !c.IsSet("i"):
		return nil, errors.New("one of -k <file> or -i <file> is required")
	case c.IsSet("k"):
		inputFile = stdinName
	default:
		keyFile = stdinName
	}

	s := &streams{stdin: bufio.NewReader(c.App.Reader)}

	var err error
	if s.key, err = s.open(keyFile); err != nil {
		s.Close()
		return nil, err
	}
	if s.input, err = s.open(inputFile); err != nil {
		s.Close()
		return nil, err
	}
	s.keyFromStdin = keyFile == stdinName
	return s, nil
}

func (s *streams) open(name string) (io.Reader, error) {
	if name == stdinName {
		return s.stdin, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	s.closers = append(s.closers, f)
	return bufio.NewReader(f), nil
}

// Close closes every file opened by openStreams. Stdin is left open.
func (s *streams) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	s.closers = nil
	return errors.Join(errs...)
}

// readLine returns the first line of r without its line ending or
// surrounding whitespace. A missing final newline is not an error.
func readLine(r io.Reader) ([]byte, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	line, err := br.ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return bytes.TrimSpace(line), nil
}
