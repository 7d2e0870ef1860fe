package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds a console logger writing to w. Key material, plaintext
// and tokens must never be passed to it.
func newLogger(w io.Writer, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if w == nil {
		w = os.Stderr
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core).Named("bitter"), nil
}

func logger(c *cli.Context) *zap.Logger {
	if log, ok := c.App.Metadata[metaLogger].(*zap.Logger); ok {
		return log
	}
	return zap.NewNop()
}

func zapSource(path string) zap.Field {
	if path == "" {
		return zap.String("source", "defaults+env")
	}
	return zap.String("source", path)
}
