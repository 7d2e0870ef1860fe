package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"bitter/fernet"
)

func main() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", filepath.Base(os.Args[0]), fernet.Message(err))
		os.Exit(1)
	}
}

// App builds the command tree. Streams default to the process's stdin,
// stdout and stderr; tests replace App.Reader, App.Writer and App.ErrWriter.
func App() *cli.App {
	return &cli.App{
		Name:  "bitter",
		Usage: "command-line interface to the fernet AE scheme",
		Description: "Fernet (and so this command) is meant for small pieces of data that can\n" +
			"fit in memory.\n\n" +
			"For the full specification of the fernet scheme, see:\n" +
			"    https://github.com/fernet/spec/blob/master/Spec.md",
		Version:         Version,
		HideVersion:     true,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "load settings from YAML `file`",
				EnvVars: []string{ConfigEnvVar},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log diagnostics to stderr",
			},
		},
		Commands: []*cli.Command{
			versionCommand(),
			encryptCommand(),
			decryptCommand(),
			generateCommand(),
			deriveCommand(),
		},
		Before: setup,
		After: func(c *cli.Context) error {
			if log := logger(c); log != nil {
				_ = log.Sync()
			}
			return nil
		},
	}
}

// setup loads configuration and the logger into the app metadata.
func setup(c *cli.Context) error {
	cfg, err := LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if c.Bool("verbose") {
		level = "debug"
	}
	log, err := newLogger(c.App.ErrWriter, level)
	if err != nil {
		return err
	}

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[metaConfig] = cfg
	c.App.Metadata[metaLogger] = log

	log.Debug("configuration loaded", zapSource(c.String("config")))
	return nil
}
