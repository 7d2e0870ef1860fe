package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/urfave/cli/v2"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "0.1.0"

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:        "version",
		Usage:       "print version",
		Description: "Print version details.",
		Action: func(c *cli.Context) error {
			fmt.Fprintf(c.App.Writer, "bitter v%s\n", Version)
			fmt.Fprintf(c.App.Writer, "tink-go %s, x/crypto %s, %s (fernet implementation)\n",
				moduleVersion("github.com/tink-crypto/tink-go/v2"),
				moduleVersion("golang.org/x/crypto"),
				runtime.Version())
			return nil
		},
	}
}

// moduleVersion reports the version of a dependency linked into the binary.
func moduleVersion(path string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == path {
			if dep.Replace != nil {
				return dep.Replace.Version
			}
			return dep.Version
		}
	}
	return "unknown"
}
