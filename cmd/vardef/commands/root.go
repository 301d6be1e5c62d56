// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/vardef/cmd/vardef/cli"
	"github.com/bureau-foundation/vardef/lib/version"
)

// Root builds the vardef command tree on the process's standard
// streams. level is the logger's level; --verbose lowers it to debug.
func Root(level *slog.LevelVar) *cli.Command {
	return newRoot(&streams{
		in:    os.Stdin,
		out:   os.Stdout,
		err:   os.Stderr,
		level: level,
	})
}

func newRoot(s *streams) *cli.Command {
	return &cli.Command{
		Name: "vardef",
		Description: `vardef: typed configuration variables.

Define string, bool, int and float variables with optional locked or
scope constraints, layer them across JSON, TOML, YAML and CBOR files,
and resolve them into a dictionary of values.`,
		HelpOutput: s.err,
		Subcommands: []*cli.Command{
			convertCommand(s),
			mergeCommand(s),
			resolveCommand(s),
			checkCommand(s),
			fingerprintCommand(s),
			diagCommand(s),
			versionCommand(s),
		},
	}
}

type versionParams struct {
	Modules bool `flag:"modules" desc:"also list the modules compiled into the binary"`
}

func versionCommand(s *streams) *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("version takes no arguments, got %q", args[0])
			}
			fmt.Fprintf(s.out, "vardef %s\n", version.Full())
			if params.Modules {
				for _, module := range version.Modules() {
					fmt.Fprintf(s.out, "  %s %s\n", module.Path, module.Version)
				}
			}
			return nil
		},
	}
}
