// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/vardef/cmd/vardef/cli"
)

type mergeParams struct {
	commonParams
	inputParams
	outputParams
	layerParams
}

func mergeCommand(s *streams) *cli.Command {
	var params mergeParams
	return &cli.Command{
		Name:    "merge",
		Summary: "Merge collection files into one collection",
		Description: `Merge collection files left to right and print the merged collection.

Each file overrides the variables it shares with the files before it.
A variable keeps the position of its first definition and takes the
value of its last. Overriding a locked variable logs a warning, or
fails with --strict.`,
		Usage: "vardef merge [flags] FILE...",
		Examples: []cli.Example{
			{
				Description: "Overlay site settings on the defaults",
				Command:     "vardef merge defaults.toml site.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("merge", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			return runMerge(s, &params, args, logger)
		},
	}
}

func runMerge(s *streams, params *mergeParams, args []string, logger *slog.Logger) error {
	if len(args) == 0 {
		return cli.Validation("merge requires at least one FILE")
	}
	cfg, err := params.setup(s)
	if err != nil {
		return err
	}
	loader, err := params.loader(&params.inputParams, cfg, logger)
	if err != nil {
		return err
	}
	merged, err := mergeLayers(loader, cfg, args)
	if err != nil {
		return err
	}
	logger.Debug("merged layers", "files", len(args), "vars", merged.Len())
	return writeDocument(s, &params.outputParams, cfg, merged)
}
