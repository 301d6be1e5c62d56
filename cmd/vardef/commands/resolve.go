// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/vardef/cmd/vardef/cli"
)

type resolveParams struct {
	commonParams
	inputParams
	outputParams
	layerParams
}

func resolveCommand(s *streams) *cli.Command {
	var params resolveParams
	return &cli.Command{
		Name:    "resolve",
		Summary: "Merge layers and print the resolved values",
		Description: `Merge variable layers and print the resulting dictionary of values,
keyed by variable name. Constraints are dropped.

With FILE arguments only those files are merged. Without arguments the
layers named in the config are merged, followed by the config's inline
variables.`,
		Usage: "vardef resolve [flags] [FILE...]",
		Examples: []cli.Example{
			{
				Description: "Resolve the configured layers as YAML",
				Command:     "vardef resolve --config vardef.yaml --to yaml",
			},
			{
				Description: "Resolve two files into a compressed CBOR dictionary",
				Command:     "vardef resolve -o resolved.cbor.zst defaults.toml site.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("resolve", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			return runResolve(s, &params, args, logger)
		},
	}
}

func runResolve(s *streams, params *resolveParams, args []string, logger *slog.Logger) error {
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
	dictionary := merged.Resolve()
	logger.Debug("resolved variables", "values", len(dictionary))
	return writeDocument(s, &params.outputParams, cfg, dictionary)
}
