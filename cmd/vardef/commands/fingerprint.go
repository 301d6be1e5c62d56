// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/vardef/cmd/vardef/cli"
)

type fingerprintParams struct {
	commonParams
	inputParams
	layerParams
}

func fingerprintCommand(s *streams) *cli.Command {
	var params fingerprintParams
	return &cli.Command{
		Name:    "fingerprint",
		Summary: "Print a content hash of the resolved values",
		Description: `Merge and resolve variable layers exactly as "vardef resolve" does,
then print a BLAKE3 hash of the resulting dictionary.

The hash covers the deterministic CBOR encoding of the dictionary, so
it changes only when a resolved name or value changes. File formats,
layer order that does not affect the result, and constraints do not
change it.`,
		Usage: "vardef fingerprint [flags] [FILE...]",
		Examples: []cli.Example{
			{
				Description: "Detect whether a deploy changes any resolved value",
				Command:     `test "$(vardef fingerprint old/*.toml)" = "$(vardef fingerprint new/*.toml)"`,
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("fingerprint", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			return runFingerprint(s, &params, args, logger)
		},
	}
}

func runFingerprint(s *streams, params *fingerprintParams, args []string, logger *slog.Logger) error {
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
	fingerprint, err := merged.Resolve().Fingerprint()
	if err != nil {
		return cli.Internal("%w", err)
	}
	_, err = fmt.Fprintln(s.out, fingerprint.String())
	return err
}
