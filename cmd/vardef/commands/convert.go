// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/vardef/cmd/vardef/cli"
	"github.com/bureau-foundation/vardef/lib/codec"
	"github.com/bureau-foundation/vardef/lib/config"
	"github.com/bureau-foundation/vardef/lib/varfile"
	"github.com/bureau-foundation/vardef/lib/vars"
)

type convertParams struct {
	commonParams
	inputParams
	outputParams
	Kind string `flag:"kind,k" desc:"document kind: var, value, constraint, collection, or dictionary" default:"collection"`
}

func convertCommand(s *streams) *cli.Command {
	var params convertParams
	return &cli.Command{
		Name:    "convert",
		Summary: "Re-encode a variable document in another format",
		Description: `Decode one variable document and write it back out, usually in a
different format. The document is fully validated on the way through:
unknown tags, missing fields and out-of-range integers are reported
with the path of the offending node.

Compressed input (zstd or LZ4 frames) is detected from its content.`,
		Usage: "vardef convert [flags] [FILE]",
		Examples: []cli.Example{
			{
				Description: "Convert a TOML collection to YAML",
				Command:     "vardef convert --to yaml base.toml",
			},
			{
				Description: "Compress a resolved dictionary",
				Command:     "vardef convert --kind dictionary -o resolved.cbor.zst resolved.json",
			},
			{
				Description: "Read a single variable from stdin",
				Command:     `echo '{"int":{"name":"port","value":8080,"constr":null}}' | vardef convert --kind var --to toml`,
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("convert", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			return runConvert(s, &params, args, logger)
		},
	}
}

func runConvert(s *streams, params *convertParams, args []string, logger *slog.Logger) error {
	cfg, err := params.setup(s)
	if err != nil {
		return err
	}
	data, path, err := readInput(s.in, args, false)
	if err != nil {
		return err
	}
	format, err := params.format(path, cfg)
	if err != nil {
		return err
	}

	logger.Debug("converting document",
		"kind", params.Kind,
		"source", sourceName(path),
		"from", format.String(),
	)

	switch params.Kind {
	case "var":
		return convert[vars.Var](s, params, cfg, data, format, path)
	case "value":
		return convert[vars.Resolved](s, params, cfg, data, format, path)
	case "constraint":
		return convert[vars.Constraint](s, params, cfg, data, format, path)
	case "collection":
		return convert[vars.Collection](s, params, cfg, data, format, path)
	case "dictionary":
		return convert[vars.Dictionary](s, params, cfg, data, format, path)
	default:
		return cli.Validation("unknown --kind %q (want var, value, constraint, collection, or dictionary)", params.Kind)
	}
}

func convert[T vars.Document](s *streams, params *convertParams, cfg *config.Config, data []byte, format codec.Format, path string) error {
	document, err := varfile.Decode[T](data, format)
	if err != nil {
		return categorize(fmt.Errorf("%s: %w", sourceName(path), err))
	}
	return writeDocument(s, &params.outputParams, cfg, document)
}
