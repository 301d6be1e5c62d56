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
	"github.com/bureau-foundation/vardef/lib/varfile"
)

type diagParams struct {
	Hex     bool `flag:"hex" desc:"input is hex text rather than binary CBOR"`
	Verbose bool `flag:"verbose,v" desc:"log at debug level"`
}

func diagCommand(s *streams) *cli.Command {
	var params diagParams
	return &cli.Command{
		Name:    "diag",
		Summary: "Show CBOR variable files in diagnostic notation",
		Description: `Read a CBOR variable file and write RFC 8949 Extended Diagnostic
Notation, one line per top-level item.

Diagnostic notation shows the exact encoding: integer vs float, map
key order, and the tagged shape of every variable. Compressed input is
decompressed first.`,
		Usage: "vardef diag [flags] [FILE]",
		Examples: []cli.Example{
			{
				Description: "Inspect a compressed dictionary",
				Command:     "vardef diag resolved.cbor.zst",
			},
			{
				Description: "Inspect hex pasted from a log",
				Command:     "echo 'a1 63 69 6e 74 f6' | vardef diag --hex",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("diag", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			return runDiag(s, &params, args, logger)
		},
	}
}

func runDiag(s *streams, params *diagParams, args []string, logger *slog.Logger) error {
	if params.Verbose && s.level != nil {
		s.level.Set(slog.LevelDebug)
	}
	data, path, err := readInput(s.in, args, params.Hex)
	if err != nil {
		return err
	}
	compression := varfile.Sniff(data)
	data, err = varfile.Decompress(data, compression)
	if err != nil {
		return cli.Validation("%s: %v", sourceName(path), err)
	}
	if len(data) == 0 {
		return cli.Validation("%s: empty input", sourceName(path))
	}
	logger.Debug("diagnosing cbor",
		"source", sourceName(path),
		"compression", compression.String(),
		"bytes", len(data),
	)

	// A CBOR sequence (RFC 8742) prints one line per item.
	remaining := data
	for len(remaining) > 0 {
		notation, rest, err := codec.DiagnoseFirst(remaining)
		if err != nil {
			offset := len(data) - len(remaining)
			return cli.Validation("diagnose CBOR at byte %d: %v", offset, err)
		}
		if _, err := fmt.Fprintln(s.out, notation); err != nil {
			return err
		}
		remaining = rest
	}
	return nil
}
