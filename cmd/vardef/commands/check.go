// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/vardef/cmd/vardef/cli"
	"github.com/bureau-foundation/vardef/lib/varfile"
	"github.com/bureau-foundation/vardef/lib/vars"
)

type checkParams struct {
	commonParams
	inputParams
}

func checkCommand(s *streams) *cli.Command {
	var params checkParams
	return &cli.Command{
		Name:    "check",
		Summary: "Validate collection files",
		Description: `Decode each FILE as a collection and verify that every int variable
with a scope constraint holds a value inside it.

Every file is checked and reported. The exit code is 1 if any file
fails.`,
		Usage: "vardef check [flags] FILE...",
		Examples: []cli.Example{
			{
				Description: "Validate every layer in a directory",
				Command:     "vardef check vars/*.toml",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("check", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			return runCheck(s, &params, args, logger)
		},
	}
}

func runCheck(s *streams, params *checkParams, args []string, logger *slog.Logger) error {
	if len(args) == 0 {
		return cli.Validation("check requires at least one FILE")
	}
	if _, err := params.setup(s); err != nil {
		return err
	}
	format, err := params.forced()
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range args {
		collection, err := varfile.ReadFile[vars.Collection](path, format)
		if err == nil {
			err = varfile.CheckScopes(collection)
		}
		if err != nil {
			failed++
			logger.Debug("check failed", "path", path, "error", err)
			fmt.Fprintf(s.out, "FAIL %s\n", path)
			for line := range strings.SplitSeq(err.Error(), "\n") {
				fmt.Fprintf(s.out, "     %s\n", line)
			}
			continue
		}
		fmt.Fprintf(s.out, "ok   %s (%d vars)\n", path, collection.Len())
	}

	if failed > 0 {
		fmt.Fprintf(s.out, "%d of %d files failed\n", failed, len(args))
		return &cli.ExitError{Code: 1}
	}
	return nil
}
