// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// vardef merges and converts typed configuration variable files.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/bureau-foundation/vardef/cmd/vardef/cli"
	"github.com/bureau-foundation/vardef/cmd/vardef/commands"
)

func main() {
	if err := run(); err != nil {
		// ExitError and ToolError carry their own exit codes. ExitError
		// means the command already reported the failure.
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var toolErr *cli.ToolError
		if errors.As(err, &toolErr) {
			os.Exit(toolErr.ExitCode())
		}
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	level := new(slog.LevelVar)
	logger := cli.NewCommandLogger(level)
	return commands.Root(level).Execute(ctx, os.Args[1:], logger)
}
