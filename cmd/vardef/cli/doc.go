// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the vardef binary.
//
// A [Command] tree dispatches on the first positional argument, parses
// pflag flags bound from tagged parameter structs ([FlagsFromParams]),
// and suggests the closest command or flag name on typos. Commands
// return [ToolError] values whose category selects the process exit
// code, or [ExitError] when they have already reported the failure
// themselves.
//
// [NewCommandLogger] builds the slog logger handed to every Run
// function, and [Highlight] colors text output with chroma when
// writing to a terminal.
package cli
