// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the vardef command tree.
//
// Commands read variable documents from files or stdin, merge and
// resolve them with [varfile.Loader], and write results to stdout or
// to a file named by --output. Output format, color and compaction
// follow flags first, then the config file loaded from --config or
// $VARDEF_CONFIG.
package commands
