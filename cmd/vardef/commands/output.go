// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"

	"github.com/bureau-foundation/vardef/cmd/vardef/cli"
	"github.com/bureau-foundation/vardef/lib/codec"
	"github.com/bureau-foundation/vardef/lib/config"
	"github.com/bureau-foundation/vardef/lib/varfile"
	"github.com/bureau-foundation/vardef/lib/vars"
)

// outputParams control how a command writes its result document.
type outputParams struct {
	To      string `flag:"to" desc:"output format: json, jsonc, toml, yaml, or cbor (default: config output.format)"`
	Output  string `flag:"output,o" desc:"write to FILE instead of stdout; format and compression follow its extension"`
	Compact bool   `flag:"compact" desc:"single-line JSON output"`
	Color   string `flag:"color" desc:"syntax highlighting: auto, always, or never (default: config output.color)"`
}

// writeDocument encodes v and writes it to --output or stdout.
func writeDocument[T vars.Document](s *streams, params *outputParams, cfg *config.Config, v T) error {
	var format codec.Format
	if params.To != "" {
		parsed, err := codec.ParseFormat(params.To)
		if err != nil {
			return cli.Validation("--to: %v", err)
		}
		format = parsed
	}

	if params.Output != "" {
		if err := varfile.WriteFile(params.Output, v, format); err != nil {
			return cli.Internal("writing output: %w", err)
		}
		return nil
	}

	if format == 0 {
		configured, err := cfg.OutputFormat()
		if err != nil {
			return cli.Validation("output.format: %v", err)
		}
		format = configured
	}

	data, err := vars.Marshal(format, v)
	if err != nil {
		return cli.Validation("%v", err)
	}

	if format.Binary() {
		if cli.IsTerminal(s.out) {
			return cli.Validation("refusing to write %s to a terminal; use --output or redirect stdout", format)
		}
		_, err = s.out.Write(data)
		return err
	}

	if (format == codec.JSON || format == codec.JSONC) && !params.Compact && !cfg.Output.Compact {
		data, err = codec.IndentJSON(data)
		if err != nil {
			return cli.Internal("%w", err)
		}
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}

	mode := params.Color
	if mode == "" {
		mode = cfg.Output.Color
	}
	color, err := cli.ShouldColor(mode, s.out)
	if err != nil {
		return err
	}
	if color {
		data, err = cli.Highlight(format, data)
		if err != nil {
			return cli.Internal("%w", err)
		}
	}

	_, err = s.out.Write(data)
	return err
}
