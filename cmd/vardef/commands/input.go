// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"unicode"

	"github.com/bureau-foundation/vardef/cmd/vardef/cli"
	"github.com/bureau-foundation/vardef/lib/codec"
	"github.com/bureau-foundation/vardef/lib/config"
	"github.com/bureau-foundation/vardef/lib/varfile"
)

// inputParams select the format of documents read by a command.
type inputParams struct {
	From string `flag:"from" desc:"input format: json, jsonc, toml, yaml, or cbor (default: from the file extension)"`
}

// forced returns the --from format, or zero when the flag is unset so
// callers fall back to extension detection.
func (p *inputParams) forced() (codec.Format, error) {
	if p.From == "" {
		return 0, nil
	}
	format, err := codec.ParseFormat(p.From)
	if err != nil {
		return 0, cli.Validation("--from: %v", err)
	}
	return format, nil
}

// format picks the format for a document read from path (empty for
// stdin): --from, else the path's extension, else the configured
// output format.
func (p *inputParams) format(path string, cfg *config.Config) (codec.Format, error) {
	if format, err := p.forced(); err != nil || format != 0 {
		return format, err
	}
	if path != "" {
		if format, _, err := varfile.DetectPath(path); err == nil {
			return format, nil
		}
	}
	format, err := cfg.OutputFormat()
	if err != nil {
		return 0, cli.Validation("output.format: %v", err)
	}
	return format, nil
}

// readInput returns the contents of the single file named by args, or
// of stdin when args is empty or "-". The returned path is empty for
// stdin.
//
// When hexMode is true, the input is hex text: whitespace is stripped
// and the digits are decoded to binary.
func readInput(stdin io.Reader, args []string, hexMode bool) ([]byte, string, error) {
	if len(args) > 1 {
		return nil, "", cli.Validation("expected at most one FILE, got %d", len(args))
	}

	var data []byte
	var path string
	if len(args) == 1 && args[0] != "-" {
		path = args[0]
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, "", categorize(fmt.Errorf("read %s: %w", path, err))
		}
	} else {
		var err error
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, "", cli.Internal("read stdin: %w", err)
		}
	}

	if hexMode {
		decoded, err := decodeHexInput(data)
		if err != nil {
			return nil, "", err
		}
		data = decoded
	}

	return data, path, nil
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it. Whitespace between digit pairs is allowed ("a1 63 6b" or
// "a1636b").
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, cli.Validation("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, cli.Validation("decode hex: %w", err)
	}
	return decoded[:count], nil
}

// sourceName labels input in log lines and errors.
func sourceName(path string) string {
	if path == "" {
		return "stdin"
	}
	return path
}
