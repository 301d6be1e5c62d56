// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/bureau-foundation/vardef/lib/codec"
)

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ShouldColor decides whether output to w gets syntax highlighting.
// "auto" colors only when w is a terminal.
func ShouldColor(mode string, w any) (bool, error) {
	switch mode {
	case "", ColorAuto:
		return IsTerminal(w), nil
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	default:
		return false, Validation("invalid --color %q (want auto, always, or never)", mode)
	}
}

// highlightLexers maps text formats to chroma lexer names. CBOR has no
// entry: it is never highlighted.
var highlightLexers = map[codec.Format]string{
	codec.JSON:  "json",
	codec.JSONC: "json",
	codec.TOML:  "toml",
	codec.YAML:  "yaml",
}

// Highlight renders data with ANSI syntax highlighting for the given
// format. Formats without a lexer are returned unchanged.
func Highlight(format codec.Format, data []byte) ([]byte, error) {
	lexer, ok := highlightLexers[format]
	if !ok {
		return data, nil
	}
	var buffer bytes.Buffer
	if err := quick.Highlight(&buffer, string(data), lexer, "terminal256", "monokai"); err != nil {
		return nil, fmt.Errorf("highlighting %s output: %w", format, err)
	}
	return buffer.Bytes(), nil
}
