// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a serialization format.
type Format uint8

const (
	// JSON is strict RFC 8259 JSON. Encoding is compact.
	JSON Format = iota + 1

	// JSONC is JSON extended with // and /* */ comments and trailing
	// commas. It decodes through tidwall/jsonc and encodes as plain JSON.
	JSONC

	// TOML is TOML v1.0.
	TOML

	// YAML is YAML 1.2 via gopkg.in/yaml.v3, block style.
	YAML

	// CBOR is CBOR with Core Deterministic Encoding.
	CBOR
)

// Formats lists every supported format in a stable order.
var Formats = []Format{JSON, JSONC, TOML, YAML, CBOR}

// String returns the canonical lowercase name of the format.
func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case JSONC:
		return "jsonc"
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	case CBOR:
		return "cbor"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// Binary reports whether encoded output is not printable text.
func (f Format) Binary() bool {
	return f == CBOR
}

// ParseFormat parses a format name. "yml" is accepted as an alias for
// YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return JSON, nil
	case "jsonc":
		return JSONC, nil
	case "toml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	case "cbor":
		return CBOR, nil
	default:
		return 0, fmt.Errorf("unknown format %q (want json, jsonc, toml, yaml, or cbor)", name)
	}
}

// FormatFromPath infers the format from a file name's extension, for
// example "base.toml" or "overrides.yml". Compression suffixes must be
// stripped by the caller first.
func FormatFromPath(path string) (Format, error) {
	extension := strings.TrimPrefix(filepath.Ext(path), ".")
	if extension == "" {
		return 0, fmt.Errorf("cannot infer format of %q: no file extension", path)
	}
	format, err := ParseFormat(extension)
	if err != nil {
		return 0, fmt.Errorf("cannot infer format of %q: %w", path, err)
	}
	return format, nil
}
