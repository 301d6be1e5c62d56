// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec converts between raw bytes and a small ordered document
// tree in five formats: JSON, JSONC, TOML, YAML and CBOR.
//
// Packages that define wire shapes (lib/vars) build and inspect the
// tree; this package owns everything format specific. Keeping the
// shapes out of the backends means the externally tagged layouts are
// written once and every format agrees on them.
//
//	data, err := codec.Encode(codec.TOML, codec.Table{
//	    {Key: "int", Value: codec.Table{
//	        {Key: "name", Value: "retries"},
//	        {Key: "value", Value: uint64(3)},
//	    }},
//	})
//
//	document, err := codec.Decode(codec.YAML, data)
//
// The backends are:
//
//   - JSON: compact output with Table order kept; decoding walks the
//     token stream so key order survives and duplicate keys fail.
//   - JSONC: tidwall/jsonc strips comments and trailing commas, then
//     JSON decoding applies. Encodes as JSON.
//   - TOML: a purpose-built emitter (headers only for tables holding
//     key/values, arrays of tables for sequences of tables); decoding
//     through pelletier/go-toml.
//   - YAML: yaml.v3 node trees in both directions.
//   - CBOR: fxamacker/cbor with Core Deterministic Encoding (RFC 8949
//     §4.2). The same encoder is exported through [Marshal],
//     [NewEncoder] and friends for direct use.
//
// Integer literals decode as [Number] so consumers can range check
// them against the width they need.
package codec
