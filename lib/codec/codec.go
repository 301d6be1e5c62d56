// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"
)

// ErrUnsupportedNode is returned by encoders for values outside the
// document node types, and by decoders for format values that have no
// document counterpart (TOML datetimes, CBOR byte strings, YAML
// binary).
var ErrUnsupportedNode = errors.New("unsupported document node")

// ErrNotRepresentable is returned by encoders when a well-formed
// document cannot be expressed in the target format: NaN or infinity in
// JSON, or a non-table root in TOML.
var ErrNotRepresentable = errors.New("not representable in format")

// ErrNumberRange is returned by decoders whose format library rejects a
// numeric literal as too large before it reaches the document, as
// go-toml does for integers beyond 64 bits.
var ErrNumberRange = errors.New("number out of range")

// Encode renders a document in the given format.
func Encode(format Format, document any) ([]byte, error) {
	switch format {
	case JSON, JSONC:
		return encodeJSON(document)
	case TOML:
		return encodeTOML(document)
	case YAML:
		return encodeYAML(document)
	case CBOR:
		return encodeCBOR(document)
	default:
		return nil, fmt.Errorf("encode: unknown format %s", format)
	}
}

// Decode parses data in the given format into a document. The whole
// input must be a single document; trailing content is an error.
func Decode(format Format, data []byte) (any, error) {
	switch format {
	case JSON:
		return decodeJSON(data)
	case JSONC:
		return decodeJSONC(data)
	case TOML:
		return decodeTOML(data)
	case YAML:
		return decodeYAML(data)
	case CBOR:
		return decodeCBOR(data)
	default:
		return nil, fmt.Errorf("decode: unknown format %s", format)
	}
}
