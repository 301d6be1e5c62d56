// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package varfile

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/vardef/lib/codec"
	"github.com/bureau-foundation/vardef/lib/vars"
)

// Decode decompresses data if it starts with a zstd or LZ4 frame and
// decodes a T in the given format.
func Decode[T vars.Document](data []byte, format codec.Format) (T, error) {
	var zero T
	plain, err := Decompress(data, Sniff(data))
	if err != nil {
		return zero, err
	}
	return vars.Unmarshal[T](format, plain)
}

// Encode encodes v and wraps it in the given compression.
func Encode[T vars.Document](v T, format codec.Format, compression Compression) ([]byte, error) {
	data, err := vars.Marshal(format, v)
	if err != nil {
		return nil, err
	}
	return Compress(data, compression)
}

// ReadFile reads and decodes a T from path. A zero format means detect
// from the extension. Compression is detected from the content, so a
// compressed file without a .zst or .lz4 suffix still reads.
func ReadFile[T vars.Document](path string, format codec.Format) (T, error) {
	var zero T
	if format == 0 {
		detected, _, err := DetectPath(path)
		if err != nil {
			return zero, fmt.Errorf("%s: %w", path, err)
		}
		format = detected
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, err
	}
	result, err := Decode[T](data, format)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

// WriteFile encodes v to path. Format and compression come from the
// extension unless format is non-zero.
func WriteFile[T vars.Document](path string, v T, format codec.Format) error {
	detected, compression, err := DetectPath(path)
	if format == 0 {
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		format = detected
	}
	data, err := Encode(v, format, compression)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}
