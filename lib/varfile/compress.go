// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package varfile

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/bureau-foundation/vardef/lib/codec"
)

// Compression identifies the whole-file compression wrapped around a
// variable file. It is chosen by the outer file extension
// (base.toml.zst) and, for data without a path, by magic bytes.
type Compression uint8

const (
	CompressionNone Compression = iota

	// CompressionZstd is a zstd frame at the default level. Suits
	// large generated variable sets (snapshots, resolved dumps).
	CompressionZstd

	// CompressionLZ4 is an LZ4 frame. Faster than zstd with a
	// lower ratio.
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name as accepted by --compress.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want none, zstd or lz4)", name)
	}
}

// Extension returns the file suffix for c, including the dot, or ""
// for CompressionNone.
func (c Compression) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Sniff identifies compressed data by its frame magic number.
func Sniff(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(data, lz4Magic):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// DetectPath splits a path into its document format and compression:
// "prod.yaml.zst" is YAML wrapped in zstd, "base.toml" is plain TOML.
func DetectPath(path string) (codec.Format, Compression, error) {
	compression := CompressionNone
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		compression = CompressionZstd
	case ".lz4":
		compression = CompressionLZ4
	}
	inner := strings.TrimSuffix(path, filepath.Ext(path))
	if compression == CompressionNone {
		inner = path
	}
	format, err := codec.FormatFromPath(inner)
	if err != nil {
		return 0, compression, err
	}
	return format, compression, nil
}

// zstdEncoder and zstdDecoder are shared; both are safe for concurrent
// use with EncodeAll/DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("varfile: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("varfile: zstd decoder initialization failed: " + err.Error())
	}
}

// Compress wraps data in a frame of the given compression.
func Compress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, nil), nil
	case CompressionLZ4:
		var buffer bytes.Buffer
		writer := lz4.NewWriter(&buffer)
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buffer.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", compression)
	}
}

// Decompress unwraps a frame of the given compression.
func Decompress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		result, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return result, nil
	case CompressionLZ4:
		result, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", compression)
	}
}
