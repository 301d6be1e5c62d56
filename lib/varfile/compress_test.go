// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package varfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/vardef/lib/codec"
)

func TestCompressRoundTrip(t *testing.T) {
	data := []byte(strings.Repeat("[[vars]]\n[vars.int]\nname = \"a\"\nvalue = 1\n\n", 50))
	for _, compression := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
		t.Run(compression.String(), func(t *testing.T) {
			compressed, err := Compress(data, compression)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if got := Sniff(compressed); got != compression {
				t.Errorf("Sniff = %v, want %v", got, compression)
			}
			restored, err := Decompress(compressed, compression)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(restored, data) {
				t.Error("round trip changed the data")
			}
		})
	}
}

func TestDecompressCorrupt(t *testing.T) {
	tests := map[Compression][]byte{
		CompressionZstd: append(bytes.Clone(zstdMagic), 0xff, 0xff, 0xff),
		CompressionLZ4:  append(bytes.Clone(lz4Magic), 0xff, 0xff, 0xff),
	}
	for compression, corrupt := range tests {
		if _, err := Decompress(corrupt, compression); err == nil {
			t.Errorf("%s: Decompress of corrupt data succeeded", compression)
		}
	}
}

func TestDetectPath(t *testing.T) {
	tests := []struct {
		path        string
		format      codec.Format
		compression Compression
		wantErr     bool
	}{
		{"base.toml", codec.TOML, CompressionNone, false},
		{"snapshot.cbor.zst", codec.CBOR, CompressionZstd, false},
		{"prod.YAML.lz4", codec.YAML, CompressionLZ4, false},
		{"dir.json/notes", 0, CompressionNone, true},
		{"data.zst", 0, CompressionZstd, true},
	}
	for _, test := range tests {
		format, compression, err := DetectPath(test.path)
		if test.wantErr {
			if err == nil {
				t.Errorf("DetectPath(%q) = %v, want error", test.path, format)
			}
			continue
		}
		if err != nil || format != test.format || compression != test.compression {
			t.Errorf("DetectPath(%q) = %v, %v, %v; want %v, %v", test.path, format, compression, err, test.format, test.compression)
		}
	}
}

func TestParseCompression(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
		parsed, err := ParseCompression(compression.String())
		if err != nil || parsed != compression {
			t.Errorf("ParseCompression(%q) = %v, %v", compression, parsed, err)
		}
	}
	if _, err := ParseCompression("gzip"); err == nil {
		t.Error("ParseCompression(gzip) should fail")
	}
}
