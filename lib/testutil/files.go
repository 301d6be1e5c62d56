// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/vardef/lib/codec"
	"github.com/bureau-foundation/vardef/lib/vars"
)

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}

// WriteDocument encodes v in the format named by name's extension,
// writes it to dir/name and returns the path.
//
//	path := testutil.WriteDocument(t, t.TempDir(), "base.toml", testutil.BaseLayer())
func WriteDocument[T vars.Document](t testing.TB, dir, name string, v T) string {
	t.Helper()
	format, err := codec.FormatFromPath(name)
	if err != nil {
		t.Fatalf("fixture %s: %v", name, err)
	}
	data, err := vars.Marshal(format, v)
	if err != nil {
		t.Fatalf("encoding fixture %s: %v", name, err)
	}
	return WriteFile(t, dir, name, string(data))
}

// BaseLayer returns a=1, b=2, c=3 with b locked.
func BaseLayer() vars.Collection {
	return vars.Define(
		vars.Int("a", 1),
		vars.Int("b", 2).Constrain(vars.Locked),
		vars.Int("c", 3).Constrain(vars.NewScope(0, 10)),
	)
}

// OverrideLayer returns d=4, b=5. Merged onto BaseLayer it yields
// a=1, b=5, c=3, d=4.
func OverrideLayer() vars.Collection {
	return vars.Define(
		vars.Int("d", 4),
		vars.Int("b", 5),
	)
}
