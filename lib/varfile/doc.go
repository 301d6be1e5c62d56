// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package varfile reads and writes variable files on disk.
//
// A file's document format comes from its extension and an optional
// outer .zst or .lz4 suffix selects whole-file compression. [Loader]
// merges a list of collection files into one [vars.Collection], later
// files overriding earlier ones, and logs each override.
package varfile
