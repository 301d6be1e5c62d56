// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for vardef packages.
//
// [WriteFile] and [WriteDocument] place fixture files in a test's
// temporary directory and return their paths. [BaseLayer] and
// [OverrideLayer] are the canonical two-layer fixture: merging them
// exercises override-in-place and append.
//
// [RequireParseError] asserts that an error is a *vars.ParseError
// wrapping a given sentinel and returns it for further checks.
//
// [UniqueName] generates distinct variable names for tests that build
// collections in loops.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
