// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package vars defines typed, optionally constrained variables and the
// collections they are grouped into.
//
// A variable is one of four kinds: string, bool, int (unsigned 64-bit)
// or float (64-bit). [Var] holds a [Definition] of one kind with an
// optional [Constraint]; [Resolved] holds the matching [Value] with the
// constraint dropped. Constraints are either [Locked] or a Scope built
// by [NewScope].
//
// [Collection] keeps definitions in order and merges with override:
// a name keeps the position where it was first seen and takes the
// definition seen last. [Collection.Resolve] projects a collection to a
// [Dictionary] keyed by name.
//
// All types serialize through [Marshal] and [Unmarshal] in any
// [codec.Format] using externally tagged shapes:
//
//	locked
//	{"scope":{"beg":1,"end":10}}
//	{"int":{"name":"port","value":8080,"constr":null}}
//	{"vars":[{"bool":{...}}, ...]}
//
// Decoding is strict. Unknown tags, missing fields, wrong shapes and
// out-of-range integers fail with a [*ParseError] wrapping one of the
// Err* sentinels, and no partial result is returned.
//
// The package does no I/O and holds no shared state.
package vars
