// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A document is the format-independent tree exchanged between the
// format backends and the packages that define shapes. Encoders accept
// these node types:
//
//	nil        null (omitted entirely in TOML)
//	string     text
//	bool       boolean
//	uint64     unsigned integer
//	float64    floating point
//	Table      ordered mapping
//	[]any      sequence
//
// Decoders produce the same types except that every integer literal
// arrives as a [Number], leaving range checks to the consumer, and
// every mapping arrives as a Table (in document order where the format
// preserves it, sorted by key otherwise).

// Entry is one key/value pair of a Table.
type Entry struct {
	Key   string
	Value any
}

// Table is an ordered mapping. Order is significant on encode and
// reflects the source document on decode for JSON and YAML.
type Table []Entry

// Get returns the value stored under key. Keys are unique in decoded
// tables; for hand-built tables the first match wins.
func (t Table) Get(key string) (any, bool) {
	for _, entry := range t {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// Keys returns the table's keys in order.
func (t Table) Keys() []string {
	keys := make([]string, len(t))
	for i, entry := range t {
		keys[i] = entry.Key
	}
	return keys
}

// Number is the decimal text of an integer literal. Keeping the text
// lets consumers decide the target width and report overflow instead
// of silently wrapping or rounding through float64.
type Number string

// Uint64 parses the number as an unsigned 64-bit integer.
func (n Number) Uint64() (uint64, error) {
	return strconv.ParseUint(string(n), 10, 64)
}

// Int64 parses the number as a signed 64-bit integer.
func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

// Float64 parses the number as a float64. Integers beyond 2^53 lose
// precision here, which is inherent to the target type.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// IsNegative reports whether the literal carries a minus sign.
func (n Number) IsNegative() bool {
	return strings.HasPrefix(string(n), "-")
}

// TypeName names a document node's type for error messages.
func TypeName(node any) string {
	switch node.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case Number, uint64:
		return "integer"
	case float64:
		return "float"
	case Table:
		return "table"
	case []any:
		return "sequence"
	default:
		return fmt.Sprintf("%T", node)
	}
}

// formatFloat renders f as the shortest decimal that parses back to
// the same float64, always containing a '.' or an exponent so that
// TOML and YAML readers resolve it as a float rather than an integer.
// Non-finite values use the spelling passed in for each case.
func formatFloat(f float64, nan, posInf, negInf string) string {
	switch {
	case math.IsNaN(f):
		return nan
	case math.IsInf(f, 1):
		return posInf
	case math.IsInf(f, -1):
		return negInf
	}
	text := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(text, ".eE") {
		text += ".0"
	}
	return text
}
