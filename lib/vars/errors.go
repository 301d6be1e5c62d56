// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vars

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/vardef/lib/codec"
)

// Sentinel errors carried by ParseError.Err. Exactly one of them is
// wrapped by every decode failure, so callers can branch with
// errors.Is without string matching.
var (
	// ErrSyntax means the text is not valid in its format. The format
	// library's own error is joined alongside.
	ErrSyntax = errors.New("malformed document")

	// ErrUnknownTag means a tag is not one of the recognized variants.
	ErrUnknownTag = errors.New("unknown tag")

	// ErrMissingTag means a tagged value was expected and none was
	// present (null or an empty mapping).
	ErrMissingTag = errors.New("missing tag")

	// ErrShape means the payload does not have the expected shape:
	// wrong node type, a bare tag where a payload is required, or
	// more than one tag in a single union.
	ErrShape = errors.New("unexpected shape")

	// ErrMissingField means a required payload field is absent.
	ErrMissingField = errors.New("missing field")

	// ErrOverflow means a numeric literal does not fit the unsigned
	// 64-bit target.
	ErrOverflow = errors.New("numeric overflow")
)

// ParseError is returned by every decode failure in this package. Path
// locates the offending node in dotted form, with sequence indexes in
// brackets: "vars[2].int.constr.scope.end". The root is the empty path.
type ParseError struct {
	Format codec.Format
	Path   string
	Err    error
}

func (e *ParseError) Error() string {
	location := e.Path
	if location == "" {
		location = "document root"
	}
	if e.Format == 0 {
		return fmt.Sprintf("vars: decode at %s: %v", location, e.Err)
	}
	return fmt.Sprintf("vars: decode %s at %s: %v", e.Format, location, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
