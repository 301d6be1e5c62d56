// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/vardef/lib/vars"
)

// RequireParseError fails the test unless err is a *vars.ParseError
// wrapping sentinel. Returns the ParseError so callers can check Path
// and Format.
//
//	parseErr := testutil.RequireParseError(t, err, vars.ErrUnknownTag, "decoding %s", path)
func RequireParseError(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, err error, sentinel error, msgAndArgs ...any) *vars.ParseError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a parse error wrapping %v, got nil: %s", sentinel, formatMessage(msgAndArgs))
	}
	var parseErr *vars.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *vars.ParseError, got %T (%v): %s", err, err, formatMessage(msgAndArgs))
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("parse error %v does not wrap %v: %s", err, sentinel, formatMessage(msgAndArgs))
	}
	return parseErr
}

// formatMessage formats optional message arguments into a string.
// Accepts either a single string or a format string followed by args.
func formatMessage(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "(no message)"
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs)
}
