// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vars

import (
	"fmt"

	"github.com/bureau-foundation/vardef/lib/codec"
)

// ConstraintKind identifies the alternative held by a Constraint.
type ConstraintKind uint8

const (
	// ConstraintLocked marks a variable whose value must not be
	// overridden by a later layer. It carries no data.
	ConstraintLocked ConstraintKind = iota + 1

	// ConstraintScope bounds a variable to a numeric range.
	ConstraintScope
)

// String returns the wire tag of the kind.
func (k ConstraintKind) String() string {
	switch k {
	case ConstraintLocked:
		return "locked"
	case ConstraintScope:
		return "scope"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

func parseConstraintKind(tag string) (ConstraintKind, bool) {
	switch tag {
	case "locked":
		return ConstraintLocked, true
	case "scope":
		return ConstraintScope, true
	default:
		return 0, false
	}
}

// Scope is an opaque pair of bounds. Begin > End is accepted as is;
// whether such a range is meaningful is up to whoever enforces it.
type Scope struct {
	Begin uint64
	End   uint64
}

// Contains reports whether Begin <= x <= End. An inverted scope
// contains nothing.
func (s Scope) Contains(x uint64) bool {
	return s.Begin <= x && x <= s.End
}

// Constraint restricts a Definition. It is immutable: Definitions
// replace their constraint wholesale, never edit it. The zero
// Constraint means "no constraint" and is what Definition.Constraint
// reports as absent.
type Constraint struct {
	kind  ConstraintKind
	scope Scope
}

// Locked is the constraint that forbids overriding a variable.
var Locked = Constraint{kind: ConstraintLocked}

// NewScope returns a Scope constraint. No ordering check is made
// between begin and end.
func NewScope(begin, end uint64) Constraint {
	return Constraint{kind: ConstraintScope, scope: Scope{Begin: begin, End: end}}
}

// Kind returns the constraint's alternative, or 0 for the zero
// Constraint.
func (c Constraint) Kind() ConstraintKind { return c.kind }

// IsLocked reports whether c is Locked.
func (c Constraint) IsLocked() bool { return c.kind == ConstraintLocked }

// Scope returns the bounds of a Scope constraint.
func (c Constraint) Scope() (Scope, bool) {
	if c.kind != ConstraintScope {
		return Scope{}, false
	}
	return c.scope, true
}

func (c Constraint) String() string {
	switch c.kind {
	case ConstraintLocked:
		return "locked"
	case ConstraintScope:
		return fmt.Sprintf("scope(%d..%d)", c.scope.Begin, c.scope.End)
	default:
		return "none"
	}
}

// document returns the externally tagged shape: the bare tag for the
// payload-free Locked, {"scope": {"beg", "end"}} for Scope, and nil
// when there is no constraint.
func (c Constraint) document() any {
	switch c.kind {
	case ConstraintLocked:
		return ConstraintLocked.String()
	case ConstraintScope:
		return codec.Table{{Key: ConstraintScope.String(), Value: codec.Table{
			{Key: "beg", Value: c.scope.Begin},
			{Key: "end", Value: c.scope.End},
		}}}
	default:
		return nil
	}
}
