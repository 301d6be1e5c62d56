// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vars

import (
	"fmt"

	"github.com/bureau-foundation/vardef/lib/codec"
)

// Scalar is the closed set of value types a variable can hold.
type Scalar interface {
	string | bool | uint64 | float64
}

// Kind identifies which Scalar a Var or Resolved holds.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindBool
	KindInt
	KindFloat
)

// String returns the wire tag of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// ParseKind parses a wire tag.
func ParseKind(tag string) (Kind, error) {
	switch tag {
	case "string":
		return KindString, nil
	case "bool":
		return KindBool, nil
	case "int":
		return KindInt, nil
	case "float":
		return KindFloat, nil
	default:
		return 0, fmt.Errorf("%w: %q is not one of string, bool, int, float", ErrUnknownTag, tag)
	}
}

func kindOf[T Scalar]() Kind {
	var zero T
	switch any(zero).(type) {
	case string:
		return KindString
	case bool:
		return KindBool
	case uint64:
		return KindInt
	default:
		return KindFloat
	}
}

// Definition is a named value of type T with an optional constraint.
type Definition[T Scalar] struct {
	name       string
	value      T
	constraint Constraint
}

// NewDefinition returns an unconstrained definition.
func NewDefinition[T Scalar](name string, value T) Definition[T] {
	return Definition[T]{name: name, value: value}
}

func (d Definition[T]) Name() string { return d.name }

func (d Definition[T]) Value() T { return d.value }

// Constraint returns the attached constraint, if any.
func (d Definition[T]) Constraint() (Constraint, bool) {
	return d.constraint, d.constraint.kind != 0
}

// Resolve drops the constraint and returns the bare named value.
func (d Definition[T]) Resolve() Value[T] {
	return Value[T]{name: d.name, value: d.value}
}

// withConstraint replaces the constraint. Callers outside the package go
// through Var.Constrain.
func (d Definition[T]) withConstraint(c Constraint) Definition[T] {
	d.constraint = c
	return d
}

func (d Definition[T]) kind() Kind { return kindOf[T]() }

func (d Definition[T]) constrained(c Constraint) definition { return d.withConstraint(c) }

func (d Definition[T]) resolved() value { return d.Resolve() }

func (d Definition[T]) document() codec.Table {
	return codec.Table{
		{Key: "name", Value: d.name},
		{Key: "value", Value: any(d.value)},
		{Key: "constr", Value: d.constraint.document()},
	}
}

// Value is a named value with no constraint: what a Definition resolves
// to once its constraint has been applied elsewhere.
type Value[T Scalar] struct {
	name  string
	value T
}

// NewValue returns a named value.
func NewValue[T Scalar](name string, value T) Value[T] {
	return Value[T]{name: name, value: value}
}

func (v Value[T]) Name() string { return v.name }

func (v Value[T]) Value() T { return v.value }

func (v Value[T]) kind() Kind { return kindOf[T]() }

func (v Value[T]) document() codec.Table {
	return codec.Table{
		{Key: "name", Value: v.name},
		{Key: "value", Value: any(v.value)},
	}
}
