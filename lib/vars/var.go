// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vars

import (
	"fmt"
	"strconv"

	"github.com/bureau-foundation/vardef/lib/codec"
)

// definition is implemented by the four Definition instantiations.
type definition interface {
	Name() string
	Constraint() (Constraint, bool)
	kind() Kind
	constrained(Constraint) definition
	resolved() value
	document() codec.Table
}

// value is implemented by the four Value instantiations.
type value interface {
	Name() string
	kind() Kind
	document() codec.Table
}

// Var is a variable definition of any kind: exactly one of a string,
// bool, int or float Definition. The kind is fixed at construction.
// The zero Var holds nothing and is rejected by Marshal.
//
// Vars are comparable with ==.
type Var struct {
	definition definition
}

// String returns a string variable.
func String(name, value string) Var { return Wrap(NewDefinition(name, value)) }

// Bool returns a bool variable.
func Bool(name string, value bool) Var { return Wrap(NewDefinition(name, value)) }

// Int returns an unsigned integer variable.
func Int(name string, value uint64) Var { return Wrap(NewDefinition(name, value)) }

// Float returns a float variable.
func Float(name string, value float64) Var { return Wrap(NewDefinition(name, value)) }

// Wrap returns the Var holding d.
func Wrap[T Scalar](d Definition[T]) Var { return Var{definition: d} }

// Valid reports whether v holds a definition.
func (v Var) Valid() bool { return v.definition != nil }

// Kind returns the held kind, or 0 for the zero Var.
func (v Var) Kind() Kind {
	if v.definition == nil {
		return 0
	}
	return v.definition.kind()
}

// Name returns the variable name.
func (v Var) Name() string {
	if v.definition == nil {
		return ""
	}
	return v.definition.Name()
}

// Constraint returns the held definition's constraint, if any.
func (v Var) Constraint() (Constraint, bool) {
	if v.definition == nil {
		return Constraint{}, false
	}
	return v.definition.Constraint()
}

// Constrain returns a copy of v with its constraint replaced by c. The
// previous constraint is discarded; passing the zero Constraint clears
// it. v itself is not modified.
//
//	port := vars.Int("port", 8080).Constrain(vars.NewScope(1024, 65535))
func (v Var) Constrain(c Constraint) Var {
	if v.definition == nil {
		return v
	}
	return Var{definition: v.definition.constrained(c)}
}

// Resolve projects v to a Resolved of the same kind, dropping the
// constraint.
func (v Var) Resolve() Resolved {
	if v.definition == nil {
		return Resolved{}
	}
	return Resolved{value: v.definition.resolved()}
}

// AsString returns the definition if v is a string variable.
func (v Var) AsString() (Definition[string], bool) {
	d, ok := v.definition.(Definition[string])
	return d, ok
}

// AsBool returns the definition if v is a bool variable.
func (v Var) AsBool() (Definition[bool], bool) {
	d, ok := v.definition.(Definition[bool])
	return d, ok
}

// AsInt returns the definition if v is an int variable.
func (v Var) AsInt() (Definition[uint64], bool) {
	d, ok := v.definition.(Definition[uint64])
	return d, ok
}

// AsFloat returns the definition if v is a float variable.
func (v Var) AsFloat() (Definition[float64], bool) {
	d, ok := v.definition.(Definition[float64])
	return d, ok
}

// String renders v for logs and diagnostics, e.g.
// `int port=8080 scope(1024..65535)`.
func (v Var) String() string {
	if v.definition == nil {
		return "<invalid>"
	}
	text := v.Kind().String() + " " + v.Name() + "=" + scalarText(v.definition.document())
	if c, ok := v.Constraint(); ok {
		text += " " + c.String()
	}
	return text
}

// document returns {"<kind>": payload}, or nil for the zero Var.
func (v Var) document() any {
	if v.definition == nil {
		return nil
	}
	return codec.Table{{Key: v.Kind().String(), Value: v.definition.document()}}
}

// Resolved is a named value of any kind, without constraint: exactly one
// of a string, bool, int or float Value.
type Resolved struct {
	value value
}

// StringValue returns a resolved string.
func StringValue(name, v string) Resolved { return WrapValue(NewValue(name, v)) }

// BoolValue returns a resolved bool.
func BoolValue(name string, v bool) Resolved { return WrapValue(NewValue(name, v)) }

// IntValue returns a resolved unsigned integer.
func IntValue(name string, v uint64) Resolved { return WrapValue(NewValue(name, v)) }

// FloatValue returns a resolved float.
func FloatValue(name string, v float64) Resolved { return WrapValue(NewValue(name, v)) }

// WrapValue returns the Resolved holding v.
func WrapValue[T Scalar](v Value[T]) Resolved { return Resolved{value: v} }

func (r Resolved) Valid() bool { return r.value != nil }

func (r Resolved) Kind() Kind {
	if r.value == nil {
		return 0
	}
	return r.value.kind()
}

func (r Resolved) Name() string {
	if r.value == nil {
		return ""
	}
	return r.value.Name()
}

func (r Resolved) AsString() (Value[string], bool) {
	v, ok := r.value.(Value[string])
	return v, ok
}

func (r Resolved) AsBool() (Value[bool], bool) {
	v, ok := r.value.(Value[bool])
	return v, ok
}

func (r Resolved) AsInt() (Value[uint64], bool) {
	v, ok := r.value.(Value[uint64])
	return v, ok
}

func (r Resolved) AsFloat() (Value[float64], bool) {
	v, ok := r.value.(Value[float64])
	return v, ok
}

func (r Resolved) String() string {
	if r.value == nil {
		return "<invalid>"
	}
	return r.Kind().String() + " " + r.Name() + "=" + scalarText(r.value.document())
}

func (r Resolved) document() any {
	if r.value == nil {
		return nil
	}
	return codec.Table{{Key: r.Kind().String(), Value: r.value.document()}}
}

// scalarText formats the "value" entry of a payload table.
func scalarText(payload codec.Table) string {
	raw, _ := payload.Get("value")
	switch v := raw.(type) {
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
