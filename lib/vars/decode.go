// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vars

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bureau-foundation/vardef/lib/codec"
)

// decoder turns codec document trees into vars values. It tracks the
// path of the node being decoded so failures can say where they are.
type decoder struct {
	path []string
}

func (d *decoder) push(segment string) { d.path = append(d.path, segment) }

func (d *decoder) pop() { d.path = d.path[:len(d.path)-1] }

func (d *decoder) location() string {
	var builder strings.Builder
	for i, segment := range d.path {
		if i > 0 && !strings.HasPrefix(segment, "[") {
			builder.WriteByte('.')
		}
		builder.WriteString(segment)
	}
	return builder.String()
}

func (d *decoder) fail(sentinel error, format string, args ...any) error {
	return &ParseError{
		Path: d.location(),
		Err:  fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	}
}

// tag splits a single-entry table into its tag and payload. Empty
// tables have no tag; tables with several entries are ambiguous.
func (d *decoder) tag(node codec.Table) (string, any, error) {
	switch len(node) {
	case 0:
		return "", nil, d.fail(ErrMissingTag, "empty mapping")
	case 1:
		return node[0].Key, node[0].Value, nil
	default:
		return "", nil, d.fail(ErrShape, "expected exactly one tag, found %s", strings.Join(node.Keys(), ", "))
	}
}

// constraint decodes Locked from its bare tag or {"locked": null}, and
// Scope from {"scope": {"beg", "end"}}.
func (d *decoder) constraint(node any) (Constraint, error) {
	switch node := node.(type) {
	case nil:
		return Constraint{}, d.fail(ErrMissingTag, "expected locked or scope, found null")
	case string:
		kind, known := parseConstraintKind(node)
		switch {
		case !known:
			return Constraint{}, d.fail(ErrUnknownTag, "%q is not a constraint", node)
		case kind == ConstraintScope:
			return Constraint{}, d.fail(ErrShape, "scope requires a {beg, end} payload")
		}
		return Locked, nil
	case codec.Table:
		tag, payload, err := d.tag(node)
		if err != nil {
			return Constraint{}, err
		}
		kind, known := parseConstraintKind(tag)
		if !known {
			return Constraint{}, d.fail(ErrUnknownTag, "%q is not a constraint", tag)
		}
		d.push(tag)
		defer d.pop()
		if kind == ConstraintLocked {
			if payload != nil {
				return Constraint{}, d.fail(ErrShape, "locked carries no payload, found %s", codec.TypeName(payload))
			}
			return Locked, nil
		}
		bounds, ok := payload.(codec.Table)
		if !ok {
			return Constraint{}, d.fail(ErrShape, "scope payload must be a mapping, found %s", codec.TypeName(payload))
		}
		begin, err := d.uintField(bounds, "beg")
		if err != nil {
			return Constraint{}, err
		}
		end, err := d.uintField(bounds, "end")
		if err != nil {
			return Constraint{}, err
		}
		return NewScope(begin, end), nil
	default:
		return Constraint{}, d.fail(ErrShape, "expected a constraint, found %s", codec.TypeName(node))
	}
}

// union checks that node is a single-tag mapping naming a kind and
// returns the kind and payload table. It pushes the tag onto the path;
// the caller pops it.
func (d *decoder) union(node any) (Kind, codec.Table, error) {
	switch node := node.(type) {
	case nil:
		return 0, nil, d.fail(ErrMissingTag, "expected one of string, bool, int, float, found null")
	case string:
		if _, err := ParseKind(node); err != nil {
			return 0, nil, d.fail(ErrUnknownTag, "%q is not a variable kind", node)
		}
		return 0, nil, d.fail(ErrShape, "%s requires a payload", node)
	case codec.Table:
		tag, payload, err := d.tag(node)
		if err != nil {
			return 0, nil, err
		}
		kind, err := ParseKind(tag)
		if err != nil {
			return 0, nil, d.fail(ErrUnknownTag, "%q is not a variable kind", tag)
		}
		d.push(tag)
		table, ok := payload.(codec.Table)
		if !ok {
			err := d.fail(ErrShape, "%s payload must be a mapping, found %s", tag, codec.TypeName(payload))
			d.pop()
			return 0, nil, err
		}
		return kind, table, nil
	default:
		return 0, nil, d.fail(ErrShape, "expected a tagged mapping, found %s", codec.TypeName(node))
	}
}

func (d *decoder) variable(node any) (Var, error) {
	kind, payload, err := d.union(node)
	if err != nil {
		return Var{}, err
	}
	defer d.pop()
	switch kind {
	case KindString:
		return wrapDefinition(decodeDefinition[string](d, payload))
	case KindBool:
		return wrapDefinition(decodeDefinition[bool](d, payload))
	case KindInt:
		return wrapDefinition(decodeDefinition[uint64](d, payload))
	default:
		return wrapDefinition(decodeDefinition[float64](d, payload))
	}
}

func (d *decoder) resolved(node any) (Resolved, error) {
	kind, payload, err := d.union(node)
	if err != nil {
		return Resolved{}, err
	}
	defer d.pop()
	switch kind {
	case KindString:
		return wrapDecodedValue(decodeValue[string](d, payload))
	case KindBool:
		return wrapDecodedValue(decodeValue[bool](d, payload))
	case KindInt:
		return wrapDecodedValue(decodeValue[uint64](d, payload))
	default:
		return wrapDecodedValue(decodeValue[float64](d, payload))
	}
}

func wrapDefinition[T Scalar](definition Definition[T], err error) (Var, error) {
	if err != nil {
		return Var{}, err
	}
	return Wrap(definition), nil
}

func wrapDecodedValue[T Scalar](v Value[T], err error) (Resolved, error) {
	if err != nil {
		return Resolved{}, err
	}
	return WrapValue(v), nil
}

// decodeDefinition reads {name, value, constr}. A missing or null
// constr means unconstrained. Fields other than these are ignored.
func decodeDefinition[T Scalar](d *decoder, payload codec.Table) (Definition[T], error) {
	v, err := decodeValue[T](d, payload)
	if err != nil {
		return Definition[T]{}, err
	}
	definition := NewDefinition(v.name, v.value)
	raw, present := payload.Get("constr")
	if !present || raw == nil {
		return definition, nil
	}
	d.push("constr")
	defer d.pop()
	constraint, err := d.constraint(raw)
	if err != nil {
		return Definition[T]{}, err
	}
	return definition.withConstraint(constraint), nil
}

func decodeValue[T Scalar](d *decoder, payload codec.Table) (Value[T], error) {
	raw, present := payload.Get("name")
	if !present {
		return Value[T]{}, d.fail(ErrMissingField, "name")
	}
	name, ok := raw.(string)
	if !ok {
		d.push("name")
		defer d.pop()
		return Value[T]{}, d.fail(ErrShape, "name must be a string, found %s", codec.TypeName(raw))
	}
	raw, present = payload.Get("value")
	if !present {
		return Value[T]{}, d.fail(ErrMissingField, "value")
	}
	d.push("value")
	defer d.pop()
	value, err := decodeScalar[T](d, raw)
	if err != nil {
		return Value[T]{}, err
	}
	return NewValue(name, value), nil
}

func decodeScalar[T Scalar](d *decoder, node any) (T, error) {
	var zero T
	var result any
	switch any(zero).(type) {
	case string:
		s, ok := node.(string)
		if !ok {
			return zero, d.fail(ErrShape, "expected a string, found %s", codec.TypeName(node))
		}
		result = s
	case bool:
		b, ok := node.(bool)
		if !ok {
			return zero, d.fail(ErrShape, "expected a boolean, found %s", codec.TypeName(node))
		}
		result = b
	case uint64:
		n, err := d.uint(node)
		if err != nil {
			return zero, err
		}
		result = n
	default:
		f, err := d.float(node)
		if err != nil {
			return zero, err
		}
		result = f
	}
	return result.(T), nil
}

func (d *decoder) uintField(table codec.Table, key string) (uint64, error) {
	raw, present := table.Get(key)
	if !present {
		return 0, d.fail(ErrMissingField, "%s", key)
	}
	d.push(key)
	defer d.pop()
	return d.uint(raw)
}

// uint accepts only integer literals in [0, 2^64).
func (d *decoder) uint(node any) (uint64, error) {
	number, ok := node.(codec.Number)
	if !ok {
		return 0, d.fail(ErrShape, "expected an unsigned integer, found %s", codec.TypeName(node))
	}
	if number.IsNegative() {
		return 0, d.fail(ErrOverflow, "%s is below zero", number)
	}
	n, err := number.Uint64()
	if errors.Is(err, strconv.ErrRange) {
		return 0, d.fail(ErrOverflow, "%s exceeds 64 bits", number)
	}
	if err != nil {
		return 0, d.fail(ErrShape, "%s is not an integer", number)
	}
	return n, nil
}

// float accepts float literals and integer literals.
func (d *decoder) float(node any) (float64, error) {
	switch node := node.(type) {
	case float64:
		return node, nil
	case codec.Number:
		f, err := node.Float64()
		if err != nil {
			return 0, d.fail(ErrOverflow, "%s does not fit a float64", node)
		}
		return f, nil
	default:
		return 0, d.fail(ErrShape, "expected a number, found %s", codec.TypeName(node))
	}
}

func (d *decoder) collection(node any) (Collection, error) {
	table, ok := node.(codec.Table)
	if !ok {
		return Collection{}, d.fail(ErrShape, "expected a mapping with vars, found %s", codec.TypeName(node))
	}
	raw, present := table.Get("vars")
	if !present {
		return Collection{}, d.fail(ErrMissingField, "vars")
	}
	d.push("vars")
	defer d.pop()
	sequence, ok := raw.([]any)
	if !ok {
		return Collection{}, d.fail(ErrShape, "vars must be a sequence, found %s", codec.TypeName(raw))
	}
	definitions := make([]Var, 0, len(sequence))
	for i, element := range sequence {
		d.push("[" + strconv.Itoa(i) + "]")
		v, err := d.variable(element)
		d.pop()
		if err != nil {
			return Collection{}, err
		}
		definitions = append(definitions, v)
	}
	return Collection{vars: definitions}, nil
}

func (d *decoder) dictionary(node any) (Dictionary, error) {
	table, ok := node.(codec.Table)
	if !ok {
		return nil, d.fail(ErrShape, "expected a mapping of names to values, found %s", codec.TypeName(node))
	}
	dictionary := make(Dictionary, len(table))
	for _, entry := range table {
		d.push(entry.Key)
		value, err := d.resolved(entry.Value)
		d.pop()
		if err != nil {
			return nil, err
		}
		dictionary[entry.Key] = value
	}
	return dictionary, nil
}
