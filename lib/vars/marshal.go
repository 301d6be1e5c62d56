// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vars

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/vardef/lib/codec"
)

// Document is the set of types that can stand alone as a serialized
// document.
type Document interface {
	Constraint | Var | Resolved | Collection | Dictionary
}

var errInvalid = errors.New("zero value holds no variant")

// Marshal encodes v in the given format using the externally tagged
// shapes. It fails only for values a format cannot carry (NaN in JSON,
// a bare constraint as a TOML document) and for zero unions.
func Marshal[T Document](format codec.Format, v T) ([]byte, error) {
	document, err := toDocument(v)
	if err != nil {
		return nil, fmt.Errorf("vars: encode %s: %w", format, err)
	}
	data, err := codec.Encode(format, document)
	if err != nil {
		return nil, fmt.Errorf("vars: encode %s: %w", format, err)
	}
	return data, nil
}

// Unmarshal decodes a document of type T. Decoding is all or nothing:
// on error the zero T is returned along with a *ParseError.
func Unmarshal[T Document](format codec.Format, data []byte) (T, error) {
	var zero T
	node, err := codec.Decode(format, data)
	if err != nil {
		sentinel := ErrSyntax
		switch {
		case errors.Is(err, codec.ErrUnsupportedNode):
			sentinel = ErrShape
		case errors.Is(err, codec.ErrNumberRange):
			sentinel = ErrOverflow
		}
		return zero, &ParseError{Format: format, Err: fmt.Errorf("%w: %w", sentinel, err)}
	}
	result, err := FromDocument[T](node)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.Format = format
		}
		return zero, err
	}
	return result, nil
}

// FromDocument decodes T from an already parsed document tree. The
// returned *ParseError has no Format set.
func FromDocument[T Document](node any) (T, error) {
	var zero T
	d := &decoder{}
	var result any
	var err error
	switch any(zero).(type) {
	case Constraint:
		result, err = d.constraint(node)
	case Var:
		result, err = d.variable(node)
	case Resolved:
		result, err = d.resolved(node)
	case Collection:
		result, err = d.collection(node)
	case Dictionary:
		result, err = d.dictionary(node)
	}
	if err != nil {
		return zero, err
	}
	return result.(T), nil
}

// toDocument builds the codec tree for any Document, rejecting zero
// unions anywhere in it.
func toDocument[T Document](v T) (any, error) {
	switch v := any(v).(type) {
	case Constraint:
		if v.kind == 0 {
			return nil, fmt.Errorf("constraint: %w", errInvalid)
		}
		return v.document(), nil
	case Var:
		if !v.Valid() {
			return nil, fmt.Errorf("var: %w", errInvalid)
		}
		return v.document(), nil
	case Resolved:
		if !v.Valid() {
			return nil, fmt.Errorf("value: %w", errInvalid)
		}
		return v.document(), nil
	case Collection:
		elements := make([]any, len(v.vars))
		for i, definition := range v.vars {
			if !definition.Valid() {
				return nil, fmt.Errorf("vars[%d]: %w", i, errInvalid)
			}
			elements[i] = definition.document()
		}
		return codec.Table{{Key: "vars", Value: elements}}, nil
	case Dictionary:
		table := make(codec.Table, 0, len(v))
		for _, name := range v.Names() {
			value := v[name]
			if !value.Valid() {
				return nil, fmt.Errorf("%s: %w", name, errInvalid)
			}
			table = append(table, codec.Entry{Key: name, Value: value.document()})
		}
		return table, nil
	}
	return nil, fmt.Errorf("unsupported document type %T", v)
}

// The methods below let the document types embed in structs handled by
// encoding/json, yaml.v3 and fxamacker/cbor. A null input leaves the
// destination unchanged, following encoding/json's convention.

func unmarshalInto[T Document](format codec.Format, data []byte, destination *T) error {
	trimmed := bytes.TrimSpace(data)
	if (format == codec.JSON && string(trimmed) == "null") || (format == codec.CBOR && bytes.Equal(trimmed, cborNull)) {
		return nil
	}
	decoded, err := Unmarshal[T](format, data)
	if err != nil {
		return err
	}
	*destination = decoded
	return nil
}

// cborNull is the CBOR encoding of null (major type 7, simple value 22).
var cborNull = []byte{0xf6}

func marshalYAML[T Document](v T) (any, error) {
	document, err := toDocument(v)
	if err != nil {
		return nil, fmt.Errorf("vars: encode yaml: %w", err)
	}
	return codec.ToYAMLNode(document)
}

func unmarshalYAML[T Document](node *yaml.Node, destination *T) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return nil
	}
	document, err := codec.FromYAMLNode(node)
	if err != nil {
		return &ParseError{Format: codec.YAML, Err: fmt.Errorf("%w: %w", ErrSyntax, err)}
	}
	decoded, err := FromDocument[T](document)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.Format = codec.YAML
		}
		return err
	}
	*destination = decoded
	return nil
}

func (c Constraint) MarshalJSON() ([]byte, error) { return Marshal(codec.JSON, c) }

func (c *Constraint) UnmarshalJSON(data []byte) error { return unmarshalInto(codec.JSON, data, c) }

func (c Constraint) MarshalYAML() (any, error) { return marshalYAML(c) }

func (c *Constraint) UnmarshalYAML(node *yaml.Node) error { return unmarshalYAML(node, c) }

func (c Constraint) MarshalCBOR() ([]byte, error) { return Marshal(codec.CBOR, c) }

func (c *Constraint) UnmarshalCBOR(data []byte) error { return unmarshalInto(codec.CBOR, data, c) }

func (v Var) MarshalJSON() ([]byte, error) { return Marshal(codec.JSON, v) }

func (v *Var) UnmarshalJSON(data []byte) error { return unmarshalInto(codec.JSON, data, v) }

func (v Var) MarshalYAML() (any, error) { return marshalYAML(v) }

func (v *Var) UnmarshalYAML(node *yaml.Node) error { return unmarshalYAML(node, v) }

func (v Var) MarshalCBOR() ([]byte, error) { return Marshal(codec.CBOR, v) }

func (v *Var) UnmarshalCBOR(data []byte) error { return unmarshalInto(codec.CBOR, data, v) }

func (r Resolved) MarshalJSON() ([]byte, error) { return Marshal(codec.JSON, r) }

func (r *Resolved) UnmarshalJSON(data []byte) error { return unmarshalInto(codec.JSON, data, r) }

func (r Resolved) MarshalYAML() (any, error) { return marshalYAML(r) }

func (r *Resolved) UnmarshalYAML(node *yaml.Node) error { return unmarshalYAML(node, r) }

func (r Resolved) MarshalCBOR() ([]byte, error) { return Marshal(codec.CBOR, r) }

func (r *Resolved) UnmarshalCBOR(data []byte) error { return unmarshalInto(codec.CBOR, data, r) }

func (c Collection) MarshalJSON() ([]byte, error) { return Marshal(codec.JSON, c) }

func (c *Collection) UnmarshalJSON(data []byte) error { return unmarshalInto(codec.JSON, data, c) }

func (c Collection) MarshalYAML() (any, error) { return marshalYAML(c) }

func (c *Collection) UnmarshalYAML(node *yaml.Node) error { return unmarshalYAML(node, c) }

func (c Collection) MarshalCBOR() ([]byte, error) { return Marshal(codec.CBOR, c) }

func (c *Collection) UnmarshalCBOR(data []byte) error { return unmarshalInto(codec.CBOR, data, c) }

func (d Dictionary) MarshalJSON() ([]byte, error) { return Marshal(codec.JSON, d) }

func (d *Dictionary) UnmarshalJSON(data []byte) error { return unmarshalInto(codec.JSON, data, d) }

func (d Dictionary) MarshalYAML() (any, error) { return marshalYAML(d) }

func (d *Dictionary) UnmarshalYAML(node *yaml.Node) error { return unmarshalYAML(node, d) }

func (d Dictionary) MarshalCBOR() ([]byte, error) { return Marshal(codec.CBOR, d) }

func (d *Dictionary) UnmarshalCBOR(data []byte) error { return unmarshalInto(codec.CBOR, data, d) }
