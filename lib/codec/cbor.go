// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical data always
// produces identical bytes, which is what Fingerprint relies on.
var encMode cbor.EncMode

// decMode is the CBOR decoder. Maps decode as map[string]any and
// duplicate keys are rejected, mirroring the JSON and YAML decoders.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Documents never use non-string map keys. Without this the
		// decoder would produce map[interface{}]interface{} for
		// any-typed targets.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		DupMapKey:      cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Encoder is a CBOR stream encoder. Type alias so consumers import
// only lib/codec, not fxamacker/cbor directly.
type Encoder = cbor.Encoder

// Decoder is a CBOR stream decoder.
type Decoder = cbor.Decoder

// NewEncoder returns a CBOR encoder that writes to w using Core
// Deterministic Encoding.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a CBOR decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}

// DiagnoseFirst returns the CBOR diagnostic notation (RFC 8949 §8) for
// the first data item in data, along with the remaining unconsumed
// bytes. Call it in a loop to walk a CBOR sequence.
func DiagnoseFirst(data []byte) (string, []byte, error) {
	return cbor.DiagnoseFirst(data)
}

// encodeCBOR converts Tables to maps (the deterministic encoder sorts
// keys anyway) and encodes the result.
func encodeCBOR(document any) ([]byte, error) {
	value, err := toCBORValue(document)
	if err != nil {
		return nil, err
	}
	data, err := Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("cbor: %w", err)
	}
	return data, nil
}

func toCBORValue(node any) (any, error) {
	switch value := node.(type) {
	case nil, string, bool, uint64, float64:
		return value, nil
	case Number:
		if value.IsNegative() {
			integer, err := value.Int64()
			if err != nil {
				return nil, fmt.Errorf("cbor: integer %s: %w", value, err)
			}
			return integer, nil
		}
		integer, err := value.Uint64()
		if err != nil {
			return nil, fmt.Errorf("cbor: integer %s: %w", value, err)
		}
		return integer, nil
	case Table:
		converted := make(map[string]any, len(value))
		for _, entry := range value {
			element, err := toCBORValue(entry.Value)
			if err != nil {
				return nil, err
			}
			converted[entry.Key] = element
		}
		return converted, nil
	case []any:
		converted := make([]any, len(value))
		for i, element := range value {
			item, err := toCBORValue(element)
			if err != nil {
				return nil, err
			}
			converted[i] = item
		}
		return converted, nil
	default:
		return nil, fmt.Errorf("cbor: %T: %w", node, ErrUnsupportedNode)
	}
}

// decodeCBOR decodes exactly one CBOR data item.
func decodeCBOR(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cbor: empty document")
	}
	var value any
	if err := Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("cbor: %w", err)
	}
	document, err := fromCBORValue(value)
	if err != nil {
		return nil, fmt.Errorf("cbor: %w", err)
	}
	return document, nil
}

func fromCBORValue(node any) (any, error) {
	switch value := node.(type) {
	case nil, string, bool, float64:
		return value, nil
	case uint64:
		return Number(strconv.FormatUint(value, 10)), nil
	case int64:
		return Number(strconv.FormatInt(value, 10)), nil
	case map[string]any:
		keys := make([]string, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		table := make(Table, 0, len(keys))
		for _, key := range keys {
			element, err := fromCBORValue(value[key])
			if err != nil {
				return nil, err
			}
			table = append(table, Entry{Key: key, Value: element})
		}
		return table, nil
	case []any:
		elements := make([]any, len(value))
		for i, element := range value {
			converted, err := fromCBORValue(element)
			if err != nil {
				return nil, err
			}
			elements[i] = converted
		}
		return elements, nil
	default:
		return nil, fmt.Errorf("%T item: %w", node, ErrUnsupportedNode)
	}
}
