// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
)

// encodeJSON writes the document as compact JSON, keeping Table order.
// encoding/json cannot be used directly on a Table because it would
// encode the slice as an array of entries.
func encodeJSON(document any) ([]byte, error) {
	var buffer bytes.Buffer
	if err := writeJSON(&buffer, document); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func writeJSON(buffer *bytes.Buffer, node any) error {
	switch value := node.(type) {
	case nil:
		buffer.WriteString("null")
	case string:
		writeJSONString(buffer, value)
	case bool:
		buffer.WriteString(strconv.FormatBool(value))
	case uint64:
		buffer.WriteString(strconv.FormatUint(value, 10))
	case Number:
		buffer.WriteString(string(value))
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("json: float %v: %w", value, ErrNotRepresentable)
		}
		// encoding/json picks the shortest representation that
		// round-trips, switching to exponent form at the same
		// thresholds as ECMAScript.
		text, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("json: %w", err)
		}
		buffer.Write(text)
	case Table:
		buffer.WriteByte('{')
		for i, entry := range value {
			if i > 0 {
				buffer.WriteByte(',')
			}
			writeJSONString(buffer, entry.Key)
			buffer.WriteByte(':')
			if err := writeJSON(buffer, entry.Value); err != nil {
				return err
			}
		}
		buffer.WriteByte('}')
	case []any:
		buffer.WriteByte('[')
		for i, element := range value {
			if i > 0 {
				buffer.WriteByte(',')
			}
			if err := writeJSON(buffer, element); err != nil {
				return err
			}
		}
		buffer.WriteByte(']')
	default:
		return fmt.Errorf("json: %T: %w", node, ErrUnsupportedNode)
	}
	return nil
}

// writeJSONString writes s as a JSON string literal without the HTML
// escaping encoding/json applies by default, so "<" stays "<".
func writeJSONString(buffer *bytes.Buffer, s string) {
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = encoder.Encode(s)
	// Encoder.Encode terminates every value with a newline.
	buffer.Truncate(buffer.Len() - 1)
}

// IndentJSON re-renders compact JSON with two-space indentation and a
// trailing newline, for human-facing output.
func IndentJSON(data []byte) ([]byte, error) {
	var buffer bytes.Buffer
	if err := json.Indent(&buffer, data, "", "  "); err != nil {
		return nil, fmt.Errorf("indent json: %w", err)
	}
	buffer.WriteByte('\n')
	return buffer.Bytes(), nil
}

// decodeJSONC strips comments and trailing commas, then decodes the
// result as strict JSON.
func decodeJSONC(data []byte) (any, error) {
	return decodeJSON(jsonc.ToJSON(data))
}

// decodeJSON parses one JSON value through the token stream so that
// object key order survives and duplicate keys can be rejected.
func decodeJSON(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	document, err := readJSONValue(decoder)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("json: empty document")
		}
		return nil, fmt.Errorf("json: %w", err)
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("json: unexpected data after top-level value at offset %d", decoder.InputOffset())
	}
	return document, nil
}

func readJSONValue(decoder *json.Decoder) (any, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}

	switch value := token.(type) {
	case json.Delim:
		switch value {
		case '{':
			return readJSONObject(decoder)
		case '[':
			return readJSONArray(decoder)
		default:
			return nil, fmt.Errorf("unexpected %q at offset %d", value, decoder.InputOffset())
		}
	case json.Number:
		return jsonNumber(value)
	case string, bool, nil:
		return value, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", token)
	}
}

func readJSONObject(decoder *json.Decoder) (Table, error) {
	table := Table{}
	seen := make(map[string]bool)
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", token)
		}
		if seen[key] {
			return nil, fmt.Errorf("duplicate key %q at offset %d", key, decoder.InputOffset())
		}
		seen[key] = true

		value, err := readJSONValue(decoder)
		if err != nil {
			return nil, err
		}
		table = append(table, Entry{Key: key, Value: value})
	}
	// Consume the closing brace.
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	return table, nil
}

func readJSONArray(decoder *json.Decoder) ([]any, error) {
	elements := []any{}
	for decoder.More() {
		element, err := readJSONValue(decoder)
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
	}
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	return elements, nil
}

// jsonNumber classifies a JSON number literal: integers stay textual as
// a Number, anything with a fraction or exponent becomes a float64.
func jsonNumber(literal json.Number) (any, error) {
	text := literal.String()
	if !strings.ContainsAny(text, ".eE") {
		return Number(text), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("number %s: %w", text, err)
	}
	return f, nil
}
