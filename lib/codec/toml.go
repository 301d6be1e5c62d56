// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
)

// encodeTOML renders a Table document as TOML. go-toml's encoder works
// from Go structs and always writes a header for every intermediate
// table, so the layout is produced here instead:
//
//   - a table's scalar keys come first, then its sub-tables in order;
//   - a table that holds only sub-tables gets no header of its own
//     (its children's dotted headers define it implicitly);
//   - a non-empty sequence of tables becomes an array of tables;
//   - nil values are omitted, since TOML has no null;
//   - a blank line precedes every header that follows key/values.
//
// For {"bool": {"name": "b", "value": true, "constr": {"scope":
// {"beg": 1, "end": 10}}}} this yields:
//
//	[bool]
//	name = "b"
//	value = true
//
//	[bool.constr.scope]
//	beg = 1
//	end = 10
func encodeTOML(document any) ([]byte, error) {
	root, ok := document.(Table)
	if !ok {
		return nil, fmt.Errorf("toml: top-level %s: %w", TypeName(document), ErrNotRepresentable)
	}
	emitter := &tomlEmitter{}
	if err := emitter.table(nil, root, false); err != nil {
		return nil, err
	}
	return emitter.buffer.Bytes(), nil
}

type tomlEmitter struct {
	buffer bytes.Buffer
	// afterHeader is true when the last line written was a header, so
	// consecutive headers are not separated by blank lines.
	afterHeader bool
}

func (e *tomlEmitter) header(text string) {
	if e.buffer.Len() > 0 && !e.afterHeader {
		e.buffer.WriteByte('\n')
	}
	e.buffer.WriteString(text)
	e.buffer.WriteByte('\n')
	e.afterHeader = true
}

// isTableArray reports whether a sequence must be written as an array of
// tables: it is non-empty and every element is a Table.
func isTableArray(node any) bool {
	elements, ok := node.([]any)
	if !ok || len(elements) == 0 {
		return false
	}
	for _, element := range elements {
		if _, isTable := element.(Table); !isTable {
			return false
		}
	}
	return true
}

func (e *tomlEmitter) table(path []string, table Table, headerWritten bool) error {
	var scalars, children []Entry
	for _, entry := range table {
		switch entry.Value.(type) {
		case nil:
			continue
		case Table:
			children = append(children, entry)
		default:
			if isTableArray(entry.Value) {
				children = append(children, entry)
			} else {
				scalars = append(scalars, entry)
			}
		}
	}

	if len(path) > 0 && !headerWritten && (len(scalars) > 0 || len(children) == 0) {
		e.header("[" + tomlDottedKey(path) + "]")
	}

	for _, entry := range scalars {
		var line strings.Builder
		line.WriteString(tomlKey(entry.Key))
		line.WriteString(" = ")
		if err := writeTOMLInline(&line, entry.Value); err != nil {
			return fmt.Errorf("toml: key %s: %w", tomlDottedKey(append(path, entry.Key)), err)
		}
		e.buffer.WriteString(line.String())
		e.buffer.WriteByte('\n')
		e.afterHeader = false
	}

	for _, entry := range children {
		childPath := append(append([]string(nil), path...), entry.Key)
		switch value := entry.Value.(type) {
		case Table:
			if err := e.table(childPath, value, false); err != nil {
				return err
			}
		case []any:
			for _, element := range value {
				e.header("[[" + tomlDottedKey(childPath) + "]]")
				if err := e.table(childPath, element.(Table), true); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// writeTOMLInline writes a value in key/value position. Tables nested
// inside sequences become inline tables.
func writeTOMLInline(builder *strings.Builder, node any) error {
	switch value := node.(type) {
	case string:
		builder.WriteString(tomlString(value))
	case bool:
		builder.WriteString(strconv.FormatBool(value))
	case uint64:
		builder.WriteString(strconv.FormatUint(value, 10))
	case Number:
		builder.WriteString(string(value))
	case float64:
		builder.WriteString(formatFloat(value, "nan", "inf", "-inf"))
	case []any:
		builder.WriteByte('[')
		for i, element := range value {
			if i > 0 {
				builder.WriteString(", ")
			}
			if err := writeTOMLInline(builder, element); err != nil {
				return err
			}
		}
		builder.WriteByte(']')
	case Table:
		builder.WriteByte('{')
		written := 0
		for _, entry := range value {
			if entry.Value == nil {
				continue
			}
			if written > 0 {
				builder.WriteByte(',')
			}
			builder.WriteByte(' ')
			builder.WriteString(tomlKey(entry.Key))
			builder.WriteString(" = ")
			if err := writeTOMLInline(builder, entry.Value); err != nil {
				return err
			}
			written++
		}
		if written > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteByte('}')
	case nil:
		return fmt.Errorf("null inside a sequence: %w", ErrNotRepresentable)
	default:
		return fmt.Errorf("%T: %w", node, ErrUnsupportedNode)
	}
	return nil
}

func tomlDottedKey(path []string) string {
	parts := make([]string, len(path))
	for i, key := range path {
		parts[i] = tomlKey(key)
	}
	return strings.Join(parts, ".")
}

// tomlKey returns key bare when it only uses A-Za-z0-9_- and quoted
// otherwise.
func tomlKey(key string) string {
	if key == "" {
		return `""`
	}
	for _, r := range key {
		bare := r == '_' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !bare {
			return tomlString(key)
		}
	}
	return key
}

// tomlString quotes s as a TOML basic string. TOML escapes are a subset
// of Go's, so strconv.Quote cannot be used (it emits \a, \v and \x).
func tomlString(s string) string {
	var builder strings.Builder
	builder.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			builder.WriteString(`\"`)
		case '\\':
			builder.WriteString(`\\`)
		case '\b':
			builder.WriteString(`\b`)
		case '\t':
			builder.WriteString(`\t`)
		case '\n':
			builder.WriteString(`\n`)
		case '\f':
			builder.WriteString(`\f`)
		case '\r':
			builder.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f || r == utf8.RuneError {
				fmt.Fprintf(&builder, `\u%04X`, r)
			} else {
				builder.WriteRune(r)
			}
		}
	}
	builder.WriteByte('"')
	return builder.String()
}

// decodeTOML parses a TOML document. go-toml decodes into generic maps,
// so table key order is not preserved; keys are sorted to keep decoded
// documents deterministic.
func decodeTOML(data []byte) (any, error) {
	var root map[string]any
	if err := toml.Unmarshal(data, &root); err != nil {
		// go-toml reports range failures only in the message text.
		if strings.Contains(err.Error(), strconv.ErrRange.Error()) {
			return nil, fmt.Errorf("toml: %w: %w", ErrNumberRange, err)
		}
		return nil, fmt.Errorf("toml: %w", err)
	}
	document, err := fromTOMLValue(root)
	if err != nil {
		return nil, fmt.Errorf("toml: %w", err)
	}
	return document, nil
}

func fromTOMLValue(node any) (any, error) {
	switch value := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		table := make(Table, 0, len(keys))
		for _, key := range keys {
			converted, err := fromTOMLValue(value[key])
			if err != nil {
				return nil, err
			}
			table = append(table, Entry{Key: key, Value: converted})
		}
		return table, nil
	case []any:
		elements := make([]any, len(value))
		for i, element := range value {
			converted, err := fromTOMLValue(element)
			if err != nil {
				return nil, err
			}
			elements[i] = converted
		}
		return elements, nil
	case int64:
		return Number(strconv.FormatInt(value, 10)), nil
	case float64, string, bool:
		return value, nil
	default:
		return nil, fmt.Errorf("%T value: %w", node, ErrUnsupportedNode)
	}
}
