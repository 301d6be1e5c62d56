// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// encodeYAML renders the document in block style with two-space
// indentation.
func encodeYAML(document any) ([]byte, error) {
	node, err := ToYAMLNode(document)
	if err != nil {
		return nil, err
	}
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(node); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return buffer.Bytes(), nil
}

// ToYAMLNode converts a document into a yaml.v3 node tree. Scalars carry
// explicit tags matching what a YAML reader would resolve, so the
// encoder quotes strings like "true" or "42" and writes no tag
// annotations.
func ToYAMLNode(document any) (*yaml.Node, error) {
	switch value := document.(type) {
	case nil:
		return scalarNode("!!null", "null"), nil
	case string:
		return scalarNode("!!str", value), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(value)), nil
	case uint64:
		return scalarNode("!!int", strconv.FormatUint(value, 10)), nil
	case Number:
		return scalarNode("!!int", string(value)), nil
	case float64:
		return scalarNode("!!float", formatFloat(value, ".nan", ".inf", "-.inf")), nil
	case Table:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, entry := range value {
			child, err := ToYAMLNode(entry.Value)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, scalarNode("!!str", entry.Key), child)
		}
		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, element := range value {
			child, err := ToYAMLNode(element)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("yaml: %T: %w", document, ErrUnsupportedNode)
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// decodeYAML parses a single YAML document.
func decodeYAML(data []byte) (any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if node.Kind == 0 {
		return nil, fmt.Errorf("yaml: empty document")
	}
	document, err := FromYAMLNode(&node)
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return document, nil
}

// Alias expansion may visit at most aliasExpansionRatio times as many
// nodes as the parsed tree holds, and never fewer than minAliasBudget.
const (
	aliasExpansionRatio = 16
	minAliasBudget      = 4096
)

var (
	errAliasCycle     = errors.New("alias refers to its own anchor")
	errAliasExpansion = errors.New("aliases expand beyond the document size limit")
)

// FromYAMLNode converts a yaml.v3 node tree into a document. Aliases are
// followed; an alias inside its own anchor and expansions far larger
// than the tree are rejected. Duplicate mapping keys and non-scalar keys
// are rejected.
func FromYAMLNode(node *yaml.Node) (any, error) {
	reader := &yamlReader{
		active: make(map[*yaml.Node]bool),
		budget: max(minAliasBudget, aliasExpansionRatio*countYAMLNodes(node)),
	}
	return reader.read(node)
}

// countYAMLNodes counts the nodes of the tree as parsed, without
// following aliases.
func countYAMLNodes(node *yaml.Node) int {
	count := 1
	for _, child := range node.Content {
		count += countYAMLNodes(child)
	}
	return count
}

// yamlReader tracks the anchors being expanded and the nodes left to
// visit.
type yamlReader struct {
	active map[*yaml.Node]bool
	budget int
}

func (r *yamlReader) read(node *yaml.Node) (any, error) {
	r.budget--
	if r.budget < 0 {
		return nil, fmt.Errorf("line %d: %w", node.Line, errAliasExpansion)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, errors.New("empty document")
		}
		return r.read(node.Content[0])

	case yaml.AliasNode:
		if node.Alias == nil {
			return nil, fmt.Errorf("line %d: unresolved alias", node.Line)
		}
		if r.active[node.Alias] {
			return nil, fmt.Errorf("line %d: *%s: %w", node.Line, node.Value, errAliasCycle)
		}
		r.active[node.Alias] = true
		defer delete(r.active, node.Alias)
		return r.read(node.Alias)

	case yaml.MappingNode:
		table := make(Table, 0, len(node.Content)/2)
		seen := make(map[string]bool, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", keyNode.Line)
			}
			if seen[keyNode.Value] {
				return nil, fmt.Errorf("line %d: duplicate key %q", keyNode.Line, keyNode.Value)
			}
			seen[keyNode.Value] = true
			value, err := r.read(valueNode)
			if err != nil {
				return nil, err
			}
			table = append(table, Entry{Key: keyNode.Value, Value: value})
		}
		return table, nil

	case yaml.SequenceNode:
		elements := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			element, err := r.read(child)
			if err != nil {
				return nil, err
			}
			elements = append(elements, element)
		}
		return elements, nil

	case yaml.ScalarNode:
		return fromYAMLScalar(node)

	default:
		return nil, fmt.Errorf("line %d: unknown node kind %d", node.Line, node.Kind)
	}
}

func fromYAMLScalar(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!str":
		return node.Value, nil
	case "!!bool":
		var value bool
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return value, nil
	case "!!int":
		// yaml.v3 accepts 0x, 0o and _ separators; let it normalize
		// the literal, then keep the decimal text.
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		switch integer := value.(type) {
		case int:
			return Number(strconv.FormatInt(int64(integer), 10)), nil
		case int64:
			return Number(strconv.FormatInt(integer, 10)), nil
		case uint64:
			return Number(strconv.FormatUint(integer, 10)), nil
		default:
			return nil, fmt.Errorf("line %d: integer %q decoded as %T", node.Line, node.Value, value)
		}
	case "!!float":
		// yaml.v3 resolves plain integers beyond 64 bits as floats;
		// keep them as integer literals so range checks see them.
		if node.Style&yaml.TaggedStyle == 0 && isIntegerLiteral(node.Value) {
			return Number(strings.TrimPrefix(node.Value, "+")), nil
		}
		var value float64
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return value, nil
	case "!!timestamp":
		// An unquoted date is still text to us.
		return node.Value, nil
	default:
		return nil, fmt.Errorf("line %d: tag %s: %w", node.Line, node.ShortTag(), ErrUnsupportedNode)
	}
}

// isIntegerLiteral reports whether s is an optionally signed run of
// decimal digits.
func isIntegerLiteral(s string) bool {
	digits := strings.TrimLeft(s, "+-")
	if len(s)-len(digits) > 1 || digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
