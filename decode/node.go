// SPDX-License-Identifier: MIT
package decode

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"gitlab.com/fisherprime/orgchart/types"
)

// decodeNode decodes JSON or YAML through a yaml.Node, JSON being a subset of YAML.
//
// Decoding into a node instead of a map retains the source order of the mapping keys.
func decodeNode(r io.Reader) (value interface{}, err error) {
	decoder := yaml.NewDecoder(r)

	var doc yaml.Node
	if err = decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrEmptySource
			return
		}

		err = fmt.Errorf("%w: %v", ErrSyntax, err)
		return
	}

	// A single document is expected.
	var rest yaml.Node
	if err = decoder.Decode(&rest); !errors.Is(err, io.EOF) {
		if err == nil {
			err = fmt.Errorf("%w: trailing content at line %d", ErrSyntax, rest.Line)
		} else {
			err = fmt.Errorf("%w: trailing content: %v", ErrSyntax, err)
		}

		return
	}

	return fromNode(&doc)
}

// fromNode converts a yaml.Node into generic values: *types.OrderedMap for mappings,
// []interface{} for sequences & the natural Go type for scalars.
func fromNode(node *yaml.Node) (value interface{}, err error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) < 1 {
			err = ErrEmptySource
			return
		}

		return fromNode(node.Content[0])
	case yaml.AliasNode:
		return fromNode(node.Alias)
	case yaml.MappingNode:
		m := types.NewOrderedMap(len(node.Content) / 2)
		for index := 0; index+1 < len(node.Content); index += 2 {
			key, val := node.Content[index], node.Content[index+1]
			if key.Kind != yaml.ScalarNode {
				err = fmt.Errorf("%w: line %d: non-scalar mapping key", ErrSyntax, key.Line)
				return
			}

			if m.Has(key.Value) {
				err = fmt.Errorf("%w: line %d: duplicate key (%s)", ErrSyntax, key.Line, key.Value)
				return
			}

			var v interface{}
			if v, err = fromNode(val); err != nil {
				return
			}
			m.Set(key.Value, v)
		}
		value = m
	case yaml.SequenceNode:
		list := make([]interface{}, len(node.Content))
		for index := range node.Content {
			if list[index], err = fromNode(node.Content[index]); err != nil {
				return
			}
		}
		value = list
	case yaml.ScalarNode:
		if err = node.Decode(&value); err != nil {
			err = fmt.Errorf("%w: line %d: %v", ErrSyntax, node.Line, err)
		}
	default:
		err = fmt.Errorf("%w: line %d: unexpected node kind %d", ErrSyntax, node.Line, node.Kind)
	}

	return
}
