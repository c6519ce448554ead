// Copyright (c) 2026, CoEditAR. All rights reserved.
// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ordmap

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses the given YAML (or JSON, which is valid YAML) data
// into nested ordered maps, slices and scalar values, preserving the
// order of the keys. Empty input decodes to nil.
func DecodeYAML(b []byte) (any, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return FromYAMLNode(&doc)
}

// FromYAMLNode converts the given YAML node into nested ordered maps,
// slices and scalar values.
func FromYAMLNode(nd *yaml.Node) (any, error) {
	switch nd.Kind {
	case yaml.DocumentNode:
		if len(nd.Content) == 0 {
			return nil, nil
		}
		return FromYAMLNode(nd.Content[0])
	case yaml.AliasNode:
		return FromYAMLNode(nd.Alias)
	case yaml.MappingNode:
		om := New[string, any]()
		for i := 0; i+1 < len(nd.Content); i += 2 {
			kn, vn := nd.Content[i], nd.Content[i+1]
			v, err := FromYAMLNode(vn)
			if err != nil {
				return nil, err
			}
			om.Add(kn.Value, v)
		}
		return om, nil
	case yaml.SequenceNode:
		s := make([]any, len(nd.Content))
		for i, en := range nd.Content {
			v, err := FromYAMLNode(en)
			if err != nil {
				return nil, err
			}
			s[i] = v
		}
		return s, nil
	case yaml.ScalarNode:
		var v any
		if err := nd.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, fmt.Errorf("ordmap: unsupported YAML node kind %v at line %d", nd.Kind, nd.Line)
}
