package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	yamlNullTag  = "!!null"
	yamlMergeTag = "!!merge"
)

// YAMLParser parses YAML documents. It is also used for every remote source.
type YAMLParser struct{}

// Format implements Parser.
func (YAMLParser) Format() Format { return FormatYAML }

// Parse implements Parser. Scalar values keep the text as written in the
// document, so "3000" and "true" are returned verbatim.
func (YAMLParser) Parse(data []byte) (FlatMap, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, malformed("yaml: %v", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(text, &doc); err != nil {
		return nil, malformed("yaml: %v", err)
	}

	out := FlatMap{}

	root := &doc
	if root.Kind == 0 {
		return out, nil
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return out, nil
		}
		root = root.Content[0]
	}
	root = resolveAlias(root)

	if isYAMLNull(root) {
		return out, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, malformed("yaml: top level is not a map of sections")
	}

	sections, err := mappingPairs(root)
	if err != nil {
		return nil, malformed("yaml: %v", err)
	}

	for _, sp := range sections {
		section := sp.key
		body := resolveAlias(sp.value)

		if isYAMLNull(body) {
			continue
		}
		if body.Kind != yaml.MappingNode {
			return nil, malformed("yaml: section %q is not a map", section)
		}

		pairs, err := mappingPairs(body)
		if err != nil {
			return nil, malformed("yaml: section %q: %v", section, err)
		}
		for _, kv := range pairs {
			key := kv.key
			value, err := yamlLeaf(kv.value)
			if err != nil {
				return nil, malformed("yaml: %s.%s: %v", section, key, err)
			}
			out[flatKey(section, key)] = value
		}
	}

	return out, nil
}

type yamlPair struct {
	key   string
	value *yaml.Node
}

// mappingPairs returns the entries of a mapping node with merge keys
// ("<<: *anchor" or "<<: [*a, *b]") expanded. Keys written in the mapping
// win over merged ones, and earlier merge sources win over later ones.
func mappingPairs(node *yaml.Node) ([]yamlPair, error) {
	var explicit, merged []yamlPair

	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Tag != yamlMergeTag {
			explicit = append(explicit, yamlPair{key: k.Value, value: v})
			continue
		}

		v = resolveAlias(v)
		sources := []*yaml.Node{v}
		if v.Kind == yaml.SequenceNode {
			sources = v.Content
		}
		for _, src := range sources {
			src = resolveAlias(src)
			if src.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("merge value is not a map")
			}
			pairs, err := mappingPairs(src)
			if err != nil {
				return nil, err
			}
			merged = append(merged, pairs...)
		}
	}

	seen := make(map[string]bool, len(explicit)+len(merged))
	out := make([]yamlPair, 0, len(explicit)+len(merged))
	for _, p := range append(explicit, merged...) {
		if seen[p.key] {
			continue
		}
		seen[p.key] = true
		out = append(out, p)
	}
	return out, nil
}

func yamlLeaf(node *yaml.Node) (string, error) {
	node = resolveAlias(node)
	if node.Kind == yaml.ScalarNode {
		if node.Tag == yamlNullTag {
			return "", nil
		}
		return node.Value, nil
	}

	var v any
	if err := node.Decode(&v); err != nil {
		return "", err
	}
	return canonicalString(v), nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isYAMLNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == yamlNullTag
}
