package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the two-level form of a FlatMap: section -> key -> value.
type Document map[string]map[string]string

// Unflatten splits every "section.key" at its first dot.
func Unflatten(values FlatMap) (Document, error) {
	doc := make(Document)
	for k, v := range values {
		section, key, ok := strings.Cut(k, ".")
		if !ok {
			return nil, fmt.Errorf("key %q has no section", k)
		}
		if doc[section] == nil {
			doc[section] = make(map[string]string)
		}
		doc[section][key] = v
	}
	return doc, nil
}

// Flatten is the inverse of Unflatten.
func (d Document) Flatten() FlatMap {
	out := FlatMap{}
	for section, keys := range d {
		for key, value := range keys {
			out[flatKey(section, key)] = value
		}
	}
	return out
}

// MarshalYAML renders values as a two-level YAML document.
func MarshalYAML(values FlatMap) ([]byte, error) {
	doc, err := Unflatten(values)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// MarshalJSON renders values as a two-level, indented JSON document.
func MarshalJSON(values FlatMap) ([]byte, error) {
	doc, err := Unflatten(values)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}
