package service

import (
	"encoding/json"
	"sort"
)

// Schema describes the fields of a configuration form or a data row, keyed
// by field id.
type Schema map[string]Field

// Field is one entry of a Schema. Options, DefaultValue and Configuration
// are passed through as raw JSON.
type Field struct {
	Title         string          `json:"title,omitempty"`
	Required      bool            `json:"required"`
	Secret        bool            `json:"secret"`
	Type          string          `json:"type,omitempty"`
	Description   string          `json:"description,omitempty"`
	Options       json.RawMessage `json:"options,omitempty"`
	SortOrder     int             `json:"sortOrder"`
	DefaultValue  json.RawMessage `json:"defaultValue,omitempty"`
	DependsOn     []string        `json:"dependsOn,omitempty"`
	Configuration json.RawMessage `json:"configuration,omitempty"`
	Properties    Schema          `json:"properties,omitempty"`
	Items         *Field          `json:"items,omitempty"`
}

// Keys returns the field ids ordered by SortOrder, then id.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := s[keys[i]], s[keys[j]]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Secrets returns the ids of secret fields, sorted.
func (s Schema) Secrets() []string {
	var out []string
	for k, f := range s {
		if f.Secret {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
