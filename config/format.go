package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// FlatMap maps flat "section.key" names to string values.
type FlatMap map[string]string

// Format identifies the document format of a configuration file.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
	FormatINI  Format = "ini"
)

// Parser turns a two-level configuration document into a FlatMap.
//
// Top-level keys are sections and second-level keys are keys, so
//
//	dexi:
//	  baseUrl: http://localhost:3000/api/
//
// becomes {"dexi.baseUrl": "http://localhost:3000/api/"}. Implementations
// return an error wrapping ErrMalformedDocument when the document is not a
// map of maps.
type Parser interface {
	Format() Format
	Parse(data []byte) (FlatMap, error)
}

// Registry maps file extensions (without the leading dot) to parsers.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]Parser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// DefaultRegistry returns a registry with the four supported extensions:
// yml, json, xml and ini.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("yml", YAMLParser{})
	r.Register("json", JSONParser{})
	r.Register("xml", XMLParser{})
	r.Register("ini", INIParser{})
	return r
}

// Register associates an extension with a parser, replacing any existing one.
func (r *Registry) Register(ext string, p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[normalizeExt(ext)] = p
}

// Lookup returns the parser registered for ext.
func (r *Registry) Lookup(ext string) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[normalizeExt(ext)]
	return p, ok
}

// Extensions returns the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.parsers))
	for ext := range r.parsers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

func flatKey(section, key string) string {
	return section + "." + key
}

// decodeText strips a UTF-8 byte order mark and transcodes BOM-marked
// UTF-16 input to UTF-8. Input without a BOM passes through unchanged so
// formats with their own charset declaration (XML) can still honour it.
func decodeText(data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return nil, fmt.Errorf("decode text: %w", err)
	}
	return out, nil
}

// canonicalString renders a decoded value as a string. Scalars keep their
// natural text; maps and slices become JSON with sorted object keys.
func canonicalString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	}

	data, err := json.Marshal(normalizeValue(v))
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// normalizeValue converts map[any]any (produced by YAML for non-string keys)
// into map[string]any so it can be JSON encoded.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeValue(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
