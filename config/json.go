package config

import (
	"bytes"

	"github.com/tidwall/gjson"
)

// JSONParser parses JSON documents.
type JSONParser struct{}

// Format implements Parser.
func (JSONParser) Format() Format { return FormatJSON }

// Parse implements Parser. Numbers keep their raw text.
func (JSONParser) Parse(data []byte) (FlatMap, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, malformed("json: %v", err)
	}

	out := FlatMap{}
	if len(bytes.TrimSpace(text)) == 0 {
		return out, nil
	}
	if !gjson.ValidBytes(text) {
		return nil, malformed("json: invalid document")
	}

	root := gjson.ParseBytes(text)
	if root.Type == gjson.Null {
		return out, nil
	}
	if !root.IsObject() {
		return nil, malformed("json: top level is not an object of sections")
	}

	var walkErr error
	root.ForEach(func(section, body gjson.Result) bool {
		if body.Type == gjson.Null {
			return true
		}
		if !body.IsObject() {
			walkErr = malformed("json: section %q is not an object", section.String())
			return false
		}
		body.ForEach(func(key, value gjson.Result) bool {
			out[flatKey(section.String(), key.String())] = jsonLeaf(value)
			return true
		})
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return out, nil
}

func jsonLeaf(value gjson.Result) string {
	switch value.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return value.Str
	case gjson.Number, gjson.True, gjson.False:
		return value.Raw
	default:
		return canonicalString(value.Value())
	}
}
