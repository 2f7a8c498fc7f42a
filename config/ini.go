package config

import (
	"gopkg.in/ini.v1"
)

// INIParser parses INI documents. Section headers are sections; keys must
// appear inside a section.
type INIParser struct{}

// Format implements Parser.
func (INIParser) Format() Format { return FormatINI }

// Parse implements Parser.
func (INIParser) Parse(data []byte) (FlatMap, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, malformed("ini: %v", err)
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		SpaceBeforeInlineComment: true,
	}, text)
	if err != nil {
		return nil, malformed("ini: %v", err)
	}

	out := FlatMap{}
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			if keys := section.KeyStrings(); len(keys) > 0 {
				return nil, malformed("ini: key %q is outside of a section", keys[0])
			}
			continue
		}
		for _, key := range section.Keys() {
			out[flatKey(section.Name(), key.Name())] = key.Value()
		}
	}

	return out, nil
}
