package config

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// XMLParser parses XML documents. The root element wraps the document, its
// children are sections and their children are keys:
//
//	<configuration>
//	  <dexi>
//	    <baseUrl>http://localhost:3000/api/</baseUrl>
//	  </dexi>
//	</configuration>
type XMLParser struct{}

// Format implements Parser.
func (XMLParser) Format() Format { return FormatXML }

type xmlNode struct {
	XMLName xml.Name
	Content string    `xml:",chardata"`
	Inner   string    `xml:",innerxml"`
	Nodes   []xmlNode `xml:",any"`
}

// Parse implements Parser. A key element with child elements is returned as
// its trimmed inner XML.
func (XMLParser) Parse(data []byte) (FlatMap, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, malformed("xml: %v", err)
	}

	out := FlatMap{}
	if len(bytes.TrimSpace(text)) == 0 {
		return out, nil
	}

	dec := xml.NewDecoder(bytes.NewReader(text))
	dec.CharsetReader = charsetReader

	var root xmlNode
	if err := dec.Decode(&root); err != nil {
		return nil, malformed("xml: %v", err)
	}

	for _, section := range root.Nodes {
		name := section.XMLName.Local
		if len(section.Nodes) == 0 {
			if strings.TrimSpace(section.Content) != "" {
				return nil, malformed("xml: section %q is not a map", name)
			}
			continue
		}
		if strings.TrimSpace(section.Content) != "" {
			return nil, malformed("xml: section %q mixes text and keys", name)
		}

		for _, key := range section.Nodes {
			var value string
			if len(key.Nodes) == 0 {
				value = strings.TrimSpace(key.Content)
			} else {
				value = strings.TrimSpace(key.Inner)
			}
			out[flatKey(name, key.XMLName.Local)] = value
		}
	}

	return out, nil
}

// charsetReader handles non-UTF-8 encoding declarations. UTF-16 input has
// already been transcoded by decodeText, so it passes through unchanged.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	if strings.HasPrefix(strings.ToLower(label), "utf-16") {
		return input, nil
	}

	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
