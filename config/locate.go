package config

import (
	"fmt"
	"path/filepath"
	"regexp"
)

var remotePattern = regexp.MustCompile(`(?i)^https?://`)

// Location is a classified configuration location.
type Location struct {
	// Raw is the location string as supplied.
	Raw string

	// Kind is KindRemote for http(s) URLs and KindLocal otherwise.
	Kind Kind

	// Ext is the lower-cased file extension without the dot.
	Ext string

	// Parser parses the content fetched from this location.
	Parser Parser
}

// Format returns the format of the location's parser.
func (l Location) Format() Format {
	if l.Parser == nil {
		return ""
	}
	return l.Parser.Format()
}

// IsRemote reports whether the location is fetched over HTTP.
func IsRemote(location string) bool {
	return remotePattern.MatchString(location)
}

// Classify decides whether location is a remote URL or a local file and
// picks its parser. Remote locations are always parsed as YAML; local ones
// by extension.
func (r *Registry) Classify(location string) (Location, error) {
	ext := normalizeExt(filepath.Ext(location))

	if IsRemote(location) {
		return Location{Raw: location, Kind: KindRemote, Ext: ext, Parser: YAMLParser{}}, nil
	}

	p, ok := r.Lookup(ext)
	if !ok {
		return Location{}, &ResolveError{
			Op:       "classify",
			Location: location,
			Kind:     ErrUnsupportedExtension,
			Err:      fmt.Errorf("extension %q (supported: %v)", ext, r.Extensions()),
		}
	}

	return Location{Raw: location, Kind: KindLocal, Ext: ext, Parser: p}, nil
}

// Classify classifies location against DefaultRegistry.
func Classify(location string) (Location, error) {
	return DefaultRegistry().Classify(location)
}
