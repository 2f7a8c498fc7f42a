package config

import (
	"os"
	"strings"
)

// Environment variable names.
const (
	// EnvPrefix marks environment variables that override configuration.
	// DEXI_APP_<section>_<key>=<value> sets "<section>.<key>".
	EnvPrefix = "DEXI_APP_"

	// EnvCredentials names the variable pointing at the configuration file,
	// either a URL or a local path.
	EnvCredentials = "DEXI_APP_CREDENTIALS"
)

// EnvReader decodes DEXI_APP_ overrides from the environment and from an
// explicit property table. Properties win over environment variables of the
// same name.
type EnvReader struct {
	// Environ returns "NAME=value" entries. Defaults to os.Environ.
	Environ func() []string

	// Properties holds explicitly set values, keyed by variable name.
	Properties map[string]string
}

// NewEnvReader creates a reader over the process environment and the given
// properties (which may be nil).
func NewEnvReader(properties map[string]string) *EnvReader {
	return &EnvReader{Environ: os.Environ, Properties: properties}
}

func (r *EnvReader) environ() map[string]string {
	fn := r.Environ
	if fn == nil {
		fn = os.Environ
	}

	entries := fn()
	env := make(map[string]string, len(entries))
	for _, entry := range entries {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = value
	}
	return env
}

// Lookup returns the value of name, preferring properties over the
// environment.
func (r *EnvReader) Lookup(name string) (string, bool) {
	if v, ok := r.Properties[name]; ok {
		return v, true
	}
	v, ok := r.environ()[name]
	return v, ok
}

// Read returns every override as a FlatMap.
func (r *EnvReader) Read() FlatMap {
	env, props := r.Partition()
	out := make(FlatMap, len(env)+len(props))
	for k, v := range env {
		out[k] = v
	}
	for k, v := range props {
		out[k] = v
	}
	return out
}

// Partition returns the overrides decoded from the environment and those
// decoded from properties, separately. An environment entry shadowed by a
// property of the same name is omitted from env. Because the mapping from
// variable name to flat key is one-to-one, applying env and then props with
// overwrite semantics equals applying Read().
func (r *EnvReader) Partition() (env, props FlatMap) {
	env = FlatMap{}
	props = FlatMap{}

	for name, value := range r.environ() {
		if _, shadowed := r.Properties[name]; shadowed {
			continue
		}
		if key, ok := DecodeEnvName(name); ok {
			env[key] = value
		}
	}
	for name, value := range r.Properties {
		if key, ok := DecodeEnvName(name); ok {
			props[key] = value
		}
	}

	return env, props
}

// DecodeEnvName turns DEXI_APP_<section>_<key> into "<section>.<key>". It
// reports false for names without the prefix, for DEXI_APP_CREDENTIALS, and
// for names with no underscore after the prefix. The split happens at the
// first underscore, so the key may contain underscores. Case is preserved.
func DecodeEnvName(name string) (string, bool) {
	if name == EnvCredentials || !strings.HasPrefix(name, EnvPrefix) {
		return "", false
	}

	section, key, ok := strings.Cut(strings.TrimPrefix(name, EnvPrefix), "_")
	if !ok {
		return "", false
	}
	return flatKey(section, key), true
}

// EncodeEnvName builds the DEXI_APP_ variable name for a section and key.
// DecodeEnvName splits at the first underscore, so the name only decodes
// back to "<section>.<key>" when section contains no underscore; see
// EncodableSection.
func EncodeEnvName(section, key string) string {
	return EnvPrefix + section + "_" + key
}

// EncodableSection reports whether a section name survives an
// EncodeEnvName/DecodeEnvName round trip.
func EncodableSection(section string) bool {
	return section != "" && !strings.Contains(section, "_")
}
