package config

// Source indicates where a configuration value came from.
type Source string

// Configuration source constants.
const (
	// SourceFile indicates the value came from a local configuration file
	// (e.g., ~/.dexi/configuration.yml).
	SourceFile Source = "file"

	// SourceRemote indicates the value came from a configuration file
	// fetched over HTTP(S).
	SourceRemote Source = "remote"

	// SourceEnv indicates the value came from a DEXI_APP_ environment variable.
	SourceEnv Source = "env"

	// SourceProperty indicates the value came from an explicitly set property
	// (e.g., --set on the command line), which shadows the environment.
	SourceProperty Source = "property"
)

// Kind reports whether a location is fetched remotely or read locally.
type Kind int

// Location kinds.
const (
	KindLocal Kind = iota
	KindRemote
)

func (k Kind) String() string {
	if k == KindRemote {
		return "remote"
	}
	return "local"
}

// Source returns the Source recorded for values loaded from this kind of
// location.
func (k Kind) Source() Source {
	if k == KindRemote {
		return SourceRemote
	}
	return SourceFile
}
