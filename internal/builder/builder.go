// Package builder defines the capability set a configuration builder must
// offer and provides Config, the default builder used when no generator is
// supplied.
package builder

// Artifact is the final configuration value produced by resolving a builder.
type Artifact = map[string]any

// LoaderSpec describes a named loader. Repeated Loader calls for the same
// name merge into the existing spec.
type LoaderSpec = map[string]any

// PluginSpec describes a named plugin.
type PluginSpec struct {
	Kind   string `toml:"kind"`
	Params []any  `toml:"params,omitempty"`
}

// Builder is a mutable configuration-construction object.
// Mutating methods return the receiver so calls can be chained; failures are
// reported by Resolve.
type Builder interface {
	Merge(values map[string]any) Builder
	Loader(name string, spec LoaderSpec) Builder
	RemoveLoader(name string) Builder
	Plugin(name string, spec PluginSpec) Builder
	RemovePlugin(name string) Builder
	Resolve() (Artifact, error)
}
