package builder

import (
	"errors"
	"fmt"

	"github.com/mitchellh/copystructure"

	"github.com/conn-castle/multiconf/internal/messages"
)

// Keys used in resolved artifacts.
const (
	KeyModule  = "module"
	KeyLoaders = "loaders"
	KeyPlugins = "plugins"
	KeyName    = "name"
	KeyKind    = "kind"
	KeyParams  = "params"
)

// ErrInvalidSpec reports a loader or plugin that cannot be registered.
var ErrInvalidSpec = errors.New("invalid builder spec")

type namedLoader struct {
	name string
	spec LoaderSpec
}

type namedPlugin struct {
	name string
	spec PluginSpec
}

// Config is the default Builder. Loaders and plugins keep the order in which
// they were first registered.
type Config struct {
	values  map[string]any
	loaders []namedLoader
	plugins []namedPlugin
	errs    []error
}

// New returns an empty Config.
func New() *Config {
	return &Config{values: map[string]any{}}
}

var _ Builder = (*Config)(nil)

// Merge deep-merges values into the configuration tree. Maps merge key by
// key; any other value replaces what was there.
func (c *Config) Merge(values map[string]any) Builder {
	copied, err := deepCopy(values)
	if err != nil {
		c.errs = append(c.errs, fmt.Errorf(messages.BuilderMergeFmt, err))
		return c
	}
	mergeTree(c.values, copied)
	return c
}

// Loader registers or extends the loader called name.
func (c *Config) Loader(name string, spec LoaderSpec) Builder {
	if name == "" {
		c.errs = append(c.errs, fmt.Errorf("%w: %s", ErrInvalidSpec, messages.BuilderLoaderNameEmpty))
		return c
	}
	copied, err := deepCopy(spec)
	if err != nil {
		c.errs = append(c.errs, fmt.Errorf(messages.BuilderMergeFmt, err))
		return c
	}
	for i := range c.loaders {
		if c.loaders[i].name == name {
			mergeTree(c.loaders[i].spec, copied)
			return c
		}
	}
	c.loaders = append(c.loaders, namedLoader{name: name, spec: copied})
	return c
}

// RemoveLoader drops the loader called name, if any.
func (c *Config) RemoveLoader(name string) Builder {
	for i := range c.loaders {
		if c.loaders[i].name == name {
			c.loaders = append(c.loaders[:i], c.loaders[i+1:]...)
			break
		}
	}
	return c
}

// Plugin registers the plugin called name, replacing an existing one in place.
func (c *Config) Plugin(name string, spec PluginSpec) Builder {
	if name == "" {
		c.errs = append(c.errs, fmt.Errorf("%w: %s", ErrInvalidSpec, messages.BuilderPluginNameEmpty))
		return c
	}
	if spec.Kind == "" {
		c.errs = append(c.errs, fmt.Errorf("%w: "+messages.BuilderPluginKindFmt, ErrInvalidSpec, name))
		return c
	}
	spec.Params = append([]any(nil), spec.Params...)
	for i := range c.plugins {
		if c.plugins[i].name == name {
			c.plugins[i].spec = spec
			return c
		}
	}
	c.plugins = append(c.plugins, namedPlugin{name: name, spec: spec})
	return c
}

// RemovePlugin drops the plugin called name, if any.
func (c *Config) RemovePlugin(name string) Builder {
	for i := range c.plugins {
		if c.plugins[i].name == name {
			c.plugins = append(c.plugins[:i], c.plugins[i+1:]...)
			break
		}
	}
	return c
}

// Resolve produces an independent artifact. Loaders land under
// module.loaders and plugins under plugins; both are omitted when empty.
func (c *Config) Resolve() (Artifact, error) {
	if len(c.errs) > 0 {
		return nil, errors.Join(c.errs...)
	}
	artifact, err := deepCopy(c.values)
	if err != nil {
		return nil, err
	}

	if len(c.loaders) > 0 {
		loaders := make([]map[string]any, 0, len(c.loaders))
		for _, loader := range c.loaders {
			entry, err := deepCopy(loader.spec)
			if err != nil {
				return nil, err
			}
			entry[KeyName] = loader.name
			loaders = append(loaders, entry)
		}
		module, ok := artifact[KeyModule].(map[string]any)
		if !ok {
			module = map[string]any{}
			artifact[KeyModule] = module
		}
		module[KeyLoaders] = loaders
	}

	if len(c.plugins) > 0 {
		plugins := make([]map[string]any, 0, len(c.plugins))
		for _, plugin := range c.plugins {
			entry := map[string]any{KeyName: plugin.name, KeyKind: plugin.spec.Kind}
			if len(plugin.spec.Params) > 0 {
				entry[KeyParams] = append([]any(nil), plugin.spec.Params...)
			}
			plugins = append(plugins, entry)
		}
		artifact[KeyPlugins] = plugins
	}
	return artifact, nil
}

func deepCopy(m map[string]any) (map[string]any, error) {
	if m == nil {
		return map[string]any{}, nil
	}
	copied, err := copystructure.Copy(m)
	if err != nil {
		return nil, err
	}
	return copied.(map[string]any), nil
}

func mergeTree(dst, src map[string]any) {
	for key, value := range src {
		incoming, isMap := value.(map[string]any)
		existing, hasMap := dst[key].(map[string]any)
		if isMap && hasMap {
			mergeTree(existing, incoming)
			continue
		}
		dst[key] = value
	}
}
