// Package config loads manifests: default options, env-style overrides and the
// selection of definitions to resolve.
package config

import (
	"fmt"

	"github.com/conn-castle/multiconf/internal/envfile"
	"github.com/conn-castle/multiconf/internal/messages"
	"github.com/conn-castle/multiconf/internal/options"
)

// Manifest is the parsed form of a manifest TOML file.
type Manifest struct {
	Options options.Map `toml:"options"`
	Select  Selection   `toml:"select"`
}

// Selection lists the definitions a manifest selects.
type Selection struct {
	Include   []string `toml:"include"`
	Exclude   []string `toml:"exclude"`
	Otherwise []string `toml:"otherwise"`
}

// Selector receives a manifest's selection.
type Selector interface {
	Include(names ...string) error
	Exclude(names ...string) error
	Otherwise(names ...string) error
}

// Apply installs the selection on s: otherwise first, then includes, then excludes.
func (m *Manifest) Apply(s Selector) error {
	steps := []struct {
		field string
		names []string
		apply func(...string) error
	}{
		{field: "otherwise", names: m.Select.Otherwise, apply: s.Otherwise},
		{field: "include", names: m.Select.Include, apply: s.Include},
		{field: "exclude", names: m.Select.Exclude, apply: s.Exclude},
	}
	for _, step := range steps {
		if len(step.names) == 0 {
			continue
		}
		if err := step.apply(step.names...); err != nil {
			return fmt.Errorf(messages.ConfigSelectionApplyFmt, step.field, err)
		}
	}
	return nil
}

// WithOverrides returns a copy of the manifest options with overrides merged in.
// source names the overrides in error messages.
func (m *Manifest) WithOverrides(overrides envfile.Overrides, source string) (options.Map, error) {
	merged, err := options.Clone(m.Options)
	if err != nil {
		return nil, err
	}
	if len(overrides) == 0 {
		return merged, nil
	}
	merged, err = options.Merge(merged, overrides.Sources()...)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigMergeEnvFmt, source, err)
	}
	return merged, nil
}
