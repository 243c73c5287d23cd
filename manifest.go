package multiconf

import (
	"github.com/conn-castle/multiconf/internal/config"
	"github.com/conn-castle/multiconf/internal/envfile"
)

// FromManifest returns a Configurator whose options and selection come from
// the TOML manifest at manifestPath. When envPath is not empty, the
// assignments in that .env-style file override the manifest options using
// upper-case key rules (DEV_SERVER__PORT sets devServer.port).
func FromManifest(manifestPath, envPath string, set ...Setting) (*Configurator, error) {
	manifest, err := config.LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	var overrides envfile.Overrides
	if envPath != "" {
		overrides, err = config.LoadEnvOverrides(envPath)
		if err != nil {
			return nil, err
		}
	}
	opts, err := manifest.WithOverrides(overrides, envPath)
	if err != nil {
		return nil, err
	}

	c, err := New(opts, set...)
	if err != nil {
		return nil, err
	}
	if err := manifest.Apply(&c.selection); err != nil {
		return nil, err
	}
	return c, nil
}
