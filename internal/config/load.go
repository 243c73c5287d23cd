package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/multiconf/internal/envfile"
	"github.com/conn-castle/multiconf/internal/messages"
)

// ErrConfigValidation wraps manifest validation failures (as opposed to TOML
// syntax or filesystem errors).
var ErrConfigValidation = errors.New("manifest validation failed")

// LoadManifest reads and validates the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
	}
	return ParseManifest(data, path)
}

// ParseManifest parses and validates manifest TOML data.
// source is used in error messages.
func ParseManifest(data []byte, source string) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidManifestFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt+" "+messages.ConfigValidationGuidance, ErrConfigValidation, source, err)
	}
	if err := m.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w "+messages.ConfigValidationGuidance, ErrConfigValidation, err)
	}
	if m.Options == nil {
		m.Options = map[string]any{}
	}
	return &m, nil
}

// decodeStrict re-decodes with unknown-field rejection. The options table is
// free-form, so only keys outside it can be reported.
func decodeStrict(data []byte) error {
	var m Manifest
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&m)
}

// LoadEnvOverrides reads a .env-style override file.
func LoadEnvOverrides(path string) (envfile.Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigMissingEnvFileFmt, path, err)
	}
	overrides, err := envfile.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidEnvFileFmt, path, err)
	}
	return overrides, nil
}
