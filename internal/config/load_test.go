package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/multiconf/internal/options"
	"github.com/conn-castle/multiconf/internal/selection"
	"github.com/conn-castle/multiconf/internal/testutil"
)

const sampleManifest = `
[options]
minify = false
publicPath = "/"

[options.devServer]
port = 8080

[select]
include = ["app+test"]
exclude = ["test"]
otherwise = ["app"]
`

func TestLoadManifest(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "multiconf.toml", sampleManifest)

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, options.Map{
		"minify":     false,
		"publicPath": "/",
		"devServer":  map[string]any{"port": int64(8080)},
	}, m.Options)
	assert.Equal(t, Selection{
		Include:   []string{"app+test"},
		Exclude:   []string{"test"},
		Otherwise: []string{"app"},
	}, m.Select)
}

func TestLoadManifest_MissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing manifest file")
}

func TestParseManifest_Empty(t *testing.T) {
	m, err := ParseManifest([]byte(""), "empty")
	require.NoError(t, err)
	assert.Equal(t, options.Map{}, m.Options)
	assert.Empty(t, m.Select.Include)
}

func TestParseManifest_SyntaxError(t *testing.T) {
	_, err := ParseManifest([]byte("[options"), "broken.toml")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfigValidation)
	assert.Contains(t, err.Error(), "invalid manifest broken.toml")
}

func TestParseManifest_UnknownKeys(t *testing.T) {
	_, err := ParseManifest([]byte("[select]\nincludes = [\"app\"]\n"), "typo.toml")
	require.ErrorIs(t, err, ErrConfigValidation)
	assert.Contains(t, err.Error(), "unrecognized manifest keys")
}

func TestParseManifest_InvalidSelectionNames(t *testing.T) {
	data := []byte(`
[select]
include = ["app+", "ok"]
otherwise = [""]
`)
	_, err := ParseManifest(data, "names.toml")
	require.ErrorIs(t, err, ErrConfigValidation)
	require.ErrorIs(t, err, selection.ErrInvalidName)
	assert.Contains(t, err.Error(), "select.include[0]")
	assert.Contains(t, err.Error(), "select.otherwise[0]")
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, ".env", "MINIFY=true\nDEV_SERVER__PORT=9000\n")

	overrides, err := LoadEnvOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, []options.Map{{"MINIFY": "true"}, {"DEV_SERVER__PORT": "9000"}}, overrides.Sources())

	_, err = LoadEnvOverrides(filepath.Join(dir, "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing env file")

	bad := testutil.WriteFile(t, dir, "bad.env", "NOT AN ASSIGNMENT\n")
	_, err = LoadEnvOverrides(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid env file")
}

func TestManifest_WithOverrides(t *testing.T) {
	m, err := ParseManifest([]byte(sampleManifest), "sample")
	require.NoError(t, err)
	overrides := testutil.WriteFile(t, t.TempDir(), ".env", "MINIFY=true\nDEV_SERVER__PORT=9000\nPUBLIC_PATH=/static/\n")
	parsed, err := LoadEnvOverrides(overrides)
	require.NoError(t, err)

	merged, err := m.WithOverrides(parsed, ".env")
	require.NoError(t, err)
	assert.Equal(t, options.Map{
		"minify":     true,
		"publicPath": "/static/",
		"devServer":  map[string]any{"port": int64(9000)},
	}, merged)
	assert.Equal(t, false, m.Options["minify"])
}

func TestManifest_WithOverridesAppliesFileOrder(t *testing.T) {
	m, err := ParseManifest([]byte(sampleManifest), "sample")
	require.NoError(t, err)

	tests := []struct {
		name    string
		content string
		want    any
	}{
		{name: "flat value after nested key", content: "G__X=1\nG=flat\n", want: "flat"},
		{name: "nested key after flat value", content: "G=flat\nG__X=1\n", want: map[string]any{"x": "1"}},
		{name: "repeated key wins last", content: "G=flat\nG__X=1\nG=other\n", want: "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteFile(t, t.TempDir(), ".env", tt.content)
			parsed, err := LoadEnvOverrides(path)
			require.NoError(t, err)

			merged, err := m.WithOverrides(parsed, ".env")
			require.NoError(t, err)
			assert.Equal(t, tt.want, merged["g"])
		})
	}
}

func TestManifest_WithOverridesParseError(t *testing.T) {
	m, err := ParseManifest([]byte(sampleManifest), "sample")
	require.NoError(t, err)
	overrides := testutil.WriteFile(t, t.TempDir(), ".env", "DEV_SERVER__PORT=high\n")
	parsed, err := LoadEnvOverrides(overrides)
	require.NoError(t, err)

	_, err = m.WithOverrides(parsed, ".env")
	require.ErrorIs(t, err, options.ErrParse)
}

func TestManifest_Apply(t *testing.T) {
	m, err := ParseManifest([]byte(sampleManifest), "sample")
	require.NoError(t, err)

	var l selection.List
	require.NoError(t, m.Apply(&l))
	assert.Equal(t, []string{"app"}, l.Names())
	require.NoError(t, l.Otherwise("other"))
	assert.Equal(t, []string{"app"}, l.Names(), "app comes from the includes")
}

func TestManifest_ApplyOtherwiseOnly(t *testing.T) {
	m := &Manifest{Select: Selection{Otherwise: []string{"dev+lint"}}}
	var l selection.List
	require.NoError(t, m.Apply(&l))
	assert.Equal(t, []string{"dev", "lint"}, l.Names())
	require.NoError(t, l.Include("app"))
	assert.Equal(t, []string{"app"}, l.Names(), "otherwise names are not includes")
}

func TestManifest_ApplyError(t *testing.T) {
	m := &Manifest{Select: Selection{Include: []string{"bad+"}}}
	var l selection.List
	err := m.Apply(&l)
	require.ErrorIs(t, err, selection.ErrInvalidName)
	assert.Contains(t, err.Error(), "select.include")
}
