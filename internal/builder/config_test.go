package builder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_MergeDeep(t *testing.T) {
	c := New()
	c.Merge(map[string]any{"output": map[string]any{"path": "dist", "filename": "app.js"}})
	c.Merge(map[string]any{"output": map[string]any{"filename": "[name].js"}, "devtool": "source-map"})

	got, err := c.Resolve()
	require.NoError(t, err)

	want := Artifact{
		"output":  map[string]any{"path": "dist", "filename": "[name].js"},
		"devtool": "source-map",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("artifact mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_MergeCopiesInput(t *testing.T) {
	input := map[string]any{"output": map[string]any{"path": "dist"}}
	c := New()
	c.Merge(input)
	input["output"].(map[string]any)["path"] = "changed"

	got, err := c.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "dist", got["output"].(map[string]any)["path"])
}

func TestConfig_Loaders(t *testing.T) {
	c := New()
	c.Loader("js", LoaderSpec{"test": `\.js$`, "loader": "babel"}).
		Loader("css", LoaderSpec{"test": `\.css$`, "loader": "style!css"}).
		Loader("js", LoaderSpec{"exclude": "node_modules"}).
		Loader("tmp", LoaderSpec{"loader": "raw"}).
		RemoveLoader("tmp").
		RemoveLoader("missing")

	got, err := c.Resolve()
	require.NoError(t, err)

	want := Artifact{
		KeyModule: map[string]any{
			KeyLoaders: []map[string]any{
				{KeyName: "js", "test": `\.js$`, "loader": "babel", "exclude": "node_modules"},
				{KeyName: "css", "test": `\.css$`, "loader": "style!css"},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("artifact mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_Plugins(t *testing.T) {
	c := New()
	c.Plugin("define", PluginSpec{Kind: "DefinePlugin", Params: []any{map[string]any{"DEBUG": true}}}).
		Plugin("uglify", PluginSpec{Kind: "UglifyJsPlugin"}).
		Plugin("define", PluginSpec{Kind: "DefinePlugin", Params: []any{map[string]any{"DEBUG": false}}}).
		Plugin("gone", PluginSpec{Kind: "Gone"}).
		RemovePlugin("gone")

	got, err := c.Resolve()
	require.NoError(t, err)

	want := Artifact{
		KeyPlugins: []map[string]any{
			{KeyName: "define", KeyKind: "DefinePlugin", KeyParams: []any{map[string]any{"DEBUG": false}}},
			{KeyName: "uglify", KeyKind: "UglifyJsPlugin"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("artifact mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_InvalidSpecsFailResolve(t *testing.T) {
	tests := []struct {
		name  string
		apply func(c *Config)
	}{
		{name: "loader without name", apply: func(c *Config) { c.Loader("", LoaderSpec{}) }},
		{name: "plugin without name", apply: func(c *Config) { c.Plugin("", PluginSpec{Kind: "X"}) }},
		{name: "plugin without kind", apply: func(c *Config) { c.Plugin("x", PluginSpec{}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			tt.apply(c)
			_, err := c.Resolve()
			require.ErrorIs(t, err, ErrInvalidSpec)
		})
	}
}

func TestConfig_ResolveIsIndependent(t *testing.T) {
	c := New()
	c.Merge(map[string]any{"entry": map[string]any{"app": "./app.js"}})

	first, err := c.Resolve()
	require.NoError(t, err)
	first["entry"].(map[string]any)["app"] = "mutated"

	second, err := c.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "./app.js", second["entry"].(map[string]any)["app"])
}
