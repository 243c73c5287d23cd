package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/multiconf/internal/builder"
	"github.com/conn-castle/multiconf/internal/options"
)

func TestRecorder(t *testing.T) {
	var rec Recorder
	opts := options.Map{"a": 1}

	builders, err := rec.Generator("g")(opts)
	require.NoError(t, err)
	require.Len(t, builders, 1)

	out, err := rec.Step("s")(builders[0], opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"g", "s"}, rec.Sequence)
	assert.Equal(t, []string{"", "g"}, rec.Inputs)
	assert.Equal(t, "s", IDOf(out))
	assert.Equal(t, 1, rec.Count("s"))
	assert.Equal(t, 0, rec.Count("missing"))
}

func TestFakes(t *testing.T) {
	fakes := Fakes(3)
	require.Len(t, fakes, 3)
	artifact, err := fakes[2].Resolve()
	require.NoError(t, err)
	assert.Equal(t, builder.Artifact{"id": "2"}, artifact)
	assert.Equal(t, "?", IDOf(builder.New()))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := WriteFile(t, dir, "x.toml", "a = 1")
	assert.Equal(t, filepath.Join(dir, "x.toml"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a = 1", string(data))
}
