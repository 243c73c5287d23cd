package builder

import (
	"fmt"

	"github.com/aymanbagabas/go-udiff"
	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/multiconf/internal/messages"
)

// Render encodes an artifact as TOML with keys in sorted order.
func Render(artifact Artifact) (string, error) {
	data, err := toml.Marshal(artifact)
	if err != nil {
		return "", fmt.Errorf(messages.BuilderRenderFmt, err)
	}
	return string(data), nil
}

// Diff returns a unified diff between the rendered forms of before and after.
// Identical artifacts yield an empty string.
func Diff(before, after Artifact) (string, error) {
	from, err := Render(before)
	if err != nil {
		return "", fmt.Errorf(messages.BuilderDiffRenderSideFmt, messages.BuilderDiffBeforeLabel, err)
	}
	to, err := Render(after)
	if err != nil {
		return "", fmt.Errorf(messages.BuilderDiffRenderSideFmt, messages.BuilderDiffAfterLabel, err)
	}
	return udiff.Unified(messages.BuilderDiffBeforeLabel, messages.BuilderDiffAfterLabel, from, to), nil
}
