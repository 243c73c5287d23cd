// Package testutil provides recording fakes for definition and resolution tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/conn-castle/multiconf/internal/builder"
	"github.com/conn-castle/multiconf/internal/options"
)

// FakeBuilder is a Builder identified by ID. Its mutators do nothing and it
// resolves to {"id": ID}.
type FakeBuilder struct {
	ID string
}

var _ builder.Builder = (*FakeBuilder)(nil)

// NewFake returns a fake builder with the given id.
func NewFake(id string) *FakeBuilder {
	return &FakeBuilder{ID: id}
}

// Fakes returns n fake builders with ids "0" through "n-1".
func Fakes(n int) []builder.Builder {
	out := make([]builder.Builder, n)
	for i := range out {
		out[i] = NewFake(fmt.Sprint(i))
	}
	return out
}

func (f *FakeBuilder) Merge(map[string]any) builder.Builder              { return f }
func (f *FakeBuilder) Loader(string, builder.LoaderSpec) builder.Builder { return f }
func (f *FakeBuilder) RemoveLoader(string) builder.Builder               { return f }
func (f *FakeBuilder) Plugin(string, builder.PluginSpec) builder.Builder { return f }
func (f *FakeBuilder) RemovePlugin(string) builder.Builder               { return f }
func (f *FakeBuilder) Resolve() (builder.Artifact, error)                { return builder.Artifact{"id": f.ID}, nil }

// IDOf returns the id of a fake builder, or "?" for anything else.
func IDOf(b builder.Builder) string {
	if fake, ok := b.(*FakeBuilder); ok && fake != nil {
		return fake.ID
	}
	return "?"
}

// Recorder captures the order in which generators and steps run and the
// builder each step received.
type Recorder struct {
	// Sequence lists ids in call order.
	Sequence []string
	// Inputs lists, per call, the id of the builder received ("" for generators).
	Inputs []string
	// Options lists, per call, the options received.
	Options []options.Map
}

// Generator returns a generator function that records id and yields one fake
// builder with that id.
func (r *Recorder) Generator(id string) func(options.Map) ([]builder.Builder, error) {
	return func(opts options.Map) ([]builder.Builder, error) {
		r.record(id, "", opts)
		return []builder.Builder{NewFake(id)}, nil
	}
}

// Step returns a step function that records id and the builder it received,
// and returns a fresh fake builder with id.
func (r *Recorder) Step(id string) func(builder.Builder, options.Map) (builder.Builder, error) {
	return func(b builder.Builder, opts options.Map) (builder.Builder, error) {
		r.record(id, IDOf(b), opts)
		return NewFake(id), nil
	}
}

// Count returns how many times id was called.
func (r *Recorder) Count(id string) int {
	n := 0
	for _, seen := range r.Sequence {
		if seen == id {
			n++
		}
	}
	return n
}

func (r *Recorder) record(id, input string, opts options.Map) {
	r.Sequence = append(r.Sequence, id)
	r.Inputs = append(r.Inputs, input)
	r.Options = append(r.Options, opts)
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
