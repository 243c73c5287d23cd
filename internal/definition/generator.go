package definition

import (
	"github.com/conn-castle/multiconf/internal/builder"
	"github.com/conn-castle/multiconf/internal/options"
)

// Generator produces the builders a definition starts from.
type Generator interface {
	Generate(opts options.Map) ([]builder.Builder, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(opts options.Map) ([]builder.Builder, error)

// Generate calls f(opts).
func (f GeneratorFunc) Generate(opts options.Map) ([]builder.Builder, error) {
	return f(opts)
}

// OverrideFunc replaces a generator while keeping access to the one it
// replaces, which it may call, decorate or ignore.
type OverrideFunc func(previous Generator, opts options.Map) ([]builder.Builder, error)

// Override is a generator delegation record: Current is invoked with
// Previous as its leading argument.
type Override struct {
	Previous Generator
	Current  OverrideFunc
}

// Generate calls o.Current(o.Previous, opts).
func (o Override) Generate(opts options.Map) ([]builder.Builder, error) {
	return o.Current(o.Previous, opts)
}

// Wrap stacks fn on top of previous.
func Wrap(previous Generator, fn OverrideFunc) Generator {
	return Override{Previous: previous, Current: fn}
}

// Single adapts a function producing one builder to Generator.
func Single(fn func(opts options.Map) builder.Builder) Generator {
	return GeneratorFunc(func(opts options.Map) ([]builder.Builder, error) {
		return []builder.Builder{fn(opts)}, nil
	})
}
