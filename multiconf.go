// Package multiconf declares named, inheritable sequences of configuration
// steps and resolves a selection of them into configuration artifacts.
//
// A Configurator owns a collection of definitions. Each definition starts
// from a generator that produces builders, then applies its operations in
// order: step functions transform the builder, and names of other
// definitions splice in that definition's operations. Include, Exclude and
// Otherwise choose which definitions Resolve expands.
//
// Create derives a child Configurator with merged options and, optionally,
// a generator stacked on the current one. The child starts from a copy of
// the parent's definitions; its selection starts empty.
package multiconf

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/conn-castle/multiconf/internal/builder"
	"github.com/conn-castle/multiconf/internal/definition"
	"github.com/conn-castle/multiconf/internal/messages"
	"github.com/conn-castle/multiconf/internal/options"
	"github.com/conn-castle/multiconf/internal/selection"
)

type (
	// Options is the options hash passed to generators and steps.
	Options = options.Map
	// Builder is the configuration builder steps operate on.
	Builder = builder.Builder
	// Artifact is a resolved configuration.
	Artifact = builder.Artifact
	// Generator produces the builders a definition starts from.
	Generator = definition.Generator
	// OverrideFunc is a generator that receives the generator it replaces.
	OverrideFunc = definition.OverrideFunc
	// StepFunc transforms a builder; returning nil keeps the current builder.
	StepFunc = definition.StepFunc
	// MergeFunc merges option overrides into a copy of the current options.
	MergeFunc = options.MergeFunc
	// LoaderSpec describes a named loader passed to Builder.Loader.
	LoaderSpec = builder.LoaderSpec
	// PluginSpec describes a named plugin passed to Builder.Plugin.
	PluginSpec = builder.PluginSpec
	// Step is a labelled step function with identity.
	Step = definition.Step
	// Operation is one element of a definition: a name reference or a step.
	Operation = definition.Operation
)

// Errors returned by Configurator and Definition methods.
var (
	ErrInvalidName       = definition.ErrInvalidName
	ErrUnknownDefinition = definition.ErrUnknownDefinition
	ErrInvalidOperation  = definition.ErrInvalidOperation
	ErrCycle             = definition.ErrCycle
	ErrInvalidArgument   = errors.New("invalid create argument")
)

// NewStep returns a step with identity; adding the same step twice to one
// definition keeps it once.
func NewStep(label string, fn StepFunc) *Step {
	return definition.NewStep(label, fn)
}

// DefaultGenerator yields a single empty builder.Config.
var DefaultGenerator Generator = definition.Single(func(options.Map) builder.Builder {
	return builder.New()
})

type settings struct {
	generator OverrideFunc
	merge     MergeFunc
	logger    hclog.Logger
}

// Setting configures New.
type Setting func(*settings)

// WithGenerator overrides DefaultGenerator; fn receives it as its first argument.
func WithGenerator(fn OverrideFunc) Setting {
	return func(s *settings) { s.generator = fn }
}

// WithMerge replaces options.Merge as the function Create uses to merge options.
func WithMerge(fn MergeFunc) Setting {
	return func(s *settings) { s.merge = fn }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger hclog.Logger) Setting {
	return func(s *settings) { s.logger = logger }
}

// Configurator is an instance holding definitions, options and a selection.
// It is not safe for concurrent use.
type Configurator struct {
	options    options.Map
	generator  Generator
	merge      MergeFunc
	logger     hclog.Logger
	collection *definition.Collection
	selection  selection.List
	errs       *multierror.Error
}

// New returns a Configurator resolving with opts.
func New(opts Options, set ...Setting) (*Configurator, error) {
	s := settings{merge: options.Merge, logger: hclog.NewNullLogger()}
	for _, apply := range set {
		apply(&s)
	}
	if s.merge == nil {
		s.merge = options.Merge
	}
	if s.logger == nil {
		s.logger = hclog.NewNullLogger()
	}

	generator := DefaultGenerator
	if s.generator != nil {
		generator = definition.Wrap(DefaultGenerator, s.generator)
	}
	return newConfigurator(opts, generator, s.merge, s.logger, nil)
}

func newConfigurator(opts options.Map, generator Generator, merge MergeFunc, logger hclog.Logger, parent definition.Snapshot) (*Configurator, error) {
	if opts == nil {
		opts = options.Map{}
	}
	collection, err := definition.New(opts, generator,
		definition.WithParent(parent),
		definition.WithLogger(logger.Named("definitions")),
	)
	if err != nil {
		return nil, err
	}
	return &Configurator{
		options:    opts,
		generator:  generator,
		merge:      merge,
		logger:     logger,
		collection: collection,
	}, nil
}

// Options returns the options this instance resolves with.
func (c *Configurator) Options() Options {
	return c.options
}

// Create returns a child instance. args are option maps, merged in order into
// a copy of the current options, and generator overrides, of which the last
// one is stacked on the current generator. Nested []any arguments are
// flattened and nil arguments are skipped; any other argument fails with
// ErrInvalidArgument. Definitions are copied to the child; the selection is not.
func (c *Configurator) Create(args ...any) (*Configurator, error) {
	if err := c.Err(); err != nil {
		return nil, err
	}
	overrides, generatorFn, err := splitCreateArgs(args)
	if err != nil {
		return nil, err
	}

	current, err := options.Clone(c.options)
	if err != nil {
		return nil, err
	}
	merged, err := c.merge(current, overrides...)
	if err != nil {
		return nil, fmt.Errorf(messages.OptionsMergeFmt, err)
	}

	generator := c.generator
	if generatorFn != nil {
		generator = definition.Wrap(c.generator, generatorFn)
	}
	c.logger.Debug("creating child instance", "overrides", len(overrides), "generator", generatorFn != nil)
	return newConfigurator(merged, generator, c.merge, c.logger, c.collection.Snapshot())
}

func splitCreateArgs(args []any) ([]options.Map, OverrideFunc, error) {
	var (
		maps      []options.Map
		generator OverrideFunc
	)
	for i, arg := range args {
		switch v := arg.(type) {
		case nil:
		case map[string]any:
			maps = append(maps, v)
		case OverrideFunc:
			if v != nil {
				generator = v
			}
		case func(Generator, options.Map) ([]builder.Builder, error):
			if v != nil {
				generator = v
			}
		case []any:
			nestedMaps, nestedGenerator, err := splitCreateArgs(v)
			if err != nil {
				return nil, nil, err
			}
			maps = append(maps, nestedMaps...)
			if nestedGenerator != nil {
				generator = nestedGenerator
			}
		default:
			return nil, nil, fmt.Errorf("%w: "+messages.OptionsCreateArgFmt, ErrInvalidArgument, i, arg)
		}
	}
	return maps, generator, nil
}

// Define returns the definition called name, creating it on first use.
// Failures are reported by the definition's Err and by Resolve.
func (c *Configurator) Define(name string) *Definition {
	handle, err := c.collection.Get(name)
	if err != nil {
		c.errs = multierror.Append(c.errs, err)
		return &Definition{Configurator: c, err: err}
	}
	return &Definition{Configurator: c, handle: handle}
}

// Include marks definitions for resolution. Names may be composite, such as
// "app+test".
func (c *Configurator) Include(names ...string) *Configurator {
	return c.record(c.selection.Include(names...))
}

// Exclude removes definitions marked by earlier Include calls.
func (c *Configurator) Exclude(names ...string) *Configurator {
	return c.record(c.selection.Exclude(names...))
}

// Otherwise sets the definitions resolved when nothing is included.
func (c *Configurator) Otherwise(names ...string) *Configurator {
	return c.record(c.selection.Otherwise(names...))
}

// Selected returns the names Resolve would expand, in order.
func (c *Configurator) Selected() []string {
	return c.selection.Names()
}

// Err returns every failure recorded by this instance and its definitions.
func (c *Configurator) Err() error {
	var result *multierror.Error
	if c.errs != nil {
		result = multierror.Append(result, c.errs.Errors...)
	}
	if err := c.collection.Err(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// Resolve expands every selected definition, in order, and returns all
// artifacts. It fails without resolving anything if an earlier call failed.
func (c *Configurator) Resolve() ([]Artifact, error) {
	if err := c.Err(); err != nil {
		return nil, err
	}
	names := c.selection.Names()
	c.logger.Debug("resolving selection", "names", names)

	var missing *multierror.Error
	for _, name := range names {
		if !c.collection.Has(name) {
			missing = multierror.Append(missing, fmt.Errorf("%w: "+messages.DefinitionUnknownFmt, ErrUnknownDefinition, name))
		}
	}
	if err := missing.ErrorOrNil(); err != nil {
		return nil, err
	}

	var artifacts []Artifact
	for _, name := range names {
		resolved, err := c.collection.Resolve(name)
		if err != nil {
			return nil, err
		}
		if c.logger.IsTrace() {
			for i, artifact := range resolved {
				rendered, err := builder.Render(artifact)
				if err != nil {
					return nil, err
				}
				c.logger.Trace("resolved artifact", "definition", name, "index", i, "toml", rendered)
			}
		}
		artifacts = append(artifacts, resolved...)
	}
	return artifacts, nil
}

// Decode copies opts into the struct pointed to by out, matching fields by
// their `option` tag. String values, such as those set through upper-case
// keys, are converted to the field type.
func Decode(opts Options, out any) error {
	return options.Decode(opts, out)
}

// Render encodes an artifact as TOML with keys in sorted order.
func Render(artifact Artifact) (string, error) {
	return builder.Render(artifact)
}

// Diff returns a unified diff between the rendered forms of two artifacts,
// or "" when they render identically.
func Diff(before, after Artifact) (string, error) {
	return builder.Diff(before, after)
}

func (c *Configurator) record(err error) *Configurator {
	if err != nil {
		c.errs = multierror.Append(c.errs, err)
	}
	return c
}
