// Package definition stores named, ordered step lists and resolves them into
// configuration artifacts.
//
// A definition is a generator followed by operations. Resolving a name runs
// its generator and folds the operations over every builder produced, left
// to right. An operation naming another definition splices that definition's
// operations (never its generator) onto the current builder.
//
// Collections are not safe for concurrent use.
package definition

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/conn-castle/multiconf/internal/messages"
	"github.com/conn-castle/multiconf/internal/options"
)

// Entry is the stored form of a definition.
type Entry struct {
	// Generator overrides the collection default generator; nil uses the default.
	Generator  OverrideFunc
	Operations []Operation
}

func (e Entry) clone() Entry {
	return Entry{
		Generator:  e.Generator,
		Operations: append([]Operation(nil), e.Operations...),
	}
}

// Snapshot is an independent copy of a collection's definitions.
type Snapshot map[string]Entry

// Collection maps names to definitions.
type Collection struct {
	options     options.Map
	generator   Generator
	definitions map[string]*Entry
	errs        *multierror.Error
	logger      hclog.Logger
}

// Setting configures a Collection.
type Setting func(*Collection) error

// WithParent seeds the collection with a copy of parent.
func WithParent(parent Snapshot) Setting {
	return func(c *Collection) error {
		for name, entry := range parent {
			if err := validateName(name); err != nil {
				return err
			}
			copied := entry.clone()
			c.definitions[name] = &copied
		}
		return nil
	}
}

// WithLogger sets the logger used while resolving.
func WithLogger(logger hclog.Logger) Setting {
	return func(c *Collection) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// New returns a collection whose definitions start from generator and whose
// resolutions receive opts.
func New(opts options.Map, generator Generator, settings ...Setting) (*Collection, error) {
	if generator == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidGenerator, messages.DefinitionGeneratorRequired)
	}
	if opts == nil {
		opts = options.Map{}
	}
	c := &Collection{
		options:     opts,
		generator:   generator,
		definitions: make(map[string]*Entry),
		logger:      hclog.NewNullLogger(),
	}
	for _, setting := range settings {
		if err := setting(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Options returns the options passed to generators and steps.
func (c *Collection) Options() options.Map {
	return c.options
}

// Get returns a handle on the definition called name, creating it on first use.
// Handles for the same name share one step list.
func (c *Collection) Get(name string) (*Handle, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if _, ok := c.definitions[name]; !ok {
		c.definitions[name] = &Entry{}
	}
	return &Handle{collection: c, name: name}, nil
}

// Has reports whether a definition called name exists.
func (c *Collection) Has(name string) bool {
	_, ok := c.definitions[name]
	return ok
}

// Snapshot copies every definition, operations included.
func (c *Collection) Snapshot() Snapshot {
	snapshot := make(Snapshot, len(c.definitions))
	for name, entry := range c.definitions {
		snapshot[name] = entry.clone()
	}
	return snapshot
}

// Err returns every mutation failure recorded by handles of this collection.
func (c *Collection) Err() error {
	return c.errs.ErrorOrNil()
}

func (c *Collection) record(name string, err error) {
	c.errs = multierror.Append(c.errs, fmt.Errorf(messages.DefinitionMutationFailedFmt, name, err))
}

func (c *Collection) generatorFor(entry *Entry) Generator {
	if entry.Generator == nil {
		return c.generator
	}
	return Wrap(c.generator, entry.Generator)
}
