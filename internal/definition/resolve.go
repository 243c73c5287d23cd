package definition

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/conn-castle/multiconf/internal/builder"
	"github.com/conn-castle/multiconf/internal/messages"
)

// Resolve expands the definition called name into artifacts, one per builder
// its generator produces.
//
// Referenced definitions are expanded depth first each time they appear;
// nothing is cached between references. A definition that reaches itself
// through references fails with ErrCycle.
func (c *Collection) Resolve(name string) ([]builder.Artifact, error) {
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("%w: "+messages.DefinitionPendingErrorsFmt, ErrUnresolvedMutation, err)
	}

	r := &resolver{collection: c, logger: c.logger.Named("resolve")}
	builders, err := r.generate(name)
	if err != nil {
		return nil, err
	}

	artifacts := make([]builder.Artifact, 0, len(builders))
	for i, b := range builders {
		artifact, err := b.Resolve()
		if err != nil {
			return nil, fmt.Errorf(messages.DefinitionBuilderResolveFmt, i, name, err)
		}
		artifacts = append(artifacts, artifact)
	}
	r.logger.Debug("resolved definition", "name", name, "artifacts", len(artifacts))
	return artifacts, nil
}

type resolver struct {
	collection *Collection
	logger     hclog.Logger
	// path holds the definitions currently being expanded, outermost first.
	path []string
}

func (r *resolver) lookup(name string) (*Entry, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	entry, ok := r.collection.definitions[name]
	if !ok {
		return nil, fmt.Errorf("%w: "+messages.DefinitionUnknownFmt, ErrUnknownDefinition, name)
	}
	return entry, nil
}

// generate runs the generator of a top-level definition and folds its
// operations over each builder produced.
func (r *resolver) generate(name string) ([]builder.Builder, error) {
	entry, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	r.logger.Trace("expanding definition", "name", name, "mode", "entry")

	builders, err := r.collection.generatorFor(entry).Generate(r.collection.options)
	if err != nil {
		return nil, fmt.Errorf("%w: "+messages.DefinitionGeneratorFailedFmt, ErrGeneratorFailed, name, err)
	}
	if len(builders) == 0 || slices.ContainsFunc(builders, isNilBuilder) {
		return nil, fmt.Errorf("%w: "+messages.DefinitionGeneratorContractFmt, ErrGeneratorContract, name)
	}
	r.logger.Debug("generator produced builders", "name", name, "count", len(builders))

	ops := slices.Clone(entry.Operations)
	r.path = append(r.path, name)
	defer r.pop()

	out := make([]builder.Builder, 0, len(builders))
	for _, b := range builders {
		folded, err := r.fold(name, ops, b)
		if err != nil {
			return nil, err
		}
		out = append(out, folded)
	}
	return out, nil
}

// nested folds the operations of a referenced definition over current,
// skipping its generator.
func (r *resolver) nested(name string, current builder.Builder) (builder.Builder, error) {
	entry, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	if slices.Contains(r.path, name) {
		cycle := strings.Join(append(slices.Clone(r.path), name), " -> ")
		return nil, fmt.Errorf("%w: "+messages.DefinitionCycleFmt, ErrCycle, name, cycle)
	}
	r.logger.Trace("expanding definition", "name", name, "mode", "nested")

	r.path = append(r.path, name)
	defer r.pop()
	return r.fold(name, slices.Clone(entry.Operations), current)
}

func (r *resolver) fold(name string, ops []Operation, current builder.Builder) (builder.Builder, error) {
	opts := r.collection.options
	for i, op := range ops {
		if ref, ok := op.Reference(); ok {
			next, err := r.nested(ref, current)
			if err != nil {
				return nil, err
			}
			current = next
			continue
		}

		step := op.Step()
		r.logger.Trace("applying step", "definition", name, "index", i, "step", step.label)
		returned, err := step.fn(current, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: "+messages.DefinitionStepFailedFmt, ErrStepFailed, name, i, step.label, err)
		}
		if returned == nil {
			continue
		}
		if isNilBuilder(returned) {
			return nil, fmt.Errorf("%w: "+messages.DefinitionStepContractFmt, ErrStepContract, name, i, step.label)
		}
		current = returned
	}
	return current, nil
}

func (r *resolver) pop() {
	r.path = r.path[:len(r.path)-1]
}

// isNilBuilder reports a nil interface or an interface holding a nil pointer.
func isNilBuilder(b builder.Builder) bool {
	if b == nil {
		return true
	}
	v := reflect.ValueOf(b)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
