package definition

import (
	"fmt"

	"github.com/conn-castle/multiconf/internal/builder"
	"github.com/conn-castle/multiconf/internal/messages"
	"github.com/conn-castle/multiconf/internal/options"
)

// StepFunc transforms a builder. Returning a nil builder keeps the current one,
// which suits steps that only mutate their input.
type StepFunc func(b builder.Builder, opts options.Map) (builder.Builder, error)

const defaultStepLabel = "step"

// Step is a transform with identity: the same *Step added twice to one
// definition is kept once.
type Step struct {
	label string
	fn    StepFunc
}

// NewStep returns a step labelled for error messages and logs.
func NewStep(label string, fn StepFunc) *Step {
	if label == "" {
		label = defaultStepLabel
	}
	return &Step{label: label, fn: fn}
}

// Label returns the step's label.
func (s *Step) Label() string {
	return s.label
}

// Operation is one element of a definition's step list: either a reference
// to another definition or a step.
type Operation struct {
	ref  string
	step *Step
}

// Ref returns an operation referencing the definition called name.
func Ref(name string) Operation {
	return Operation{ref: name}
}

// Apply returns an operation running step.
func Apply(step *Step) Operation {
	return Operation{step: step}
}

// Reference returns the referenced name and true when o is a reference.
func (o Operation) Reference() (string, bool) {
	return o.ref, o.step == nil && o.ref != ""
}

// Step returns the step, or nil when o is a reference.
func (o Operation) Step() *Step {
	return o.step
}

func (o Operation) String() string {
	if o.step != nil {
		return o.step.label
	}
	return o.ref
}

// toOperations validates and flattens mutation arguments.
func toOperations(items []any) ([]Operation, error) {
	var ops []Operation
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if !ValidName(v) {
				return nil, invalidOperation(item)
			}
			ops = append(ops, Ref(v))
		case Operation:
			if v.step == nil && !ValidName(v.ref) {
				return nil, invalidOperation(item)
			}
			ops = append(ops, v)
		case *Step:
			if v == nil || v.fn == nil {
				return nil, invalidOperation(item)
			}
			ops = append(ops, Apply(v))
		case StepFunc:
			if v == nil {
				return nil, invalidOperation(item)
			}
			ops = append(ops, Apply(NewStep("", v)))
		case func(builder.Builder, options.Map) (builder.Builder, error):
			if v == nil {
				return nil, invalidOperation(item)
			}
			ops = append(ops, Apply(NewStep("", v)))
		case []string:
			nested := make([]any, len(v))
			for i, name := range v {
				nested[i] = name
			}
			more, err := toOperations(nested)
			if err != nil {
				return nil, err
			}
			ops = append(ops, more...)
		case []Operation:
			nested := make([]any, len(v))
			for i, op := range v {
				nested[i] = op
			}
			more, err := toOperations(nested)
			if err != nil {
				return nil, err
			}
			ops = append(ops, more...)
		case []any:
			more, err := toOperations(v)
			if err != nil {
				return nil, err
			}
			ops = append(ops, more...)
		default:
			return nil, invalidOperation(item)
		}
	}
	return ops, nil
}

func invalidOperation(item any) error {
	return fmt.Errorf("%w: "+messages.DefinitionInvalidOperationFmt, ErrInvalidOperation, item, item)
}

// unique drops every operation equal to an earlier one.
func unique(ops []Operation) []Operation {
	seen := make(map[Operation]struct{}, len(ops))
	out := make([]Operation, 0, len(ops))
	for _, op := range ops {
		if _, ok := seen[op]; ok {
			continue
		}
		seen[op] = struct{}{}
		out = append(out, op)
	}
	return out
}
