package multiconf

import (
	"github.com/conn-castle/multiconf/internal/definition"
)

// ToEnd as a Splice delete count removes every operation from the index on.
const ToEnd = definition.ToEnd

// Definition is a chainable handle on one definition. It embeds its
// Configurator, so Include, Resolve and the other instance methods are
// available mid-chain.
type Definition struct {
	*Configurator
	handle *definition.Handle
	err    error
}

// Name returns the definition name, or "" when Define was given an invalid one.
func (d *Definition) Name() string {
	if d.handle == nil {
		return ""
	}
	return d.handle.Name()
}

// Err returns the first failure on this definition handle.
func (d *Definition) Err() error {
	if d.err != nil {
		return d.err
	}
	if d.handle == nil {
		return nil
	}
	return d.handle.Err()
}

// Operations returns the definition's operations.
func (d *Definition) Operations() []Operation {
	if d.handle == nil {
		return nil
	}
	return d.handle.Operations()
}

// Generate installs fn as the definition's generator; fn receives the
// instance generator as its first argument.
func (d *Definition) Generate(fn OverrideFunc) *Definition {
	if d.handle != nil {
		d.handle.Generate(fn)
	}
	return d
}

// Clear removes every operation and keeps the generator.
func (d *Definition) Clear() *Definition {
	if d.handle != nil {
		d.handle.Clear()
	}
	return d
}

// Prepend inserts names or steps before the existing operations.
func (d *Definition) Prepend(items ...any) *Definition {
	if d.handle != nil {
		d.handle.Prepend(items...)
	}
	return d
}

// Append adds names or steps after the existing operations.
func (d *Definition) Append(items ...any) *Definition {
	if d.handle != nil {
		d.handle.Append(items...)
	}
	return d
}

// Splice removes deleteCount operations at index and inserts items there.
func (d *Definition) Splice(index, deleteCount int, items ...any) *Definition {
	if d.handle != nil {
		d.handle.Splice(index, deleteCount, items...)
	}
	return d
}
