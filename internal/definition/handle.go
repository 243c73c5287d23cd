package definition

import (
	"fmt"

	"github.com/conn-castle/multiconf/internal/messages"
)

// ToEnd as a Splice delete count removes every operation from the index on.
const ToEnd = -1

// Handle is a chainable view of one definition in a collection.
//
// A mutation that fails leaves the definition unchanged and is recorded both
// on the handle (see Err) and on the collection, which then refuses to
// resolve. Once a handle has failed, its later mutations are ignored.
type Handle struct {
	collection *Collection
	name       string
	err        error
}

// Name returns the definition name.
func (h *Handle) Name() string {
	return h.name
}

// Err returns the first mutation failure on this handle.
func (h *Handle) Err() error {
	return h.err
}

// Operations returns a copy of the definition's operations.
func (h *Handle) Operations() []Operation {
	return append([]Operation(nil), h.entry().Operations...)
}

// Generator returns the generator the definition resolves with.
func (h *Handle) Generator() Generator {
	return h.collection.generatorFor(h.entry())
}

// Generate installs fn as the definition's generator. fn receives the
// collection default generator as its first argument.
func (h *Handle) Generate(fn OverrideFunc) *Handle {
	if h.err != nil {
		return h
	}
	if fn == nil {
		return h.fail(fmt.Errorf("%w: %s", ErrInvalidGenerator, messages.DefinitionGeneratorNotFunc))
	}
	h.entry().Generator = fn
	return h
}

// Clear removes every operation and keeps the generator.
func (h *Handle) Clear() *Handle {
	if h.err != nil {
		return h
	}
	h.entry().Operations = nil
	return h
}

// Prepend inserts items, in the given order, before the existing operations.
// Items are definition names, steps, step functions, operations, or slices of
// these. Duplicates of earlier operations are dropped.
func (h *Handle) Prepend(items ...any) *Handle {
	if h.err != nil {
		return h
	}
	ops, err := toOperations(items)
	if err != nil {
		return h.fail(err)
	}
	entry := h.entry()
	entry.Operations = unique(append(ops, entry.Operations...))
	return h
}

// Append adds items after the existing operations. Items are validated and
// deduplicated as for Prepend.
func (h *Handle) Append(items ...any) *Handle {
	if h.err != nil {
		return h
	}
	ops, err := toOperations(items)
	if err != nil {
		return h.fail(err)
	}
	entry := h.entry()
	combined := append(append([]Operation(nil), entry.Operations...), ops...)
	entry.Operations = unique(combined)
	return h
}

// Splice removes deleteCount operations at index and inserts items there.
// index must address an existing operation; a negative deleteCount (ToEnd)
// removes everything from index on.
func (h *Handle) Splice(index, deleteCount int, items ...any) *Handle {
	if h.err != nil {
		return h
	}
	entry := h.entry()
	length := len(entry.Operations)
	if index < 0 || index >= length {
		return h.fail(fmt.Errorf("%w: "+messages.DefinitionSpliceRangeFmt, ErrSpliceRange, index, h.name, length))
	}
	ops, err := toOperations(items)
	if err != nil {
		return h.fail(err)
	}

	end := length
	if deleteCount >= 0 && deleteCount < length-index {
		end = index + deleteCount
	}
	spliced := make([]Operation, 0, length-(end-index)+len(ops))
	spliced = append(spliced, entry.Operations[:index]...)
	spliced = append(spliced, ops...)
	spliced = append(spliced, entry.Operations[end:]...)
	entry.Operations = unique(spliced)
	return h
}

func (h *Handle) entry() *Entry {
	entry, ok := h.collection.definitions[h.name]
	if !ok {
		entry = &Entry{}
		h.collection.definitions[h.name] = entry
	}
	return entry
}

func (h *Handle) fail(err error) *Handle {
	h.err = err
	h.collection.record(h.name, err)
	return h
}
