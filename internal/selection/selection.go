// Package selection tracks which definitions an instance resolves.
package selection

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/conn-castle/multiconf/internal/definition"
	"github.com/conn-castle/multiconf/internal/messages"
)

// ErrInvalidName reports a selection name that is not built from alphanumeric tokens.
var ErrInvalidName = errors.New("invalid selection name")

var separators = regexp.MustCompile(`[_\W]+`)

// List is an ordered set of definition names.
// Includes and excludes apply in call order; Otherwise supplies the names used
// when nothing is included.
type List struct {
	includes []string
	defaults []string
}

// Split breaks composite names such as "app+test" or "app_test" into tokens
// and validates each one.
func Split(names ...string) ([]string, error) {
	var tokens []string
	for _, name := range names {
		for _, token := range separators.Split(name, -1) {
			if !definition.ValidName(token) {
				return nil, fmt.Errorf("%w: "+messages.SelectionInvalidNameFmt, ErrInvalidName, name)
			}
			tokens = append(tokens, token)
		}
	}
	return tokens, nil
}

// Include marks names for resolution. Names already included keep their position.
func (l *List) Include(names ...string) error {
	tokens, err := Split(names...)
	if err != nil {
		return err
	}
	for _, token := range tokens {
		if !slices.Contains(l.includes, token) {
			l.includes = append(l.includes, token)
		}
	}
	return nil
}

// Exclude removes names from the includes. A later Include may add them back.
func (l *List) Exclude(names ...string) error {
	tokens, err := Split(names...)
	if err != nil {
		return err
	}
	l.includes = slices.DeleteFunc(l.includes, func(name string) bool {
		return slices.Contains(tokens, name)
	})
	return nil
}

// Otherwise replaces the names used when nothing is included.
func (l *List) Otherwise(names ...string) error {
	tokens, err := Split(names...)
	if err != nil {
		return err
	}
	l.defaults = dedupe(tokens)
	return nil
}

// Names returns the includes, or the defaults when there are no includes.
func (l *List) Names() []string {
	if len(l.includes) > 0 {
		return slices.Clone(l.includes)
	}
	return slices.Clone(l.defaults)
}

func dedupe(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !slices.Contains(out, token) {
			out = append(out, token)
		}
	}
	return out
}
