package config

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/conn-castle/multiconf/internal/messages"
	"github.com/conn-castle/multiconf/internal/selection"
)

// Validate checks every selection name and reports all failures together.
func (m *Manifest) Validate(source string) error {
	var result *multierror.Error
	fields := []struct {
		field string
		names []string
	}{
		{field: "include", names: m.Select.Include},
		{field: "exclude", names: m.Select.Exclude},
		{field: "otherwise", names: m.Select.Otherwise},
	}
	for _, f := range fields {
		for i, name := range f.names {
			if _, err := selection.Split(name); err != nil {
				result = multierror.Append(result, fmt.Errorf(messages.ConfigSelectionNameFmt, source, f.field, i, err))
			}
		}
	}
	return result.ErrorOrNil()
}
