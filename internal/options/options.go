// Package options holds the options hash handed to every generator and step,
// and the merge rules used when instances are created with overrides.
package options

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/mitchellh/copystructure"

	"github.com/conn-castle/multiconf/internal/messages"
)

// Map is an arbitrary nested options hash.
type Map = map[string]any

// Clone returns a deep copy of m. A nil map clones to an empty one.
func Clone(m Map) (Map, error) {
	if m == nil {
		return Map{}, nil
	}
	copied, err := copystructure.Copy(m)
	if err != nil {
		return nil, fmt.Errorf(messages.OptionsCloneFmt, err)
	}
	return copied.(Map), nil
}

// Decode copies m into the struct pointed to by out.
// Fields are matched by their `option` tag, falling back to the field name.
// String values are converted to the field type where possible, so values
// assigned from env-style keys decode into typed fields.
func Decode(m Map, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "option",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf(messages.OptionsDecodeFmt, err)
	}
	if err := decoder.Decode(m); err != nil {
		return fmt.Errorf(messages.OptionsDecodeFmt, err)
	}
	return nil
}
