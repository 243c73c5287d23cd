package definition

import (
	"fmt"
	"regexp"

	"github.com/conn-castle/multiconf/internal/messages"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ValidName reports whether name is a single alphanumeric token.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

func validateName(name string) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: "+messages.DefinitionInvalidNameFmt, ErrInvalidName, name)
	}
	return nil
}
