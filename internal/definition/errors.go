package definition

import "errors"

// Sentinel errors. Every error returned by this package wraps one of them.
var (
	ErrInvalidName        = errors.New("invalid definition name")
	ErrUnknownDefinition  = errors.New("unknown definition")
	ErrInvalidGenerator   = errors.New("invalid generator")
	ErrInvalidOperation   = errors.New("invalid operation")
	ErrSpliceRange        = errors.New("splice index out of range")
	ErrGeneratorContract  = errors.New("generator contract violated")
	ErrGeneratorFailed    = errors.New("generator failed")
	ErrStepContract       = errors.New("step contract violated")
	ErrStepFailed         = errors.New("step failed")
	ErrCycle              = errors.New("definition cycle")
	ErrUnresolvedMutation = errors.New("definition mutation failed")
)
