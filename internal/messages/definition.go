package messages

// Definition messages for the definition collection and resolver.
const (
	// DefinitionInvalidNameFmt formats names that are not a single alphanumeric token.
	DefinitionInvalidNameFmt       = "name %q is not a simple alphanumeric string"
	DefinitionUnknownFmt           = "definition named %q cannot be found"
	DefinitionGeneratorRequired    = "default generator is required"
	DefinitionGeneratorNotFunc     = "generator must be a function"
	DefinitionInvalidOperationFmt  = "operation %v (%T) must be a function or alphanumeric string"
	DefinitionSpliceRangeFmt       = "splice index %d is outside operations of %q (length %d)"
	DefinitionGeneratorContractFmt = "generator of definition %q must return a builder or a list of builders"
	DefinitionGeneratorFailedFmt   = "generator of definition %q failed: %w"
	DefinitionStepContractFmt      = "definition %q step %d (%s) must return a single builder or nothing"
	DefinitionStepFailedFmt        = "definition %q step %d (%s) failed: %w"
	DefinitionCycleFmt             = "definition %q references itself: %s"
	DefinitionBuilderResolveFmt    = "resolve builder %d of definition %q: %w"
	DefinitionMutationFailedFmt    = "definition %q: %w"
	DefinitionPendingErrorsFmt     = "definitions have unresolved errors: %w"
)
