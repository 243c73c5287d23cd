package messages

// Config messages for manifest and override loading.
const (
	// ConfigMissingFileFmt formats missing manifest file errors.
	ConfigMissingFileFmt      = "missing manifest file %s: %w"
	ConfigMissingEnvFileFmt   = "missing env file %s: %w"
	ConfigInvalidEnvFileFmt   = "invalid env file %s: %w"
	ConfigInvalidManifestFmt  = "invalid manifest %s: %w"
	ConfigUnrecognizedKeysFmt = "%s: unrecognized manifest keys: %w"
	ConfigSelectionNameFmt    = "%s: select.%s[%d]: %w"
	ConfigSelectionApplyFmt   = "apply select.%s: %w"
	ConfigMergeEnvFmt         = "merge env overrides from %s: %w"
	ConfigValidationGuidance  = "fix the manifest and try again"

	// EnvfileLineErrorFmt formats envfile line errors.
	EnvfileLineErrorFmt            = "line %d: %w"
	EnvfileReadFailedFmt           = "failed to read env content: %w"
	EnvfileExpectedKeyValue        = "expected KEY=VALUE"
	EnvfileUnterminatedQuotedValue = "unterminated quoted value"
	EnvfileInvalidQuotedSuffix     = "invalid trailing characters after quoted value"
)
