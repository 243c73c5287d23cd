package messages

// Options messages for option merging and decoding.
const (
	OptionsUpperCaseObjectFmt  = "upper-case key %q may not be used to assign an object value"
	OptionsParseIntFmt         = "option %q: cannot parse %q as integer"
	OptionsNegativeUnsignedFmt = "option %q: %q is negative but the existing value is unsigned"
	OptionsParseFloatFmt       = "option %q: cannot parse %q as number"
	OptionsCloneFmt            = "clone options: %w"
	OptionsDecodeFmt           = "decode options: %w"
	OptionsMergeFmt            = "merge options: %w"
	OptionsCreateArgFmt        = "create argument %d (%T) must be an options map or generator function"
)
