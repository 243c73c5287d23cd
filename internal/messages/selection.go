package messages

// Selection messages for include/exclude/otherwise lists.
const (
	// SelectionInvalidNameFmt formats a composite name containing an invalid token.
	SelectionInvalidNameFmt = "name %q must be a simple alphanumeric string, possibly concatenated with _|+|&"
)
