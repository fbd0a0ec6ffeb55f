package memhost

// ParseOptions controls document parsing.
type ParseOptions struct {
	// DisableComments disables // and /* */ comments.
	DisableComments bool
}

// FormatOptions controls document formatting.
type FormatOptions struct {
	// Indent is the indentation string for nested blocks (default is a tab).
	Indent string
}

// normalize normalizes the ParseOptions.
func (o *ParseOptions) normalize() ParseOptions {
	if o == nil {
		return ParseOptions{}
	}

	return *o
}

// normalize normalizes the FormatOptions.
func (o *FormatOptions) normalize() FormatOptions {
	if o == nil || o.Indent == "" {
		return FormatOptions{Indent: "\t"}
	}

	return *o
}
