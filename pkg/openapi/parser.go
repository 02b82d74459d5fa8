package openapi

import "context"

// Parser extracts operations from OpenAPI documents.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

// ParserOptions controls document validation and which media types are
// considered when reading request bodies.
type ParserOptions struct {
	// ResolveReferences validates the document and allows external $refs.
	// Defaults to true.
	ResolveReferences bool

	// AllowPartialDocuments accepts documents without paths. Defaults to
	// false.
	AllowPartialDocuments bool

	// MediaTypes lists request body content types in preference order.
	MediaTypes []string
}

// DefaultMediaTypes are the request body content types read by default.
var DefaultMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithReferenceResolution toggles eager reference resolution.
func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithPartialDocuments toggles support for component-only documents.
func WithPartialDocuments(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowPartialDocuments = enabled
	}
}

// WithMediaTypes replaces the request body content types the parser reads.
func WithMediaTypes(types ...string) ParserOption {
	return func(opts *ParserOptions) {
		if len(types) > 0 {
			opts.MediaTypes = append([]string(nil), types...)
		}
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		ResolveReferences:     true,
		AllowPartialDocuments: false,
		MediaTypes:            append([]string(nil), DefaultMediaTypes...),
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level formgate package to avoid import cycles.
