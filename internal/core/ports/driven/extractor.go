package driven

import "context"

// TextExtractor turns a file of a given type into plain text.
// Pages and slides are separated by domain.PageSeparator.
type TextExtractor interface {
	// Name identifies the extractor in logs.
	Name() string

	// SupportedTypes returns the lower-case file extensions handled, without dots.
	SupportedTypes() []string

	// Extract returns the text of the file at path. Errors wrap
	// domain.ErrExtractionFailed.
	Extract(ctx context.Context, path string) (string, error)
}

// ExtractorRegistry selects an extractor by file type.
type ExtractorRegistry interface {
	// Register adds an extractor for each of its supported types.
	Register(e TextExtractor)

	// Get returns the extractor for fileType, or a no-op extractor
	// returning empty text when none is registered.
	Get(fileType string) TextExtractor

	// SupportedTypes lists all registered file types.
	SupportedTypes() []string
}
