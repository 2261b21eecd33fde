package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	// Front doors reject such requests before anything is written.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown file type or backend.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrStoreUnavailable indicates the passage store could not complete
	// a read or write. It is fatal to the current request.
	ErrStoreUnavailable = errors.New("passage store unavailable")

	// ErrReaderUnavailable indicates answer extraction inference failed.
	ErrReaderUnavailable = errors.New("reader unavailable")

	// ErrExtractionFailed indicates a text extractor could not parse a file.
	// Ingestion degrades to empty text rather than failing.
	ErrExtractionFailed = errors.New("text extraction failed")
)

// Request rejections. Both wrap ErrInvalidInput.
var (
	// ErrInvalidFilter indicates an unusable course filter.
	ErrInvalidFilter = fmt.Errorf("%w: invalid course filter", ErrInvalidInput)

	// ErrMalformedLinks indicates the useful links payload is not a JSON array of strings.
	ErrMalformedLinks = fmt.Errorf("%w: malformed useful links", ErrInvalidInput)
)
