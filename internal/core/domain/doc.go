// Package domain defines the core business entities for lectern.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Metadata: The descriptive bag shared by every passage of a document
//   - Document: Extracted text of one uploaded file, before chunking
//   - Passage: A word-window chunk; the unit of storage, retrieval and reading
//   - Query, Candidate, Answer, AnswerResult: The question answering flow
//   - Settings: Application configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
