package driven

import (
	"context"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

// PostProcessor transforms a document on its way to passages.
// PostProcessors are chained in a pipeline (cleaning, then chunking).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a document and the passages produced so far.
	// A cleaning processor rewrites doc.Content and passes passages through.
	// A chunking processor receives nil and returns new passages.
	Process(ctx context.Context, doc *domain.Document, passages []domain.Passage) ([]domain.Passage, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the document through all processors in order.
	// Returns the final passages after all processing.
	Process(ctx context.Context, doc *domain.Document) ([]domain.Passage, error)
}
