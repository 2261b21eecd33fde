package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
)

// Preprocessor turns raw extracted text into passages by running it through
// a cleaning and chunking pipeline.
type Preprocessor struct {
	pipeline driven.PostProcessorPipeline
	newID    func() string
}

// NewPreprocessor creates a preprocessor over the given pipeline.
func NewPreprocessor(pipeline driven.PostProcessorPipeline) *Preprocessor {
	return &Preprocessor{
		pipeline: pipeline,
		newID:    uuid.NewString,
	}
}

// Process wraps text in a fresh document and returns its passages.
// Whitespace-only text yields no passages and no error.
func (p *Preprocessor) Process(ctx context.Context, text string, meta domain.Metadata) ([]domain.Passage, error) {
	return p.ProcessDocument(ctx, &domain.Document{
		ID:        p.newID(),
		Content:   text,
		Metadata:  meta,
		CreatedAt: time.Now(),
	})
}

// ProcessDocument runs an existing document through the pipeline.
// The same document ID and content always produce the same passages.
func (p *Preprocessor) ProcessDocument(ctx context.Context, doc *domain.Document) ([]domain.Passage, error) {
	if strings.TrimSpace(doc.Content) == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	passages, err := p.pipeline.Process(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("preprocess document: %w", err)
	}
	return passages, nil
}
