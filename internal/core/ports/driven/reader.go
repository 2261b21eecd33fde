package driven

import (
	"context"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

// Reader extracts answer spans from candidate passages.
// It is the inference boundary of the QA pipeline.
type Reader interface {
	// ExtractAnswers returns at most topK answers, most confident first.
	// An empty result is a normal outcome meaning no span was found.
	ExtractAnswers(ctx context.Context, question string, passages []domain.Passage, topK int) ([]domain.Answer, error)
}
