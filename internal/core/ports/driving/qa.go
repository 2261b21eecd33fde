package driving

import (
	"context"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

// QAService answers questions against the indexed course materials.
type QAService interface {
	// Answer runs retrieve-then-read for the query. A question nothing
	// answers yields domain.NotFoundResult() and a nil error.
	Answer(ctx context.Context, q domain.Query) (domain.AnswerResult, error)
}
