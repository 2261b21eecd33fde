package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
	"github.com/custodia-labs/lectern/internal/core/ports/driving"
	"github.com/custodia-labs/lectern/internal/logger"
)

// Ensure QAService implements the interface.
var _ driving.QAService = (*QAService)(nil)

// DefaultReaderTopK is the number of answers requested from the reader.
const DefaultReaderTopK = 1

// QAService answers questions by retrieving candidate passages and reading
// an answer span out of them.
type QAService struct {
	retriever *Retriever
	reader    driven.Reader

	retrieverTopK int
	readerTopK    int
	linkSource    domain.LinkSource
}

// NewQAService creates a QA service. Zero or invalid settings fall back
// to the defaults.
func NewQAService(retriever *Retriever, reader driven.Reader, settings domain.QASettings) *QAService {
	s := &QAService{
		retriever:     retriever,
		reader:        reader,
		retrieverTopK: settings.RetrieverTopK,
		readerTopK:    settings.ReaderTopK,
		linkSource:    settings.LinkSource,
	}
	if s.retrieverTopK <= 0 {
		s.retrieverTopK = DefaultRetrieverTopK
	}
	if s.readerTopK <= 0 {
		s.readerTopK = DefaultReaderTopK
	}
	if !s.linkSource.IsValid() {
		s.linkSource = domain.LinkSourceAnswer
	}
	return s
}

// Answer runs retrieve-then-read. No candidates or no extracted span
// yields the not-found result; any stage failure yields an error and no
// partial result.
func (s *QAService) Answer(ctx context.Context, q domain.Query) (domain.AnswerResult, error) {
	question := strings.TrimSpace(q.Question)
	if question == "" {
		return domain.AnswerResult{}, fmt.Errorf("answer: %w: question is empty", domain.ErrInvalidInput)
	}

	logger.Section("Answer")

	candidates, err := s.retriever.Retrieve(ctx, question, q.Filter, s.retrieverTopK)
	if err != nil {
		return domain.AnswerResult{}, fmt.Errorf("answer: %w", err)
	}
	if len(candidates) == 0 {
		logger.Debug("no passages matched")
		return domain.NotFoundResult(), nil
	}

	passages := make([]domain.Passage, len(candidates))
	for i, c := range candidates {
		passages[i] = c.Passage
	}

	answers, err := s.reader.ExtractAnswers(ctx, question, passages, s.readerTopK)
	if err != nil {
		return domain.AnswerResult{}, fmt.Errorf("answer: %w", err)
	}
	if len(answers) == 0 {
		logger.Debug("reader found no span in %d passage(s)", len(passages))
		return domain.NotFoundResult(), nil
	}

	best := answers[0]
	logger.Debug("answer %q from passage %s (confidence %.3f)", best.Text, best.Passage.ID, best.Confidence)

	linkPassage := best.Passage
	if s.linkSource == domain.LinkSourceFirstRetrieved {
		linkPassage = candidates[0].Passage
	}

	spanContext := best.Context
	return domain.AnswerResult{
		Answer:      best.Text,
		Context:     &spanContext,
		Confidence:  best.Confidence,
		UsefulLinks: linkPassage.Metadata.Clone().UsefulLinks,
	}, nil
}
