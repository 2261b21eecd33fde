// Package extractive provides a local, model-free Reader.
//
// Each candidate passage is split into sentences. A sentence is scored by
// how much of the question it covers, with every question term weighted by
// its IDF over the candidate passages, so rare terms like "mitochondria"
// count for more than common ones like "cell". The best sentence of each
// passage is that passage's answer span.
package extractive

import (
	"context"
	"sort"

	"github.com/custodia-labs/lectern/internal/adapters/driven/reader"
	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
	"github.com/custodia-labs/lectern/internal/ranking"
)

// Ensure Reader implements the interface.
var _ driven.Reader = (*Reader)(nil)

const (
	// DefaultContextWindow is the number of characters kept on each side
	// of the answer span.
	DefaultContextWindow = 150

	// maxSpanWords caps an answer span. Slide text often has no sentence
	// punctuation, so long runs are cut into pieces of this many words.
	maxSpanWords = 40

	// densityWeight is the share of the confidence decided by how dense
	// the question terms are within the span.
	densityWeight = 0.15
)

// Reader extracts the best-covering sentence from each passage.
type Reader struct {
	contextWindow int
}

// Option configures the reader.
type Option func(*Reader)

// WithContextWindow sets the characters of context kept around a span.
func WithContextWindow(chars int) Option {
	return func(r *Reader) {
		if chars >= 0 {
			r.contextWindow = chars
		}
	}
}

// New creates an extractive reader.
func New(opts ...Option) *Reader {
	r := &Reader{contextWindow: DefaultContextWindow}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ExtractAnswers returns at most topK answers, most confident first.
// Passages sharing no terms with the question yield no answer.
func (r *Reader) ExtractAnswers(
	ctx context.Context, question string, passages []domain.Passage, topK int,
) ([]domain.Answer, error) {
	terms := uniqueTerms(question)
	if len(terms) == 0 || len(passages) == 0 || topK <= 0 {
		return nil, nil
	}

	corpus := make([]string, len(passages))
	for i, p := range passages {
		corpus[i] = p.Content
	}
	scorer := ranking.NewScorer(corpus)

	weights := make(map[string]float64, len(terms))
	total := 0.0
	for _, t := range terms {
		w := scorer.IDF(t)
		weights[t] = w
		total += w
	}

	var answers []domain.Answer
	for _, p := range passages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if a, ok := r.bestSpan(p, weights, total); ok {
			answers = append(answers, a)
		}
	}

	sort.SliceStable(answers, func(i, j int) bool {
		return answers[i].Confidence > answers[j].Confidence
	})
	if len(answers) > topK {
		answers = answers[:topK]
	}
	return answers, nil
}

// bestSpan scores every sentence of p and returns the highest.
func (r *Reader) bestSpan(p domain.Passage, weights map[string]float64, total float64) (domain.Answer, bool) {
	var (
		best      domain.Answer
		bestScore float64
	)
	for _, s := range splitSpans(p.Content) {
		text := p.Content[s.start:s.end]
		score := spanScore(text, weights, total)
		if score <= bestScore {
			continue
		}
		bestScore = score
		best = domain.Answer{
			Text:       text,
			Context:    reader.ContextAround(p.Content, s.start, s.end, r.contextWindow),
			Confidence: score,
			Start:      s.start,
			End:        s.end,
			Passage:    p,
		}
	}
	return best, bestScore > 0
}

// spanScore is the IDF-weighted fraction of question terms present in
// text, nudged by how many of text's tokens are question terms. The result
// is in [0, 1] and zero when no question term occurs.
func spanScore(text string, weights map[string]float64, total float64) float64 {
	tokens := ranking.Tokenize(text)
	if len(tokens) == 0 || total == 0 {
		return 0
	}

	covered := 0.0
	hits := 0
	seen := make(map[string]struct{}, len(weights))
	for _, tok := range tokens {
		w, ok := weights[tok]
		if !ok {
			continue
		}
		hits++
		if _, dup := seen[tok]; !dup {
			seen[tok] = struct{}{}
			covered += w
		}
	}
	if covered == 0 {
		return 0
	}

	coverage := covered / total
	density := float64(hits) / float64(len(tokens))
	return coverage * (1 - densityWeight + densityWeight*density)
}

func uniqueTerms(question string) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, t := range ranking.Tokenize(question) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}
	return terms
}
