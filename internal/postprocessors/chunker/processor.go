// Package chunker provides a word-window chunking processor.
package chunker

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

// DefaultSplitLength is the default number of words per passage.
const DefaultSplitLength = 500

// DefaultSplitOverlap is the default number of words shared by neighbours.
const DefaultSplitOverlap = 50

// passageNamespace seeds deterministic passage IDs.
var passageNamespace = uuid.MustParse("6f1c2a4e-5b0d-4f6e-9a3b-2c8d7e1f0a95")

// Processor splits document content into overlapping word windows.
// It implements the PostProcessor interface.
type Processor struct {
	splitLength int
	overlap     int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithSplitLength sets the passage length in words.
func WithSplitLength(words int) Option {
	return func(p *Processor) {
		if words > 0 {
			p.splitLength = words
		}
	}
}

// WithOverlap sets the overlap between passages in words.
func WithOverlap(words int) Option {
	return func(p *Processor) {
		if words >= 0 {
			p.overlap = words
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		splitLength: DefaultSplitLength,
		overlap:     DefaultSplitOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't reach the window length
	if p.overlap >= p.splitLength {
		p.overlap = p.splitLength / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// SplitLength returns the configured window length in words.
func (p *Processor) SplitLength() int {
	return p.splitLength
}

// Overlap returns the configured overlap in words.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Process splits the document content into passages on word boundaries.
// Windows start every splitLength-overlap words; the last may be shorter.
// Input passages are ignored; this processor creates new ones.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Passage) ([]domain.Passage, error) {
	words := strings.Fields(doc.Content)
	if len(words) == 0 {
		return nil, nil
	}

	step := p.splitLength - p.overlap
	passages := make([]domain.Passage, 0, len(words)/step+1)

	for start := 0; ; start += step {
		end := start + p.splitLength
		if end > len(words) {
			end = len(words)
		}

		position := len(passages)
		passages = append(passages, domain.Passage{
			ID:         passageID(doc.ID, position),
			DocumentID: doc.ID,
			Content:    strings.Join(words[start:end], " "),
			Position:   position,
			Metadata:   doc.Metadata.Clone(),
		})

		if end == len(words) {
			break
		}
	}

	return passages, nil
}

func passageID(documentID string, position int) string {
	return uuid.NewSHA1(passageNamespace, []byte(documentID+"#"+strconv.Itoa(position))).String()
}
