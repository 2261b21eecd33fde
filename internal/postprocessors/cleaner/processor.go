// Package cleaner provides the normalisation processor that runs before
// chunking: header/footer removal, whitespace collapsing and empty-line
// removal.
package cleaner

import (
	"context"
	"strings"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

// DefaultEdgeLines is how many non-empty lines at the top and bottom of a
// page are considered header/footer candidates.
const DefaultEdgeLines = 2

// Processor rewrites document content in place.
// It implements the PostProcessor interface.
type Processor struct {
	edgeLines int
}

// Option configures the cleaner processor.
type Option func(*Processor)

// WithEdgeLines sets the number of header/footer candidate lines per page
// edge. Zero disables header/footer removal.
func WithEdgeLines(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.edgeLines = n
		}
	}
}

// New creates a new cleaner processor.
func New(opts ...Option) *Processor {
	p := &Processor{edgeLines: DefaultEdgeLines}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "cleaner"
}

// Process normalises doc.Content and passes passages through unchanged.
func (p *Processor) Process(_ context.Context, doc *domain.Document, passages []domain.Passage) ([]domain.Passage, error) {
	doc.Content = p.Clean(doc.Content)
	return passages, nil
}

// Clean returns text with recurring page headers and footers stripped,
// whitespace runs collapsed and empty lines removed. Pages are joined
// with newlines.
func (p *Processor) Clean(text string) string {
	pages := splitPages(text)
	if p.edgeLines > 0 && len(pages) > 1 {
		pages = p.stripHeaderFooter(pages)
	}

	var out []string
	for _, page := range pages {
		out = append(out, page...)
	}
	return strings.Join(out, "\n")
}

// splitPages splits on form feeds and returns each page's normalised,
// non-empty lines.
func splitPages(text string) [][]string {
	rawPages := strings.Split(text, domain.PageSeparator)
	pages := make([][]string, 0, len(rawPages))
	for _, raw := range rawPages {
		var lines []string
		for _, line := range strings.Split(raw, "\n") {
			if norm := strings.Join(strings.Fields(line), " "); norm != "" {
				lines = append(lines, norm)
			}
		}
		pages = append(pages, lines)
	}
	return pages
}

// stripHeaderFooter removes edge lines that appear on at least two pages
// and on more than half of all pages.
func (p *Processor) stripHeaderFooter(pages [][]string) [][]string {
	counts := make(map[string]int)
	for _, page := range pages {
		seen := make(map[string]bool)
		for _, line := range p.edgeCandidates(page) {
			if !seen[line] {
				seen[line] = true
				counts[line]++
			}
		}
	}

	recurring := make(map[string]bool)
	for line, n := range counts {
		if n >= 2 && n*2 > len(pages) {
			recurring[line] = true
		}
	}
	if len(recurring) == 0 {
		return pages
	}

	out := make([][]string, len(pages))
	for i, page := range pages {
		start, end := 0, len(page)
		for start < end && start < p.edgeLines && recurring[page[start]] {
			start++
		}
		for end > start && len(page)-end < p.edgeLines && recurring[page[end-1]] {
			end--
		}
		out[i] = page[start:end]
	}
	return out
}

func (p *Processor) edgeCandidates(page []string) []string {
	if len(page) <= 2*p.edgeLines {
		return page
	}
	out := make([]string, 0, 2*p.edgeLines)
	out = append(out, page[:p.edgeLines]...)
	return append(out, page[len(page)-p.edgeLines:]...)
}
