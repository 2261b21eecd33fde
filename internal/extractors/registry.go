package extractors

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/lectern/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps lower-case file extensions to extractors.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]driven.TextExtractor
	fallback   driven.TextExtractor
}

// NewRegistry creates an empty registry with a no-op fallback.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]driven.TextExtractor),
		fallback:   Noop{},
	}
}

// Register adds an extractor for each of its supported types.
// A later registration for the same type replaces the earlier one.
func (r *Registry) Register(e driven.TextExtractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range e.SupportedTypes() {
		r.extractors[NormaliseType(t)] = e
	}
}

// Get returns the extractor for fileType, or the no-op extractor.
func (r *Registry) Get(fileType string) driven.TextExtractor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.extractors[NormaliseType(fileType)]; ok {
		return e
	}
	return r.fallback
}

// SupportedTypes lists all registered file types, sorted.
func (r *Registry) SupportedTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.extractors))
	for t := range r.extractors {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// NormaliseType lower-cases a file type and strips a leading dot, so
// ".PDF" and "pdf" resolve to the same extractor.
func NormaliseType(fileType string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(fileType), "."))
}

// Noop is the extractor used for unsupported file types.
type Noop struct{}

// Name returns the extractor name.
func (Noop) Name() string { return "noop" }

// SupportedTypes returns nil; Noop is only ever the fallback.
func (Noop) SupportedTypes() []string { return nil }

// Extract returns empty text.
func (Noop) Extract(_ context.Context, _ string) (string, error) { return "", nil }
