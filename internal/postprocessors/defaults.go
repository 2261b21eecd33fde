package postprocessors

import (
	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
	"github.com/custodia-labs/lectern/internal/postprocessors/chunker"
	"github.com/custodia-labs/lectern/internal/postprocessors/cleaner"
)

// DefaultOrder is the processor order used for ingestion.
var DefaultOrder = []string{"cleaner", "chunker"}

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("cleaner", buildCleaner)
	r.Register("chunker", buildChunker)
}

// NewDefaultPipeline builds the cleaner -> chunker pipeline from settings.
func NewDefaultPipeline(s domain.PreprocessSettings) (*Pipeline, error) {
	r := NewRegistry()
	RegisterDefaults(r)
	return r.BuildPipeline(DefaultOrder, map[string]map[string]any{
		"cleaner": {"header_footer_lines": s.HeaderFooterLines},
		"chunker": {"split_length": s.SplitLength, "split_overlap": s.SplitOverlap},
	})
}

// buildCleaner creates a cleaner processor from generic config.
// Supported config keys:
//   - header_footer_lines (int): Edge lines per page checked for recurrence (default: 2)
func buildCleaner(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []cleaner.Option
	if n, ok := getIntFromConfig(cfg, "header_footer_lines"); ok {
		opts = append(opts, cleaner.WithEdgeLines(n))
	}
	return cleaner.New(opts...), nil
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - split_length (int): Words per passage (default: 500)
//   - split_overlap (int): Words shared by consecutive passages (default: 50)
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	if size, ok := getIntFromConfig(cfg, "split_length"); ok {
		opts = append(opts, chunker.WithSplitLength(size))
	}
	if overlap, ok := getIntFromConfig(cfg, "split_overlap"); ok {
		opts = append(opts, chunker.WithOverlap(overlap))
	}

	return chunker.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) (int, bool) {
	val, ok := cfg[key]
	if !ok {
		return 0, false
	}

	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
