package extractors

import (
	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/extractors/html"
	"github.com/custodia-labs/lectern/internal/extractors/markdown"
	"github.com/custodia-labs/lectern/internal/extractors/pdf"
	"github.com/custodia-labs/lectern/internal/extractors/plaintext"
	"github.com/custodia-labs/lectern/internal/extractors/pptx"
	"github.com/custodia-labs/lectern/internal/extractors/xlsx"
)

// NewDefaultRegistry returns a registry with every built-in extractor.
// The PDF backend is chosen by settings.
func NewDefaultRegistry(settings domain.ExtractSettings) (*Registry, error) {
	pdfExtractor, err := pdf.NewForBackend(settings)
	if err != nil {
		return nil, err
	}

	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(html.New())
	r.Register(pptx.New())
	r.Register(xlsx.New())
	r.Register(pdfExtractor)
	return r, nil
}
