package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/unidoc/unipdf/v3/common/license"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"

	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
)

// ErrMissingLicense indicates the unipdf backend was selected without a key.
var ErrMissingLicense = errors.New("unipdf backend requires extract.unidoc_license_key")

// The license is process-wide in unipdf, so it is set at most once.
var (
	licenseOnce sync.Once
	licenseErr  error
)

// Ensure UniPDF implements the interface.
var _ driven.TextExtractor = (*UniPDF)(nil)

// UniPDF extracts PDF text in-process with unipdf.
type UniPDF struct{}

// NewUniPDF registers the metered license key and returns the extractor.
func NewUniPDF(licenseKey string) (*UniPDF, error) {
	if strings.TrimSpace(licenseKey) == "" {
		return nil, ErrMissingLicense
	}
	licenseOnce.Do(func() {
		licenseErr = license.SetMeteredKey(licenseKey)
	})
	if licenseErr != nil {
		return nil, fmt.Errorf("set unidoc license: %w", licenseErr)
	}
	return &UniPDF{}, nil
}

// Name returns the extractor name.
func (u *UniPDF) Name() string {
	return "unipdf"
}

// SupportedTypes returns the file extensions this extractor handles.
func (u *UniPDF) SupportedTypes() []string {
	return []string{"pdf"}
}

// Extract returns the text of every page joined by form feeds.
func (u *UniPDF) Extract(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %w", domain.ErrExtractionFailed, path, err)
	}
	defer f.Close()

	reader, err := model.NewPdfReader(f)
	if err != nil {
		return "", fmt.Errorf("%w: parse %s: %w", domain.ErrExtractionFailed, path, err)
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("%w: page count: %w", domain.ErrExtractionFailed, err)
	}

	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := pageText(reader, i)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %w", domain.ErrExtractionFailed, i, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, domain.PageSeparator), nil
}

func pageText(reader *model.PdfReader, number int) (string, error) {
	page, err := reader.GetPage(number)
	if err != nil {
		return "", err
	}
	ex, err := extractor.New(page)
	if err != nil {
		return "", err
	}
	return ex.ExtractText()
}
