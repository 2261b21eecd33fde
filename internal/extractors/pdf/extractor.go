// Package pdf extracts text from PDF files.
//
// Two backends are available. The default shells out to pdftotext from
// poppler-utils, which emits a form feed between pages. The unipdf backend
// is pure Go but requires a UniDoc metered license key.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
)

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// CommandRunner runs an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, ErrPDFToolNotFound
	}
	return exec.CommandContext(ctx, name, args...).Output()
}

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor extracts PDF text with pdftotext.
type Extractor struct {
	runner CommandRunner
}

// New creates a pdftotext-backed extractor.
func New() *Extractor {
	return NewWithRunner(execRunner{})
}

// NewWithRunner creates an extractor with a custom command runner.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// NewForBackend returns the extractor configured by settings.
func NewForBackend(settings domain.ExtractSettings) (driven.TextExtractor, error) {
	switch settings.PDFBackend {
	case domain.PDFBackendUniPDF:
		return NewUniPDF(settings.UniDocLicenseKey)
	case domain.PDFBackendPdftotext, "":
		return New(), nil
	default:
		return nil, fmt.Errorf("%w: pdf backend %q", domain.ErrInvalidInput, settings.PDFBackend)
	}
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return "pdftotext"
}

// SupportedTypes returns the file extensions this extractor handles.
func (e *Extractor) SupportedTypes() []string {
	return []string{"pdf"}
}

// Extract runs pdftotext on path and returns its output, one page per
// form feed.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	out, err := e.runner.Run(ctx, "pdftotext", "-enc", "UTF-8", "-layout", path, "-")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%w: pdftotext failed: %s", domain.ErrExtractionFailed,
				strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("%w: pdftotext failed: %w", domain.ErrExtractionFailed, err)
	}
	return strings.TrimRight(string(out), domain.PageSeparator+"\n"), nil
}

// CheckAvailable verifies pdftotext is installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform-specific install instructions.
func InstallInstructions() string {
	return `pdftotext is required for PDF extraction.

Install with:
  macOS:   brew install poppler
  Ubuntu:  sudo apt install poppler-utils
  Fedora:  sudo dnf install poppler-utils

Or set extract.pdf_backend = "unipdf" with a UniDoc license key.`
}
