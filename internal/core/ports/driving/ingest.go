package driving

import (
	"context"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

// IngestService turns course material files into stored passages.
type IngestService interface {
	// Upload validates the form fields, stages the bytes and indexes them.
	// Malformed input is rejected before anything is written.
	Upload(ctx context.Context, req domain.UploadRequest) (*domain.IngestResult, error)

	// IngestFile indexes a file already on disk.
	IngestFile(ctx context.Context, path string, meta domain.Metadata) (*domain.IngestResult, error)
}
