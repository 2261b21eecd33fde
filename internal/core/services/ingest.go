package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
	"github.com/custodia-labs/lectern/internal/core/ports/driving"
	"github.com/custodia-labs/lectern/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService extracts, preprocesses and stores course material.
type IngestService struct {
	extractors   driven.ExtractorRegistry
	preprocessor *Preprocessor
	store        driven.PassageStore
	stager       driven.Stager
}

// NewIngestService creates an ingest service. The stager may be nil when
// only IngestFile is used.
func NewIngestService(
	extractors driven.ExtractorRegistry,
	preprocessor *Preprocessor,
	store driven.PassageStore,
	stager driven.Stager,
) *IngestService {
	return &IngestService{
		extractors:   extractors,
		preprocessor: preprocessor,
		store:        store,
		stager:       stager,
	}
}

// Upload validates the form fields, stages the content and indexes it.
// Nothing is staged or stored when validation fails.
func (s *IngestService) Upload(ctx context.Context, req domain.UploadRequest) (*domain.IngestResult, error) {
	fileName := filepath.Base(strings.TrimSpace(req.FileName))
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		return nil, fmt.Errorf("upload: %w: file name is required", domain.ErrInvalidInput)
	}
	courseTitle := strings.TrimSpace(req.CourseTitle)
	if courseTitle == "" {
		return nil, fmt.Errorf("upload: %w: course title is required", domain.ErrInvalidInput)
	}
	if err := domain.NewCourseFilter(courseTitle).Validate(); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	links, err := ParseUsefulLinks(req.UsefulLinksJSON)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	if req.Content == nil {
		return nil, fmt.Errorf("upload: %w: file content is required", domain.ErrInvalidInput)
	}
	if s.stager == nil {
		return nil, errors.New("upload: no staging area configured")
	}

	staged, err := s.stager.Stage(ctx, fileName, req.Content)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	logger.Debug("staged %s at %s", fileName, staged)

	result, err := s.IngestFile(ctx, staged, domain.Metadata{
		CourseTitle: courseTitle,
		FileName:    fileName,
		FileType:    FileType(fileName),
		UsefulLinks: links,
	})
	if err != nil {
		return nil, err
	}
	result.StagedPath = staged
	return result, nil
}

// IngestFile extracts the file at path and stores its passages in a single
// write. Unknown types and extraction failures index empty text.
func (s *IngestService) IngestFile(
	ctx context.Context,
	path string,
	meta domain.Metadata,
) (*domain.IngestResult, error) {
	meta.CourseTitle = strings.TrimSpace(meta.CourseTitle)
	if meta.CourseTitle == "" {
		return nil, fmt.Errorf("ingest %s: %w: course title is required", path, domain.ErrInvalidInput)
	}
	if err := domain.NewCourseFilter(meta.CourseTitle).Validate(); err != nil {
		return nil, fmt.Errorf("ingest %s: %w", path, err)
	}
	if meta.FileName == "" {
		meta.FileName = filepath.Base(path)
	}
	if meta.FileType == "" {
		meta.FileType = FileType(meta.FileName)
	}
	if meta.UsefulLinks == nil {
		meta.UsefulLinks = []string{}
	}

	logger.Section("Ingest " + meta.FileName)

	extractor := s.extractors.Get(meta.FileType)
	text, err := extractor.Extract(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("ingest %s: %w", meta.FileName, ctxErr)
		}
		logger.Warn("%s: %v; indexing empty text", meta.FileName, err)
		text = ""
	}
	logger.Debug("extractor %s produced %d bytes", extractor.Name(), len(text))

	doc := &domain.Document{
		ID:        uuid.NewString(),
		Content:   text,
		Metadata:  meta,
		CreatedAt: time.Now(),
	}
	passages, err := s.preprocessor.ProcessDocument(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", meta.FileName, err)
	}

	result := &domain.IngestResult{
		DocumentID:  doc.ID,
		FileName:    meta.FileName,
		CourseTitle: meta.CourseTitle,
		Passages:    len(passages),
	}
	if len(passages) == 0 {
		logger.Debug("%s produced no passages", meta.FileName)
		return result, nil
	}

	if err := s.store.Write(ctx, passages); err != nil {
		return nil, fmt.Errorf("ingest %s: %w", meta.FileName, err)
	}
	logger.Info("indexed %s: %d passage(s) for %q", meta.FileName, len(passages), meta.CourseTitle)
	return result, nil
}

// ParseUsefulLinks decodes the links form field. An empty field means no
// links; anything other than a JSON array of strings is rejected.
func ParseUsefulLinks(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}
	if !strings.HasPrefix(raw, "[") {
		return nil, fmt.Errorf("%w: expected a JSON array", domain.ErrMalformedLinks)
	}

	var links []string
	if err := json.Unmarshal([]byte(raw), &links); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedLinks, err)
	}
	if links == nil {
		links = []string{}
	}
	return links, nil
}

// FileType returns the lower-case extension of name without the dot.
func FileType(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
