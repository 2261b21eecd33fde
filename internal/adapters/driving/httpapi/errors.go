// Package httpapi serves the question answering API over HTTP with gin.
//
// Routes:
//
//	POST /upload-content/  multipart file plus course_title and useful_links
//	GET  /search/          ?question=...&course_title=...
//	GET  /courses/
//	GET  /healthz
package httpapi

import (
	"errors"
	"net/http"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

// ErrMissingQAService is returned when the QA service is not provided.
var ErrMissingQAService = errors.New("http: qa service is required")

// ErrMissingIngestService is returned when the ingest service is not provided.
var ErrMissingIngestService = errors.New("http: ingest service is required")

// ErrMissingCourseService is returned when the course service is not provided.
var ErrMissingCourseService = errors.New("http: course service is required")

// statusFor maps a service error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrStoreUnavailable), errors.Is(err, domain.ErrReaderUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Detail string `json:"detail"`
}
