package httpapi

import (
	"github.com/custodia-labs/lectern/internal/core/ports/driving"
)

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	QA      driving.QAService
	Ingest  driving.IngestService
	Courses driving.CourseService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	switch {
	case p.QA == nil:
		return ErrMissingQAService
	case p.Ingest == nil:
		return ErrMissingIngestService
	case p.Courses == nil:
		return ErrMissingCourseService
	}
	return nil
}
