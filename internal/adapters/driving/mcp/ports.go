package mcp

import (
	"github.com/custodia-labs/lectern/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// QA answers questions.
	QA driving.QAService

	// Courses lists indexed courses. Optional.
	Courses driving.CourseService

	// Ingest indexes files on the server's filesystem. Optional; the
	// ingest_file tool is only registered when set.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.QA == nil {
		return ErrMissingQAService
	}
	return nil
}
