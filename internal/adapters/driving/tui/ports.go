// Package tui provides an interactive terminal user interface for asking
// questions about indexed course materials. It is a driving adapter over
// the core QA and course services.
package tui

import (
	"github.com/custodia-labs/lectern/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// QA answers questions. Required.
	QA driving.QAService

	// Courses lists indexed courses for the course filter. Optional.
	Courses driving.CourseService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(qa driving.QAService, courses driving.CourseService) *Ports {
	return &Ports{
		QA:      qa,
		Courses: courses,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.QA == nil {
		return ErrMissingQAService
	}
	return nil
}
