package domain

import "time"

// Metadata is the descriptive bag attached to a document and copied onto
// each of its passages. It is immutable once written.
type Metadata struct {
	// CourseTitle identifies the course the material belongs to.
	CourseTitle string `json:"course_title"`

	// FileName is the original name of the uploaded file.
	FileName string `json:"file_name"`

	// FileType is the lower-case extension without the dot (e.g. "pdf").
	FileType string `json:"file_type"`

	// UsefulLinks are related links supplied at upload time, in order.
	UsefulLinks []string `json:"useful_links"`
}

// Clone returns a deep copy so passages never share the links slice.
func (m Metadata) Clone() Metadata {
	out := m
	out.UsefulLinks = make([]string, len(m.UsefulLinks))
	copy(out.UsefulLinks, m.UsefulLinks)
	return out
}

// Document is one uploaded file's extracted text plus its metadata.
// It exists only between extraction and chunking.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Content is the extracted text. Pages and slides are separated by
	// a form feed so header/footer detection can see page boundaries.
	Content string

	// Metadata is copied onto every passage.
	Metadata Metadata

	// CreatedAt is when the document was extracted.
	CreatedAt time.Time
}

// Passage is a contiguous word window of a document's text.
// Passages are the unit of storage, retrieval and answer extraction.
type Passage struct {
	// ID is the unique identifier for the passage.
	ID string `json:"id"`

	// DocumentID links to the source document.
	DocumentID string `json:"document_id"`

	// Content is the passage text, words joined by single spaces.
	Content string `json:"content"`

	// Position is the ordinal position within the document.
	Position int `json:"position"`

	// Metadata is the source document's metadata bag.
	Metadata Metadata `json:"metadata"`
}

// PageSeparator separates pages or slides in extracted text.
const PageSeparator = "\f"
