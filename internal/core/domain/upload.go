package domain

import "io"

// UploadRequest is a file received from a front door together with its
// form fields. UsefulLinksJSON must be a JSON array of strings or empty.
type UploadRequest struct {
	FileName        string
	CourseTitle     string
	UsefulLinksJSON string
	Content         io.Reader
}

// IngestResult summarises one indexed file.
type IngestResult struct {
	DocumentID  string `json:"document_id"`
	FileName    string `json:"file_name"`
	CourseTitle string `json:"course_title"`
	Passages    int    `json:"passages"`
	StagedPath  string `json:"staged_path,omitempty"`
}
