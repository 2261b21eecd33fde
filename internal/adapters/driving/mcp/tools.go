package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

// AskInput is the input schema for the ask_course_materials tool.
type AskInput struct {
	Question    string `json:"question" jsonschema:"the question to answer from the course materials"`
	CourseTitle string `json:"course_title,omitempty" jsonschema:"restrict the search to this course"`
}

// AskOutput is the output schema for the ask_course_materials tool.
type AskOutput struct {
	Answer      string   `json:"answer"`
	Context     string   `json:"context,omitempty"`
	Confidence  float64  `json:"confidence"`
	UsefulLinks []string `json:"useful_links"`
	Found       bool     `json:"found"`
}

// ListCoursesInput is the (empty) input schema for the list_courses tool.
type ListCoursesInput struct{}

// ListCoursesOutput is the output schema for the list_courses tool.
type ListCoursesOutput struct {
	Courses []string `json:"courses"`
	Count   int      `json:"count"`
}

// IngestInput is the input schema for the ingest_file tool.
type IngestInput struct {
	Path        string   `json:"path" jsonschema:"absolute path of the file to index"`
	CourseTitle string   `json:"course_title" jsonschema:"course the file belongs to"`
	UsefulLinks []string `json:"useful_links,omitempty" jsonschema:"related links returned with answers from this file"`
}

// IngestOutput is the output schema for the ingest_file tool.
type IngestOutput struct {
	DocumentID string `json:"document_id"`
	FileName   string `json:"file_name"`
	Passages   int    `json:"passages"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_course_materials",
		Description: "Answer a question with a span extracted from the indexed course materials",
	}, s.handleAsk)

	if s.ports.Courses != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_courses",
			Description: "List the courses that have indexed material",
		}, s.handleListCourses)
	}

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest_file",
			Description: "Index a course material file (pdf, pptx, xlsx, html, md, txt)",
		}, s.handleIngest)
	}
}

// handleAsk handles the ask_course_materials tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	result, err := s.ports.QA.Answer(ctx, domain.Query{
		Question: input.Question,
		Filter:   domain.NewCourseFilter(input.CourseTitle),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return toolError(err), AskOutput{UsefulLinks: []string{}}, nil
		}
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:      result.Answer,
		Confidence:  result.Confidence,
		UsefulLinks: result.UsefulLinks,
		Found:       result.Found(),
	}
	if result.Context != nil {
		output.Context = *result.Context
	}
	return nil, output, nil
}

// handleListCourses handles the list_courses tool invocation.
func (s *Server) handleListCourses(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListCoursesInput,
) (*mcp.CallToolResult, ListCoursesOutput, error) {
	courses, err := s.ports.Courses.ListCourses(ctx)
	if err != nil {
		return nil, ListCoursesOutput{}, err
	}
	return nil, ListCoursesOutput{Courses: courses, Count: len(courses)}, nil
}

// handleIngest handles the ingest_file tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return toolError(errors.New("path is required")), IngestOutput{}, nil
	}
	info, err := os.Stat(input.Path)
	if err != nil {
		return toolError(err), IngestOutput{}, nil
	}
	if info.IsDir() {
		return toolError(fmt.Errorf("%s is a directory", input.Path)), IngestOutput{}, nil
	}

	links := input.UsefulLinks
	if links == nil {
		links = []string{}
	}
	result, err := s.ports.Ingest.IngestFile(ctx, input.Path, domain.Metadata{
		CourseTitle: input.CourseTitle,
		UsefulLinks: links,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return toolError(err), IngestOutput{}, nil
		}
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{
		DocumentID: result.DocumentID,
		FileName:   result.FileName,
		Passages:   result.Passages,
	}, nil
}

// toolError reports a caller mistake as a tool result the model can read
// and correct, rather than as a protocol error.
func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
