package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "study_question",
		Description: "Ask a question and cite the course material the answer came from",
		Arguments: []*mcp.PromptArgument{
			{Name: "question", Description: "The question to answer", Required: true},
			{Name: "course_title", Description: "Restrict to one course"},
		},
	}, s.handleStudyPrompt)
}

// handleStudyPrompt builds a user message that steers the client towards
// the ask_course_materials tool.
func (s *Server) handleStudyPrompt(
	_ context.Context,
	req *mcp.GetPromptRequest,
) (*mcp.GetPromptResult, error) {
	question := strings.TrimSpace(req.Params.Arguments["question"])
	if question == "" {
		return nil, fmt.Errorf("question argument is required")
	}

	var b strings.Builder
	b.WriteString("Use the ask_course_materials tool to answer the question below")
	if course := strings.TrimSpace(req.Params.Arguments["course_title"]); course != "" {
		fmt.Fprintf(&b, " with course_title %q", course)
	}
	b.WriteString(". Quote the returned answer, include its context, and list any useful links. ")
	b.WriteString("If the tool reports no answer, say so rather than guessing.\n\n")
	b.WriteString("Question: ")
	b.WriteString(question)

	return &mcp.GetPromptResult{
		Description: "Course materials question",
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: b.String()},
		}},
	}, nil
}
