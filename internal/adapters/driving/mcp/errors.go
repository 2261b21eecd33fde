// Package mcp provides an MCP (Model Context Protocol) server adapter for
// lectern. It lets AI assistants ask questions against indexed course
// materials, list courses and index new files.
package mcp

import "errors"

// ErrMissingQAService is returned when the QA service is not provided.
var ErrMissingQAService = errors.New("mcp: qa service is required")
