package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleCoursesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil course service returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{QA: &mockQAService{}})
		require.NoError(t, err)

		result, err := server.handleCoursesResource(ctx, makeReadResourceRequest("lectern://courses"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	})

	t.Run("returns courses", func(t *testing.T) {
		server, err := NewServer(&Ports{
			QA:      &mockQAService{},
			Courses: &mockCourseService{courses: []string{"Algebra 101"}},
		})
		require.NoError(t, err)

		result, err := server.handleCoursesResource(ctx, makeReadResourceRequest("lectern://courses"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, "Algebra 101")
		assert.Equal(t, "lectern://courses", result.Contents[0].URI)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		server, err := NewServer(&Ports{
			QA:      &mockQAService{},
			Courses: &mockCourseService{err: errors.New("store down")},
		})
		require.NoError(t, err)

		_, err = server.handleCoursesResource(ctx, makeReadResourceRequest("lectern://courses"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing courses")
	})
}
