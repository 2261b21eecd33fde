package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/logger"
)

// uploadResponse is returned after a successful upload.
type uploadResponse struct {
	Message string `json:"message"`
	domain.IngestResult
}

// coursesResponse lists course titles.
type coursesResponse struct {
	Courses []string `json:"courses"`
}

// formOrQuery reads a multipart form field, falling back to the query string.
func formOrQuery(c *gin.Context, key string) string {
	if v, ok := c.GetPostForm(key); ok {
		return v
	}
	return c.Query(key)
}

// handleUpload stages an uploaded file and indexes it.
func (s *Server) handleUpload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		s.fail(c, fmt.Errorf("%w: file is required", domain.ErrInvalidInput))
		return
	}

	file, err := header.Open()
	if err != nil {
		s.fail(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer file.Close()

	result, err := s.ports.Ingest.Upload(c.Request.Context(), domain.UploadRequest{
		FileName:        header.Filename,
		CourseTitle:     formOrQuery(c, "course_title"),
		UsefulLinksJSON: formOrQuery(c, "useful_links"),
		Content:         file,
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, uploadResponse{
		Message:      "Content uploaded and indexed successfully",
		IngestResult: *result,
	})
}

// handleSearch answers a question.
func (s *Server) handleSearch(c *gin.Context) {
	question, ok := c.GetQuery("question")
	if !ok {
		s.fail(c, fmt.Errorf("%w: question is required", domain.ErrInvalidInput))
		return
	}

	result, err := s.ports.QA.Answer(c.Request.Context(), domain.Query{
		Question: question,
		Filter:   domain.NewCourseFilter(c.Query("course_title")),
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleCourses lists course titles.
func (s *Server) handleCourses(c *gin.Context) {
	courses, err := s.ports.Courses.ListCourses(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, coursesResponse{Courses: courses})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": s.version})
}

// fail writes err with the mapped status. Internal details are not
// exposed for 5xx responses.
func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	detail := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		switch {
		case errors.Is(err, domain.ErrStoreUnavailable):
			detail = "passage store unavailable"
		case errors.Is(err, domain.ErrReaderUnavailable):
			detail = "reader unavailable"
		default:
			detail = "internal server error"
		}
	}
	c.AbortWithStatusJSON(status, errorResponse{Detail: detail})
}
