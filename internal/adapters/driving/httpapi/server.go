package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/custodia-labs/lectern/internal/logger"
)

// DefaultMaxUploadBytes bounds the multipart memory used per upload.
const DefaultMaxUploadBytes = 32 << 20

// Options configures the HTTP server.
type Options struct {
	Addr string

	// RateLimit is the sustained requests per second; zero disables limiting.
	RateLimit float64
	RateBurst int

	// MaxUploadBytes is the multipart memory limit; larger parts spill to disk.
	MaxUploadBytes int64

	Version string

	// Logger receives the access log. Defaults to logger.Zap().
	Logger *zap.Logger
}

// Server is the HTTP API for lectern.
type Server struct {
	ports   *Ports
	opts    Options
	version string
	engine  *gin.Engine
}

// NewServer creates a new HTTP server with the given ports.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if opts.Logger == nil {
		opts.Logger = logger.Zap()
	}
	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		ports:   ports,
		opts:    opts,
		version: opts.Version,
	}
	s.engine = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = s.opts.MaxUploadBytes
	r.Use(gin.Recovery(), accessLog(s.opts.Logger))

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/", rateLimit(newLimiter(s.opts.RateLimit, s.opts.RateBurst)))
	api.POST("/upload-content/", s.handleUpload)
	api.GET("/search/", s.handleSearch)
	api.GET("/courses/", s.handleCourses)

	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("HTTP API listening on %s", s.opts.Addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
