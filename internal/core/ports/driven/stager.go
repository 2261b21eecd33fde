package driven

import (
	"context"
	"io"
)

// Stager stores uploaded bytes on disk so extractors can read them by path.
type Stager interface {
	// Stage writes content under a name derived from fileName and returns the path.
	Stage(ctx context.Context, fileName string, content io.Reader) (string, error)
}
