// Package filesystem stages uploaded files in a local directory before
// they are extracted. Staged files are kept after indexing.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
)

// Ensure Stager implements the interface.
var _ driven.Stager = (*Stager)(nil)

// Stager writes uploads into a directory.
type Stager struct {
	dir string
}

// New creates a stager rooted at dir. The directory is created on first use.
func New(dir string) *Stager {
	return &Stager{dir: dir}
}

// Dir returns the staging directory.
func (s *Stager) Dir() string {
	return s.dir
}

// Stage copies content to a new file in the staging directory and returns
// its path. The name keeps the upload's base name and extension behind a
// unique prefix, so two uploads of "notes.pdf" never collide.
func (s *Stager) Stage(ctx context.Context, fileName string, content io.Reader) (string, error) {
	base := sanitize(fileName)
	if base == "" {
		return "", fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create staging file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	if _, err := io.Copy(tmp, readerWithContext(ctx, content)); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write staging file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close staging file: %w", err)
	}

	dest := filepath.Join(s.dir, uuid.New().String()[:8]+"_"+base)
	if err := os.Rename(tmpName, dest); err != nil {
		return "", fmt.Errorf("move staging file: %w", err)
	}
	return dest, nil
}

// sanitize strips directories and characters unsafe in file names.
func sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if r < 0x20 || strings.ContainsRune(`<>:"|?*`, r) {
			return '_'
		}
		return r
	}, name)
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return ctxReader{ctx: ctx, r: r}
}
