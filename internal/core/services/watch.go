package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
	"github.com/custodia-labs/lectern/internal/core/ports/driving"
	"github.com/custodia-labs/lectern/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.Watcher = (*WatchService)(nil)

// LinksFileName is the per-course file listing useful links as a JSON array.
const LinksFileName = "links.json"

// DefaultDebounce is how long a path must be quiet before it is indexed.
const DefaultDebounce = 500 * time.Millisecond

// WatchService indexes files laid out as <root>/<course title>/<file>.
// A file is re-indexed only when its content or its course's links change.
type WatchService struct {
	ingest     driving.IngestService
	extractors driven.ExtractorRegistry
	debounce   time.Duration

	mu     sync.Mutex
	hashes map[string]string
}

// NewWatchService creates a watch service. A non-positive debounce uses
// DefaultDebounce.
func NewWatchService(
	ingest driving.IngestService,
	extractors driven.ExtractorRegistry,
	debounce time.Duration,
) *WatchService {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &WatchService{
		ingest:     ingest,
		extractors: extractors,
		debounce:   debounce,
		hashes:     make(map[string]string),
	}
}

// Scan indexes every supported file under root and returns how many were
// indexed. Per-file failures are logged; an unavailable store stops the scan.
func (w *WatchService) Scan(ctx context.Context, root string) (int, error) {
	root = filepath.Clean(root)
	if info, err := os.Stat(root); err != nil {
		return 0, fmt.Errorf("scan %s: %w", root, err)
	} else if !info.IsDir() {
		return 0, fmt.Errorf("scan %s: %w: not a directory", root, domain.ErrInvalidInput)
	}

	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("scan %s: %v", path, err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if path != root && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		indexed, err := w.indexPath(ctx, root, path)
		if err != nil {
			if errors.Is(err, domain.ErrStoreUnavailable) {
				return err
			}
			logger.Warn("%v", err)
			return nil
		}
		if indexed {
			count++
		}
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("scan %s: %w", root, err)
	}
	return count, nil
}

// Watch scans root, then indexes created or modified files until ctx is
// done. Directories created later are watched as they appear.
func (w *WatchService) Watch(ctx context.Context, root string) error {
	root = filepath.Clean(root)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addTree(watcher, root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	n, err := w.Scan(ctx, root)
	if err != nil {
		return err
	}
	logger.Info("initial scan of %s indexed %d file(s)", root, n)

	ready := make(chan string)
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	schedule := func(path string) {
		if t, ok := timers[path]; ok {
			t.Reset(w.debounce)
			return
		}
		timers[path] = time.AfterFunc(w.debounce, func() {
			select {
			case ready <- path:
			case <-ctx.Done():
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}
			if info.IsDir() {
				if err := addTree(watcher, event.Name); err != nil {
					logger.Warn("watch %s: %v", event.Name, err)
				}
				// Files may land before the directory watch is registered.
				_ = filepath.WalkDir(event.Name, func(p string, d fs.DirEntry, err error) error {
					if err == nil && !d.IsDir() {
						schedule(p)
					}
					return nil
				})
				continue
			}
			schedule(event.Name)

		case path := <-ready:
			delete(timers, path)
			if filepath.Base(path) == LinksFileName {
				if err := w.rescanCourse(ctx, root, filepath.Dir(path)); err != nil {
					return err
				}
				continue
			}
			if _, err := w.indexPath(ctx, root, path); err != nil {
				if errors.Is(err, domain.ErrStoreUnavailable) {
					return err
				}
				logger.Warn("%v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)
		}
	}
}

// rescanCourse re-indexes the files of a course whose links file was
// created or changed. Files whose content and links are both unchanged are
// skipped.
func (w *WatchService) rescanCourse(ctx context.Context, root, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("rescan %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if path != dir && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if _, err := w.indexPath(ctx, root, path); err != nil {
			if errors.Is(err, domain.ErrStoreUnavailable) {
				return err
			}
			logger.Warn("%v", err)
		}
		return nil
	})
}

// indexPath ingests path if it is a supported course file whose content or
// course links changed since it was last indexed. A malformed links file
// keeps the course's files out of the index until it parses.
func (w *WatchService) indexPath(ctx context.Context, root, path string) (bool, error) {
	course, ok := courseOf(root, path)
	if !ok {
		return false, nil
	}
	name := filepath.Base(path)
	if name == LinksFileName || isHidden(name) || !w.supported(FileType(name)) {
		return false, nil
	}

	links, linksHash, err := readLinks(filepath.Join(root, course, LinksFileName))
	if err != nil {
		return false, fmt.Errorf("skip %s: %w", path, err)
	}
	hash, err := fileHash(path)
	if err != nil {
		return false, fmt.Errorf("hash %s: %w", path, err)
	}
	key := hash + ":" + linksHash

	w.mu.Lock()
	unchanged := w.hashes[path] == key
	w.mu.Unlock()
	if unchanged {
		logger.Debug("%s unchanged, skipping", path)
		return false, nil
	}

	if _, err := w.ingest.IngestFile(ctx, path, domain.Metadata{
		CourseTitle: course,
		FileName:    name,
		FileType:    FileType(name),
		UsefulLinks: links,
	}); err != nil {
		return false, err
	}

	w.mu.Lock()
	w.hashes[path] = key
	w.mu.Unlock()
	return true, nil
}

func (w *WatchService) supported(fileType string) bool {
	for _, t := range w.extractors.SupportedTypes() {
		if t == fileType {
			return true
		}
	}
	return false
}

// courseOf returns the course directory name of a file under root. Files
// directly in root belong to no course.
func courseOf(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" {
		return "", false
	}
	return parts[0], true
}

// readLinks loads a course links file and returns the links with a hash
// of the raw file. A missing file means no links and an empty hash.
func readLinks(path string) ([]string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, "", nil
		}
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	links, err := ParseUsefulLinks(string(data))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	sum := sha256.Sum256(data)
	return links, hex.EncodeToString(sum[:]), nil
}

func addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
