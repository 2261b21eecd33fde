package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/lectern/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
	"github.com/custodia-labs/lectern/internal/ranking"
)

// Ensure Store implements the interfaces.
var (
	_ driven.PassageStore = (*Store)(nil)
	_ driven.CourseLister = (*Store)(nil)
)

// Store is a SQLite-backed passage store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.lectern/data/passages.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lectern", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "passages.db")

	// WAL lets readers proceed while an ingest transaction is open.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", domain.ErrStoreUnavailable, err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: running migrations: %w", domain.ErrStoreUnavailable, err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations, recording each applied version.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_passages.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// Write stores passages in a single transaction.
func (s *Store) Write(ctx context.Context, passages []domain.Passage) error {
	if len(passages) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO passages (id, document_id, position, content, course_title, file_name, file_type, useful_links)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: preparing statement: %w", domain.ErrStoreUnavailable, err)
	}
	defer stmt.Close()

	for _, p := range passages {
		linksJSON, err := marshalLinks(p.Metadata.UsefulLinks)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.DocumentID, p.Position, p.Content,
			p.Metadata.CourseTitle, p.Metadata.FileName, p.Metadata.FileType, linksJSON); err != nil {
			return fmt.Errorf("%w: saving passage %s: %w", domain.ErrStoreUnavailable, p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

const passageColumns = `p.id, p.document_id, p.position, p.content, p.course_title, p.file_name, p.file_type, p.useful_links`

// QueryByRelevance ranks passages with FTS5 bm25. Lower bm25 is better;
// equal scores fall back to insertion order.
func (s *Store) QueryByRelevance(
	ctx context.Context, question string, filter *domain.CourseFilter, topK int,
) ([]domain.Passage, error) {
	match := matchExpression(question)
	if match == "" || topK <= 0 {
		return nil, nil
	}

	filtered, course := 0, ""
	if filter != nil {
		filtered, course = 1, filter.CourseTitle
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+passageColumns+`
		FROM passages_fts
		JOIN passages p ON p.seq = passages_fts.rowid
		WHERE passages_fts MATCH ?
		  AND (? = 0 OR p.course_title = ?)
		ORDER BY bm25(passages_fts), p.seq
		LIMIT ?
	`, match, filtered, course, topK)
	if err != nil {
		return nil, fmt.Errorf("%w: querying passages: %w", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	return scanPassages(rows)
}

// ListAll returns every passage in insertion order.
func (s *Store) ListAll(ctx context.Context) ([]domain.Passage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+passageColumns+` FROM passages p ORDER BY p.seq`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing passages: %w", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	return scanPassages(rows)
}

// DistinctCourses returns the sorted set of course titles.
func (s *Store) DistinctCourses(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT course_title FROM passages ORDER BY course_title`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing courses: %w", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	courses := []string{}
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		courses = append(courses, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}
	return courses, nil
}

// matchExpression turns a free-text question into an FTS5 query: the
// question's non-stopword terms, each quoted, OR-ed together. It returns
// "" when the question has no searchable terms.
func matchExpression(question string) string {
	seen := make(map[string]struct{})
	var terms []string
	for _, tok := range ranking.Tokenize(question) {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		terms = append(terms, `"`+strings.ReplaceAll(tok, `"`, `""`)+`"`)
	}
	return strings.Join(terms, " OR ")
}

func marshalLinks(links []string) (string, error) {
	if links == nil {
		links = []string{}
	}
	b, err := json.Marshal(links)
	if err != nil {
		return "", fmt.Errorf("marshalling useful links: %w", err)
	}
	return string(b), nil
}

func scanPassages(rows *sql.Rows) ([]domain.Passage, error) {
	var passages []domain.Passage //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			p         domain.Passage
			linksJSON string
		)
		if err := rows.Scan(&p.ID, &p.DocumentID, &p.Position, &p.Content,
			&p.Metadata.CourseTitle, &p.Metadata.FileName, &p.Metadata.FileType, &linksJSON); err != nil {
			return nil, fmt.Errorf("scanning passage: %w", err)
		}
		if err := json.Unmarshal([]byte(linksJSON), &p.Metadata.UsefulLinks); err != nil {
			return nil, fmt.Errorf("unmarshalling useful links: %w", err)
		}
		if p.Metadata.UsefulLinks == nil {
			p.Metadata.UsefulLinks = []string{}
		}
		passages = append(passages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating passages: %w", err)
	}
	return passages, nil
}
