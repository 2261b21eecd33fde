// Package sqlite provides a SQLite-backed implementation of driven.PassageStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Passages live in a plain table; an external-content FTS5 table kept in sync
// by triggers provides bm25 ranking.
//
// # Data Location
//
// By default, the database is stored at ~/.lectern/data/passages.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
