// Package cache persists the learned actualMembership bitmap per
// constraint fingerprint across scans, in a shadow SQL table the host
// connection owns. Grounded in the teacher's manager/meta/slab_manager.go
// (singleflight-deduped loads of a shared resource) and
// manager/load_slab_from_disk.go's spew-debug style, adapted from an
// in-process slab cache to a SQL-table-backed one.
package cache

import (
	"database/sql/driver"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/dot5enko/parquet-vtab/bitmap"
)

// Conn is the subset of *sqlite3.SQLiteConn the store needs. go-sqlite3's
// vtab Module.Create/Connect callbacks hand back a raw low-level driver
// connection, not a *sql.DB, so the store is built against this
// interface rather than database/sql.
type Conn interface {
	Exec(query string, args []driver.Value) (driver.Result, error)
	Query(query string, args []driver.Value) (driver.Rows, error)
}

// Store is the per-table shadow cache described in §4.6: a table
// "_<name>_rowgroups(clause TEXT PRIMARY KEY, estimate BLOB, actual BLOB)"
// with Load/Save keyed by a constraint's Fingerprint().
type Store struct {
	conn      Conn
	tableName string

	group singleflight.Group
}

func NewStore(conn Conn, parquetTableName string) *Store {
	return &Store{conn: conn, tableName: shadowTableName(parquetTableName)}
}

func shadowTableName(parquetTableName string) string {
	return fmt.Sprintf(`"_%s_rowgroups"`, parquetTableName)
}

// Create issues the shadow table DDL at CREATE time. Advisory: any error
// is logged and swallowed, per §4.6's "advisory" rule -- a cache that
// fails to initialize degrades to always-miss, not a hard failure.
func (s *Store) Create() {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s(clause TEXT PRIMARY KEY, estimate BLOB, actual BLOB)`, s.tableName)
	if _, err := s.conn.Exec(ddl, nil); err != nil {
		slog.Debug("cache: create shadow table failed", "component", "cache", "table", s.tableName, "error", err)
	}
}

// Destroy drops the shadow table at DESTROY time.
func (s *Store) Destroy() {
	ddl := fmt.Sprintf(`DROP TABLE IF EXISTS %s`, s.tableName)
	if _, err := s.conn.Exec(ddl, nil); err != nil {
		slog.Debug("cache: drop shadow table failed", "component", "cache", "table", s.tableName, "error", err)
	}
}

// Load returns the persisted actual bitmap for clause, or nil if absent
// or on any error -- a cache miss, not a failure, per §4.6.
func (s *Store) Load(clause string, numRowGroups int) *bitmap.Bitset {
	v, _, _ := s.group.Do(clause, func() (any, error) {
		return s.load(clause, numRowGroups), nil
	})
	bs, _ := v.(*bitmap.Bitset)
	return bs
}

func (s *Store) load(clause string, numRowGroups int) *bitmap.Bitset {
	q := fmt.Sprintf(`SELECT actual FROM %s WHERE clause = ?`, s.tableName)
	rows, err := s.conn.Query(q, []driver.Value{clause})
	if err != nil {
		slog.Debug("cache: load query failed", "component", "cache", "clause", clause, "error", err)
		return nil
	}
	defer rows.Close()

	dest := make([]driver.Value, 1)
	if err := rows.Next(dest); err != nil {
		if err != io.EOF {
			slog.Debug("cache: load scan failed", "component", "cache", "clause", clause, "error", err)
		}
		return nil
	}

	blob, ok := dest[0].([]byte)
	if !ok {
		return nil
	}

	bs, err := decodeBlob(blob, numRowGroups)
	if err != nil {
		slog.Debug("cache: load decode failed", "component", "cache", "clause", clause, "error", err)
		return nil
	}
	return bs
}

// Save persists estimate/actual for clause, only when they differ --
// once converged, the cache must stop writing (§9). Errors are logged
// and swallowed.
func (s *Store) Save(clause string, estimate, actual *bitmap.Bitset) {
	if estimate.Equal(*actual) {
		return
	}

	estBlob := encodeBlob(estimate)
	actBlob := encodeBlob(actual)

	q := fmt.Sprintf(`INSERT OR REPLACE INTO %s(clause, estimate, actual) VALUES (?, ?, ?)`, s.tableName)
	if _, err := s.conn.Exec(q, []driver.Value{clause, estBlob, actBlob}); err != nil {
		slog.Debug("cache: save failed", "component", "cache", "clause", clause, "error", err)
	}
}
