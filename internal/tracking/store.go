// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tracking persists activity logs and upload requests in an
// embedded SQLite database. Log tables are append-only; upload requests
// additionally move through the moderation workflow.
package tracking

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/paper-browser/pkg/types"
)

const (
	dbFile = "tracking.db"

	// timeLayout is the stored timestamp format. Timestamps are civil
	// wall-clock values in the store's configured timezone, so lexical
	// comparison in SQL matches chronological order.
	timeLayout = "2006-01-02 15:04:05"

	defaultBusyTimeout = 5 * time.Second
)

// Store manages the tracking SQLite database. SQLite's own locking
// serializes concurrent writers; busy conditions surface as retryable
// errors, see IsBusy.
type Store struct {
	db  *sql.DB
	loc *time.Location
}

// NewStore opens or creates the tracking database at cfg.DBDir/tracking.db
// and creates the schema if it does not exist.
func NewStore(cfg types.TrackingConfig) (*Store, error) {
	dbDir := cfg.DBDir
	if dbDir == "" {
		dbDir = filepath.Join("data", "output")
	}
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating tracking directory: %w", err)
	}

	loc := time.UTC
	if cfg.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err)
		}
	}

	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = defaultBusyTimeout
	}

	dbPath := filepath.Join(dbDir, dbFile)
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d", dbPath, busy.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, loc: loc}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS search_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT NOT NULL,
			search_query TEXT NOT NULL,
			filters_used TEXT,
			num_results INTEGER,
			user_session TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS compare_view_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT NOT NULL,
			paper_ids TEXT NOT NULL,
			num_papers INTEGER,
			user_session TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS download_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT NOT NULL,
			paper_ids TEXT NOT NULL,
			num_papers INTEGER,
			file_format TEXT DEFAULT 'CSV',
			user_session TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS upload_requests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT NOT NULL,
			request_name TEXT,
			institution TEXT,
			email TEXT,
			paper_info TEXT,
			change_requests TEXT,
			pdf_filename TEXT,
			status TEXT NOT NULL DEFAULT 'pending'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_search_logs_timestamp ON search_logs(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_upload_requests_status ON upload_requests(status)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// now returns the current wall-clock time in the store's civil timezone,
// formatted for storage.
func (s *Store) now() string {
	return time.Now().In(s.loc).Format(timeLayout)
}

// parseTime converts a stored timestamp back to a time.Time in the
// store's timezone. Unparseable values yield the zero time.
func (s *Store) parseTime(v string) time.Time {
	t, err := time.ParseInLocation(timeLayout, v, s.loc)
	if err != nil {
		return time.Time{}
	}
	return t
}
