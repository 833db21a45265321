// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tracking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/paper-browser/pkg/types"
)

// LogKind selects one of the append-only activity log tables.
type LogKind string

const (
	KindSearch   LogKind = "search"
	KindCompare  LogKind = "compare"
	KindDownload LogKind = "download"
)

const (
	defaultLogLimit = 50

	// recentWindow is the trailing window for the admin "recent" counters.
	recentWindow = 7 * 24 * time.Hour
)

func tableFor(kind LogKind) (string, error) {
	switch kind {
	case KindSearch:
		return "search_logs", nil
	case KindCompare:
		return "compare_view_logs", nil
	case KindDownload:
		return "download_logs", nil
	}
	return "", fmt.Errorf("unknown log kind %q", kind)
}

// AppendSearch durably appends one search event. The entry's timestamp
// and id are assigned by the store.
func (s *Store) AppendSearch(ctx context.Context, e types.SearchLog) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO search_logs (timestamp, search_query, filters_used, num_results, user_session)
		 VALUES (?, ?, ?, ?, ?)`,
		s.now(), e.Query, e.FiltersJSON, e.ResultCount, e.SessionID)
	if err != nil {
		return fmt.Errorf("appending search log: %w", err)
	}
	return nil
}

// AppendCompareView durably appends one comparison view event.
func (s *Store) AppendCompareView(ctx context.Context, e types.CompareViewLog) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO compare_view_logs (timestamp, paper_ids, num_papers, user_session)
		 VALUES (?, ?, ?, ?)`,
		s.now(), strings.Join(e.PaperIDs, ","), len(e.PaperIDs), e.SessionID)
	if err != nil {
		return fmt.Errorf("appending compare view log: %w", err)
	}
	return nil
}

// AppendDownload durably appends one download event. An empty format
// falls back to the schema default "CSV".
func (s *Store) AppendDownload(ctx context.Context, e types.DownloadLog) error {
	format := e.Format
	if format == "" {
		format = "CSV"
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO download_logs (timestamp, paper_ids, num_papers, file_format, user_session)
		 VALUES (?, ?, ?, ?, ?)`,
		s.now(), strings.Join(e.PaperIDs, ","), len(e.PaperIDs), format, e.SessionID)
	if err != nil {
		return fmt.Errorf("appending download log: %w", err)
	}
	return nil
}

// RecentSearchLogs returns the newest search log entries, newest first.
// A non-positive limit uses the default.
func (s *Store) RecentSearchLogs(ctx context.Context, limit int) ([]types.SearchLog, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, search_query, filters_used, num_results, user_session
		 FROM search_logs ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying search logs: %w", err)
	}
	defer rows.Close()

	var entries []types.SearchLog
	for rows.Next() {
		var e types.SearchLog
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.Query, &e.FiltersJSON, &e.ResultCount, &e.SessionID); err != nil {
			return nil, fmt.Errorf("scanning search log: %w", err)
		}
		e.Timestamp = s.parseTime(ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecentCompareLogs returns the newest comparison view entries, newest first.
func (s *Store) RecentCompareLogs(ctx context.Context, limit int) ([]types.CompareViewLog, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, paper_ids, num_papers, user_session
		 FROM compare_view_logs ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying compare view logs: %w", err)
	}
	defer rows.Close()

	var entries []types.CompareViewLog
	for rows.Next() {
		var e types.CompareViewLog
		var ts, ids string
		if err := rows.Scan(&e.ID, &ts, &ids, &e.Count, &e.SessionID); err != nil {
			return nil, fmt.Errorf("scanning compare view log: %w", err)
		}
		e.Timestamp = s.parseTime(ts)
		e.PaperIDs = splitIDs(ids)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecentDownloadLogs returns the newest download entries, newest first.
func (s *Store) RecentDownloadLogs(ctx context.Context, limit int) ([]types.DownloadLog, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, paper_ids, num_papers, file_format, user_session
		 FROM download_logs ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying download logs: %w", err)
	}
	defer rows.Close()

	var entries []types.DownloadLog
	for rows.Next() {
		var e types.DownloadLog
		var ts, ids string
		if err := rows.Scan(&e.ID, &ts, &ids, &e.Count, &e.Format, &e.SessionID); err != nil {
			return nil, fmt.Errorf("scanning download log: %w", err)
		}
		e.Timestamp = s.parseTime(ts)
		e.PaperIDs = splitIDs(ids)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountSince counts entries of the given kind newer than now-since.
func (s *Store) CountSince(ctx context.Context, kind LogKind, since time.Duration) (int, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().In(s.loc).Add(-since).Format(timeLayout)

	var count int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+table+` WHERE timestamp >= ?`, cutoff).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting %s logs: %w", kind, err)
	}
	return count, nil
}

// TopQueries ranks non-empty search queries by exact-string frequency,
// descending, ties broken alphabetically.
func (s *Store) TopQueries(ctx context.Context, limit int) ([]types.QueryCount, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT search_query, COUNT(*) AS n FROM search_logs
		 WHERE search_query != ''
		 GROUP BY search_query
		 ORDER BY n DESC, search_query ASC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top queries: %w", err)
	}
	defer rows.Close()

	var top []types.QueryCount
	for rows.Next() {
		var qc types.QueryCount
		if err := rows.Scan(&qc.Query, &qc.Count); err != nil {
			return nil, fmt.Errorf("scanning top query: %w", err)
		}
		top = append(top, qc)
	}
	return top, rows.Err()
}

// AdminStats bundles the usage aggregates for the admin dashboard:
// all-time and 7-day counts per log kind, the top queries, and the
// pending moderation backlog.
func (s *Store) AdminStats(ctx context.Context) (types.AdminStats, error) {
	var stats types.AdminStats

	kinds := []struct {
		kind LogKind
		dst  *types.KindStats
	}{
		{KindSearch, &stats.Searches},
		{KindCompare, &stats.CompareViews},
		{KindDownload, &stats.Downloads},
	}
	for _, k := range kinds {
		table, err := tableFor(k.kind)
		if err != nil {
			return types.AdminStats{}, err
		}
		if err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM `+table).Scan(&k.dst.Total); err != nil {
			return types.AdminStats{}, fmt.Errorf("counting %s logs: %w", k.kind, err)
		}
		recent, err := s.CountSince(ctx, k.kind, recentWindow)
		if err != nil {
			return types.AdminStats{}, err
		}
		k.dst.Recent = recent
	}

	top, err := s.TopQueries(ctx, 10)
	if err != nil {
		return types.AdminStats{}, err
	}
	stats.TopQueries = top

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM upload_requests WHERE status = ?`,
		string(types.StatusPending)).Scan(&stats.PendingRequests); err != nil {
		return types.AdminStats{}, fmt.Errorf("counting pending requests: %w", err)
	}

	return stats, nil
}

// splitIDs undoes the comma-joined storage of paper id lists.
func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
