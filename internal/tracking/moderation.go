// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tracking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pdiddy/paper-browser/pkg/types"
)

// CreateRequest stores a new upload request. The status is forced to
// pending regardless of the input; id and timestamp are assigned by the
// store. The stored request is returned.
func (s *Store) CreateRequest(ctx context.Context, req types.UploadRequest) (types.UploadRequest, error) {
	now := s.now()

	var pdf sql.NullString
	if req.PDFFilename != "" {
		pdf = sql.NullString{String: req.PDFFilename, Valid: true}
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO upload_requests
		 (timestamp, request_name, institution, email, paper_info, change_requests, pdf_filename, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		now, req.RequestName, req.Institution, req.Email,
		req.PaperInfo, req.ChangeRequests, pdf, string(types.StatusPending))
	if err != nil {
		return types.UploadRequest{}, fmt.Errorf("creating upload request: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return types.UploadRequest{}, fmt.Errorf("reading new request id: %w", err)
	}

	req.ID = id
	req.Timestamp = s.parseTime(now)
	req.Status = types.StatusPending
	return req, nil
}

// SetStatus overwrites the status of an upload request. Unrecognized
// status values fail with ErrInvalidStatus before any write; unknown ids
// fail with ErrNotFound. No transition table is enforced beyond that.
func (s *Store) SetStatus(ctx context.Context, id int64, status types.RequestStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE upload_requests SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating request %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update of request %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

// ListRequests returns upload requests newest first. A non-empty status
// restricts the listing to that state.
func (s *Store) ListRequests(ctx context.Context, status types.RequestStatus) ([]types.UploadRequest, error) {
	query := `SELECT id, timestamp, request_name, institution, email,
			paper_info, change_requests, pdf_filename, status
		FROM upload_requests`
	var args []any
	if status != "" {
		if !status.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
		}
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY timestamp DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying upload requests: %w", err)
	}
	defer rows.Close()

	var requests []types.UploadRequest
	for rows.Next() {
		var r types.UploadRequest
		var ts, st string
		var pdf sql.NullString
		if err := rows.Scan(&r.ID, &ts, &r.RequestName, &r.Institution, &r.Email,
			&r.PaperInfo, &r.ChangeRequests, &pdf, &st); err != nil {
			return nil, fmt.Errorf("scanning upload request: %w", err)
		}
		r.Timestamp = s.parseTime(ts)
		r.Status = types.RequestStatus(st)
		if pdf.Valid {
			r.PDFFilename = pdf.String
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

// GetRequest returns a single upload request by id, or ErrNotFound.
func (s *Store) GetRequest(ctx context.Context, id int64) (types.UploadRequest, error) {
	var r types.UploadRequest
	var ts, st string
	var pdf sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, timestamp, request_name, institution, email,
			paper_info, change_requests, pdf_filename, status
		 FROM upload_requests WHERE id = ?`, id).
		Scan(&r.ID, &ts, &r.RequestName, &r.Institution, &r.Email,
			&r.PaperInfo, &r.ChangeRequests, &pdf, &st)
	if err == sql.ErrNoRows {
		return types.UploadRequest{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return types.UploadRequest{}, fmt.Errorf("querying request %d: %w", id, err)
	}

	r.Timestamp = s.parseTime(ts)
	r.Status = types.RequestStatus(st)
	if pdf.Valid {
		r.PDFFilename = pdf.String
	}
	return r, nil
}
