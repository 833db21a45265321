// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RequestStatus is the moderation state of an upload request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Valid reports whether s is one of the recognized moderation states.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// SearchLog records one executed search. Append-only.
type SearchLog struct {
	// ID is the auto-incrementing row id.
	ID int64 `json:"id" yaml:"id"`

	// Timestamp is the wall-clock insert time in the store's civil timezone.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Query is the free-text search string, possibly empty.
	Query string `json:"query" yaml:"query"`

	// FiltersJSON is the JSON encoding of the active structured filters.
	FiltersJSON string `json:"filters" yaml:"filters"`

	// ResultCount is the number of papers the search returned.
	ResultCount int `json:"result_count" yaml:"result_count"`

	// SessionID identifies the anonymous browser session, possibly empty.
	SessionID string `json:"session_id" yaml:"session_id"`
}

// CompareViewLog records one side-by-side comparison view. Append-only.
type CompareViewLog struct {
	ID        int64     `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// PaperIDs lists the compared papers.
	PaperIDs []string `json:"paper_ids" yaml:"paper_ids"`

	// Count is the number of papers in the comparison.
	Count int `json:"count" yaml:"count"`

	SessionID string `json:"session_id" yaml:"session_id"`
}

// DownloadLog records one export/download of paper records. Append-only.
type DownloadLog struct {
	ID        int64     `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	PaperIDs  []string  `json:"paper_ids" yaml:"paper_ids"`
	Count     int       `json:"count" yaml:"count"`

	// Format is the requested download format; defaults to "CSV".
	Format string `json:"format" yaml:"format"`

	SessionID string `json:"session_id" yaml:"session_id"`
}

// UploadRequest is a visitor-submitted request to add or amend a paper.
// Status is the only mutable field; transitions go through the moderation
// workflow.
type UploadRequest struct {
	ID        int64     `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// RequestName is the submitter's display name.
	RequestName string `json:"request_name" yaml:"request_name"`

	// Institution is the submitter's affiliation.
	Institution string `json:"institution" yaml:"institution"`

	// Email is the submitter's contact address.
	Email string `json:"email" yaml:"email"`

	// PaperInfo is the free-text description of the paper.
	PaperInfo string `json:"paper_info" yaml:"paper_info"`

	// ChangeRequests describes corrections to existing records.
	ChangeRequests string `json:"change_requests" yaml:"change_requests"`

	// PDFFilename references an already-stored PDF, empty when none was
	// attached.
	PDFFilename string `json:"pdf_filename,omitempty" yaml:"pdf_filename,omitempty"`

	// Status is pending, approved, or rejected; pending at creation.
	Status RequestStatus `json:"status" yaml:"status"`
}

// QueryCount is one entry of the top-queries ranking.
type QueryCount struct {
	Query string `json:"query" yaml:"query"`
	Count int    `json:"count" yaml:"count"`
}

// KindStats bundles the per-kind counters shown on the admin dashboard.
type KindStats struct {
	// Total is the all-time number of logged events.
	Total int `json:"total" yaml:"total"`

	// Recent is the number of events in the trailing seven days.
	Recent int `json:"recent" yaml:"recent"`
}

// AdminStats is the aggregate usage bundle for the admin dashboard.
type AdminStats struct {
	Searches     KindStats `json:"searches" yaml:"searches"`
	CompareViews KindStats `json:"compare_views" yaml:"compare_views"`
	Downloads    KindStats `json:"downloads" yaml:"downloads"`

	// TopQueries ranks non-empty search queries by exact-string frequency.
	TopQueries []QueryCount `json:"top_queries" yaml:"top_queries"`

	// PendingRequests is the number of upload requests awaiting moderation.
	PendingRequests int `json:"pending_requests" yaml:"pending_requests"`
}
