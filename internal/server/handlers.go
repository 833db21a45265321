// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-browser/internal/corpus"
	"github.com/pdiddy/paper-browser/internal/tracking"
	"github.com/pdiddy/paper-browser/pkg/types"
)

func (s *Server) handleListPapers(c *gin.Context) {
	c.JSON(http.StatusOK, s.corpus.All())
}

// handleSearch runs a query and records it in the search log. Logging is
// best effort: a failed write never fails the search.
func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("q")
	filters := corpus.ParseFilters(c.Query)

	results := s.corpus.Search(query, filters)
	requestsCounter.WithLabelValues("search").Inc()

	entry := types.SearchLog{
		Query:       query,
		FiltersJSON: filtersJSON(c.Query),
		ResultCount: len(results),
		SessionID:   c.GetHeader("X-Session-ID"),
	}
	if err := s.tracking.AppendSearch(c.Request.Context(), entry); err != nil {
		s.log.Warn("search log write failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"papers": results,
		"count":  len(results),
	})
}

func (s *Server) handleGetPaper(c *gin.Context) {
	id := c.Param("id")
	paper, err := s.corpus.ByID(id)
	if err != nil {
		if errors.Is(err, corpus.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "paper not found"})
			return
		}
		s.log.Error("paper lookup failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, paper)
}

func (s *Server) handleStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, s.corpus.Summarize())
}

// handleCompare resolves a comma-separated ids parameter and records the
// comparison view. Unknown ids are skipped, not errors.
func (s *Server) handleCompare(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("ids"))
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids parameter required"})
		return
	}

	var papers []types.Paper
	var found []string
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		paper, err := s.corpus.ByID(id)
		if err != nil {
			continue
		}
		papers = append(papers, paper)
		found = append(found, id)
	}
	requestsCounter.WithLabelValues("compare").Inc()

	entry := types.CompareViewLog{
		PaperIDs:  found,
		SessionID: c.GetHeader("X-Session-ID"),
	}
	if err := s.tracking.AppendCompareView(c.Request.Context(), entry); err != nil {
		s.log.Warn("compare log write failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"papers": papers,
		"count":  len(papers),
	})
}

func (s *Server) handleTrackSearch(c *gin.Context) {
	var req struct {
		Query       string          `json:"query"`
		Filters     json.RawMessage `json:"filters"`
		ResultCount int             `json:"result_count"`
		SessionID   string          `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry := types.SearchLog{
		Query:       req.Query,
		FiltersJSON: string(req.Filters),
		ResultCount: req.ResultCount,
		SessionID:   req.SessionID,
	}
	err := tracking.WithRetry(c.Request.Context(), 0, func() error {
		return s.tracking.AppendSearch(c.Request.Context(), entry)
	})
	if err != nil {
		s.log.Error("search log write failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record event"})
		return
	}
	requestsCounter.WithLabelValues("search").Inc()
	c.JSON(http.StatusOK, gin.H{"status": "logged"})
}

func (s *Server) handleTrackCompare(c *gin.Context) {
	var req struct {
		PaperIDs  []string `json:"paper_ids"`
		SessionID string   `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.PaperIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paper_ids required"})
		return
	}

	entry := types.CompareViewLog{PaperIDs: req.PaperIDs, SessionID: req.SessionID}
	err := tracking.WithRetry(c.Request.Context(), 0, func() error {
		return s.tracking.AppendCompareView(c.Request.Context(), entry)
	})
	if err != nil {
		s.log.Error("compare log write failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record event"})
		return
	}
	requestsCounter.WithLabelValues("compare").Inc()
	c.JSON(http.StatusOK, gin.H{"status": "logged"})
}

func (s *Server) handleTrackDownload(c *gin.Context) {
	var req struct {
		PaperIDs  []string `json:"paper_ids"`
		Format    string   `json:"format"`
		SessionID string   `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.PaperIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paper_ids required"})
		return
	}

	entry := types.DownloadLog{
		PaperIDs:  req.PaperIDs,
		Format:    req.Format,
		SessionID: req.SessionID,
	}
	err := tracking.WithRetry(c.Request.Context(), 0, func() error {
		return s.tracking.AppendDownload(c.Request.Context(), entry)
	})
	if err != nil {
		s.log.Error("download log write failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record event"})
		return
	}
	requestsCounter.WithLabelValues("download").Inc()
	c.JSON(http.StatusOK, gin.H{"status": "logged"})
}

// handleUploadRequest files a new paper submission for moderation. The
// request always enters the queue as pending.
func (s *Server) handleUploadRequest(c *gin.Context) {
	var req struct {
		RequestName    string `json:"request_name" binding:"required"`
		Institution    string `json:"institution"`
		Email          string `json:"email" binding:"required"`
		PaperInfo      string `json:"paper_info"`
		ChangeRequests string `json:"change_requests"`
		PDFFilename    string `json:"pdf_filename"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: request_name and email are required"})
		return
	}

	created, err := s.tracking.CreateRequest(c.Request.Context(), types.UploadRequest{
		RequestName:    req.RequestName,
		Institution:    req.Institution,
		Email:          req.Email,
		PaperInfo:      req.PaperInfo,
		ChangeRequests: req.ChangeRequests,
		PDFFilename:    req.PDFFilename,
	})
	if err != nil {
		s.log.Error("upload request creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save request"})
		return
	}

	s.log.Info("upload request filed",
		zap.Int64("id", created.ID),
		zap.String("institution", created.Institution))
	c.JSON(http.StatusCreated, created)
}

// filtersJSON serializes the active structured filter parameters for the
// search log, mirroring what the client actually sent.
func filtersJSON(get func(string) string) string {
	keys := []string{"yearFrom", "yearTo", "journal", "methodology", "country", "sampleSizeMin", "sortBy"}
	active := map[string]string{}
	for _, k := range keys {
		if v := get(k); v != "" {
			active[k] = v
		}
	}
	if len(active) == 0 {
		return "{}"
	}
	b, err := json.Marshal(active)
	if err != nil {
		return "{}"
	}
	return string(b)
}
