// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-browser/internal/tracking"
	"github.com/pdiddy/paper-browser/pkg/types"
)

func (s *Server) handleAdminStats(c *gin.Context) {
	stats, err := s.tracking.AdminStats(c.Request.Context())
	if err != nil {
		s.log.Error("admin stats query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats query failed"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// handleAdminLogs returns the newest entries of one activity log. The
// kind path segment selects the table; limit caps the page size.
func (s *Server) handleAdminLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	var payload any
	var err error
	switch tracking.LogKind(c.Param("kind")) {
	case tracking.KindSearch:
		payload, err = s.tracking.RecentSearchLogs(c.Request.Context(), limit)
	case tracking.KindCompare:
		payload, err = s.tracking.RecentCompareLogs(c.Request.Context(), limit)
	case tracking.KindDownload:
		payload, err = s.tracking.RecentDownloadLogs(c.Request.Context(), limit)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown log kind"})
		return
	}
	if err != nil {
		s.log.Error("log query failed", zap.String("kind", c.Param("kind")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "log query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": payload})
}

func (s *Server) handleAdminRequests(c *gin.Context) {
	status := types.RequestStatus(c.Query("status"))

	requests, err := s.tracking.ListRequests(c.Request.Context(), status)
	if err != nil {
		if errors.Is(err, tracking.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
			return
		}
		s.log.Error("request listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "request listing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests, "count": len(requests)})
}

// handleSetRequestStatus moves an upload request through the moderation
// workflow. Invalid status values are rejected without touching the row.
func (s *Server) handleSetRequestStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status field required"})
		return
	}

	err = s.tracking.SetStatus(c.Request.Context(), id, types.RequestStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, tracking.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
		case errors.Is(err, tracking.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		default:
			s.log.Error("status update failed", zap.Int64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "status update failed"})
		}
		return
	}

	updated, err := s.tracking.GetRequest(c.Request.Context(), id)
	if err != nil {
		s.log.Error("request reload failed", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "status update failed"})
		return
	}
	c.JSON(http.StatusOK, updated)
}
