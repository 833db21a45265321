// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the corpus and tracking stores over a JSON HTTP
// API. Browsing endpoints are public; the admin surface sits behind a
// token header.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/paper-browser/internal/corpus"
	"github.com/pdiddy/paper-browser/internal/tracking"
	"github.com/pdiddy/paper-browser/pkg/types"
)

var requestsCounter *prometheus.CounterVec

func init() {
	requestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paper_browser_events_total",
			Help: "Total number of browsing events handled, by kind.",
		},
		[]string{"kind"},
	)
	prometheus.MustRegister(requestsCounter)
}

// Server wires the corpus and tracking stores into HTTP handlers.
type Server struct {
	corpus   *corpus.Store
	tracking *tracking.Store
	log      *zap.Logger
	cfg      types.ServerConfig
	limiter  *rate.Limiter
}

// New builds a Server. A zero RateLimit disables throttling.
func New(c *corpus.Store, t *tracking.Store, log *zap.Logger, cfg types.ServerConfig) *Server {
	s := &Server{corpus: c, tracking: t, log: log, cfg: cfg}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return s
}

// Router assembles the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.rateLimitMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "papers": s.corpus.Len()})
	})

	api := router.Group("/api")
	api.GET("/papers", s.handleListPapers)
	api.GET("/search", s.handleSearch)
	api.GET("/paper/:id", s.handleGetPaper)
	api.GET("/statistics", s.handleStatistics)
	api.GET("/compare", s.handleCompare)
	api.POST("/track/search", s.handleTrackSearch)
	api.POST("/track/compare", s.handleTrackCompare)
	api.POST("/track/download", s.handleTrackDownload)
	api.POST("/upload-request", s.handleUploadRequest)

	admin := api.Group("/admin")
	admin.Use(s.adminAuthMiddleware())
	admin.GET("/stats", s.handleAdminStats)
	admin.GET("/logs/:kind", s.handleAdminLogs)
	admin.GET("/requests", s.handleAdminRequests)
	admin.PUT("/requests/:id/status", s.handleSetRequestStatus)

	return router
}

// HTTPServer wraps the router in an http.Server with timeouts applied.
func (s *Server) HTTPServer() *http.Server {
	readTimeout := s.cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 30 * time.Second
	}
	writeTimeout := s.cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 60 * time.Second
	}
	return &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       120 * time.Second,
	}
}

func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter != nil && !s.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// adminAuthMiddleware checks the X-Admin-Token header. An empty configured
// token leaves the admin surface open, for local development.
func (s *Server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.AdminToken == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-Admin-Token") != s.cfg.AdminToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: invalid admin token"})
			return
		}
		c.Next()
	}
}
