// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-browser/internal/corpus"
	"github.com/pdiddy/paper-browser/internal/server"
	"github.com/pdiddy/paper-browser/internal/tracking"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON API server",
	Long: `Serve loads the corpus, opens the tracking database, and listens for
API requests. Browsing endpoints are public; /api/admin requires the
X-Admin-Token header when an admin token is configured.

A missing corpus file is not fatal: the server starts with an empty
corpus so the moderation and tracking endpoints stay available.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	store := corpus.NewStore()
	if err := store.LoadFile(cfg.Corpus); err != nil {
		log.Warn("corpus load failed, serving empty corpus", zap.Error(err))
	} else {
		log.Info("corpus loaded", zap.Int("papers", store.Len()))
	}

	track, err := tracking.NewStore(cfg.Tracking)
	if err != nil {
		return fmt.Errorf("opening tracking store: %w", err)
	}
	defer track.Close()

	if cfg.Server.AdminToken == "" {
		fmt.Fprintln(os.Stderr, "warning: no admin token configured, admin endpoints are open")
	}

	srv := server.New(store, track, log, cfg.Server).HTTPServer()
	log.Info("starting server", zap.String("addr", srv.Addr))
	return srv.ListenAndServe()
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
