// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// CorpusConfig holds settings for loading the paper corpus.
type CorpusConfig struct {
	// DataDir is the directory containing the CSV export (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// CSVFile is the corpus filename inside DataDir
	// (default "papers_extracted.csv").
	CSVFile string `json:"csv_file" yaml:"csv_file"`

	// FallbackCSVFile is tried when CSVFile does not exist
	// (default "papers.csv").
	FallbackCSVFile string `json:"fallback_csv_file" yaml:"fallback_csv_file"`
}

// TrackingConfig holds settings for the activity log and moderation store.
type TrackingConfig struct {
	// DBDir is the directory for the SQLite file (default "data/output").
	DBDir string `json:"db_dir" yaml:"db_dir"`

	// Timezone is the IANA name of the civil timezone used for log
	// timestamps regardless of server locale (default "UTC").
	Timezone string `json:"timezone" yaml:"timezone"`

	// BusyTimeout is how long a statement waits on a locked database before
	// reporting a retryable busy error (default 5s).
	BusyTimeout time.Duration `json:"busy_timeout" yaml:"busy_timeout"`
}

// ServerConfig holds settings for the JSON API server.
type ServerConfig struct {
	// Addr is the listen address (default ":5001").
	Addr string `json:"addr" yaml:"addr"`

	// AdminToken gates the admin endpoints. When empty the gate is open,
	// which is intended for local development only.
	AdminToken string `json:"admin_token,omitempty" yaml:"admin_token,omitempty"`

	// RateLimit is the sustained requests-per-second budget for the whole
	// API; RateBurst is the token-bucket burst. Zero disables limiting.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`
	RateBurst int     `json:"rate_burst" yaml:"rate_burst"`

	// ReadTimeout and WriteTimeout bound request handling.
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

// Config groups all component configurations.
type Config struct {
	Corpus   CorpusConfig   `json:"corpus" yaml:"corpus"`
	Tracking TrackingConfig `json:"tracking" yaml:"tracking"`
	Server   ServerConfig   `json:"server" yaml:"server"`
}
