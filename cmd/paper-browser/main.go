// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-browser CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-browser/internal/secrets"
	"github.com/pdiddy/paper-browser/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the paper-browser CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-browser",
	Short: "Browse and moderate an academic literature corpus",
	Long: `paper-browser serves a CSV corpus of academic papers for browsing:
full-text search with structured filters, corpus statistics, activity
tracking, and a moderation queue for paper upload requests.

Run "paper-browser serve" for the JSON API, or use the search, stats,
export, and requests subcommands directly against the local data.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-browser.yaml or ~/.config/paper-browser/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-browser")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-browser"))
		}
	}

	viper.SetEnvPrefix("PAPER_BROWSER")
	viper.AutomaticEnv()

	viper.SetDefault("corpus.data_dir", "data")
	viper.SetDefault("corpus.csv_file", "papers_extracted.csv")
	viper.SetDefault("corpus.fallback_csv_file", "papers.csv")
	viper.SetDefault("tracking.db_dir", filepath.Join("data", "output"))
	viper.SetDefault("tracking.timezone", "UTC")
	viper.SetDefault("tracking.busy_timeout", 5*time.Second)
	viper.SetDefault("server.addr", ":5001")
	viper.SetDefault("server.rate_limit", 0)
	viper.SetDefault("server.rate_burst", 0)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the resolved configuration. The admin token may
// come from config, environment, or the .secrets/ directory; the secret
// file wins only when config leaves it empty.
func loadConfig() types.Config {
	cfg := types.Config{
		Corpus: types.CorpusConfig{
			DataDir:         viper.GetString("corpus.data_dir"),
			CSVFile:         viper.GetString("corpus.csv_file"),
			FallbackCSVFile: viper.GetString("corpus.fallback_csv_file"),
		},
		Tracking: types.TrackingConfig{
			DBDir:       viper.GetString("tracking.db_dir"),
			Timezone:    viper.GetString("tracking.timezone"),
			BusyTimeout: viper.GetDuration("tracking.busy_timeout"),
		},
		Server: types.ServerConfig{
			Addr:         viper.GetString("server.addr"),
			AdminToken:   viper.GetString("server.admin_token"),
			RateLimit:    viper.GetFloat64("server.rate_limit"),
			RateBurst:    viper.GetInt("server.rate_burst"),
			ReadTimeout:  viper.GetDuration("server.read_timeout"),
			WriteTimeout: viper.GetDuration("server.write_timeout"),
		},
	}
	if cfg.Server.AdminToken == "" {
		cfg.Server.AdminToken = loadedSecrets[secrets.AdminTokenKey]
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
