// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-browser/internal/corpus"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print corpus-wide statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	store := corpus.NewStore()
	if err := store.LoadFile(cfg.Corpus); err != nil {
		return err
	}
	stats := store.Summarize()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Printf("Papers:        %d\n", stats.TotalPapers)
	fmt.Printf("Participants:  %d\n", stats.TotalStudies)
	fmt.Printf("Countries:     %d\n", stats.TotalCountries)
	fmt.Printf("Methodologies: %s\n", strings.Join(stats.Methodologies, ", "))
	fmt.Printf("Journals:      %d\n", len(stats.Journals))
	if len(stats.Years) > 0 {
		fmt.Printf("Years:         %d-%d\n", stats.Years[len(stats.Years)-1], stats.Years[0])
	}
	return nil
}

func init() {
	statsCmd.Flags().Bool("json", false, "output statistics as JSON")

	rootCmd.AddCommand(statsCmd)
}
