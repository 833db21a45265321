// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-browser/internal/corpus"
	"github.com/pdiddy/paper-browser/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export [query]",
	Short: "Export the corpus (or a search result) to JSON, YAML, or CSV",
	Long: `Export writes the corpus to data/output/export.<format>. An optional
query and the search filter flags restrict the export to matching papers.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outDir, _ := cmd.Flags().GetString("out-dir")

	cfg := loadConfig()
	store := corpus.NewStore()
	if err := store.LoadFile(cfg.Corpus); err != nil {
		return err
	}

	filters := corpus.ParseFilters(func(key string) string {
		v, _ := cmd.Flags().GetString(flagNameFor(key))
		return v
	})
	papers := store.Search(strings.Join(args, " "), filters)

	var write func([]types.Paper, *os.File) error
	switch format {
	case "json":
		write = func(p []types.Paper, f *os.File) error { return corpus.ExportJSON(p, f) }
	case "yaml", "":
		format = "yaml"
		write = func(p []types.Paper, f *os.File) error { return corpus.ExportYAML(p, f) }
	case "csv":
		write = func(p []types.Paper, f *os.File) error { return corpus.ExportCSV(p, f) }
	default:
		return fmt.Errorf("unsupported format %q: use json, yaml, or csv", format)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(outDir, "export."+format)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := write(papers, f); err != nil {
		return err
	}
	fmt.Printf("Exported %d papers to %s\n", len(papers), path)
	return nil
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: json, yaml, or csv")
	exportCmd.Flags().String("out-dir", filepath.Join("data", "output"), "output directory")
	exportCmd.Flags().String("year-from", "", "inclusive lower bound on publication year")
	exportCmd.Flags().String("year-to", "", "inclusive upper bound on publication year")
	exportCmd.Flags().String("journal", "", "journal name substring filter")
	exportCmd.Flags().String("methodology", "", "exact methodology filter")
	exportCmd.Flags().String("country", "", "country substring filter")
	exportCmd.Flags().String("min-sample-size", "", "inclusive lower bound on sample size")
	exportCmd.Flags().String("sort-by", "", "sort order: year, citations, or sampleSize")

	rootCmd.AddCommand(exportCmd)
}
