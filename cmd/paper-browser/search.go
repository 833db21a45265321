// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-browser/internal/corpus"
	"github.com/pdiddy/paper-browser/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the corpus with free text and filters",
	Long: `Search matches every query term as a case-insensitive substring of a
paper's title, abstract, authors, or journal. Structured filters narrow
the result further; all active filters must hold.

Sort orders: year, citations, sampleSize (each descending). Without
--sort-by results keep corpus order.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	store := corpus.NewStore()
	if err := store.LoadFile(cfg.Corpus); err != nil {
		return err
	}

	filters := corpus.ParseFilters(func(key string) string {
		v, _ := cmd.Flags().GetString(flagNameFor(key))
		return v
	})

	results := store.Search(strings.Join(args, " "), filters)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	printPaperTable(results)
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// flagNameFor converts a camelCase filter key to its kebab-case flag.
func flagNameFor(key string) string {
	switch key {
	case "yearFrom":
		return "year-from"
	case "yearTo":
		return "year-to"
	case "sampleSizeMin":
		return "min-sample-size"
	case "sortBy":
		return "sort-by"
	}
	return key
}

func printPaperTable(papers []types.Paper) {
	fmt.Fprintf(os.Stdout, "%-10s  %-45s  %-25s  %-6s  %-12s  %s\n",
		"ID", "Title", "Journal", "Year", "Methodology", "N")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, p := range papers {
		title := p.Title
		if len(title) > 45 {
			title = title[:42] + "..."
		}
		journal := p.Journal
		if len(journal) > 25 {
			journal = journal[:22] + "..."
		}
		methodology := p.Methodology
		if len(methodology) > 12 {
			methodology = methodology[:9] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-10s  %-45s  %-25s  %-6s  %-12s  %d\n",
			p.ID, title, journal, strconv.Itoa(p.Year), methodology, p.SampleSize)
	}
}

func init() {
	searchCmd.Flags().String("year-from", "", "inclusive lower bound on publication year")
	searchCmd.Flags().String("year-to", "", "inclusive upper bound on publication year")
	searchCmd.Flags().String("journal", "", "journal name substring filter")
	searchCmd.Flags().String("methodology", "", "exact methodology filter")
	searchCmd.Flags().String("country", "", "country substring filter")
	searchCmd.Flags().String("min-sample-size", "", "inclusive lower bound on sample size")
	searchCmd.Flags().String("sort-by", "", "sort order: year, citations, or sampleSize")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
