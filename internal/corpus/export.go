// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-browser/pkg/types"
)

// ExportJSON writes the papers as indented JSON.
func ExportJSON(papers []types.Paper, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(papers)
}

// ExportYAML writes the papers as a YAML document.
func ExportYAML(papers []types.Paper, w io.Writer) error {
	data, err := yaml.Marshal(papers)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// csvHeader lists the columns of a CSV export. ExtractedFeatures are
// omitted; CSV export targets spreadsheet use, not re-ingestion.
var csvHeader = []string{
	"id", "title", "authors", "journal", "year",
	"sample_size", "countries", "methodology", "citation",
}

// ExportCSV writes the papers as a headered CSV. Multi-valued fields are
// joined with "; ", mirroring the ingestion format.
func ExportCSV(papers []types.Paper, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, p := range papers {
		record := []string{
			p.ID,
			p.Title,
			strings.Join(p.Authors, "; "),
			p.Journal,
			strconv.Itoa(p.Year),
			strconv.Itoa(p.SampleSize),
			strings.Join(p.Countries, "; "),
			p.Methodology,
			p.Citation,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", p.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
