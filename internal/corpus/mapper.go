// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus loads the paper corpus from a CSV export and serves
// search, filter, and aggregation over the in-memory collection.
package corpus

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/paper-browser/pkg/types"
)

// Fixed values shared by every mapped paper. The source export covers a
// single research program, so these do not vary per row.
const (
	defaultYear        = 2023
	defaultCountry     = "USA"
	defaultMethodology = "Unknown"
	researchType       = "Experimental Research"

	// countryMissing is the source sentinel for an unreported country.
	countryMissing = "NOT SPECIFIED"
)

var fixedKeywords = []string{"social media", "politics"}

// stringField maps a source column to a Paper string field. Adding a
// column is a table change, not a code change.
type stringField struct {
	column string
	def    string
	assign func(*types.Paper, string)
}

var stringFields = []stringField{
	{"title", "Untitled", func(p *types.Paper, v string) { p.Title = v }},
	{"title_verbatim", "", func(p *types.Paper, v string) { p.TitleVerbatim = v }},
	{"authors_verbatim", "", func(p *types.Paper, v string) { p.AuthorsVerbatim = v }},
	{"journal", "", func(p *types.Paper, v string) { p.Journal = v }},
	{"journal_verbatim", "", func(p *types.Paper, v string) { p.JournalVerbatim = v }},
	{"citation", "", func(p *types.Paper, v string) { p.Citation = v }},
	{"abstract", "", func(p *types.Paper, v string) { p.Abstract = v }},
	{"abstract_verbatim", "", func(p *types.Paper, v string) { p.AbstractVerbatim = v }},
	{"study_type", defaultMethodology, func(p *types.Paper, v string) { p.Methodology = v }},
}

// featureColumns lists the extraction columns copied verbatim into
// Paper.ExtractedFeatures. Absent columns yield the empty string.
var featureColumns = []string{
	"independent_variables",
	"independent_variables_verbatim",
	"dependent_variables",
	"dependent_variables_verbatim",
	"survey_questions",
	"survey_questions_verbatim",
	"incentive",
	"incentive_verbatim",
	"study_type",
	"study_type_verbatim",
	"analysis_equations",
	"analysis_equations_verbatim",
	"level_of_analysis",
	"level_of_analysis_verbatim",
	"main_effects",
	"main_effects_verbatim",
	"statistical_power",
	"statistical_power_verbatim",
	"moderators",
	"moderators_verbatim",
	"moderation_results",
	"moderation_results_verbatim",
	"demographics",
	"demographics_verbatim",
	"recruitment_source",
	"recruitment_source_verbatim",
	"sample_size",
	"sample_size_verbatim",
	"country_region",
	"sociocultural_context",
	"political_context",
	"platform_technological_context",
	"temporal_context",
	"recommended_moderators",
	"research_context",
	"intervention_insights",
}

// MapRow converts one CSV row into a normalized Paper. ordinal is the
// 1-based position of the row in the source file and determines the paper
// id. MapRow is pure and never fails: malformed numeric input falls back
// to the documented defaults.
func MapRow(row map[string]string, ordinal int) types.Paper {
	p := types.Paper{
		ID:           fmt.Sprintf("paper_%03d", ordinal),
		Year:         parseIntDefault(row["year"], defaultYear),
		SampleSize:   parseIntDefault(row["sample_size"], 0),
		Authors:      splitAuthors(row["authors"]),
		Countries:    mapCountries(row["country_region"]),
		ResearchType: researchType,
		Keywords:     fixedKeywords,
	}

	for _, f := range stringFields {
		v, ok := row[f.column]
		if !ok || v == "" {
			v = f.def
		}
		f.assign(&p, v)
	}

	features := make(map[string]string, len(featureColumns))
	for _, col := range featureColumns {
		features[col] = row[col]
	}
	p.ExtractedFeatures = features

	return p
}

// parseIntDefault parses s as a non-negative integer after stripping
// thousands separators. Any failure yields def.
func parseIntDefault(s string, def int) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// splitAuthors splits the raw author string on ";", trimming whitespace
// and dropping empty entries. Quoted separators are not supported.
func splitAuthors(raw string) []string {
	var authors []string
	for _, part := range strings.Split(raw, ";") {
		if a := strings.TrimSpace(part); a != "" {
			authors = append(authors, a)
		}
	}
	return authors
}

// mapCountries returns the single-entry country list, substituting the
// default when the source value is absent or the missing-data sentinel.
func mapCountries(raw string) []string {
	if raw == "" || raw == countryMissing {
		return []string{defaultCountry}
	}
	return []string{raw}
}
