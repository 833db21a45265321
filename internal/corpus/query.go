// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/paper-browser/pkg/types"
)

// FilterSet holds the structured search filters. Zero values mean the
// filter is inactive; active filters combine with AND.
type FilterSet struct {
	// YearFrom and YearTo are inclusive bounds on the publication year.
	YearFrom int
	YearTo   int

	// Journal matches case-insensitively as a substring of the journal name.
	Journal string

	// Methodology matches the methodology exactly, case-sensitive.
	Methodology string

	// Country matches case-insensitively as a substring of any country entry.
	Country string

	// SampleSizeMin is an inclusive lower bound on the sample size.
	SampleSizeMin int

	// SortBy selects the result order: "year" (default), "citations", or
	// "sampleSize", each descending and stable. Any other value keeps
	// ingestion order.
	SortBy string
}

// IsZero reports whether no filter and no explicit sort is set.
func (f FilterSet) IsZero() bool {
	return f == FilterSet{}
}

// ParseFilters builds a FilterSet from flat string parameters, as they
// arrive from query strings or CLI flags. Non-numeric values for numeric
// filters are ignored rather than reported; lookup of absent keys must
// return the empty string.
func ParseFilters(get func(string) string) FilterSet {
	return FilterSet{
		YearFrom:      atoiOrZero(get("yearFrom")),
		YearTo:        atoiOrZero(get("yearTo")),
		Journal:       get("journal"),
		Methodology:   get("methodology"),
		Country:       get("country"),
		SampleSizeMin: atoiOrZero(get("sampleSizeMin")),
		SortBy:        get("sortBy"),
	}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Search returns the papers matching the free-text query and filters, in
// the requested sort order. The result is a fresh slice over the current
// snapshot; the corpus itself is never modified. An empty query with an
// empty FilterSet returns the full corpus in ingestion order.
func (s *Store) Search(query string, f FilterSet) []types.Paper {
	snapshot := s.All()

	terms := strings.Fields(strings.ToLower(query))

	results := make([]types.Paper, 0, len(snapshot))
	for _, p := range snapshot {
		if matchesTerms(p, terms) && matchesFilters(p, f) {
			results = append(results, p)
		}
	}

	sortResults(results, f.SortBy)
	return results
}

// matchesTerms reports whether every term is a substring of the paper's
// searchable text. Terms are already lowercased; matching inside a larger
// word counts.
func matchesTerms(p types.Paper, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	haystack := strings.ToLower(p.Title + " " + p.Abstract + " " +
		strings.Join(p.Authors, " ") + " " + p.Journal)
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

func matchesFilters(p types.Paper, f FilterSet) bool {
	if f.YearFrom != 0 && p.Year < f.YearFrom {
		return false
	}
	if f.YearTo != 0 && p.Year > f.YearTo {
		return false
	}
	if f.Journal != "" &&
		!strings.Contains(strings.ToLower(p.Journal), strings.ToLower(f.Journal)) {
		return false
	}
	if f.Methodology != "" && p.Methodology != f.Methodology {
		return false
	}
	if f.Country != "" && !matchesCountry(p.Countries, f.Country) {
		return false
	}
	if f.SampleSizeMin != 0 && p.SampleSize < f.SampleSizeMin {
		return false
	}
	return true
}

func matchesCountry(countries []string, want string) bool {
	want = strings.ToLower(want)
	for _, c := range countries {
		if strings.Contains(strings.ToLower(c), want) {
			return true
		}
	}
	return false
}

// sortResults orders results descending by the requested key. The sort is
// stable, so ties keep their relative ingestion order. Unrecognized keys
// (including "relevance") leave ingestion order untouched.
func sortResults(results []types.Paper, sortBy string) {
	var key func(p types.Paper) int
	switch sortBy {
	case "year":
		key = func(p types.Paper) int { return p.Year }
	case "citations":
		key = func(p types.Paper) int { return p.Citations }
	case "sampleSize":
		key = func(p types.Paper) int { return p.SampleSize }
	default:
		return
	}
	sort.SliceStable(results, func(i, j int) bool {
		return key(results[i]) > key(results[j])
	})
}
