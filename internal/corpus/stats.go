// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"sort"

	"github.com/pdiddy/paper-browser/pkg/types"
)

// Summarize derives the corpus-wide summary in one pass over the current
// snapshot. The result is cached per load generation; the corpus is
// immutable between loads, so the cache never goes stale mid-generation.
func (s *Store) Summarize() types.Statistics {
	s.mu.RLock()
	if s.stats != nil && s.statsGen == s.generation {
		cached := *s.stats
		s.mu.RUnlock()
		return cached
	}
	snapshot := s.papers
	gen := s.generation
	s.mu.RUnlock()

	stats := summarize(snapshot)

	s.mu.Lock()
	if s.generation == gen {
		s.stats = &stats
		s.statsGen = gen
	}
	s.mu.Unlock()

	return stats
}

func summarize(papers []types.Paper) types.Statistics {
	countries := map[string]struct{}{}
	methodologies := map[string]struct{}{}
	journals := map[string]struct{}{}
	years := map[int]struct{}{}

	totalStudies := 0
	for _, p := range papers {
		totalStudies += p.SampleSize
		for _, c := range p.Countries {
			countries[c] = struct{}{}
		}
		methodologies[p.Methodology] = struct{}{}
		journals[p.Journal] = struct{}{}
		years[p.Year] = struct{}{}
	}

	stats := types.Statistics{
		TotalPapers:    len(papers),
		TotalStudies:   totalStudies,
		TotalCountries: len(countries),
		Methodologies:  sortedKeys(methodologies),
		Journals:       sortedKeys(journals),
	}

	for y := range years {
		stats.Years = append(stats.Years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(stats.Years)))

	return stats
}

// sortedKeys returns the set's members in ascending order so JSON output
// is deterministic across calls.
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
