// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pdiddy/paper-browser/pkg/types"
)

// ErrNotFound reports a lookup for a paper id that is not in the corpus.
var ErrNotFound = errors.New("paper not found")

// Store holds the full paper collection for one process lifetime. A load
// swaps the whole snapshot under the lock, so readers never observe a
// partially-loaded corpus; between loads the collection is immutable and
// safe for concurrent reads.
type Store struct {
	mu         sync.RWMutex
	papers     []types.Paper
	byID       map[string]int
	generation uint64

	statsGen uint64
	stats    *types.Statistics
}

// NewStore returns an empty corpus store.
func NewStore() *Store {
	return &Store{byID: map[string]int{}}
}

// LoadFile resolves the CSV path from cfg, trying the fallback filename
// when the primary does not exist, and loads the corpus from it. On any
// failure the store is left holding an empty corpus and the error is
// returned for diagnostics; callers treat it as non-fatal and keep
// serving the empty state.
func (s *Store) LoadFile(cfg types.CorpusConfig) error {
	path := filepath.Join(cfg.DataDir, cfg.CSVFile)
	if _, err := os.Stat(path); os.IsNotExist(err) && cfg.FallbackCSVFile != "" {
		path = filepath.Join(cfg.DataDir, cfg.FallbackCSVFile)
	}

	f, err := os.Open(path)
	if err != nil {
		s.install(nil)
		return fmt.Errorf("opening corpus %s: %w", path, err)
	}
	defer f.Close()

	if err := s.Load(f); err != nil {
		return fmt.Errorf("loading corpus %s: %w", path, err)
	}
	return nil
}

// Load reads a headered CSV stream, maps every row, and atomically
// replaces the in-memory collection. A parse failure installs an empty
// corpus rather than leaving a partial one.
func (s *Store) Load(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // source rows are ragged; missing cells default

	header, err := cr.Read()
	if err != nil {
		s.install(nil)
		return fmt.Errorf("reading header row: %w", err)
	}

	var papers []types.Paper
	for ordinal := 1; ; ordinal++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.install(nil)
			return fmt.Errorf("reading row %d: %w", ordinal, err)
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		papers = append(papers, MapRow(row, ordinal))
	}

	s.install(papers)
	return nil
}

// install swaps in a new snapshot and bumps the load generation.
func (s *Store) install(papers []types.Paper) {
	byID := make(map[string]int, len(papers))
	for i, p := range papers {
		byID[p.ID] = i
	}

	s.mu.Lock()
	s.papers = papers
	s.byID = byID
	s.generation++
	s.mu.Unlock()
}

// All returns the corpus in ingestion order. The returned slice is the
// shared immutable snapshot; callers must not modify it.
func (s *Store) All() []types.Paper {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.papers
}

// ByID returns the paper with the given id, or ErrNotFound.
func (s *Store) ByID(id string) (types.Paper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return types.Paper{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.papers[i], nil
}

// Len returns the corpus size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.papers)
}

// Generation returns the load counter; it changes on every Load.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}
