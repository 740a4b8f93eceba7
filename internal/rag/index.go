package rag

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/crawlab-team/bm25"

	"github.com/dut-ailab/advisor-go/internal/logger"
)

// NameResult is one candidate name with its BM25 score.
type NameResult struct {
	Name  string
	Score float64
	Rank  int // 1-indexed
}

// NameIndex ranks catalog names against free text using BM25.
// Safe for concurrent use; Initialize may be called again to rebuild.
type NameIndex struct {
	okapi       *bm25.BM25Okapi
	names       []string
	logger      *logger.Logger
	mu          sync.RWMutex
	initialized bool
}

// NewNameIndex creates an empty index.
func NewNameIndex(log *logger.Logger) *NameIndex {
	return &NameIndex{logger: log}
}

// Initialize builds the index over the given names. Blank names are dropped.
// k1=1.5, b=0.75 are standard BM25 parameters.
func (idx *NameIndex) Initialize(names []string) error {
	if idx == nil {
		return nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	var kept []string
	for _, name := range names {
		if strings.TrimSpace(name) != "" {
			kept = append(kept, name)
		}
	}

	if len(kept) == 0 {
		idx.okapi = nil
		idx.names = nil
		idx.initialized = true
		return nil
	}

	okapi, err := bm25.NewBM25Okapi(kept, Tokenize, 1.5, 0.75, nil)
	if err != nil {
		return fmt.Errorf("failed to create BM25 index: %w", err)
	}

	idx.okapi = okapi
	idx.names = kept
	idx.initialized = true

	if idx.logger != nil {
		idx.logger.WithField("names", len(kept)).Info("name index initialized")
	}
	return nil
}

// Search returns the topN names with positive scores, best first.
func (idx *NameIndex) Search(query string, topN int) ([]NameResult, error) {
	if idx == nil {
		return nil, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if !idx.initialized || idx.okapi == nil {
		return nil, nil
	}

	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	scores, err := idx.okapi.GetScores(tokens)
	if err != nil {
		return nil, fmt.Errorf("BM25 scoring failed: %w", err)
	}

	var results []NameResult
	for i, score := range scores {
		if score > 0 {
			results = append(results, NameResult{Name: idx.names[i], Score: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Name < results[j].Name
	})

	for i := range results {
		results[i].Rank = i + 1
	}

	if topN > 0 && len(results) > topN {
		results = results[:topN]
	}
	return results, nil
}

// Best returns the single best-matching name, or "" when nothing scores.
func (idx *NameIndex) Best(query string) (string, float64) {
	results, err := idx.Search(query, 1)
	if err != nil || len(results) == 0 {
		return "", 0
	}
	return results[0].Name, results[0].Score
}

// IsEnabled returns true once the index holds at least one name.
func (idx *NameIndex) IsEnabled() bool {
	if idx == nil {
		return false
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.initialized && idx.okapi != nil
}

// Count returns the number of indexed names.
func (idx *NameIndex) Count() int {
	if idx == nil {
		return 0
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.names)
}
