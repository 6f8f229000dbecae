package views

import (
	"sync"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

type filterKey struct {
	revision uint64
	filter   string
	search   string
}

type sortKey struct {
	filterKey
	sort domain.SortKey
}

// Stats counts cache lookups.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Engine memoizes the visible list. Entries are keyed by the state
// revision and criteria, so any mutation of the state misses the cache.
// Safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	sorter   *Sorter
	filtered map[filterKey][]domain.Recipe
	sorted   map[sortKey][]domain.Recipe
	revision uint64
	stats    Stats
	log      *logger.Logger
}

// NewEngine creates an engine that sorts with sorter.
func NewEngine(sorter *Sorter, log *logger.Logger) *Engine {
	return &Engine{
		sorter:   sorter,
		filtered: make(map[filterKey][]domain.Recipe),
		sorted:   make(map[sortKey][]domain.Recipe),
		log:      log,
	}
}

// Filtered returns FilteredAndSearched(state), cached.
func (e *Engine) Filtered(state domain.State) []domain.Recipe {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyList(e.filteredLocked(state))
}

// Visible returns the filtered, searched and sorted list, cached.
func (e *Engine) Visible(state domain.State, key domain.SortKey) []domain.Recipe {
	e.mu.Lock()
	defer e.mu.Unlock()

	k := sortKey{filterKey: keyOf(state), sort: key}
	if list, ok := e.sorted[k]; ok {
		e.stats.Hits++
		return copyList(list)
	}
	e.stats.Misses++

	list := e.sorter.Sorted(e.filteredLocked(state), key)
	e.sorted[k] = list
	return copyList(list)
}

// Stats returns the hit and miss counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

func (e *Engine) filteredLocked(state domain.State) []domain.Recipe {
	k := keyOf(state)
	e.evictOlder(k.revision)

	if list, ok := e.filtered[k]; ok {
		e.stats.Hits++
		return list
	}
	e.stats.Misses++

	list := FilteredAndSearched(state)
	e.filtered[k] = list
	e.log.Debug("view recomputed at revision %d: %d recipes", k.revision, len(list))
	return list
}

// evictOlder drops entries for any other revision. Only the latest
// revision is ever asked for again.
func (e *Engine) evictOlder(revision uint64) {
	if revision == e.revision {
		return
	}
	e.revision = revision
	clear(e.filtered)
	clear(e.sorted)
}

func keyOf(state domain.State) filterKey {
	return filterKey{revision: state.Revision, filter: state.Filter, search: state.SearchTerm}
}

func copyList(in []domain.Recipe) []domain.Recipe {
	out := make([]domain.Recipe, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
