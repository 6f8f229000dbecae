package views

import (
	"slices"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

// Sorter orders recipe lists. Name and category orderings use
// locale-aware collation.
type Sorter struct {
	mu   sync.Mutex // collate.Collator is not safe for concurrent use
	coll *collate.Collator
	tag  language.Tag
}

// NewSorter builds a sorter for the BCP 47 locale. An empty or malformed
// locale falls back to DefaultLocale.
func NewSorter(locale string) *Sorter {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.Make(DefaultLocale)
	}
	return &Sorter{coll: collate.New(tag), tag: tag}
}

// Locale returns the collation locale in use.
func (s *Sorter) Locale() string { return s.tag.String() }

// Sorted returns a new slice ordered by key. Every ordering is stable, so
// equal elements keep their input order. An unknown key keeps input order.
func (s *Sorter) Sorted(list []domain.Recipe, key domain.SortKey) []domain.Recipe {
	out := make([]domain.Recipe, len(list))
	for i, r := range list {
		out[i] = r.Clone()
	}

	switch key {
	case domain.SortByName:
		s.mu.Lock()
		defer s.mu.Unlock()
		slices.SortStableFunc(out, func(a, b domain.Recipe) int {
			return s.coll.CompareString(a.Name, b.Name)
		})
	case domain.SortByCategory:
		s.mu.Lock()
		defer s.mu.Unlock()
		slices.SortStableFunc(out, func(a, b domain.Recipe) int {
			return s.coll.CompareString(string(a.Category), string(b.Category))
		})
	case domain.SortByFavorite:
		slices.SortStableFunc(out, func(a, b domain.Recipe) int {
			return favoriteRank(a) - favoriteRank(b)
		})
	}
	return out
}

func favoriteRank(r domain.Recipe) int {
	if r.IsFavorite {
		return 0
	}
	return 1
}
