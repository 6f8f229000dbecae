// Package views derives read-only projections of the recipe collection:
// the filtered and searched list, its sorted forms and the shopping list.
// Nothing here mutates the state it is given.
package views

import (
	"strings"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

// FilteredAndSearched applies the category filter and then the search term,
// keeping collection order. The filter matches exactly; FilterAll matches
// everything and an unknown value matches nothing. The search is a
// case-insensitive substring match on the name or any ingredient.
func FilteredAndSearched(state domain.State) []domain.Recipe {
	term := strings.ToLower(state.SearchTerm)

	out := make([]domain.Recipe, 0, len(state.Recipes))
	for _, r := range state.Recipes {
		if !matchesFilter(r, state.Filter) || !matchesSearch(r, term) {
			continue
		}
		out = append(out, r.Clone())
	}
	return out
}

func matchesFilter(r domain.Recipe, filter string) bool {
	return filter == domain.FilterAll || string(r.Category) == filter
}

// matchesSearch expects term already lowercased.
func matchesSearch(r domain.Recipe, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Name), term) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), term) {
			return true
		}
	}
	return false
}
