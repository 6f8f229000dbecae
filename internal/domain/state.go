package domain

// State is the full recipe collection state: the ordered recipes plus the
// transient filter and search criteria.
type State struct {
	Recipes    []Recipe
	Filter     string // FilterAll or a category name
	SearchTerm string // "" means no search constraint
	Revision   uint64 // bumped on every mutation, including filter/search changes
}

// SortKey selects the ordering of a derived view.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByCategory SortKey = "category"
	SortByFavorite SortKey = "favorite"
)

// SortKeys lists the supported sort keys.
var SortKeys = []SortKey{SortByName, SortByCategory, SortByFavorite}

// ParseSortKey converts a name to a SortKey.
// Returns false for unrecognized names.
func ParseSortKey(name string) (SortKey, bool) {
	for _, k := range SortKeys {
		if string(k) == name {
			return k, true
		}
	}
	return "", false
}
