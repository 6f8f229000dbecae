// Package command turns REPL input into typed commands and recipe drafts,
// and delivers notifications back to the user.
package command

// Type classifies what the user wants to do.
type Type int

const (
	Unknown Type = iota
	List
	Show
	Add
	Edit
	Delete
	Favorite
	Filter
	Search
	Sort
	Shop
	Cart
	ClearCart
	Share
	Export
	Import
	Help
	Quit
)

// String returns the command keyword.
func (t Type) String() string {
	switch t {
	case List:
		return "list"
	case Show:
		return "show"
	case Add:
		return "add"
	case Edit:
		return "edit"
	case Delete:
		return "delete"
	case Favorite:
		return "fav"
	case Filter:
		return "filter"
	case Search:
		return "search"
	case Sort:
		return "sort"
	case Shop:
		return "shop"
	case Cart:
		return "cart"
	case ClearCart:
		return "clear-cart"
	case Share:
		return "share"
	case Export:
		return "export"
	case Import:
		return "import"
	case Help:
		return "help"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is a parsed user action.
type Command struct {
	Type   Type
	Target string // recipe number from the last listing, or a recipe id
	Args   string // free text: fields, filter value, search text, sort key or path
}
