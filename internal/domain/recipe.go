// Package domain defines the core types and interfaces for the recipe box.
// All other packages depend on domain; domain depends on nothing.
package domain

import "strings"

// Recipe is a single entry in the collection.
type Recipe struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Ingredients  []string `json:"ingredients" yaml:"ingredients"`
	Instructions string   `json:"instructions" yaml:"instructions"`
	ImageURL     string   `json:"imageUrl" yaml:"imageUrl"`
	Category     Category `json:"category" yaml:"category"`
	IsFavorite   bool     `json:"isFavorite" yaml:"isFavorite"`
	PrepTime     *int     `json:"prepTime,omitempty" yaml:"prepTime,omitempty"`
	Servings     *int     `json:"servings,omitempty" yaml:"servings,omitempty"`
}

// Clone returns a deep copy so callers can't mutate store-owned slices
// or optional fields.
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = append([]string(nil), r.Ingredients...)
	if r.PrepTime != nil {
		v := *r.PrepTime
		out.PrepTime = &v
	}
	if r.Servings != nil {
		v := *r.Servings
		out.Servings = &v
	}
	return out
}

// Category classifies a recipe. Only the values in Categories are valid.
type Category string

const (
	CategoryDessert    Category = "Dessert"
	CategoryMainCourse Category = "Main Course"
	CategorySnack      Category = "Snack"
	CategoryAppetizer  Category = "Appetizer"
	CategoryBeverage   Category = "Beverage"
)

// FilterAll is the filter value that matches every category.
const FilterAll = "all"

// Categories lists the valid categories in display order.
var Categories = []Category{
	CategoryDessert,
	CategoryMainCourse,
	CategorySnack,
	CategoryAppetizer,
	CategoryBeverage,
}

// Valid reports whether c is one of the enumerated categories.
// The comparison is exact.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the display name.
func (c Category) String() string { return string(c) }

// ParseCategory resolves user input to a canonical category, ignoring case
// and surrounding whitespace. Returns false for unknown names.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, known := range Categories {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}

// IntPtr is a small helper for the optional integer fields.
func IntPtr(v int) *int { return &v }
