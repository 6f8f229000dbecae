package store

import (
	"strings"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

// RecipeDraft carries every recipe field except the id. It is what the
// add and edit forms produce.
type RecipeDraft struct {
	Name         string          `json:"name" validate:"required"`
	Ingredients  []string        `json:"ingredients" validate:"min=1,dive,required"`
	Instructions string          `json:"instructions" validate:"required"`
	ImageURL     string          `json:"imageUrl"`
	Category     domain.Category `json:"category" validate:"recipe_category"`
	IsFavorite   bool            `json:"isFavorite"`
	PrepTime     *int            `json:"prepTime" validate:"omitempty,gt=0"`
	Servings     *int            `json:"servings" validate:"omitempty,gt=0"`
}

// DraftOf returns the draft that would recreate r.
func DraftOf(r domain.Recipe) RecipeDraft {
	c := r.Clone()
	return RecipeDraft{
		Name:         c.Name,
		Ingredients:  c.Ingredients,
		Instructions: c.Instructions,
		ImageURL:     c.ImageURL,
		Category:     c.Category,
		IsFavorite:   c.IsFavorite,
		PrepTime:     c.PrepTime,
		Servings:     c.Servings,
	}
}

// normalize trims text fields and drops blank ingredient entries.
func (d RecipeDraft) normalize() RecipeDraft {
	out := d
	out.Name = strings.TrimSpace(d.Name)
	out.Instructions = strings.TrimSpace(d.Instructions)
	out.ImageURL = strings.TrimSpace(d.ImageURL)
	out.Category = domain.Category(strings.TrimSpace(string(d.Category)))
	out.Ingredients = make([]string, 0, len(d.Ingredients))
	for _, ing := range d.Ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			out.Ingredients = append(out.Ingredients, ing)
		}
	}
	if d.PrepTime != nil {
		out.PrepTime = domain.IntPtr(*d.PrepTime)
	}
	if d.Servings != nil {
		out.Servings = domain.IntPtr(*d.Servings)
	}
	return out
}

func (d RecipeDraft) toRecipe(id string) domain.Recipe {
	return domain.Recipe{
		ID:           id,
		Name:         d.Name,
		Ingredients:  append([]string(nil), d.Ingredients...),
		Instructions: d.Instructions,
		ImageURL:     d.ImageURL,
		Category:     d.Category,
		IsFavorite:   d.IsFavorite,
		PrepTime:     d.PrepTime,
		Servings:     d.Servings,
	}.Clone()
}

// CreateRequest asks the store to add a new recipe.
type CreateRequest struct {
	Draft RecipeDraft
}

// NewCreateRequest normalizes and validates draft. It returns a
// *domain.ValidationError when a required field is missing or invalid.
func NewCreateRequest(draft RecipeDraft) (CreateRequest, error) {
	d := draft.normalize()
	if err := validateDraft(d); err != nil {
		return CreateRequest{}, err
	}
	return CreateRequest{Draft: d}, nil
}

// UpdateRequest asks the store to replace the recipe with the given id.
type UpdateRequest struct {
	ID    string
	Draft RecipeDraft
}

// NewUpdateRequest normalizes and validates draft for the recipe id.
func NewUpdateRequest(id string, draft RecipeDraft) (UpdateRequest, error) {
	d := draft.normalize()
	if err := validateDraft(d); err != nil {
		return UpdateRequest{}, err
	}
	return UpdateRequest{ID: strings.TrimSpace(id), Draft: d}, nil
}
