package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/store"
)

// Canonical field keys accepted by ParseFields.
const (
	FieldName         = "name"
	FieldIngredients  = "ingredients"
	FieldInstructions = "instructions"
	FieldImageURL     = "imageUrl"
	FieldCategory     = "category"
	FieldPrepTime     = "prepTime"
	FieldServings     = "servings"
	FieldFavorite     = "favorite"
)

// fieldAliases maps lowercased user keys to canonical keys.
var fieldAliases = map[string]string{
	"name":         FieldName,
	"title":        FieldName,
	"ingredients":  FieldIngredients,
	"ing":          FieldIngredients,
	"instructions": FieldInstructions,
	"steps":        FieldInstructions,
	"image":        FieldImageURL,
	"imageurl":     FieldImageURL,
	"category":     FieldCategory,
	"cat":          FieldCategory,
	"prep":         FieldPrepTime,
	"preptime":     FieldPrepTime,
	"servings":     FieldServings,
	"serves":       FieldServings,
	"favorite":     FieldFavorite,
	"fav":          FieldFavorite,
}

// ParseFields parses "key=value; key=value" text. Keys are matched
// case-insensitively against the known fields and their aliases; values
// are trimmed. A segment without "=", an unknown key or a repeated key is
// an error.
func ParseFields(text string) (map[string]string, error) {
	fields := make(map[string]string)
	for _, seg := range strings.Split(text, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		key, value, ok := strings.Cut(seg, "=")
		if !ok {
			return nil, fmt.Errorf("expected key=value, got %q", seg)
		}
		canonical, known := fieldAliases[strings.ToLower(strings.TrimSpace(key))]
		if !known {
			return nil, fmt.Errorf("unknown field %q", strings.TrimSpace(key))
		}
		if _, dup := fields[canonical]; dup {
			return nil, fmt.Errorf("field %q given twice", canonical)
		}
		fields[canonical] = strings.TrimSpace(value)
	}
	return fields, nil
}

// DraftFromFields builds a recipe draft from parsed fields. When base is
// non-nil the draft starts from it, so unspecified fields keep their
// current values; otherwise the category defaults to Main Course.
// Numeric and boolean fields that do not parse return a
// *domain.ValidationError.
func DraftFromFields(fields map[string]string, base *domain.Recipe) (store.RecipeDraft, error) {
	var d store.RecipeDraft
	if base != nil {
		d = store.DraftOf(*base)
	} else {
		d.Category = domain.CategoryMainCourse
	}

	var bad []domain.FieldError
	for key, value := range fields {
		switch key {
		case FieldName:
			d.Name = value
		case FieldIngredients:
			d.Ingredients = ParseIngredients(value)
		case FieldInstructions:
			d.Instructions = value
		case FieldImageURL:
			d.ImageURL = value
		case FieldCategory:
			if c, ok := domain.ParseCategory(value); ok {
				d.Category = c
			} else {
				// Left as typed so validation reports it.
				d.Category = domain.Category(value)
			}
		case FieldPrepTime, FieldServings:
			n, err := parseOptionalInt(value)
			if err != nil {
				bad = append(bad, domain.FieldError{Field: key, Message: "must be a whole number"})
				continue
			}
			if key == FieldPrepTime {
				d.PrepTime = n
			} else {
				d.Servings = n
			}
		case FieldFavorite:
			b, err := strconv.ParseBool(value)
			if err != nil {
				bad = append(bad, domain.FieldError{Field: key, Message: "must be true or false"})
				continue
			}
			d.IsFavorite = b
		default:
			bad = append(bad, domain.FieldError{Field: key, Message: "is not a recipe field"})
		}
	}

	if len(bad) > 0 {
		return store.RecipeDraft{}, &domain.ValidationError{Fields: bad}
	}
	return d, nil
}

// parseOptionalInt returns nil for an empty value, which clears the field.
func parseOptionalInt(value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return domain.IntPtr(n), nil
}
