package store

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their wire names so messages match the snapshot.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("recipe_category", func(fl validator.FieldLevel) bool {
		c, ok := fl.Field().Interface().(domain.Category)
		return ok && c.Valid()
	})
	return v
}

// validateDraft returns a *domain.ValidationError listing every offending
// field, or nil.
func validateDraft(d RecipeDraft) error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &domain.ValidationError{Fields: []domain.FieldError{{Field: "draft", Message: err.Error()}}}
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, formatFieldError(e))
	}
	return &domain.ValidationError{Fields: fields}
}

// requiredFields are the fields whose absence makes a stored record unusable.
var requiredFields = []string{"name", "ingredients", "instructions"}

// lacksRequired reports whether err names one of requiredFields.
func lacksRequired(err error) bool {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return true
	}
	for _, f := range requiredFields {
		if verr.HasField(f) {
			return true
		}
	}
	return false
}

func formatFieldError(e validator.FieldError) domain.FieldError {
	field := e.Field()
	if i := strings.IndexByte(field, '['); i > 0 {
		field = field[:i]
	}

	var msg string
	switch e.Tag() {
	case "required":
		msg = "is required"
	case "min":
		msg = fmt.Sprintf("needs at least %s entry", e.Param())
	case "gt":
		msg = fmt.Sprintf("must be greater than %s", e.Param())
	case "recipe_category":
		names := make([]string, len(domain.Categories))
		for i, c := range domain.Categories {
			names[i] = string(c)
		}
		msg = "must be one of: " + strings.Join(names, ", ")
	default:
		msg = "is invalid"
	}
	return domain.FieldError{Field: field, Message: msg}
}
