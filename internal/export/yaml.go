// Package export reads and writes the recipe collection as YAML for backup
// and exchange between installations.
package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

// document is the top-level YAML layout.
type document struct {
	Recipes []domain.Recipe `yaml:"recipes"`
}

// WriteYAML writes recipes to w.
func WriteYAML(w io.Writer, recipes []domain.Recipe) error {
	doc := document{Recipes: recipes}
	if doc.Recipes == nil {
		doc.Recipes = []domain.Recipe{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// ReadYAML reads recipes written by WriteYAML. Records are returned as
// found; callers validate them before use.
func ReadYAML(r io.Reader) ([]domain.Recipe, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return []domain.Recipe{}, nil
		}
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if doc.Recipes == nil {
		doc.Recipes = []domain.Recipe{}
	}
	return doc.Recipes, nil
}
