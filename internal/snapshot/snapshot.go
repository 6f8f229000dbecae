// Package snapshot converts the recipe collection to and from the byte
// payload handed to a domain.SnapshotStore.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

// Encode serializes the collection as a JSON array. An empty collection
// encodes as "[]", never "null".
func Encode(recipes []domain.Recipe) ([]byte, error) {
	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	data, err := json.Marshal(recipes)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot. Empty, whitespace-only and "null" payloads
// decode to an empty collection. Anything else that is not a JSON array of
// recipes returns a *domain.DeserializationError.
func Decode(data []byte) ([]domain.Recipe, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []domain.Recipe{}, nil
	}

	var recipes []domain.Recipe
	if err := json.Unmarshal(trimmed, &recipes); err != nil {
		return nil, &domain.DeserializationError{Err: err}
	}
	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	return recipes, nil
}
