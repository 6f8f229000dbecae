package store

import "github.com/google/uuid"

// maxIDAttempts bounds the collision retry loop so a broken generator
// fails instead of spinning.
const maxIDAttempts = 16

// generateID creates a random UUID for a new recipe.
func generateID() string {
	return uuid.NewString()
}
