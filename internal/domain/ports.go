package domain

import "context"

// SnapshotStore is the durable key-value byte store behind the recipe
// store. Implementations can be in-memory, a file, SQLite, or any other
// medium that can replace a whole blob at once.
type SnapshotStore interface {
	// Load returns the last saved snapshot, or ErrNoSnapshot if nothing
	// has been written yet.
	Load(ctx context.Context) ([]byte, error)
	// Save overwrites the entire snapshot. A later Load must never see a
	// partially written snapshot.
	Save(ctx context.Context, data []byte) error
}

// Notifier delivers messages to the user. Implementations can write to
// stdout or through the terminal UI.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
