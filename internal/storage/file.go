package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Compile-time interface check.
var _ domain.SnapshotStore = (*FileStore)(nil)

// FileStore keeps the snapshot in a single file. Writes go to a temp file
// in the same directory and are renamed over the target, so readers only
// ever see a complete snapshot. An advisory lock on "<path>.lock"
// serialises writers from different processes; the last writer wins.
type FileStore struct {
	path string
	lock *flock.Flock
	log  *logger.Logger
}

// NewFileStore creates a file-backed snapshot store. The parent directory
// is created on first save.
func NewFileStore(path string, log *logger.Logger) *FileStore {
	return &FileStore{
		path: path,
		lock: flock.New(path + ".lock"),
		log:  log,
	}
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the snapshot file. A missing file returns domain.ErrNoSnapshot.
func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path) // #nosec G304 -- path comes from local config
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug("snapshot file %s does not exist yet", s.path)
			return nil, domain.ErrNoSnapshot
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	s.log.Debug("read snapshot %s (%d bytes)", s.path, len(data))
	return data, nil
}

// Save atomically replaces the snapshot file.
func (s *FileStore) Save(ctx context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock snapshot: %w", err)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.log.Warn("unlock snapshot %s: %v", s.path, err)
		}
	}()

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath) // already renamed on success
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	s.log.Debug("wrote snapshot %s (%d bytes)", s.path, len(data))
	return nil
}

// Close releases the lock file handle.
func (s *FileStore) Close() error {
	return s.lock.Close()
}
