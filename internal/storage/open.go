package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists the supported backend names.
var Backends = []string{BackendFile, BackendSQLite, BackendMemory}

// Adapter is a snapshot store that holds resources until closed.
type Adapter interface {
	domain.SnapshotStore
	io.Closer
}

// Options selects and configures a backend.
type Options struct {
	Backend string
	Path    string // file path or sqlite database path; unused for memory
}

// Open builds the adapter named by opts.Backend.
func Open(ctx context.Context, opts Options, log *logger.Logger) (Adapter, error) {
	switch opts.Backend {
	case BackendFile, "":
		if opts.Path == "" {
			return nil, fmt.Errorf("file backend needs a path")
		}
		return NewFileStore(opts.Path, log), nil
	case BackendSQLite:
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite backend needs a path")
		}
		s, err := NewSQLiteStore(ctx, opts.Path, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return NewMemoryStore(log), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
