package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/vovakirdan/swg/internal/stats"
)

// Backend names accepted by OpenBackend.
const (
	BackendSQLite   = "sqlite"
	BackendJSON     = "json"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Backends lists every supported backend name.
var Backends = []string{BackendSQLite, BackendJSON, BackendPostgres, BackendMemory}

// Backend is a stats store that owns resources to release.
type Backend interface {
	stats.Store
	io.Closer
}

// Options selects and configures a backend.
type Options struct {
	Backend     string
	Path        string // SQLite database file
	ProfilesDir string // JSON profile directory
	DSN         string // PostgreSQL connection string
}

// OpenBackend opens the backend named in opts.
func OpenBackend(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		return Open(opts.Path)
	case BackendJSON:
		return OpenFileStore(opts.ProfilesDir)
	case BackendPostgres:
		return OpenPostgres(ctx, opts.DSN)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Backend)
	}
}
