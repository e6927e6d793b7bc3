package store

import (
	"path/filepath"

	"fjacquet/fintrack/internal/logging"
)

// Options selects and configures a backend for Open.
type Options struct {
	Backend       Backend
	Directory     string
	SQLiteFile    string
	BackupEnabled bool
}

// Open builds the configured Store. A relative SQLite file is resolved
// against the data directory.
func Open(opts Options, logger logging.Logger) (Store, error) {
	switch opts.Backend {
	case BackendSQLite:
		path := opts.SQLiteFile
		if path == "" {
			path = "fintrack.db"
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(opts.Directory, path)
		}
		return NewSQLiteStore(path, logger)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return NewJSONStore(opts.Directory, opts.BackupEnabled, logger)
	}
}
