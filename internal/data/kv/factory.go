package kv

import (
	"fmt"
	"os"
	"path/filepath"
)

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	fileStoreName   = "prefs.json"
	sqliteStoreName = "prefs.db"
)

// Open creates the store for backend inside dir
func Open(backend, dir string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(filepath.Join(dir, fileStoreName))
	case BackendSQLite:
		if err := ensureDir(dir); err != nil {
			return nil, err
		}
		return NewSQLiteStore(filepath.Join(dir, sqliteStoreName))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q (use file, sqlite or memory)", ErrUnknownBackend, backend)
	}
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}
