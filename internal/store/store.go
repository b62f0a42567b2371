// Package store persists the form's last-used field values between runs.
//
// A Store is a flat string key-value map scoped to one tool identity. The
// form reads it once when it opens and writes it once after a successful
// copy, so implementations favor simplicity over throughput.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultScope is the identity under which fluid stores its fields.
const DefaultScope = "fluid"

// Backend names accepted by Open.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown store backend")

// Store is the persisted-field port used by the form.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key.
	Set(key, value string) error
	Close() error
}

// Open opens the store for backend at path. An empty path means DefaultPath(backend).
func Open(backend, path, scope string) (Store, error) {
	if scope == "" {
		scope = DefaultScope
	}
	if backend == "" {
		backend = BackendYAML
	}
	if path == "" && backend != BackendMemory {
		p, err := DefaultPath(backend)
		if err != nil {
			return nil, err
		}
		path = p
	}

	switch backend {
	case BackendYAML:
		return OpenYAMLFile(path, scope)
	case BackendSQLite:
		return OpenSQLite(path, scope)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q (expected yaml, sqlite or memory)", ErrUnknownBackend, backend)
	}
}

// DefaultPath returns the per-user state file for backend, e.g.
// ~/.config/fluid/state.yaml.
func DefaultPath(backend string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	name := "state.yaml"
	if backend == BackendSQLite {
		name = "state.db"
	}
	return filepath.Join(configDir, "fluid", name), nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}
