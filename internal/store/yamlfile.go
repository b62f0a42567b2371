package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// YAMLFile keeps every scope in one YAML document:
//
//	fluid:
//	  min-size: "32"
//	  root-relative: "false"
//
// Each Set rewrites the file through a temp file and rename.
type YAMLFile struct {
	mu    sync.Mutex
	path  string
	scope string
	doc   map[string]map[string]string
}

// OpenYAMLFile loads path if it exists. A missing file is an empty store.
func OpenYAMLFile(path, scope string) (*YAMLFile, error) {
	f := &YAMLFile{path: path, scope: scope, doc: make(map[string]map[string]string)}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read store %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &f.doc); err != nil {
		return nil, fmt.Errorf("failed to parse store %s: %w", path, err)
	}
	if f.doc == nil {
		f.doc = make(map[string]map[string]string)
	}
	return f, nil
}

// Get implements Store.
func (f *YAMLFile) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.doc[f.scope][key]
	return v, ok, nil
}

// Set implements Store.
func (f *YAMLFile) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fields := f.doc[f.scope]
	if fields == nil {
		fields = make(map[string]string)
		f.doc[f.scope] = fields
	}
	fields[key] = value
	return f.flush()
}

// Close implements Store.
func (f *YAMLFile) Close() error { return nil }

func (f *YAMLFile) flush() error {
	data, err := yaml.Marshal(f.doc)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	if err := ensureDir(f.path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".state-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace store %s: %w", f.path, err)
	}
	return nil
}
