// Package settings is the small key-value store for user preferences
// (export directory, cipher key, prompt options). It is deliberately
// forgiving: a missing file yields an empty store, and callers never
// depend on Save succeeding.
package settings

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Store holds string settings backed by one YAML file.
type Store struct {
	path   string
	values map[string]string
}

// Load reads the settings file. A missing or unreadable file results in
// an empty store bound to the same path.
func Load(path string) *Store {
	s := &Store{path: path, values: make(map[string]string)}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var values map[string]string
	if yaml.Unmarshal(data, &values) == nil && values != nil {
		s.values = values
	}
	return s
}

// Get returns the value for key, or def when the key is absent.
func (s *Store) Get(key, def string) string {
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

// Set stores a value in memory; call Save to persist.
func (s *Store) Set(key, value string) {
	s.values[key] = value
}

// Save writes the store back to its file and reports success.
func (s *Store) Save() bool {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return false
	}
	return os.WriteFile(s.path, data, 0o644) == nil
}
