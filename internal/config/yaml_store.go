// Package config implements dit's configuration layer: a git-config-backed
// Store for the handful of scalar settings (remote priority, abbrev
// length, editor, pager, default author), a YAML fallback for
// environments without usable git config, and a declarative registry of
// well-known trailers.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// YAMLStore provides generic YAML file I/O, following
// internal/core/yaml_store.go's YAMLStore[T] verbatim: both dit's config
// overlay and its trailer registry are "load a YAML file of type T, treat
// a missing file as the zero value" problems.
type YAMLStore[T any] struct {
	rootDir      string
	filename     string
	allowMissing bool
}

// NewYAMLStore creates a store for type T rooted at rootDir/filename.
func NewYAMLStore[T any](rootDir, filename string, allowMissing bool) *YAMLStore[T] {
	return &YAMLStore[T]{rootDir: rootDir, filename: filename, allowMissing: allowMissing}
}

// Path returns the full file path.
func (s *YAMLStore[T]) Path() string {
	return filepath.Join(s.rootDir, s.filename)
}

// Load reads and unmarshals the YAML file.
func (s *YAMLStore[T]) Load() (T, error) {
	var result T
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && s.allowMissing {
			return result, nil
		}
		return result, err
	}
	if err := yaml.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("invalid %s: %w", s.filename, err)
	}
	return result, nil
}

// Save marshals and writes type T to the YAML file.
func (s *YAMLStore[T]) Save(data T) error {
	bytes, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", s.filename, err)
	}
	if err := os.WriteFile(s.Path(), bytes, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.filename, err)
	}
	return nil
}
