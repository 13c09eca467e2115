package config

import (
	"context"
	"strconv"
	"strings"

	"github.com/git-dit/dit/internal/plumbing"
)

// FileConfig is the shape of ".dit/config.yml", the YAML overlay used
// where git config itself is unavailable (tests, sandboxes), mirroring
// how vendor.yml stands in for FileConfigStore in the teacher.
type FileConfig struct {
	RemotePriority []string `yaml:"remote-priority,omitempty"`
	AbbrevLen      int      `yaml:"abbrev-len,omitempty"`
	Editor         string   `yaml:"editor,omitempty"`
	Pager          string   `yaml:"pager,omitempty"`
	DefaultAuthor  string   `yaml:"default-author,omitempty"`
}

// Store resolves dit's scalar settings, trying git config first and the
// YAML overlay second — unlike the teacher's single FileConfigStore, dit
// layers two backends because git config may simply not exist yet (a
// brand-new checkout) while the YAML file is always creatable.
type Store interface {
	RemotePriority(ctx context.Context) ([]string, error)
	AbbrevLen(ctx context.Context) (int, error)
	Editor(ctx context.Context) (string, error)
	Pager(ctx context.Context) (string, error)
	DefaultAuthor(ctx context.Context) (string, error)
}

// GitConfigStore reads dit.* keys via "git config", the canonical home
// for per-repository settings (spec's ambient configuration concern).
type GitConfigStore struct {
	Git *plumbing.Git
}

func (s *GitConfigStore) get(ctx context.Context, key string) (string, bool) {
	out, err := s.Git.Run(ctx, "config", "--get", key)
	if err != nil || out == "" {
		return "", false
	}
	return out, true
}

func (s *GitConfigStore) getAll(ctx context.Context, key string) []string {
	lines, err := s.Git.RunLines(ctx, "config", "--get-all", key)
	if err != nil {
		return nil
	}
	return lines
}

// RemotePriority reads dit.remote-priority as a comma-separated list, or
// falls back to repeated "git config --get-all dit.remote".
func (s *GitConfigStore) RemotePriority(ctx context.Context) ([]string, error) {
	if v, ok := s.get(ctx, "dit.remote-priority"); ok {
		return splitCSV(v), nil
	}
	return s.getAll(ctx, "dit.remote"), nil
}

// AbbrevLen reads dit.abbrev-len, defaulting to 7 (matching git's own
// default abbreviation length) if unset or unparseable.
func (s *GitConfigStore) AbbrevLen(ctx context.Context) (int, error) {
	v, ok := s.get(ctx, "dit.abbrev-len")
	if !ok {
		return 7, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 7, nil
	}
	return n, nil
}

// Editor reads dit.editor.
func (s *GitConfigStore) Editor(ctx context.Context) (string, error) {
	v, _ := s.get(ctx, "dit.editor")
	return v, nil
}

// Pager reads dit.pager.
func (s *GitConfigStore) Pager(ctx context.Context) (string, error) {
	v, _ := s.get(ctx, "dit.pager")
	return v, nil
}

// DefaultAuthor reads dit.default-author.
func (s *GitConfigStore) DefaultAuthor(ctx context.Context) (string, error) {
	v, _ := s.get(ctx, "dit.default-author")
	return v, nil
}

// YAMLConfigStore reads settings from ".dit/config.yml", for environments
// without usable git config.
type YAMLConfigStore struct {
	store *YAMLStore[FileConfig]
}

// NewYAMLConfigStore creates a store rooted at dir (typically the repo's
// top-level directory).
func NewYAMLConfigStore(dir string) *YAMLConfigStore {
	return &YAMLConfigStore{store: NewYAMLStore[FileConfig](dir, ".dit/config.yml", true)}
}

func (s *YAMLConfigStore) load() FileConfig {
	cfg, err := s.store.Load()
	if err != nil {
		return FileConfig{}
	}
	return cfg
}

func (s *YAMLConfigStore) RemotePriority(ctx context.Context) ([]string, error) {
	return s.load().RemotePriority, nil
}

func (s *YAMLConfigStore) AbbrevLen(ctx context.Context) (int, error) {
	if n := s.load().AbbrevLen; n > 0 {
		return n, nil
	}
	return 7, nil
}

func (s *YAMLConfigStore) Editor(ctx context.Context) (string, error) {
	return s.load().Editor, nil
}

func (s *YAMLConfigStore) Pager(ctx context.Context) (string, error) {
	return s.load().Pager, nil
}

func (s *YAMLConfigStore) DefaultAuthor(ctx context.Context) (string, error) {
	return s.load().DefaultAuthor, nil
}

// Layered tries a primary Store and falls back to a secondary one for any
// setting the primary leaves empty — git config for a configured
// repository, the YAML overlay as a fallback.
type Layered struct {
	Primary, Fallback Store
}

func (l Layered) RemotePriority(ctx context.Context) ([]string, error) {
	if v, err := l.Primary.RemotePriority(ctx); err == nil && len(v) > 0 {
		return v, nil
	}
	return l.Fallback.RemotePriority(ctx)
}

func (l Layered) AbbrevLen(ctx context.Context) (int, error) {
	return firstNonZero(ctx, l.Primary.AbbrevLen, l.Fallback.AbbrevLen)
}

func (l Layered) Editor(ctx context.Context) (string, error) {
	return firstNonEmpty(ctx, l.Primary.Editor, l.Fallback.Editor)
}

func (l Layered) Pager(ctx context.Context) (string, error) {
	return firstNonEmpty(ctx, l.Primary.Pager, l.Fallback.Pager)
}

func (l Layered) DefaultAuthor(ctx context.Context) (string, error) {
	return firstNonEmpty(ctx, l.Primary.DefaultAuthor, l.Fallback.DefaultAuthor)
}

func firstNonEmpty(ctx context.Context, primary, fallback func(context.Context) (string, error)) (string, error) {
	if v, err := primary(ctx); err == nil && v != "" {
		return v, nil
	}
	return fallback(ctx)
}

func firstNonZero(ctx context.Context, primary, fallback func(context.Context) (int, error)) (int, error) {
	if v, err := primary(ctx); err == nil && v != 0 {
		return v, nil
	}
	return fallback(ctx)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
