package config

import (
	"fmt"

	"github.com/git-dit/dit/pkg/trailer"
)

// trailerEntry is one declared trailer in ".dit/trailers.yml", extending
// the two built-in specs (Issue-status, Issue-type) the way vendor.yml
// declaratively extends git-vendor's vendor set.
type trailerEntry struct {
	Key  string `yaml:"key"`
	Type string `yaml:"type"` // "string" or "int"
}

// TrailerRegistryFile is the on-disk shape of ".dit/trailers.yml".
type TrailerRegistryFile struct {
	Trailers []trailerEntry `yaml:"trailers"`
}

// LoadTrailerRegistry reads dir/.dit/trailers.yml and returns the
// well-known specs plus any additional ones it declares. A missing file
// yields just the two built-ins.
func LoadTrailerRegistry(dir string) ([]trailer.Spec, error) {
	store := NewYAMLStore[TrailerRegistryFile](dir, ".dit/trailers.yml", true)
	file, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("config: load trailer registry: %w", err)
	}

	specs := []trailer.Spec{trailer.IssueStatusSpec, trailer.IssueTypeSpec}
	for _, e := range file.Trailers {
		kind := trailer.KindString
		if e.Type == "int" {
			kind = trailer.KindInt
		}
		specs = append(specs, trailer.Spec{Key: e.Key, Kind: kind})
	}
	return specs, nil
}
