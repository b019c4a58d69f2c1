// Package region holds the regional survey format definitions: detection
// signatures, the unified source-column mapping, and the column
// normalizer that rewrites raw uploads into the canonical vocabulary.
package region

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var defaults embed.FS

// Region describes one supported survey format.
type Region struct {
	ID                     string    `yaml:"id"`
	Name                   string    `yaml:"name"`
	Timezone               string    `yaml:"timezone"`
	MaxAdults              int       `yaml:"max_adults"`
	MaxChildren            int       `yaml:"max_children"`
	ChildChronicConditions bool      `yaml:"child_chronic_conditions"`
	Signature              Signature `yaml:"signature"`
}

// Signature is the column-presence fingerprint used for auto-detection.
// Required columns all count toward the confidence score; at least one
// optional group, when groups are declared, must be fully present to
// earn the bonus.
type Signature struct {
	Required       []string   `yaml:"required"`
	OptionalGroups [][]string `yaml:"optional_groups"`
}

// Universal is the fallback used when no signature reaches the
// detection threshold. It has no signature of its own.
var Universal = Region{
	ID:          "universal",
	Name:        "Universal",
	Timezone:    "UTC",
	MaxAdults:   4,
	MaxChildren: 6,
}

// Candidate is one source column heading with its selection priority.
type Candidate struct {
	Column   string `yaml:"column"`
	Priority int    `yaml:"priority"`
}

// FieldMapping lists the candidate source columns for one canonical field.
type FieldMapping struct {
	Field   string      `yaml:"field"`
	Sources []Candidate `yaml:"sources"`
}

// Mapping is the ordered unified column mapping.
type Mapping []FieldMapping

type regionsFile struct {
	Regions []Region `yaml:"regions"`
}

type mappingFile struct {
	Fields []FieldMapping `yaml:"fields"`
}

// Registry loads and serves region definitions and the unified mapping.
// Definitions ship embedded; an optional override directory containing
// regions.yaml and/or mapping.yaml replaces the embedded ones, and can
// be hot-reloaded.
type Registry struct {
	mu          sync.RWMutex
	overrideDir string
	regions     []Region
	mapping     Mapping
}

// NewRegistry creates a registry. overrideDir may be empty.
func NewRegistry(overrideDir string) *Registry {
	return &Registry{overrideDir: overrideDir}
}

// Load reads the embedded definitions, then any overrides.
func (r *Registry) Load() error {
	regions, err := loadRegions()
	if err != nil {
		return err
	}
	mapping, err := loadMapping()
	if err != nil {
		return err
	}

	if r.overrideDir != "" {
		if data, err := os.ReadFile(filepath.Join(r.overrideDir, "regions.yaml")); err == nil {
			var f regionsFile
			if err := yaml.Unmarshal(data, &f); err != nil {
				return fmt.Errorf("parse regions override: %w", err)
			}
			regions = f.Regions
		}
		if data, err := os.ReadFile(filepath.Join(r.overrideDir, "mapping.yaml")); err == nil {
			var f mappingFile
			if err := yaml.Unmarshal(data, &f); err != nil {
				return fmt.Errorf("parse mapping override: %w", err)
			}
			mapping = f.Fields
		}
	}

	sort.SliceStable(regions, func(i, j int) bool { return regions[i].ID < regions[j].ID })

	r.mu.Lock()
	r.regions = regions
	r.mapping = mapping
	r.mu.Unlock()
	return nil
}

// Reload re-reads definitions (embedded + overrides).
func (r *Registry) Reload() error { return r.Load() }

// Regions returns all known regions sorted by ID, excluding Universal.
func (r *Registry) Regions() []Region {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Region(nil), r.regions...)
}

// ByName returns the region with the given display name.
func (r *Registry) ByName(name string) (Region, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, reg := range r.regions {
		if reg.Name == name {
			return reg, true
		}
	}
	if name == Universal.Name {
		return Universal, true
	}
	return Region{}, false
}

// Mapping returns the unified column mapping.
func (r *Registry) Mapping() Mapping {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(Mapping(nil), r.mapping...)
}

func loadRegions() ([]Region, error) {
	data, err := defaults.ReadFile("data/regions.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded regions: %w", err)
	}
	var f regionsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse embedded regions: %w", err)
	}
	return f.Regions, nil
}

func loadMapping() (Mapping, error) {
	data, err := defaults.ReadFile("data/mapping.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded mapping: %w", err)
	}
	var f mappingFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse embedded mapping: %w", err)
	}
	return f.Fields, nil
}
