// Package niche loads the static topic configurations that partition the
// dataset. Configs are YAML files in a directory, one per niche, loaded
// once at process start; the active niche is selected by the NICHE_ID
// environment switch.
package niche

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/nichejobs/internal/types"
)

// DefaultID is the niche used when NICHE_ID is unset.
const DefaultID = "ngo"

// Registry holds every loaded niche config, keyed by id.
type Registry struct {
	niches map[string]*types.NicheConfig
}

// LoadDir reads every *.yml / *.yaml file in dir into a Registry.
// A config without an id, or two configs sharing one, is a hard error:
// a broken niche file should stop the process, not silently vanish.
func LoadDir(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read niche dir %s: %w", dir, err)
	}

	r := &Registry{niches: make(map[string]*types.NicheConfig)}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || (!strings.HasSuffix(name, ".yml") && !strings.HasSuffix(name, ".yaml")) {
			continue
		}
		cfg, err := loadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if _, dup := r.niches[cfg.ID]; dup {
			return nil, fmt.Errorf("duplicate niche id %q (file %s)", cfg.ID, name)
		}
		r.niches[cfg.ID] = cfg
	}

	if len(r.niches) == 0 {
		return nil, fmt.Errorf("no niche configs found in %s", dir)
	}
	return r, nil
}

// Get returns the niche for id, failing loudly when the id names no known
// configuration.
func (r *Registry) Get(id string) (*types.NicheConfig, error) {
	if id == "" {
		id = DefaultID
	}
	cfg, ok := r.niches[id]
	if !ok {
		return nil, fmt.Errorf("unknown niche %q, available: %s", id, strings.Join(r.IDs(), ", "))
	}
	return cfg, nil
}

// Active returns the niche selected by the NICHE_ID environment variable.
func (r *Registry) Active() (*types.NicheConfig, error) {
	return r.Get(os.Getenv("NICHE_ID"))
}

// IDs returns the loaded niche ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.niches))
	for id := range r.niches {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns every loaded config.
func (r *Registry) All() []*types.NicheConfig {
	out := make([]*types.NicheConfig, 0, len(r.niches))
	for _, id := range r.IDs() {
		out = append(out, r.niches[id])
	}
	return out
}

func loadFile(path string) (*types.NicheConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read niche config %s: %w", path, err)
	}

	var cfg types.NicheConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse niche config %s: %w", path, err)
	}
	if cfg.ID == "" {
		return nil, fmt.Errorf("niche config %s: missing id", path)
	}
	return &cfg, nil
}
