package main

import (
	"fmt"
	"os"

	"github.com/jonathan/nichejobs/internal/niche"
	"github.com/jonathan/nichejobs/internal/types"
)

// defaultNichesDir is where niche YAML configs live relative to the
// working directory.
const defaultNichesDir = "niches"

// loadNiche loads the registry from dir and resolves one niche: the given
// id, or NICHE_ID, or the default.
func loadNiche(dir, id string) (*types.NicheConfig, *niche.Registry, error) {
	if dir == "" {
		dir = defaultNichesDir
	}
	reg, err := niche.LoadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load niche configs: %w", err)
	}

	if id == "" {
		cfg, err := reg.Active()
		if err != nil {
			return nil, nil, err
		}
		return cfg, reg, nil
	}
	cfg, err := reg.Get(id)
	if err != nil {
		return nil, nil, err
	}
	return cfg, reg, nil
}

// envOr returns the flag value when set, otherwise the environment value.
func envOr(flagValue, envKey string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(envKey)
}
