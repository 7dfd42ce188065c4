// Package yaml loads pttcrawl configuration files.
package yaml

import (
	"fmt"
	"os"

	"github.com/fwojciec/pttcrawl"
	"gopkg.in/yaml.v3"
)

// DBPathEnv overrides the configured database path when set.
const DBPathEnv = "PTTCRAWL_DB"

// Load reads a YAML config file over the default settings and applies
// environment overrides. An empty path yields the defaults. getenv is
// usually os.Getenv.
func Load(path string, getenv func(string) string) (pttcrawl.Config, error) {
	cfg := pttcrawl.DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, pttcrawl.Errorf(pttcrawl.EINVALID, "parse config %s: %v", path, err)
		}
	}

	if getenv != nil {
		if dbPath := getenv(DBPathEnv); dbPath != "" {
			cfg.DBPath = dbPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
