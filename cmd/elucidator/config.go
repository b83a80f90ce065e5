package main

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the optional on-disk configuration for the demo CLI: default
// query epsilon, default backend, and log output format. Grounded on
// teranos-QNTX's am/persist.go, which loads process configuration with
// pelletier/go-toml/v2 rather than hand-rolled flag parsing.
type Config struct {
	DefaultBackend string  `toml:"default_backend"` // "bulkscan" or "rtree"
	DefaultEpsilon float64 `toml:"default_epsilon"`
	JSONLogs       bool    `toml:"json_logs"`
}

func defaultConfig() Config {
	return Config{DefaultBackend: "bulkscan", DefaultEpsilon: 0.0}
}

// loadConfig reads path if it exists, falling back to defaultConfig() for
// any field missing from the file (and when path doesn't exist at all —
// the config file is optional).
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
