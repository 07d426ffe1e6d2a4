// Package config loads the optional minilang.toml configuration file
// that sets defaults for the CLI.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where Load looks when no path is given.
const DefaultPath = "minilang.toml"

// Config holds the CLI defaults. Command-line flags override every
// field.
type Config struct {
	// ShowSymbols dumps the symbol tables after checking.
	ShowSymbols bool `toml:"show_symbols"`

	// ShowAST prints the typed AST after checking.
	ShowAST bool `toml:"show_ast"`

	// Color enables styled terminal output for diagnostics.
	Color bool `toml:"color"`

	// MaxErrors stops reporting after this many errors; 0 means no
	// limit.
	MaxErrors int `toml:"max_errors"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{Color: true}
}

// Load reads the configuration from path. An empty path means
// DefaultPath, and a missing file at the default location is not an
// error: the defaults apply. A path given explicitly must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.MaxErrors < 0 {
		return Default(), fmt.Errorf("max_errors must not be negative, got %d", cfg.MaxErrors)
	}
	return cfg, nil
}
