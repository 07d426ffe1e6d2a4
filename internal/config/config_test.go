package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "minilang.toml")
	be.Err(t, os.WriteFile(path, []byte(content), 0o644), nil)
	return path
}

func TestLoad_File(t *testing.T) {
	path := write(t, `
show_symbols = true
show_ast = true
color = false
max_errors = 10
`)
	cfg, err := Load(path)
	be.Err(t, err, nil)
	be.Equal(t, cfg, Config{ShowSymbols: true, ShowAST: true, Color: false, MaxErrors: 10})
}

func TestLoad_MissingDefaultIsFine(t *testing.T) {
	// No minilang.toml in the test working directory.
	cfg, err := Load("")
	be.Err(t, err, nil)
	be.Equal(t, cfg, Default())
}

func TestLoad_MissingExplicitIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	be.True(t, err != nil)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(write(t, "show_ast = maybe"))
	be.True(t, err != nil)

	_, err = Load(write(t, "max_errors = -1"))
	be.True(t, err != nil)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(write(t, "show_ast = true"))
	be.Err(t, err, nil)
	be.True(t, cfg.Color) // untouched default
	be.True(t, cfg.ShowAST)
}
