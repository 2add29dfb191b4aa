package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"sable/internal/driver"
)

// projectConfig mirrors sable.toml. Pointer fields distinguish "absent"
// from zero so the manifest only overrides what it actually sets.
type projectConfig struct {
	Package packageConfig `toml:"package"`
	Compile compileConfig `toml:"compile"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type compileConfig struct {
	Strict           *bool `toml:"strict"`
	WarningsAsErrors *bool `toml:"warnings_as_errors"`
	MaxIncludeDepth  *uint `toml:"max_include_depth"`
	MaxMacroDepth    *uint `toml:"max_macro_depth"`
	MaxDiagnostics   *int  `toml:"max_diagnostics"`
}

// findSableToml walks up from startDir looking for sable.toml.
func findSableToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "sable.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, nil
}

// resolveFlags layers configuration: built-in defaults, then the nearest
// sable.toml, with CLI flags applied on top by the caller.
func resolveFlags(startDir string) (driver.Flags, error) {
	flags := driver.DefaultFlags()

	path, found, err := findSableToml(startDir)
	if err != nil {
		return flags, err
	}
	if !found {
		return flags, nil
	}

	cfg, err := loadProjectConfig(path)
	if err != nil {
		return flags, err
	}
	applyManifest(&flags, cfg.Compile)
	return flags, nil
}

func applyManifest(flags *driver.Flags, c compileConfig) {
	if c.Strict != nil {
		flags.StrictMode = *c.Strict
	}
	if c.WarningsAsErrors != nil {
		flags.WarningsAsErrors = *c.WarningsAsErrors
	}
	if c.MaxIncludeDepth != nil {
		flags.MaxIncludeDepth = *c.MaxIncludeDepth
	}
	if c.MaxMacroDepth != nil {
		flags.MaxMacroDepth = *c.MaxMacroDepth
	}
	if c.MaxDiagnostics != nil {
		flags.MaxDiagnostics = *c.MaxDiagnostics
	}
}
