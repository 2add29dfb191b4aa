package main

import (
	"os"
	"path/filepath"
	"testing"

	"sable/internal/driver"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "sable.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindSableToml_WalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	writeManifest(t, root, "[package]\nname = \"demo\"\n")

	path, found, err := findSableToml(nested)
	if err != nil {
		t.Fatalf("findSableToml failed: %v", err)
	}
	if !found {
		t.Fatal("Manifest in an ancestor directory was not found")
	}
	if filepath.Dir(path) != root {
		t.Errorf("Expected manifest in %s, got %s", root, path)
	}
}

func TestFindSableToml_NearestWins(t *testing.T) {
	root := t.TempDir()
	inner := filepath.Join(root, "sub")
	if err := os.MkdirAll(inner, 0o755); err != nil {
		t.Fatal(err)
	}
	writeManifest(t, root, "[compile]\nstrict = false\n")
	writeManifest(t, inner, "[compile]\nstrict = true\n")

	path, found, err := findSableToml(inner)
	if err != nil || !found {
		t.Fatalf("findSableToml: found=%v err=%v", found, err)
	}
	if filepath.Dir(path) != inner {
		t.Errorf("Expected the nearest manifest, got %s", path)
	}
}

func TestFindSableToml_Missing(t *testing.T) {
	_, found, err := findSableToml(t.TempDir())
	if err != nil {
		t.Fatalf("findSableToml failed: %v", err)
	}
	if found {
		t.Error("Found a manifest where none exists")
	}
}

func TestResolveFlags_Defaults(t *testing.T) {
	flags, err := resolveFlags(t.TempDir())
	if err != nil {
		t.Fatalf("resolveFlags failed: %v", err)
	}
	if flags != driver.DefaultFlags() {
		t.Errorf("Expected defaults, got %+v", flags)
	}
}

func TestResolveFlags_ManifestOverrides(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[package]
name = "token"

[compile]
strict = true
max_include_depth = 4
max_diagnostics = 25
`)

	flags, err := resolveFlags(dir)
	if err != nil {
		t.Fatalf("resolveFlags failed: %v", err)
	}
	if !flags.StrictMode {
		t.Error("strict not applied")
	}
	if flags.MaxIncludeDepth != 4 {
		t.Errorf("MaxIncludeDepth: expected 4, got %d", flags.MaxIncludeDepth)
	}
	if flags.MaxDiagnostics != 25 {
		t.Errorf("MaxDiagnostics: expected 25, got %d", flags.MaxDiagnostics)
	}

	// Keys the manifest does not set keep their defaults.
	def := driver.DefaultFlags()
	if flags.WarningsAsErrors != def.WarningsAsErrors {
		t.Error("WarningsAsErrors should keep its default")
	}
	if flags.MaxMacroDepth != def.MaxMacroDepth {
		t.Error("MaxMacroDepth should keep its default")
	}
}

func TestApplyManifest_ExplicitFalseOverrides(t *testing.T) {
	flags := driver.DefaultFlags()
	flags.StrictMode = true

	strict := false
	applyManifest(&flags, compileConfig{Strict: &strict})
	if flags.StrictMode {
		t.Error("An explicit strict = false must override")
	}
}

func TestLoadProjectConfig_BadTOML(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "this is not toml = = =\n")
	if _, err := loadProjectConfig(filepath.Join(dir, "sable.toml")); err == nil {
		t.Error("Expected a parse error")
	}
}
