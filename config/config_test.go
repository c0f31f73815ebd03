package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.TileSize != 512 {
		t.Errorf("expected default tile_size 512, got %d", cfg.World.TileSize)
	}
	if cfg.Water.MaxAge != 500 {
		t.Errorf("expected default max_age 500, got %d", cfg.Water.MaxAge)
	}
	if cfg.Derived.WorldSize != cfg.World.MapSize*cfg.World.TileSize {
		t.Errorf("expected derived world size to match map_size*tile_size")
	}
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	if err := os.WriteFile(path, []byte("world:\n  seed: 42\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.Seed != 42 {
		t.Errorf("expected overridden seed 42, got %d", cfg.World.Seed)
	}
	if cfg.World.TileSize != 512 {
		t.Errorf("expected untouched default tile_size 512, got %d", cfg.World.TileSize)
	}
}

func TestMustInitPanicsOnMissingFile(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected MustInit to panic on a missing config file")
		}
	}()
	MustInit("/nonexistent/path/does-not-exist.yaml")
}
