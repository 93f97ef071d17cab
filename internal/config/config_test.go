package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
	if cfg.Backpack.Width != 5 || cfg.Backpack.Height != 3 {
		t.Errorf("Expected 5x3 backpack, got %dx%d", cfg.Backpack.Width, cfg.Backpack.Height)
	}
	if len(cfg.Dungeon.Floors) == 0 {
		t.Error("Expected default floors")
	}
	if cfg.Netplay.Path != "/play" {
		t.Errorf("Expected /play, got %s", cfg.Netplay.Path)
	}
}

func TestParseFillsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
hero:
  name: Ada
backpack:
  width: 6
  starting_kit:
    - id: dagger
      anchor: [2, 1]
    - id: buckler
seed: 7
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Hero.Name != "Ada" || cfg.Seed != 7 {
		t.Errorf("Unexpected hero/seed %s/%d", cfg.Hero.Name, cfg.Seed)
	}
	if cfg.Backpack.Width != 6 || cfg.Backpack.Height != 3 {
		t.Errorf("Expected 6x3, got %dx%d", cfg.Backpack.Width, cfg.Backpack.Height)
	}
	kit := cfg.Backpack.StartingKit
	if len(kit) != 2 || kit[0].Anchor == nil || *kit[0].Anchor != [2]int{2, 1} {
		t.Errorf("Unexpected kit %+v", kit)
	}
	if kit[1].Anchor != nil {
		t.Error("Expected second kit item without anchor")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected info level, got %s", cfg.Logging.Level)
	}
	if len(cfg.Dungeon.Floors) != len(Default().Dungeon.Floors) {
		t.Error("Expected default dungeon when none configured")
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"separator in name", "hero:\n  name: Ada|Lovelace\n"},
		{"line break in name", "hero:\n  name: \"Ada\\nLovelace\"\n"},
		{"tiny backpack", "backpack:\n  width: 1\n"},
		{"negative gold", "backpack:\n  start_gold: -5\n"},
		{"kit without id", "backpack:\n  starting_kit:\n    - anchor: [0, 0]\n"},
		{"empty floor", "dungeon:\n  floors:\n    - name: Void\n"},
		{"bad level", "logging:\n  level: loud\n"},
		{"bad yaml", "hero: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("leaderboard:\n  path: top.txt\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Leaderboard.Path != "top.txt" {
		t.Errorf("Expected top.txt, got %s", cfg.Leaderboard.Path)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
