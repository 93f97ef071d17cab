// Package config loads game configuration from YAML
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/packdelve/backpack"
)

// Config holds all game configuration
type Config struct {
	Hero        HeroConfig        `yaml:"hero"`
	Backpack    BackpackConfig    `yaml:"backpack"`
	Data        DataConfig        `yaml:"data"`
	Dungeon     DungeonConfig     `yaml:"dungeon"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Netplay     NetplayConfig     `yaml:"netplay"`
	Logging     LoggingConfig     `yaml:"logging"`

	// Seed for the random source; 0 seeds from the clock
	Seed int64 `yaml:"seed"`
}

// HeroConfig holds player character settings
type HeroConfig struct {
	Name string `yaml:"name"`
}

// BackpackConfig holds the grid size and the starting kit
type BackpackConfig struct {
	Width       int       `yaml:"width"`
	Height      int       `yaml:"height"`
	StartingKit []KitItem `yaml:"starting_kit"`
	StartGold   int       `yaml:"start_gold"`
}

// KitItem places a library item at the start of a run. Without an anchor
// the item goes to the first free spot.
type KitItem struct {
	ID     string  `yaml:"id"`
	Anchor *[2]int `yaml:"anchor,omitempty"` // [x, y]
}

// DataConfig points at item and enemy library files. Empty paths use the
// built-in libraries.
type DataConfig struct {
	Items   string `yaml:"items"`
	Enemies string `yaml:"enemies"`
}

// DungeonConfig lists the fixed sequence of encounters
type DungeonConfig struct {
	Floors []FloorConfig `yaml:"floors"`
}

// FloorConfig is one encounter: the enemies to spawn and the loot offered
// after victory
type FloorConfig struct {
	Name    string   `yaml:"name"`
	Enemies []string `yaml:"enemies"`
	Loot    []string `yaml:"loot"`
}

// LeaderboardConfig selects the score store. A DSN takes precedence over Path.
type LeaderboardConfig struct {
	Path string `yaml:"path"`
	DSN  string `yaml:"dsn"`
}

// NetplayConfig holds websocket server settings. StatsPath, when set, keeps
// the totals across finished runs between restarts.
type NetplayConfig struct {
	Addr      string `yaml:"addr"`
	Path      string `yaml:"path"`
	StatsPath string `yaml:"stats_path"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{
		Hero: HeroConfig{Name: "Hero"},
		Backpack: BackpackConfig{
			Width:  5,
			Height: 3,
			StartingKit: []KitItem{
				{ID: "short_sword"},
				{ID: "buckler"},
				{ID: "mana_shard"},
			},
		},
		Dungeon: DungeonConfig{
			Floors: []FloorConfig{
				{Name: "Cellar", Enemies: []string{"rat", "rat"}, Loot: []string{"dagger", "mana_shard"}},
				{Name: "Sewer", Enemies: []string{"slime", "goblin"}, Loot: []string{"wooden_shield", "long_sword"}},
				{Name: "Crypt", Enemies: []string{"skeleton", "skeleton"}, Loot: []string{"mana_crystal", "war_axe"}},
				{Name: "Lair", Enemies: []string{"ogre"}},
			},
		},
		Leaderboard: LeaderboardConfig{Path: "scores.txt"},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, fills defaults and validates
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if len(cfg.Dungeon.Floors) == 0 {
		cfg.Dungeon = Default().Dungeon
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Hero.Name == "" {
		c.Hero.Name = "Hero"
	}
	if c.Backpack.Width == 0 {
		c.Backpack.Width = 5
	}
	if c.Backpack.Height == 0 {
		c.Backpack.Height = 3
	}
	if c.Netplay.Addr == "" {
		c.Netplay.Addr = ":8080"
	}
	if c.Netplay.Path == "" {
		c.Netplay.Path = "/play"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks values that defaults cannot fix
func (c *Config) Validate() error {
	if strings.ContainsAny(c.Hero.Name, "|\r\n") {
		return fmt.Errorf("hero name %q must not contain '|' or line breaks", c.Hero.Name)
	}
	if c.Backpack.Width < backpack.MinSize || c.Backpack.Height < backpack.MinSize {
		return fmt.Errorf("backpack must be at least %dx%d, got %dx%d",
			backpack.MinSize, backpack.MinSize, c.Backpack.Width, c.Backpack.Height)
	}
	if c.Backpack.StartGold < 0 {
		return fmt.Errorf("start_gold must not be negative, got %d", c.Backpack.StartGold)
	}
	for i, k := range c.Backpack.StartingKit {
		if k.ID == "" {
			return fmt.Errorf("starting_kit[%d] has no id", i)
		}
	}
	for i, f := range c.Dungeon.Floors {
		if len(f.Enemies) == 0 {
			return fmt.Errorf("floor %d (%s) has no enemies", i+1, f.Name)
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
