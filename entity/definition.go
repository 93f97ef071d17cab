package entity

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"chosenoffset.com/packdelve/dice"
)

// Definition is an enemy template loaded from data files
type Definition struct {
	ID          string `json:"id"`                    // Unique identifier
	Name        string `json:"name"`                  // Display name
	Description string `json:"description,omitempty"` // Lore/description

	// Stats
	HP      int `json:"hp"`                // Max hit points
	Attack  int `json:"attack,omitempty"`  // Damage dealt by an Attack intent
	Defense int `json:"defense,omitempty"` // Block gained by a Defend intent

	// Rewards, as dice expressions rolled at spawn (e.g. "1d6+2")
	Gold string `json:"gold,omitempty"`
	XP   string `json:"xp,omitempty"`

	Tags []string `json:"tags,omitempty"`
}

// Validate checks the template
func (def *Definition) Validate() error {
	if def.ID == "" {
		return fmt.Errorf("enemy %q has no id", def.Name)
	}
	if def.HP <= 0 {
		return fmt.Errorf("enemy %q needs positive hp", def.ID)
	}
	if def.Attack < 0 || def.Defense < 0 {
		return fmt.Errorf("enemy %q has negative stats", def.ID)
	}
	if err := dice.Validate(def.Gold); err != nil {
		return fmt.Errorf("enemy %q gold: %w", def.ID, err)
	}
	if err := dice.Validate(def.XP); err != nil {
		return fmt.Errorf("enemy %q xp: %w", def.ID, err)
	}
	return nil
}

// HasTag returns true if the template carries tag
func (def *Definition) HasTag(tag string) bool {
	for _, t := range def.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Spawn creates a new enemy instance, rolling its reward drops
func (def *Definition) Spawn(instanceID string, roller *dice.Roller) (*Enemy, error) {
	gold, err := roller.Roll(def.Gold)
	if err != nil {
		return nil, fmt.Errorf("failed to roll gold for %s: %w", def.ID, err)
	}
	xp, err := roller.Roll(def.XP)
	if err != nil {
		return nil, fmt.Errorf("failed to roll xp for %s: %w", def.ID, err)
	}
	return NewEnemy(instanceID, def.Name, def.HP, def.Attack, def.Defense, gold, xp), nil
}

// Library contains all enemy templates for a game
type Library struct {
	Name    string       `json:"name"`
	Enemies []Definition `json:"enemies"`

	byID map[string]*Definition
}

// LoadLibrary loads enemy templates from a JSON file
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy library: %w", err)
	}
	return ParseLibrary(data)
}

// ParseLibrary parses and validates a JSON enemy library
func ParseLibrary(data []byte) (*Library, error) {
	var lib Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse enemy library: %w", err)
	}
	if err := lib.buildLookupMap(); err != nil {
		return nil, err
	}
	return &lib, nil
}

func (lib *Library) buildLookupMap() error {
	lib.byID = make(map[string]*Definition, len(lib.Enemies))
	for i := range lib.Enemies {
		def := &lib.Enemies[i]
		// Set defaults
		if def.Gold == "" {
			def.Gold = "0"
		}
		if def.XP == "" {
			def.XP = "0"
		}
		if err := def.Validate(); err != nil {
			return err
		}
		if _, dup := lib.byID[def.ID]; dup {
			return fmt.Errorf("duplicate enemy id %q", def.ID)
		}
		lib.byID[def.ID] = def
	}
	return nil
}

// Get returns an enemy template by ID, or nil
func (lib *Library) Get(id string) *Definition {
	return lib.byID[id]
}

// IDs returns all template IDs in sorted order
func (lib *Library) IDs() []string {
	ids := make([]string, 0, len(lib.byID))
	for id := range lib.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SpawnGroup spawns one enemy per template ID, in order. Instance IDs are
// the template ID with a 1-based suffix ("rat#1", "rat#2").
func (lib *Library) SpawnGroup(ids []string, roller *dice.Roller) ([]*Enemy, error) {
	counts := make(map[string]int)
	enemies := make([]*Enemy, 0, len(ids))
	for _, id := range ids {
		def := lib.byID[id]
		if def == nil {
			return nil, fmt.Errorf("unknown enemy %q", id)
		}
		counts[id]++
		e, err := def.Spawn(fmt.Sprintf("%s#%d", id, counts[id]), roller)
		if err != nil {
			return nil, err
		}
		enemies = append(enemies, e)
	}
	return enemies, nil
}

// DefaultLibrary returns the built-in enemy templates
func DefaultLibrary() *Library {
	lib := &Library{
		Name: "default",
		Enemies: []Definition{
			{ID: "rat", Name: "Giant Rat", HP: 8, Attack: 3, Defense: 2, Gold: "1d3", XP: "3"},
			{ID: "slime", Name: "Slime", HP: 14, Attack: 4, Defense: 5, Gold: "1d4+1", XP: "5"},
			{ID: "goblin", Name: "Goblin", HP: 18, Attack: 6, Defense: 4, Gold: "2d4+2", XP: "7"},
			{ID: "skeleton", Name: "Skeleton", HP: 24, Attack: 8, Defense: 6, Gold: "2d6", XP: "10"},
			{ID: "ogre", Name: "Ogre", HP: 45, Attack: 12, Defense: 8, Gold: "3d6+5", XP: "25", Tags: []string{"boss"}},
		},
	}
	if err := lib.buildLookupMap(); err != nil {
		panic(err)
	}
	return lib
}
