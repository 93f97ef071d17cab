package item

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"chosenoffset.com/packdelve/grid"
)

// Definition is the data-file form of an item. Only the fields relevant to
// Kind are read.
type Definition struct {
	ID          string     `json:"id,omitempty"`
	Kind        Kind       `json:"kind"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Shape       grid.Shape `json:"shape"`

	Damage     int `json:"damage,omitempty"`      // weapon
	EnergyCost int `json:"energy_cost,omitempty"` // weapon, armor
	ManaCost   int `json:"mana_cost,omitempty"`   // weapon
	Protection int `json:"protection,omitempty"`  // armor
	Mana       int `json:"mana,omitempty"`        // mana stone
	Amount     int `json:"amount,omitempty"`      // gold
}

// Validate checks that the definition describes a legal item
func (d *Definition) Validate() error {
	if d.Kind != KindGold && d.Shape.IsZero() {
		return fmt.Errorf("item %q has no shape", d.label())
	}
	switch d.Kind {
	case KindWeapon:
		if d.Damage < 0 || d.EnergyCost < 0 || d.ManaCost < 0 {
			return fmt.Errorf("weapon %q has negative stats", d.label())
		}
	case KindArmor:
		if d.Protection < 0 || d.EnergyCost < 0 {
			return fmt.Errorf("armor %q has negative stats", d.label())
		}
	case KindManaStone:
		if d.Mana < 0 {
			return fmt.Errorf("mana stone %q has negative mana", d.label())
		}
	case KindGold:
		if d.Amount < 0 {
			return fmt.Errorf("gold %q has negative amount", d.label())
		}
	default:
		return fmt.Errorf("item %q has unknown kind %q", d.label(), d.Kind)
	}
	return nil
}

func (d *Definition) label() string {
	if d.ID != "" {
		return d.ID
	}
	return d.Name
}

// New instantiates a fresh item from the definition
func (d *Definition) New() (Item, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	switch d.Kind {
	case KindWeapon:
		return NewWeapon(d.Name, d.Shape, d.Damage, d.EnergyCost, d.ManaCost), nil
	case KindArmor:
		return NewArmor(d.Name, d.Shape, d.Protection, d.EnergyCost), nil
	case KindManaStone:
		return NewManaStone(d.Name, d.Shape, d.Mana), nil
	default:
		return NewGold(d.Amount), nil
	}
}

// Describe converts an item back into its data form
func Describe(it Item) Definition {
	d := Definition{Kind: it.Kind(), Name: it.Name(), Shape: it.Shape()}
	switch v := it.(type) {
	case *Weapon:
		d.Damage, d.EnergyCost, d.ManaCost = v.Damage, v.EnergyCost, v.ManaCost
	case *Armor:
		d.Protection, d.EnergyCost = v.Protection, v.EnergyCost
	case *ManaStone:
		d.Mana = v.Mana
	case *Gold:
		d.Amount = v.Amount()
	}
	return d
}

// Library holds item definitions that can be instantiated by ID
type Library struct {
	Name  string       `json:"name"`
	Items []Definition `json:"items"`

	byID map[string]*Definition
}

// LoadLibrary loads item definitions from a JSON file
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item library: %w", err)
	}
	return ParseLibrary(data)
}

// ParseLibrary parses and validates a JSON item library
func ParseLibrary(data []byte) (*Library, error) {
	var lib Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse item library: %w", err)
	}
	if err := lib.buildLookupMap(); err != nil {
		return nil, err
	}
	return &lib, nil
}

func (lib *Library) buildLookupMap() error {
	lib.byID = make(map[string]*Definition, len(lib.Items))
	for i := range lib.Items {
		def := &lib.Items[i]
		if def.ID == "" {
			return fmt.Errorf("item %d (%q) has no id", i, def.Name)
		}
		if _, dup := lib.byID[def.ID]; dup {
			return fmt.Errorf("duplicate item id %q", def.ID)
		}
		if def.Kind == KindGold && def.Shape.IsZero() {
			def.Shape = grid.Single()
		}
		if err := def.Validate(); err != nil {
			return err
		}
		lib.byID[def.ID] = def
	}
	return nil
}

// Get returns a definition by ID, or nil
func (lib *Library) Get(id string) *Definition {
	return lib.byID[id]
}

// New instantiates the item with the given ID
func (lib *Library) New(id string) (Item, error) {
	def := lib.byID[id]
	if def == nil {
		return nil, fmt.Errorf("unknown item %q", id)
	}
	return def.New()
}

// IDs returns all item IDs in sorted order
func (lib *Library) IDs() []string {
	ids := make([]string, 0, len(lib.byID))
	for id := range lib.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultLibrary returns the built-in item catalogue
func DefaultLibrary() *Library {
	shape := func(rows ...string) grid.Shape {
		s, _ := grid.ParseShape(rows)
		return s
	}
	lib := &Library{
		Name: "default",
		Items: []Definition{
			{ID: "dagger", Kind: KindWeapon, Name: "Dagger", Shape: shape("#"), Damage: 4, EnergyCost: 1},
			{ID: "short_sword", Kind: KindWeapon, Name: "Short Sword", Shape: shape("#", "#"), Damage: 6, EnergyCost: 1},
			{ID: "long_sword", Kind: KindWeapon, Name: "Long Sword", Shape: shape("#", "#", "#"), Damage: 9, EnergyCost: 2},
			{ID: "war_axe", Kind: KindWeapon, Name: "War Axe", Shape: shape("##", "#.", "#."), Damage: 12, EnergyCost: 2},
			{ID: "fire_staff", Kind: KindWeapon, Name: "Fire Staff", Shape: shape("#", "#", "#"), Damage: 10, EnergyCost: 1, ManaCost: 2},
			{ID: "buckler", Kind: KindArmor, Name: "Buckler", Shape: shape("#"), Protection: 4, EnergyCost: 1},
			{ID: "wooden_shield", Kind: KindArmor, Name: "Wooden Shield", Shape: shape("##", "##"), Protection: 7, EnergyCost: 1},
			{ID: "tower_shield", Kind: KindArmor, Name: "Tower Shield", Shape: shape("##", "##", "##"), Protection: 12, EnergyCost: 2},
			{ID: "mana_shard", Kind: KindManaStone, Name: "Mana Shard", Shape: shape("#"), Mana: 1},
			{ID: "mana_crystal", Kind: KindManaStone, Name: "Mana Crystal", Shape: shape("##"), Mana: 3},
			{ID: "gold_pile", Kind: KindGold, Name: "Gold", Shape: shape("#"), Amount: 10},
		},
	}
	if err := lib.buildLookupMap(); err != nil {
		panic(err)
	}
	return lib
}
