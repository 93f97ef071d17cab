// Package action defines the discrete player actions a session accepts.
// Actions are plain data so they can arrive from the keyboard or over the
// wire; exactly one is applied at a time.
package action

import (
	"encoding/json"
	"fmt"

	"chosenoffset.com/packdelve/grid"
)

// Type identifies an action
type Type string

const (
	TypeAttack        Type = "attack"         // weapon at Anchor hits enemy Target
	TypeDefend        Type = "defend"         // armor at Anchor adds block
	TypeUseItem       Type = "use_item"       // dispatch on the kind of item at Anchor
	TypeEndTurn       Type = "end_turn"       // hand the round to the enemies
	TypeMove          Type = "move"           // move item at Anchor to To
	TypeRotate        Type = "rotate"         // rotate item at Anchor in place
	TypeDiscard       Type = "discard"        // drop item at Anchor onto the floor
	TypeTakeLoot      Type = "take_loot"      // place floor item Loot at To
	TypeNextEncounter Type = "next_encounter" // descend to the next floor
)

// Category groups related actions together
type Category string

const (
	CategoryCombat    Category = "combat"
	CategoryInventory Category = "inventory"
	CategoryDungeon   Category = "dungeon"
)

// Action is a single player command. Only the fields relevant to Type are read.
// Anchor names an item by any cell it covers; To is the anchor an item is
// placed at.
type Action struct {
	Type   Type          `json:"type"`
	Anchor grid.Position `json:"anchor"`
	To     grid.Position `json:"to"`
	Target int           `json:"target,omitempty"` // enemy index in the roster
	Loot   int           `json:"loot,omitempty"`   // index into the floor loot
}

// Attack strikes enemy target with the weapon covering cell weapon
func Attack(target int, weapon grid.Position) Action {
	return Action{Type: TypeAttack, Target: target, Anchor: weapon}
}

// Defend raises block with the armor covering cell armor
func Defend(armor grid.Position) Action {
	return Action{Type: TypeDefend, Anchor: armor}
}

// UseItem uses the item covering anchor, against target if it is a weapon
func UseItem(anchor grid.Position, target int) Action {
	return Action{Type: TypeUseItem, Anchor: anchor, Target: target}
}

// EndTurn ends the hero's turn
func EndTurn() Action {
	return Action{Type: TypeEndTurn}
}

// Move relocates the item covering cell from so that it is anchored at to
func Move(from, to grid.Position) Action {
	return Action{Type: TypeMove, Anchor: from, To: to}
}

// Rotate turns the item covering anchor by 90 degrees
func Rotate(anchor grid.Position) Action {
	return Action{Type: TypeRotate, Anchor: anchor}
}

// Discard removes the item covering anchor from the backpack
func Discard(anchor grid.Position) Action {
	return Action{Type: TypeDiscard, Anchor: anchor}
}

// TakeLoot places floor item index at anchor
func TakeLoot(index int, anchor grid.Position) Action {
	return Action{Type: TypeTakeLoot, Loot: index, To: anchor}
}

// NextEncounter starts the next floor's fight
func NextEncounter() Action {
	return Action{Type: TypeNextEncounter}
}

// Validate rejects unknown action types and negative indices
func (a Action) Validate() error {
	if _, ok := catalogue[a.Type]; !ok {
		return fmt.Errorf("unknown action type %q", a.Type)
	}
	if a.Target < 0 || a.Loot < 0 {
		return fmt.Errorf("action %s has a negative index", a.Type)
	}
	return nil
}

// Decode parses and validates a JSON action
func Decode(data []byte) (Action, error) {
	var a Action
	if err := json.Unmarshal(data, &a); err != nil {
		return Action{}, fmt.Errorf("failed to parse action: %w", err)
	}
	if err := a.Validate(); err != nil {
		return Action{}, err
	}
	return a, nil
}

// String returns a short description for logs
func (a Action) String() string {
	switch a.Type {
	case TypeAttack, TypeUseItem:
		return fmt.Sprintf("%s %s -> #%d", a.Type, a.Anchor, a.Target)
	case TypeDefend, TypeRotate, TypeDiscard:
		return fmt.Sprintf("%s %s", a.Type, a.Anchor)
	case TypeMove:
		return fmt.Sprintf("%s %s -> %s", a.Type, a.Anchor, a.To)
	case TypeTakeLoot:
		return fmt.Sprintf("%s #%d -> %s", a.Type, a.Loot, a.To)
	default:
		return string(a.Type)
	}
}
