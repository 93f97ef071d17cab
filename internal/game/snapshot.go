package game

import (
	"fmt"

	"chosenoffset.com/packdelve/combat"
	"chosenoffset.com/packdelve/grid"
	"chosenoffset.com/packdelve/item"
	"chosenoffset.com/packdelve/leaderboard"
)

// Snapshot is a read-only view of the session for renderers and the wire
type Snapshot struct {
	ID        string              `json:"id"`
	Phase     Phase               `json:"phase"`
	Floor     int                 `json:"floor"` // 1-based depth of the current or next floor
	FloorName string              `json:"floor_name"`
	Floors    int                 `json:"floors"`
	Round     int                 `json:"round"`
	Score     int                 `json:"score"`
	Hero      HeroView            `json:"hero"`
	Backpack  BackpackView        `json:"backpack"`
	Enemies   []EnemyView         `json:"enemies"`
	Loot      []item.Definition   `json:"loot"`
	Log       []string            `json:"log"`
	Stats     map[string]int      `json:"stats"`
	Scores    []leaderboard.Entry `json:"scores,omitempty"`

	// OnPace is set while the run is live and its score would enter the
	// leaderboard if it ended now
	OnPace bool `json:"on_pace,omitempty"`
}

// HeroView mirrors the hero's numbers
type HeroView struct {
	Name          string `json:"name"`
	HP            int    `json:"hp"`
	MaxHP         int    `json:"max_hp"`
	Energy        int    `json:"energy"`
	MaxEnergy     int    `json:"max_energy"`
	Mana          int    `json:"mana"`
	Block         int    `json:"block"`
	Level         int    `json:"level"`
	XP            int    `json:"xp"`
	XPToNextLevel int    `json:"xp_to_next_level"`
}

// BackpackView lists placed items with their anchors
type BackpackView struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Gold   int          `json:"gold"`
	Mana   int          `json:"mana"`
	Items  []PlacedView `json:"items"`
}

// PlacedView is one item in the backpack
type PlacedView struct {
	Anchor grid.Position   `json:"anchor"`
	Cells  []grid.Position `json:"cells"`
	Item   item.Definition `json:"item"`
}

// EnemyView mirrors one roster entry. Intent is empty for dead enemies.
type EnemyView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	HP      int    `json:"hp"`
	MaxHP   int    `json:"max_hp"`
	Attack  int    `json:"attack"`
	Defense int    `json:"defense"`
	Block   int    `json:"block"`
	Intent  string `json:"intent,omitempty"`
	Alive   bool   `json:"alive"`
}

// Snapshot captures the current state
func (s *Session) Snapshot() Snapshot {
	h := s.hero
	snap := Snapshot{
		ID:     s.ID,
		Phase:  s.phase,
		Floors: len(s.floors),
		Round:  s.engine.Round(),
		Score:  s.score,
		Hero: HeroView{
			Name:          h.Name,
			HP:            h.HP,
			MaxHP:         h.MaxHP,
			Energy:        h.Energy,
			MaxEnergy:     h.MaxEnergy,
			Mana:          h.Mana,
			Block:         h.Block,
			Level:         h.Level,
			XP:            h.XP,
			XPToNextLevel: h.XPToNextLevel,
		},
		Backpack: BackpackView{
			Width:  s.pack.Width(),
			Height: s.pack.Height(),
			Gold:   s.pack.Gold(),
			Mana:   s.pack.Mana(),
		},
		Log:   s.Log(),
		Stats: s.stats.Clone().Counters,
	}

	depth := s.floor
	if depth >= len(s.floors) {
		depth = len(s.floors) - 1
	}
	if depth >= 0 {
		snap.Floor = depth + 1
		snap.FloorName = s.floors[depth].Name
	}

	for _, p := range s.pack.Items() {
		snap.Backpack.Items = append(snap.Backpack.Items, PlacedView{
			Anchor: p.Anchor,
			Cells:  p.Item.Shape().AbsolutePositions(p.Anchor),
			Item:   item.Describe(p.Item),
		})
	}

	for _, e := range s.engine.Enemies() {
		view := EnemyView{
			ID:      e.ID,
			Name:    e.Name,
			HP:      e.HP,
			MaxHP:   e.MaxHP,
			Attack:  e.Attack,
			Defense: e.Defense,
			Block:   e.Block,
			Alive:   e.IsAlive(),
		}
		if intent, ok := s.engine.Intent(e); ok && e.IsAlive() {
			view.Intent = intentLabel(intent, e.Attack, e.Defense)
		}
		snap.Enemies = append(snap.Enemies, view)
	}

	for _, it := range s.loot {
		snap.Loot = append(snap.Loot, item.Describe(it))
	}
	if s.ledger != nil {
		snap.Scores = s.ledger.Entries()
		snap.OnPace = !s.phase.IsOver() && s.score > 0 && s.ledger.Qualifies(s.score)
	}
	return snap
}

func intentLabel(intent combat.Intent, attack, defense int) string {
	switch intent {
	case combat.IntentAttack:
		return fmt.Sprintf("attack %d", attack)
	case combat.IntentDefend:
		return fmt.Sprintf("defend %d", defense)
	}
	return intent.String()
}
