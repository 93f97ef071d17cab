// Package game runs a play session: one hero, one backpack and a fixed
// sequence of floors. It turns player actions into backpack and combat
// engine calls, hands out rewards and records the final score.
package game

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chosenoffset.com/packdelve/action"
	"chosenoffset.com/packdelve/backpack"
	"chosenoffset.com/packdelve/combat"
	"chosenoffset.com/packdelve/dice"
	"chosenoffset.com/packdelve/entity"
	"chosenoffset.com/packdelve/gamestate"
	"chosenoffset.com/packdelve/grid"
	"chosenoffset.com/packdelve/internal/config"
	"chosenoffset.com/packdelve/item"
	"chosenoffset.com/packdelve/leaderboard"
)

// Phase is the session's position in the run
type Phase int

const (
	PhaseExploring Phase = iota // between fights; loot may be taken
	PhaseCombat                 // an encounter is running
	PhaseVictory                // every floor cleared
	PhaseDefeat                 // hero died
)

var phaseNames = [...]string{"exploring", "combat", "victory", "defeat"}

// String returns the phase name
func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name
func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// IsOver returns true once the run has ended
func (p Phase) IsOver() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

// Result is the outcome of one applied action
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func reject(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

// maxLog bounds the message history kept for display
const maxLog = 12

// Options supplies collaborators. Zero values fall back to defaults.
type Options struct {
	Items   *item.Library
	Enemies *entity.Library
	Roller  *dice.Roller
	Ledger  *leaderboard.Ledger
	Logger  *zap.Logger
}

// Session is one run through the dungeon. It is not safe for concurrent use;
// actions are applied one at a time.
type Session struct {
	ID string

	hero   *entity.Hero
	pack   *backpack.Backpack
	engine *combat.Engine
	roller *dice.Roller

	items   *item.Library
	enemies *entity.Library
	floors  []config.FloorConfig
	floor   int // index of the current or next floor

	loot     []item.Item
	phase    Phase
	score    int
	recorded bool

	stats  *gamestate.Stats
	ledger *leaderboard.Ledger
	logger *zap.Logger
	log    []string

	// OnEnd fires once when the run ends
	OnEnd func(s *Session)
}

// NewSession creates a session from configuration and packs the starting kit
func NewSession(cfg *config.Config, opts Options) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.Items == nil {
		opts.Items = item.DefaultLibrary()
	}
	if opts.Enemies == nil {
		opts.Enemies = entity.DefaultLibrary()
	}
	if opts.Roller == nil {
		opts.Roller = dice.NewSeededRoller(cfg.Seed)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	for i, f := range cfg.Dungeon.Floors {
		for _, id := range f.Enemies {
			if opts.Enemies.Get(id) == nil {
				return nil, fmt.Errorf("floor %d: unknown enemy %q", i+1, id)
			}
		}
		for _, id := range f.Loot {
			if opts.Items.Get(id) == nil {
				return nil, fmt.Errorf("floor %d: unknown loot %q", i+1, id)
			}
		}
	}

	pack, err := backpack.New(cfg.Backpack.Width, cfg.Backpack.Height)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	s := &Session{
		ID:      id,
		hero:    entity.NewHero(cfg.Hero.Name),
		pack:    pack,
		roller:  opts.Roller,
		items:   opts.Items,
		enemies: opts.Enemies,
		floors:  cfg.Dungeon.Floors,
		phase:   PhaseExploring,
		stats:   gamestate.New(),
		ledger:  opts.Ledger,
		logger:  opts.Logger.With(zap.String("session", id)),
	}
	s.engine = combat.NewEngine(s.roller, s.logger)
	s.engine.OnCombat = func(r combat.Result) { s.addLog(r.Message) }

	s.pack.OnChange = s.refreshMana

	if err := s.packKit(cfg.Backpack.StartingKit); err != nil {
		return nil, err
	}
	if cfg.Backpack.StartGold > 0 {
		s.pack.AddGold(cfg.Backpack.StartGold)
	}
	s.stats.Add(gamestate.Runs, 1)

	if len(s.floors) == 0 {
		s.finish(PhaseVictory)
	}
	s.logger.Info("session started",
		zap.String("hero", s.hero.Name),
		zap.Int("floors", len(s.floors)))
	return s, nil
}

func (s *Session) packKit(kit []config.KitItem) error {
	for _, k := range kit {
		it, err := s.items.New(k.ID)
		if err != nil {
			return fmt.Errorf("starting kit: %w", err)
		}
		var anchor grid.Position
		if k.Anchor != nil {
			anchor = grid.Pos(k.Anchor[0], k.Anchor[1])
		} else {
			var ok bool
			if anchor, ok = s.pack.FirstFit(it); !ok {
				return fmt.Errorf("starting kit: no room for %s", k.ID)
			}
		}
		if !s.pack.Place(it, anchor) {
			return fmt.Errorf("starting kit: cannot place %s at %s", k.ID, anchor)
		}
	}
	return nil
}

// Hero returns the hero
func (s *Session) Hero() *entity.Hero { return s.hero }

// Backpack returns the hero's backpack
func (s *Session) Backpack() *backpack.Backpack { return s.pack }

// Engine returns the combat engine
func (s *Session) Engine() *combat.Engine { return s.engine }

// Phase returns the current phase
func (s *Session) Phase() Phase { return s.phase }

// Score returns gold plus xp earned so far
func (s *Session) Score() int { return s.score }

// Stats returns the run statistics
func (s *Session) Stats() *gamestate.Stats { return s.stats }

// Loot returns the items lying on the floor
func (s *Session) Loot() []item.Item {
	out := make([]item.Item, len(s.loot))
	copy(out, s.loot)
	return out
}

// Log returns recent messages, oldest first
func (s *Session) Log() []string {
	out := make([]string, len(s.log))
	copy(out, s.log)
	return out
}

// Apply executes exactly one action
func (s *Session) Apply(a action.Action) Result {
	if err := a.Validate(); err != nil {
		return Result{Message: err.Error()}
	}
	if s.phase.IsOver() {
		return reject("The run is over.")
	}

	var res Result
	switch a.Type {
	case action.TypeAttack:
		res = s.attack(a.Target, a.Anchor)
	case action.TypeDefend:
		res = s.defend(a.Anchor)
	case action.TypeUseItem:
		res = s.useItem(a.Anchor, a.Target)
	case action.TypeEndTurn:
		res = s.endTurn()
	case action.TypeMove:
		res = s.move(a.Anchor, a.To)
	case action.TypeRotate:
		res = s.rotate(a.Anchor)
	case action.TypeDiscard:
		res = s.discard(a.Anchor)
	case action.TypeTakeLoot:
		res = s.takeLoot(a.Loot, a.To)
	case action.TypeNextEncounter:
		res = s.nextEncounter()
	}

	if res.OK {
		s.logger.Debug("action applied", zap.Stringer("action", a))
	} else {
		s.logger.Debug("action rejected", zap.Stringer("action", a), zap.String("reason", res.Message))
		s.addLog(res.Message)
	}
	return res
}

func (s *Session) addLog(msg string) {
	if msg == "" {
		return
	}
	s.log = append(s.log, msg)
	if len(s.log) > maxLog {
		s.log = s.log[len(s.log)-maxLog:]
	}
}
