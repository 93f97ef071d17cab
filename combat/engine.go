// Package combat resolves turn-based encounters between the hero and a
// roster of enemies. Every call runs to completion synchronously; the
// caller drives the round cadence:
//
//	HeroTurn → HeroAttack/HeroDefend… → EnemyTurn per living enemy → DecideEnemyIntents
package combat

import (
	"fmt"

	"go.uber.org/zap"

	"chosenoffset.com/packdelve/contract"
	"chosenoffset.com/packdelve/dice"
	"chosenoffset.com/packdelve/entity"
	"chosenoffset.com/packdelve/item"
)

// ManaSource supplies the hero's mana at the start of a turn.
// *backpack.Backpack satisfies it.
type ManaSource interface {
	Mana() int
}

// Result contains the outcome of a single combat action
type Result struct {
	Actor   string
	Target  string
	Action  string // "attack" or "defend"
	Damage  int    // damage dealt before block
	Blocked int    // damage absorbed by block
	Block   int    // block gained by a defend
	Killed  bool
	Message string
}

// Engine runs one encounter at a time
type Engine struct {
	enemies []*entity.Enemy
	intents map[*entity.Enemy]Intent
	phase   Phase
	round   int

	roller *dice.Roller
	logger *zap.Logger

	// Callbacks
	OnMessage func(msg string)
	OnCombat  func(result Result)
}

// NewEngine creates an idle engine. A nil logger disables logging.
func NewEngine(roller *dice.Roller, logger *zap.Logger) *Engine {
	contract.Require(roller != nil, "combat.NewEngine", "nil roller")
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		phase:  PhaseIdle,
		roller: roller,
		logger: logger.Named("combat"),
	}
}

// Phase returns the current phase
func (e *Engine) Phase() Phase {
	return e.phase
}

// InCombat returns true while an encounter is active
func (e *Engine) InCombat() bool {
	return e.phase == PhaseInCombat
}

// Round returns the current round number (1-based, 0 when idle)
func (e *Engine) Round() int {
	return e.round
}

// Enemies returns the roster, dead enemies included
func (e *Engine) Enemies() []*entity.Enemy {
	out := make([]*entity.Enemy, len(e.enemies))
	copy(out, e.enemies)
	return out
}

// LivingEnemies returns roster members with HP remaining
func (e *Engine) LivingEnemies() []*entity.Enemy {
	var living []*entity.Enemy
	for _, en := range e.enemies {
		if en.IsAlive() {
			living = append(living, en)
		}
	}
	return living
}

// StartCombat sets the roster and decides the first round's intents.
// An empty roster leaves the engine idle.
func (e *Engine) StartCombat(enemies []*entity.Enemy) {
	for _, en := range enemies {
		contract.Require(en != nil, "combat.StartCombat", "nil enemy in roster")
	}
	e.enemies = make([]*entity.Enemy, len(enemies))
	copy(e.enemies, enemies)
	e.intents = nil
	e.round = 0

	if len(e.enemies) == 0 {
		e.phase = PhaseIdle
		return
	}

	e.phase = PhaseInCombat
	e.round = 1
	e.logger.Info("combat started", zap.Int("enemies", len(e.enemies)))
	e.DecideEnemyIntents()
}

// DecideEnemyIntents picks Attack or Defend for every living enemy with
// equal probability. The choices stay fixed until the next call.
func (e *Engine) DecideEnemyIntents() {
	e.intents = make(map[*entity.Enemy]Intent, len(e.enemies))
	for _, en := range e.enemies {
		if !en.IsAlive() {
			continue
		}
		intent := IntentDefend
		if e.roller.Coin() {
			intent = IntentAttack
		}
		e.intents[en] = intent
		e.logger.Debug("enemy intent",
			zap.String("enemy", en.ID),
			zap.Stringer("intent", intent),
			zap.Int("round", e.round))
	}
}

// Intent returns the decided intent for enemy in the current round
func (e *Engine) Intent(enemy *entity.Enemy) (Intent, bool) {
	intent, ok := e.intents[enemy]
	return intent, ok
}

// HeroTurn starts the hero's round: energy refills, block resets and mana
// is refreshed from the backpack. Call once before any hero action.
func (e *Engine) HeroTurn(hero *entity.Hero, mana ManaSource) {
	contract.Require(hero != nil && mana != nil, "combat.HeroTurn", "nil hero or mana source")
	hero.Energy = hero.MaxEnergy
	hero.Block = 0
	hero.SetMana(mana.Mana())
}

// HeroAttack strikes enemy with weapon. Returns false, changing nothing,
// when the hero cannot pay the weapon's energy cost.
func (e *Engine) HeroAttack(hero *entity.Hero, enemy *entity.Enemy, weapon *item.Weapon) bool {
	contract.Require(hero != nil && enemy != nil && weapon != nil, "combat.HeroAttack", "nil hero, enemy or weapon")
	if !hero.SpendEnergy(weapon.EnergyCost) {
		e.message(fmt.Sprintf("Not enough energy! Need %d, have %d", weapon.EnergyCost, hero.Energy))
		return false
	}

	blockBefore := enemy.Block
	enemy.TakeHit(weapon.Damage)

	result := Result{
		Actor:   hero.Name,
		Target:  enemy.Name,
		Action:  "attack",
		Damage:  weapon.Damage,
		Blocked: min(blockBefore, weapon.Damage),
		Killed:  !enemy.IsAlive(),
	}
	result.Message = fmt.Sprintf("%s hits %s with %s for %d.", hero.Name, enemy.Name, weapon.Name(), weapon.Damage-result.Blocked)
	if result.Killed {
		result.Message += " " + enemy.Name + " is defeated!"
	}
	e.report(result)
	return true
}

// HeroDefend raises the hero's block by the armor's protection. Returns
// false, changing nothing, when the hero cannot pay the energy cost.
func (e *Engine) HeroDefend(hero *entity.Hero, armor *item.Armor) bool {
	contract.Require(hero != nil && armor != nil, "combat.HeroDefend", "nil hero or armor")
	if !hero.SpendEnergy(armor.EnergyCost) {
		e.message(fmt.Sprintf("Not enough energy! Need %d, have %d", armor.EnergyCost, hero.Energy))
		return false
	}
	hero.Block += armor.Protection

	e.report(Result{
		Actor:   hero.Name,
		Target:  hero.Name,
		Action:  "defend",
		Block:   armor.Protection,
		Message: fmt.Sprintf("%s raises %s (+%d block).", hero.Name, armor.Name(), armor.Protection),
	})
	return true
}

// EnemyTurn executes one enemy's action. The enemy's block resets first.
func (e *Engine) EnemyTurn(hero *entity.Hero, enemy *entity.Enemy, intent Intent) Result {
	contract.Require(hero != nil && enemy != nil, "combat.EnemyTurn", "nil hero or enemy")
	enemy.Block = 0

	var result Result
	switch intent {
	case IntentAttack:
		blockBefore := hero.Block
		hero.TakeHit(enemy.Attack)
		result = Result{
			Actor:   enemy.Name,
			Target:  hero.Name,
			Action:  "attack",
			Damage:  enemy.Attack,
			Blocked: min(blockBefore, enemy.Attack),
			Killed:  !hero.IsAlive(),
		}
		result.Message = fmt.Sprintf("%s hits %s for %d.", enemy.Name, hero.Name, enemy.Attack-result.Blocked)
		if result.Killed {
			result.Message += " " + hero.Name + " falls!"
		}
	case IntentDefend:
		enemy.Block += enemy.Defense
		result = Result{
			Actor:   enemy.Name,
			Target:  enemy.Name,
			Action:  "defend",
			Block:   enemy.Defense,
			Message: fmt.Sprintf("%s braces (+%d block).", enemy.Name, enemy.Defense),
		}
	default:
		contract.Panicf("combat.EnemyTurn", "unknown intent %d", intent)
	}

	e.report(result)
	return result
}

// ResolveEnemyRound has every living enemy carry out its decided intent,
// then decides intents for the next round. It stops early if the hero dies.
func (e *Engine) ResolveEnemyRound(hero *entity.Hero) []Result {
	if !e.InCombat() {
		return nil
	}

	var results []Result
	for _, en := range e.enemies {
		if !hero.IsAlive() {
			break
		}
		if !en.IsAlive() {
			continue
		}
		intent, ok := e.intents[en]
		if !ok {
			continue
		}
		results = append(results, e.EnemyTurn(hero, en, intent))
	}

	if !e.IsCombatOver(hero) {
		e.round++
		e.DecideEnemyIntents()
	}
	return results
}

// IsCombatOver returns true when the hero is dead, the roster is empty, or
// every enemy is dead.
func (e *Engine) IsCombatOver(hero *entity.Hero) bool {
	if hero != nil && !hero.IsAlive() {
		return true
	}
	for _, en := range e.enemies {
		if en.HP > 0 {
			return false
		}
	}
	return true
}

// GoldReward sums gold drops over the whole roster, dead or alive
func (e *Engine) GoldReward() int {
	total := 0
	for _, en := range e.enemies {
		total += en.GoldDrop
	}
	return total
}

// XPReward sums xp drops over the whole roster, dead or alive
func (e *Engine) XPReward() int {
	total := 0
	for _, en := range e.enemies {
		total += en.XPDrop
	}
	return total
}

// EndCombat clears the roster and intents and returns the engine to idle
func (e *Engine) EndCombat() {
	if e.phase == PhaseInCombat {
		e.logger.Info("combat ended", zap.Int("rounds", e.round))
	}
	e.enemies = nil
	e.intents = nil
	e.phase = PhaseIdle
	e.round = 0
}

func (e *Engine) report(result Result) {
	e.logger.Debug("combat action",
		zap.String("actor", result.Actor),
		zap.String("target", result.Target),
		zap.String("action", result.Action),
		zap.Int("damage", result.Damage),
		zap.Int("blocked", result.Blocked),
		zap.Int("block", result.Block),
		zap.Bool("killed", result.Killed))
	if e.OnCombat != nil {
		e.OnCombat(result)
	}
	e.message(result.Message)
}

func (e *Engine) message(msg string) {
	if e.OnMessage != nil {
		e.OnMessage(msg)
	}
}
