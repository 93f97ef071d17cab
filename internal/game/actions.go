package game

import (
	"go.uber.org/zap"

	"chosenoffset.com/packdelve/entity"
	"chosenoffset.com/packdelve/gamestate"
	"chosenoffset.com/packdelve/grid"
	"chosenoffset.com/packdelve/item"
	"chosenoffset.com/packdelve/leaderboard"
)

func (s *Session) target(index int) (*entity.Enemy, Result) {
	roster := s.engine.Enemies()
	if index < 0 || index >= len(roster) {
		return nil, reject("There is no enemy #%d.", index+1)
	}
	enemy := roster[index]
	if !enemy.IsAlive() {
		return nil, reject("%s is already defeated.", enemy.Name)
	}
	return enemy, Result{OK: true}
}

func (s *Session) attack(index int, anchor grid.Position) Result {
	if s.phase != PhaseCombat {
		return reject("There is nothing to fight.")
	}
	it, ok := s.pack.ItemAt(anchor)
	if !ok {
		return reject("No item at %s.", anchor)
	}
	weapon, ok := it.(*item.Weapon)
	if !ok {
		return reject("%s is not a weapon.", it.Name())
	}
	return s.strike(index, weapon)
}

func (s *Session) strike(index int, weapon *item.Weapon) Result {
	enemy, res := s.target(index)
	if !res.OK {
		return res
	}
	if !s.engine.HeroAttack(s.hero, enemy, weapon) {
		return reject("Not enough energy! Need %d, have %d.", weapon.EnergyCost, s.hero.Energy)
	}
	if !enemy.IsAlive() {
		s.stats.Add(gamestate.EnemiesDefeated, 1)
	}
	s.afterHeroAction()
	return Result{OK: true, Message: s.lastLog()}
}

func (s *Session) defend(anchor grid.Position) Result {
	if s.phase != PhaseCombat {
		return reject("There is nothing to defend against.")
	}
	it, ok := s.pack.ItemAt(anchor)
	if !ok {
		return reject("No item at %s.", anchor)
	}
	armor, ok := it.(*item.Armor)
	if !ok {
		return reject("%s is not armor.", it.Name())
	}
	return s.guard(armor)
}

func (s *Session) guard(armor *item.Armor) Result {
	if !s.engine.HeroDefend(s.hero, armor) {
		return reject("Not enough energy! Need %d, have %d.", armor.EnergyCost, s.hero.Energy)
	}
	s.afterHeroAction()
	return Result{OK: true, Message: s.lastLog()}
}

func (s *Session) useItem(anchor grid.Position, index int) Result {
	if s.phase != PhaseCombat {
		return reject("Items can only be used in combat.")
	}
	it, ok := s.pack.ItemAt(anchor)
	if !ok {
		return reject("No item at %s.", anchor)
	}
	switch v := it.(type) {
	case *item.Weapon:
		return s.strike(index, v)
	case *item.Armor:
		return s.guard(v)
	default:
		return reject("%s cannot be used.", it.Name())
	}
}

// afterHeroAction ends the encounter on victory, or the turn once energy
// runs out
func (s *Session) afterHeroAction() {
	if s.engine.IsCombatOver(s.hero) {
		s.resolveCombat()
		return
	}
	if s.hero.Energy == 0 {
		s.resolveEnemyRound()
	}
}

func (s *Session) endTurn() Result {
	if s.phase != PhaseCombat {
		return reject("There is no turn to end.")
	}
	s.resolveEnemyRound()
	return Result{OK: true, Message: s.lastLog()}
}

// resolveEnemyRound lets every living enemy act, then starts the next hero
// turn if the fight goes on
func (s *Session) resolveEnemyRound() {
	s.engine.ResolveEnemyRound(s.hero)
	s.stats.Add(gamestate.RoundsFought, 1)
	if s.engine.IsCombatOver(s.hero) {
		s.resolveCombat()
		return
	}
	s.engine.HeroTurn(s.hero, s.pack)
}

func (s *Session) resolveCombat() {
	if !s.hero.IsAlive() {
		s.engine.EndCombat()
		s.stats.Add(gamestate.Deaths, 1)
		s.addLog(s.hero.Name + " has fallen.")
		s.finish(PhaseDefeat)
		return
	}

	gold := s.engine.GoldReward()
	xp := s.engine.XPReward()
	floor := s.floors[s.floor]
	boss := false
	for _, e := range s.engine.Enemies() {
		if def := s.enemies.Get(baseID(e.ID)); def != nil && def.HasTag("boss") {
			boss = true
		}
	}
	s.engine.EndCombat()

	s.pack.AddGold(gold)
	levels := s.hero.AddXP(xp)
	if levels > 0 {
		s.hero.Heal(s.hero.MaxHP)
		s.addLog(formatLevelUp(s.hero.Name, s.hero.Level))
	}
	s.hero.Block = 0
	s.hero.Energy = s.hero.MaxEnergy
	s.hero.SetMana(s.pack.Mana())
	s.score += gold + xp

	s.stats.Add(gamestate.GoldEarned, gold)
	s.stats.Add(gamestate.XPEarned, xp)
	s.stats.Add(gamestate.LevelsGained, levels)
	s.stats.Add(gamestate.FloorsCleared, 1)
	if boss {
		s.stats.SetFlag(gamestate.FlagBossDefeated, true)
	}
	s.addLog(formatVictory(floor.Name, gold, xp))
	s.logger.Info("floor cleared",
		zap.String("floor", floor.Name),
		zap.Int("gold", gold),
		zap.Int("xp", xp),
		zap.Int("levels", levels))

	s.floor++
	s.loot = s.loot[:0]
	for _, id := range floor.Loot {
		it, err := s.items.New(id)
		if err != nil {
			s.logger.Warn("failed to create loot", zap.String("item", id), zap.Error(err))
			continue
		}
		s.loot = append(s.loot, it)
	}

	if s.floor >= len(s.floors) {
		s.stats.Add(gamestate.Victories, 1)
		s.addLog("The dungeon is cleared!")
		s.finish(PhaseVictory)
		return
	}
	s.phase = PhaseExploring
}

func (s *Session) nextEncounter() Result {
	if s.phase != PhaseExploring {
		return reject("Finish the current fight first.")
	}
	floor := s.floors[s.floor]
	roster, err := s.enemies.SpawnGroup(floor.Enemies, s.roller)
	if err != nil {
		s.logger.Error("failed to spawn floor", zap.String("floor", floor.Name), zap.Error(err))
		return reject("The way down is blocked.")
	}

	s.loot = s.loot[:0]
	s.engine.StartCombat(roster)
	s.engine.HeroTurn(s.hero, s.pack)
	s.phase = PhaseCombat
	s.addLog(formatDescend(s.floor+1, floor.Name, len(roster)))
	return Result{OK: true, Message: s.lastLog()}
}

// move takes from as a covered cell, never as an anchor: a rotated shape
// can leave its anchor cell empty or under another item
func (s *Session) move(from, to grid.Position) Result {
	anchor, ok := s.pack.AnchorAt(from)
	if !ok {
		return reject("No item at %s.", from)
	}
	if !s.pack.Move(anchor, to) {
		return reject("It does not fit there.")
	}
	return Result{OK: true}
}

func (s *Session) rotate(at grid.Position) Result {
	anchor, ok := s.pack.AnchorAt(at)
	if !ok {
		return reject("No item at %s.", at)
	}
	if !s.pack.RotateItem(anchor) {
		return reject("No room to rotate.")
	}
	return Result{OK: true}
}

func (s *Session) discard(at grid.Position) Result {
	anchor, ok := s.pack.AnchorAt(at)
	if !ok {
		return reject("No item at %s.", at)
	}
	it, _ := s.pack.Remove(anchor)
	s.loot = append(s.loot, it)
	s.stats.Add(gamestate.ItemsDiscarded, 1)
	return Result{OK: true, Message: "Dropped " + it.Name() + "."}
}

func (s *Session) takeLoot(index int, anchor grid.Position) Result {
	if index < 0 || index >= len(s.loot) {
		return reject("There is no item #%d on the floor.", index+1)
	}
	it := s.loot[index]
	if !s.pack.Place(it, anchor) {
		return reject("%s does not fit at %s.", it.Name(), anchor)
	}
	s.loot = append(s.loot[:index], s.loot[index+1:]...)
	s.stats.Add(gamestate.ItemsLooted, 1)
	return Result{OK: true, Message: "Took " + it.Name() + "."}
}

// finish ends the run and records the score once
func (s *Session) finish(phase Phase) {
	s.phase = phase
	if s.recorded {
		return
	}
	s.recorded = true

	entry := leaderboard.Entry{Name: s.hero.Name, Score: s.score, Level: s.hero.Level}
	if s.ledger != nil && s.ledger.Record(entry) {
		s.addLog("New high score!")
	}
	s.logger.Info("session ended",
		zap.Stringer("phase", phase),
		zap.Int("score", s.score),
		zap.Int("level", s.hero.Level))
	if s.OnEnd != nil {
		s.OnEnd(s)
	}
}

// refreshMana is the backpack's change hook. It keeps the displayed mana in
// step with the backpack outside combat; during a fight mana only changes at
// the start of a hero turn.
func (s *Session) refreshMana() {
	if s.phase != PhaseCombat {
		s.hero.SetMana(s.pack.Mana())
	}
}

func (s *Session) lastLog() string {
	if len(s.log) == 0 {
		return ""
	}
	return s.log[len(s.log)-1]
}
