package combat

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"chosenoffset.com/packdelve/dice"
	"chosenoffset.com/packdelve/entity"
	"chosenoffset.com/packdelve/grid"
	"chosenoffset.com/packdelve/item"
)

type fixedMana int

func (m fixedMana) Mana() int { return int(m) }

func newTestEngine(flips ...bool) *Engine {
	return NewEngine(dice.NewRoller(dice.Bits(flips...)), nil)
}

func rat(hp int) *entity.Enemy {
	e := entity.NewEnemy("rat", "Rat", 10, 10, 4, 3, 5)
	e.HP = hp
	return e
}

func TestStartCombatDecidesIntents(t *testing.T) {
	eng := newTestEngine(true, false)
	a, b := rat(10), rat(10)
	eng.StartCombat([]*entity.Enemy{a, b})

	if !eng.InCombat() || eng.Round() != 1 {
		t.Fatalf("Expected round 1 in combat, got phase=%s round=%d", eng.Phase(), eng.Round())
	}
	if got, ok := eng.Intent(a); !ok || got != IntentAttack {
		t.Errorf("Expected a to attack, got %v %v", got, ok)
	}
	if got, ok := eng.Intent(b); !ok || got != IntentDefend {
		t.Errorf("Expected b to defend, got %v %v", got, ok)
	}
}

func TestDeadEnemiesGetNoIntent(t *testing.T) {
	eng := newTestEngine(true)
	dead, alive := rat(0), rat(5)
	eng.StartCombat([]*entity.Enemy{dead, alive})
	if _, ok := eng.Intent(dead); ok {
		t.Error("Expected no intent for a dead enemy")
	}
	if _, ok := eng.Intent(alive); !ok {
		t.Error("Expected an intent for a living enemy")
	}
}

func TestStartCombatEmptyRosterStaysIdle(t *testing.T) {
	eng := newTestEngine()
	eng.StartCombat(nil)
	if eng.InCombat() {
		t.Error("Expected empty roster to leave the engine idle")
	}
	if !eng.IsCombatOver(entity.NewHero("Ada")) {
		t.Error("Expected combat over with no roster")
	}
}

func TestHeroTurnResets(t *testing.T) {
	eng := newTestEngine()
	hero := entity.NewHero("Ada")
	hero.Energy = 0
	hero.Block = 9
	eng.HeroTurn(hero, fixedMana(4))
	if hero.Energy != 3 || hero.Block != 0 || hero.Mana != 4 {
		t.Errorf("Expected energy=3 block=0 mana=4, got %d/%d/%d", hero.Energy, hero.Block, hero.Mana)
	}
}

func TestEnemyAttackDamageRule(t *testing.T) {
	eng := newTestEngine()
	hero := entity.NewHero("Ada")
	enemy := entity.NewEnemy("brute", "Brute", 20, 10, 0, 0, 0)

	eng.EnemyTurn(hero, enemy, IntentAttack)
	if hero.Block != 0 || hero.HP != 30 {
		t.Errorf("Expected block=0 hp=30, got block=%d hp=%d", hero.Block, hero.HP)
	}
}

func TestEnemyAttackAbsorbedByBlock(t *testing.T) {
	eng := newTestEngine()
	hero := entity.NewHero("Ada")
	hero.Block = 15
	enemy := entity.NewEnemy("brute", "Brute", 20, 10, 0, 0, 0)

	res := eng.EnemyTurn(hero, enemy, IntentAttack)
	if hero.Block != 5 || hero.HP != 40 {
		t.Errorf("Expected block=5 hp=40, got block=%d hp=%d", hero.Block, hero.HP)
	}
	if res.Blocked != 10 {
		t.Errorf("Expected 10 blocked, got %d", res.Blocked)
	}
}

func TestEnemyDefendResetsThenAddsBlock(t *testing.T) {
	eng := newTestEngine()
	hero := entity.NewHero("Ada")
	enemy := rat(10)
	enemy.Block = 7

	eng.EnemyTurn(hero, enemy, IntentDefend)
	if enemy.Block != 4 {
		t.Errorf("Expected block reset then +4, got %d", enemy.Block)
	}

	enemy.Block = 3
	eng.EnemyTurn(hero, enemy, IntentAttack)
	if enemy.Block != 0 {
		t.Errorf("Expected attack turn to reset block, got %d", enemy.Block)
	}
}

func TestHeroAttack(t *testing.T) {
	eng := newTestEngine()
	hero := entity.NewHero("Ada")
	enemy := rat(10)
	enemy.Block = 2
	sword := item.NewWeapon("Sword", grid.Line(2, true), 6, 2, 0)

	var results []Result
	eng.OnCombat = func(r Result) { results = append(results, r) }

	if !eng.HeroAttack(hero, enemy, sword) {
		t.Fatal("Expected attack to succeed")
	}
	if hero.Energy != 1 {
		t.Errorf("Expected 1 energy left, got %d", hero.Energy)
	}
	if enemy.HP != 6 || enemy.Block != 0 {
		t.Errorf("Expected hp=6 block=0, got hp=%d block=%d", enemy.HP, enemy.Block)
	}
	if len(results) != 1 || results[0].Blocked != 2 {
		t.Errorf("Unexpected results %+v", results)
	}

	// Not enough energy: nothing changes
	if eng.HeroAttack(hero, enemy, sword) {
		t.Error("Expected attack to fail with 1 energy")
	}
	if hero.Energy != 1 || enemy.HP != 6 {
		t.Errorf("Failed attack changed state: energy=%d hp=%d", hero.Energy, enemy.HP)
	}
}

func TestHeroAttackIgnoresManaCost(t *testing.T) {
	eng := newTestEngine()
	hero := entity.NewHero("Ada")
	staff := item.NewWeapon("Staff", grid.Single(), 5, 1, 9)
	enemy := rat(10)

	if !eng.HeroAttack(hero, enemy, staff) {
		t.Fatal("Expected mana cost not to gate the attack")
	}
	if hero.Mana != 0 {
		t.Errorf("Expected mana untouched, got %d", hero.Mana)
	}
}

func TestHeroDefend(t *testing.T) {
	eng := newTestEngine()
	hero := entity.NewHero("Ada")
	shield := item.NewArmor("Shield", grid.Rect(2, 2), 7, 2)

	if !eng.HeroDefend(hero, shield) {
		t.Fatal("Expected defend to succeed")
	}
	if hero.Block != 7 || hero.Energy != 1 {
		t.Errorf("Expected block=7 energy=1, got %d/%d", hero.Block, hero.Energy)
	}
	if eng.HeroDefend(hero, shield) {
		t.Error("Expected defend to fail without energy")
	}
	if hero.Block != 7 {
		t.Errorf("Expected block unchanged, got %d", hero.Block)
	}
}

func TestIsCombatOver(t *testing.T) {
	eng := newTestEngine(true)
	hero := entity.NewHero("Ada")

	eng.StartCombat([]*entity.Enemy{rat(0), rat(3)})
	if eng.IsCombatOver(hero) {
		t.Error("Expected combat to continue with a living enemy")
	}

	eng.StartCombat([]*entity.Enemy{rat(0), rat(0)})
	if !eng.IsCombatOver(hero) {
		t.Error("Expected combat over when all enemies are dead")
	}

	eng.StartCombat([]*entity.Enemy{rat(10), rat(10)})
	hero.SetHP(0)
	if !eng.IsCombatOver(hero) {
		t.Error("Expected combat over when the hero is dead")
	}
}

func TestRewardsCountWholeRoster(t *testing.T) {
	eng := newTestEngine(true)
	a := entity.NewEnemy("a", "A", 5, 1, 1, 4, 6)
	b := entity.NewEnemy("b", "B", 5, 1, 1, 7, 2)
	a.HP = 0
	eng.StartCombat([]*entity.Enemy{a, b})
	if eng.GoldReward() != 11 || eng.XPReward() != 8 {
		t.Errorf("Expected gold=11 xp=8, got %d/%d", eng.GoldReward(), eng.XPReward())
	}
}

func TestEndCombatClearsState(t *testing.T) {
	eng := newTestEngine(true)
	a := rat(10)
	eng.StartCombat([]*entity.Enemy{a})
	eng.EndCombat()
	if eng.InCombat() || len(eng.Enemies()) != 0 || eng.Round() != 0 {
		t.Error("Expected idle engine with empty roster")
	}
	if _, ok := eng.Intent(a); ok {
		t.Error("Expected intents cleared")
	}
	if eng.GoldReward() != 0 {
		t.Error("Expected no reward after EndCombat")
	}
}

func TestResolveEnemyRound(t *testing.T) {
	// Round 1: a attacks, b defends. Round 2: both attack.
	eng := newTestEngine(true, false, true, true)
	hero := entity.NewHero("Ada")
	a := entity.NewEnemy("a", "A", 10, 6, 3, 0, 0)
	b := entity.NewEnemy("b", "B", 10, 5, 4, 0, 0)
	eng.StartCombat([]*entity.Enemy{a, b})

	eng.HeroTurn(hero, fixedMana(0))
	results := eng.ResolveEnemyRound(hero)
	if len(results) != 2 {
		t.Fatalf("Expected 2 enemy actions, got %d", len(results))
	}
	if hero.HP != 34 || b.Block != 4 {
		t.Errorf("Expected hero hp=34 and b block=4, got %d/%d", hero.HP, b.Block)
	}
	if eng.Round() != 2 {
		t.Errorf("Expected round 2, got %d", eng.Round())
	}
	if intent, _ := eng.Intent(b); intent != IntentAttack {
		t.Errorf("Expected b to attack next round, got %s", intent)
	}
}

func TestResolveEnemyRoundSkipsDeadAndStopsOnHeroDeath(t *testing.T) {
	eng := newTestEngine(true, true, true)
	hero := entity.NewHero("Ada")
	hero.SetHP(5)
	a := entity.NewEnemy("a", "A", 10, 6, 3, 0, 0)
	b := entity.NewEnemy("b", "B", 10, 6, 3, 0, 0)
	c := entity.NewEnemy("c", "C", 10, 6, 3, 0, 0)
	eng.StartCombat([]*entity.Enemy{a, b, c})
	a.HP = 0

	results := eng.ResolveEnemyRound(hero)
	if len(results) != 1 {
		t.Fatalf("Expected only b to act before the hero fell, got %d actions", len(results))
	}
	if !results[0].Killed || hero.IsAlive() {
		t.Error("Expected the hero to be killed")
	}
	if eng.Round() != 1 {
		t.Errorf("Expected no new round after combat ended, got %d", eng.Round())
	}
}

func TestIntentsFollowInjectedSource(t *testing.T) {
	flips := []bool{false, true, true, false, true}
	eng := newTestEngine(flips...)
	roster := make([]*entity.Enemy, len(flips))
	for i := range roster {
		roster[i] = rat(10)
	}
	eng.StartCombat(roster)
	for i, en := range roster {
		want := IntentDefend
		if flips[i] {
			want = IntentAttack
		}
		if got, _ := eng.Intent(en); got != want {
			t.Errorf("enemy %d: expected %s, got %s", i, want, got)
		}
	}
}

func TestCombatLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	eng := NewEngine(dice.NewRoller(dice.Bits(true)), zap.New(core))
	hero := entity.NewHero("Ada")
	eng.StartCombat([]*entity.Enemy{rat(10)})
	eng.HeroAttack(hero, eng.Enemies()[0], item.NewWeapon("Dagger", grid.Single(), 4, 1, 0))
	eng.EndCombat()

	if logs.FilterMessage("combat started").Len() != 1 {
		t.Error("Expected a 'combat started' log entry")
	}
	if logs.FilterMessage("combat action").Len() != 1 {
		t.Error("Expected one 'combat action' log entry")
	}
	if logs.FilterMessage("combat ended").Len() != 1 {
		t.Error("Expected a 'combat ended' log entry")
	}
}
