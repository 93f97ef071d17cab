package entity

import "chosenoffset.com/packdelve/contract"

// Hero defaults
const (
	HeroMaxHP     = 40
	HeroMaxEnergy = 3
	BaseXPToLevel = 10
	XPPerLevel    = 5
)

// Hero is the player character. It lives for the whole game session.
type Hero struct {
	Name string

	HP        int
	MaxHP     int
	Energy    int
	MaxEnergy int
	Mana      int // refreshed from the backpack each turn
	Block     int

	Level         int
	XP            int
	XPToNextLevel int
}

// NewHero creates a level 1 hero at full health
func NewHero(name string) *Hero {
	return &Hero{
		Name:          name,
		HP:            HeroMaxHP,
		MaxHP:         HeroMaxHP,
		Energy:        HeroMaxEnergy,
		MaxEnergy:     HeroMaxEnergy,
		Level:         1,
		XPToNextLevel: XPThreshold(1),
	}
}

// XPThreshold returns the xp needed to leave the given level
func XPThreshold(level int) int {
	return BaseXPToLevel + (level-1)*XPPerLevel
}

// IsAlive returns true if the hero has HP remaining
func (h *Hero) IsAlive() bool {
	return h.HP > 0
}

// SetHP sets hp, clamped to [0,MaxHP]
func (h *Hero) SetHP(hp int) {
	h.HP = clamp(hp, 0, h.MaxHP)
}

// SetEnergy sets energy, clamped to [0,MaxEnergy]
func (h *Hero) SetEnergy(energy int) {
	h.Energy = clamp(energy, 0, h.MaxEnergy)
}

// SetBlock sets block
func (h *Hero) SetBlock(block int) {
	contract.Require(block >= 0, "entity.Hero.SetBlock", "negative block %d", block)
	h.Block = block
}

// SetMana sets mana
func (h *Hero) SetMana(mana int) {
	contract.Require(mana >= 0, "entity.Hero.SetMana", "negative mana %d", mana)
	h.Mana = mana
}

// Heal restores HP up to MaxHP
func (h *Hero) Heal(amount int) {
	h.SetHP(h.HP + amount)
}

// TakeHit applies incoming damage through block
func (h *Hero) TakeHit(damage int) {
	h.HP, h.Block = ApplyDamage(h.HP, h.MaxHP, h.Block, damage)
}

// SpendEnergy deducts cost if affordable
func (h *Hero) SpendEnergy(cost int) bool {
	if cost < 0 || h.Energy < cost {
		return false
	}
	h.Energy -= cost
	return true
}

// AddXP grants experience and returns how many levels were gained.
// A large grant can cross several thresholds at once.
func (h *Hero) AddXP(amount int) int {
	if amount <= 0 {
		return 0
	}
	h.XP += amount

	levelsGained := 0
	for h.XP >= h.XPToNextLevel {
		h.XP -= h.XPToNextLevel
		h.Level++
		h.XPToNextLevel = XPThreshold(h.Level)
		levelsGained++
	}
	return levelsGained
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
