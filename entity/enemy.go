package entity

import "chosenoffset.com/packdelve/contract"

// Enemy is a combatant spawned for one encounter and discarded afterwards
type Enemy struct {
	ID   string
	Name string

	HP      int
	MaxHP   int
	Attack  int
	Defense int
	Block   int

	GoldDrop int
	XPDrop   int
}

// NewEnemy creates an enemy at full health
func NewEnemy(id, name string, maxHP, attack, defense, goldDrop, xpDrop int) *Enemy {
	contract.Require(maxHP > 0, "entity.NewEnemy", "enemy %q needs positive hp, got %d", name, maxHP)
	contract.Require(attack >= 0 && defense >= 0 && goldDrop >= 0 && xpDrop >= 0, "entity.NewEnemy",
		"enemy %q has negative stats", name)
	return &Enemy{
		ID:       id,
		Name:     name,
		HP:       maxHP,
		MaxHP:    maxHP,
		Attack:   attack,
		Defense:  defense,
		GoldDrop: goldDrop,
		XPDrop:   xpDrop,
	}
}

// IsAlive returns true if the enemy has HP remaining
func (e *Enemy) IsAlive() bool {
	return e.HP > 0
}

// TakeHit applies incoming damage through block
func (e *Enemy) TakeHit(damage int) {
	e.HP, e.Block = ApplyDamage(e.HP, e.MaxHP, e.Block, damage)
}
