// Package entity provides the combatants: the player's Hero and the Enemies
// spawned for an encounter, plus the damage and progression rules they share.
package entity

// ApplyDamage resolves incoming damage against a defender's block and hp.
// Block absorbs first; only the excess reaches hp, which is clamped to
// [0,maxHP]. Used the same way for hero and enemy defenders.
func ApplyDamage(hp, maxHP, block, damage int) (newHP, newBlock int) {
	if damage <= 0 {
		return hp, block
	}
	if block >= damage {
		return hp, block - damage
	}
	hp -= damage - block
	if hp < 0 {
		hp = 0
	}
	if hp > maxHP {
		hp = maxHP
	}
	return hp, 0
}
