// Package item defines the things that can live in a backpack. Item is a
// closed set of variants: Weapon, Armor, ManaStone and Gold. Each carries a
// name and a grid shape; the variant-specific stats live only on their own type.
package item

import (
	"chosenoffset.com/packdelve/contract"
	"chosenoffset.com/packdelve/grid"
)

// Kind identifies an item variant
type Kind string

const (
	KindWeapon    Kind = "weapon"
	KindArmor     Kind = "armor"
	KindManaStone Kind = "mana_stone"
	KindGold      Kind = "gold"
)

// Item is the capability surface shared by every variant.
// Items are handled by pointer; the pointer is the item's identity.
type Item interface {
	Name() string
	Shape() grid.Shape
	// ManaProvided is the mana this item contributes while carried (0 for most)
	ManaProvided() int
	Kind() Kind
	// Rotate90 turns the item's footprint a quarter turn in place
	Rotate90()

	sealed()
}

type base struct {
	name  string
	shape grid.Shape
}

func newBase(op, name string, shape grid.Shape) base {
	contract.Require(!shape.IsZero(), op, "item %q has an empty shape", name)
	return base{name: name, shape: shape}
}

func (b *base) Name() string { return b.name }
func (b *base) Shape() grid.Shape { return b.shape }
func (b *base) ManaProvided() int { return 0 }
func (b *base) Rotate90() { b.shape = b.shape.Rotate90() }
func (b *base) sealed() {}

// Weapon deals Damage for EnergyCost energy. ManaCost is carried for display
// only; combat does not consume mana.
type Weapon struct {
	base
	Damage     int
	EnergyCost int
	ManaCost   int
}

// NewWeapon creates a weapon
func NewWeapon(name string, shape grid.Shape, damage, energyCost, manaCost int) *Weapon {
	contract.Require(damage >= 0 && energyCost >= 0 && manaCost >= 0, "item.NewWeapon",
		"negative stats for %q (damage=%d energy=%d mana=%d)", name, damage, energyCost, manaCost)
	return &Weapon{base: newBase("item.NewWeapon", name, shape), Damage: damage, EnergyCost: energyCost, ManaCost: manaCost}
}

// Kind returns KindWeapon
func (*Weapon) Kind() Kind { return KindWeapon }

// Armor adds Protection block for EnergyCost energy.
type Armor struct {
	base
	Protection int
	EnergyCost int
}

// NewArmor creates armor. Protection and energy cost must be non-negative.
func NewArmor(name string, shape grid.Shape, protection, energyCost int) *Armor {
	contract.Require(protection >= 0 && energyCost >= 0, "item.NewArmor",
		"negative stats for %q (protection=%d energy=%d)", name, protection, energyCost)
	return &Armor{base: newBase("item.NewArmor", name, shape), Protection: protection, EnergyCost: energyCost}
}

// Kind returns KindArmor
func (*Armor) Kind() Kind { return KindArmor }

// ManaStone provides mana while it sits in the backpack.
type ManaStone struct {
	base
	Mana int
}

// NewManaStone creates a mana stone
func NewManaStone(name string, shape grid.Shape, mana int) *ManaStone {
	contract.Require(mana >= 0, "item.NewManaStone", "negative mana %d for %q", mana, name)
	return &ManaStone{base: newBase("item.NewManaStone", name, shape), Mana: mana}
}

// Kind returns KindManaStone
func (*ManaStone) Kind() Kind { return KindManaStone }

// ManaProvided returns the stone's mana
func (m *ManaStone) ManaProvided() int { return m.Mana }

// Gold is a pile of coins. Its quantity changes in place instead of coins
// being placed or removed one by one.
type Gold struct {
	base
	amount int
}

// NewGold creates a one-cell gold pile
func NewGold(amount int) *Gold {
	contract.Require(amount >= 0, "item.NewGold", "negative gold amount %d", amount)
	return &Gold{base: newBase("item.NewGold", "Gold", grid.Single()), amount: amount}
}

// Kind returns KindGold
func (*Gold) Kind() Kind { return KindGold }

// Amount returns the number of coins
func (g *Gold) Amount() int { return g.amount }

// Add puts n coins on the pile
func (g *Gold) Add(n int) {
	contract.Require(n >= 0, "item.Gold.Add", "negative gold amount %d", n)
	g.amount += n
}

// Take removes n coins. Taking more than the pile holds is a caller bug.
func (g *Gold) Take(n int) {
	contract.Require(n >= 0 && n <= g.amount, "item.Gold.Take", "cannot take %d from %d", n, g.amount)
	g.amount -= n
}
