package backpack

import (
	"chosenoffset.com/packdelve/contract"
	"chosenoffset.com/packdelve/item"
)

// Gold returns the coins carried: every Gold pile in the grid plus the pouch
func (b *Backpack) Gold() int {
	total := b.pouch
	for _, it := range b.items {
		if g, ok := it.(*item.Gold); ok {
			total += g.Amount()
		}
	}
	return total
}

// Pouch returns the coins carried outside the grid
func (b *Backpack) Pouch() int {
	return b.pouch
}

// AddGold adds coins. It always succeeds: the first gold pile is topped up,
// otherwise a new pile is placed in the first free cell, otherwise the coins
// go into the pouch.
func (b *Backpack) AddGold(amount int) {
	contract.Require(amount >= 0, "backpack.AddGold", "negative gold amount %d", amount)
	if amount == 0 {
		return
	}
	defer b.notifyChange()

	for _, p := range b.Items() {
		if g, ok := p.Item.(*item.Gold); ok {
			g.Add(amount)
			return
		}
	}

	pile := item.NewGold(amount)
	if anchor, ok := b.FirstFit(pile); ok {
		b.place(pile, anchor)
		return
	}
	b.pouch += amount
}

// SpendGold removes coins, taking from the pouch first and then from gold
// piles in anchor order. Emptied piles are removed from the grid. Returns
// false, changing nothing, if there is not enough gold.
func (b *Backpack) SpendGold(amount int) bool {
	contract.Require(amount >= 0, "backpack.SpendGold", "negative gold amount %d", amount)
	if b.Gold() < amount {
		return false
	}
	if amount == 0 {
		return true
	}

	remaining := amount
	fromPouch := min(remaining, b.pouch)
	b.pouch -= fromPouch
	remaining -= fromPouch

	for _, p := range b.Items() {
		if remaining == 0 {
			break
		}
		g, ok := p.Item.(*item.Gold)
		if !ok {
			continue
		}
		take := min(remaining, g.Amount())
		g.Take(take)
		remaining -= take
		if g.Amount() == 0 {
			b.remove(p.Anchor)
		}
	}

	b.notifyChange()
	return true
}
