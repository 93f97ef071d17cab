// Package backpack provides the spatial inventory: a fixed-size grid where
// items occupy the cells of their shape. The item map and the occupied-cell
// set are only ever changed together, so they cannot drift apart.
package backpack

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"chosenoffset.com/packdelve/contract"
	"chosenoffset.com/packdelve/grid"
	"chosenoffset.com/packdelve/item"
)

// MinSize is the smallest allowed width and height
const MinSize = 2

// Placement is an item together with the anchor it is placed at
type Placement struct {
	Anchor grid.Position
	Item   item.Item
}

// Backpack is a width×height grid of item cells.
//
// Invariant between calls: occupied is exactly the union of every item's
// absolute positions, every occupied cell is in bounds, no two items
// overlap and no two items share an anchor.
type Backpack struct {
	width, height int

	items    map[grid.Position]item.Item
	occupied mapset.Set[grid.Position]

	// pouch holds coins that could not be given a grid cell
	pouch int

	// OnChange callback when contents change (for UI updates)
	OnChange func()
}

// New creates an empty backpack
func New(width, height int) (*Backpack, error) {
	if width < MinSize || height < MinSize {
		return nil, fmt.Errorf("backpack must be at least %dx%d, got %dx%d", MinSize, MinSize, width, height)
	}
	return &Backpack{
		width:    width,
		height:   height,
		items:    make(map[grid.Position]item.Item),
		occupied: mapset.New[grid.Position](),
	}, nil
}

// Width returns the grid width
func (b *Backpack) Width() int { return b.width }

// Height returns the grid height
func (b *Backpack) Height() int { return b.height }

// Len returns the number of items in the grid
func (b *Backpack) Len() int { return len(b.items) }

// InBounds reports whether pos is a cell of this backpack
func (b *Backpack) InBounds(pos grid.Position) bool {
	return pos.Within(b.width, b.height)
}

// IsOccupied reports whether some item covers pos
func (b *Backpack) IsOccupied(pos grid.Position) bool {
	return b.occupied.Has(pos)
}

// CanPlace reports whether it fits at anchor: every cell in bounds and free,
// and no other item anchored there. A rotated shape may leave its own anchor
// cell empty, so a free cell can still be a taken anchor.
func (b *Backpack) CanPlace(it item.Item, anchor grid.Position) bool {
	contract.Require(it != nil, "backpack.CanPlace", "nil item")
	if _, taken := b.items[anchor]; taken {
		return false
	}
	for _, cell := range it.Shape().AbsolutePositions(anchor) {
		if !b.InBounds(cell) || b.occupied.Has(cell) {
			return false
		}
	}
	return true
}

// Place puts it at anchor. Returns false, changing nothing, when it does not fit.
func (b *Backpack) Place(it item.Item, anchor grid.Position) bool {
	if !b.place(it, anchor) {
		return false
	}
	b.notifyChange()
	return true
}

func (b *Backpack) place(it item.Item, anchor grid.Position) bool {
	if !b.CanPlace(it, anchor) {
		return false
	}
	for _, existing := range b.items {
		contract.Require(existing != it, "backpack.Place", "item %q is already in the backpack", it.Name())
	}
	b.items[anchor] = it
	for _, cell := range it.Shape().AbsolutePositions(anchor) {
		b.occupied.Put(cell)
	}
	return true
}

// Remove takes the item anchored at anchor out of the backpack
func (b *Backpack) Remove(anchor grid.Position) (item.Item, bool) {
	it, ok := b.remove(anchor)
	if ok {
		b.notifyChange()
	}
	return it, ok
}

func (b *Backpack) remove(anchor grid.Position) (item.Item, bool) {
	it, ok := b.items[anchor]
	if !ok {
		return nil, false
	}
	delete(b.items, anchor)
	for _, cell := range it.Shape().AbsolutePositions(anchor) {
		b.occupied.Remove(cell)
	}
	return it, true
}

// ItemAt returns the item covering pos
func (b *Backpack) ItemAt(pos grid.Position) (item.Item, bool) {
	anchor, ok := b.AnchorAt(pos)
	if !ok {
		return nil, false
	}
	return b.items[anchor], true
}

// AnchorAt returns the anchor of the item covering pos.
// Inventories are small, so this scans every item.
func (b *Backpack) AnchorAt(pos grid.Position) (grid.Position, bool) {
	if !b.occupied.Has(pos) {
		return grid.Position{}, false
	}
	for anchor, it := range b.items {
		if it.Shape().Contains(grid.Pos(pos.X-anchor.X, pos.Y-anchor.Y)) {
			return anchor, true
		}
	}
	return grid.Position{}, false
}

// AnchorOf returns where it is placed, if it is in the backpack
func (b *Backpack) AnchorOf(it item.Item) (grid.Position, bool) {
	for anchor, candidate := range b.items {
		if candidate == it {
			return anchor, true
		}
	}
	return grid.Position{}, false
}

// Move relocates the item anchored at from so it is anchored at to.
// If it does not fit at to the item goes back to from and false is returned;
// the backpack is then exactly as it was before the call.
func (b *Backpack) Move(from, to grid.Position) bool {
	it, ok := b.remove(from)
	if !ok {
		return false
	}
	if b.place(it, to) {
		b.notifyChange()
		return true
	}
	// The cells at from were just vacated, so this cannot fail.
	contract.Require(b.place(it, from), "backpack.Move", "could not restore %q at %v", it.Name(), from)
	return false
}

// RotateItem turns the item anchored at anchor a quarter turn in place.
// If the rotated shape does not fit, the original orientation is restored
// and false is returned.
func (b *Backpack) RotateItem(anchor grid.Position) bool {
	it, ok := b.remove(anchor)
	if !ok {
		return false
	}
	it.Rotate90()
	if b.place(it, anchor) {
		b.notifyChange()
		return true
	}
	it.Rotate90()
	it.Rotate90()
	it.Rotate90()
	contract.Require(b.place(it, anchor), "backpack.RotateItem", "could not restore %q at %v", it.Name(), anchor)
	return false
}

// FirstFit returns the first anchor, in row-major order, where it fits
func (b *Backpack) FirstFit(it item.Item) (grid.Position, bool) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.CanPlace(it, grid.Pos(x, y)) {
				return grid.Pos(x, y), true
			}
		}
	}
	return grid.Position{}, false
}

// Mana returns the mana provided by everything in the backpack.
// It is recomputed on every call.
func (b *Backpack) Mana() int {
	total := 0
	for _, it := range b.items {
		total += it.ManaProvided()
	}
	return total
}

// Items returns every placement ordered by anchor (row-major)
func (b *Backpack) Items() []Placement {
	result := make([]Placement, 0, len(b.items))
	for anchor, it := range b.items {
		result = append(result, Placement{Anchor: anchor, Item: it})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Anchor.Less(result[j].Anchor)
	})
	return result
}

// Occupied returns every covered cell ordered row-major
func (b *Backpack) Occupied() []grid.Position {
	cells := make([]grid.Position, 0, b.occupied.Size())
	b.occupied.Each(func(p grid.Position) {
		cells = append(cells, p)
	})
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })
	return cells
}

// notifyChange calls the OnChange callback if set
func (b *Backpack) notifyChange() {
	if b.OnChange != nil {
		b.OnChange()
	}
}

// String draws the grid: '.' for free cells, a letter per item otherwise.
func (b *Backpack) String() string {
	labels := make(map[grid.Position]byte, b.occupied.Size())
	for i, p := range b.Items() {
		label := byte('A' + i%26)
		for _, cell := range p.Item.Shape().AbsolutePositions(p.Anchor) {
			labels[cell] = label
		}
	}

	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if l, ok := labels[grid.Pos(x, y)]; ok {
				sb.WriteByte(l)
			} else {
				sb.WriteByte('.')
			}
		}
		if y < b.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Debug returns a one-line summary
func (b *Backpack) Debug() string {
	return fmt.Sprintf("Backpack{%dx%d, %d items, %d cells, %d mana, %d gold}",
		b.width, b.height, len(b.items), b.occupied.Size(), b.Mana(), b.Gold())
}
