package backpack

import (
	"reflect"
	"testing"

	"chosenoffset.com/packdelve/contract"
	"chosenoffset.com/packdelve/grid"
	"chosenoffset.com/packdelve/item"
)

func TestAddGoldCreatesAndTopsUpPile(t *testing.T) {
	b := newPack(t, 3, 2)
	b.Place(gem(), grid.Pos(0, 0))

	b.AddGold(5)
	pile, ok := b.ItemAt(grid.Pos(1, 0))
	if !ok || pile.Kind() != item.KindGold {
		t.Fatalf("Expected a gold pile at (1,0), got %v", pile)
	}

	b.AddGold(7)
	if b.Gold() != 12 {
		t.Errorf("Expected 12 gold, got %d", b.Gold())
	}
	if b.Len() != 2 {
		t.Errorf("Expected top-up instead of a new pile, got %d items", b.Len())
	}
	checkInvariants(t, b)
}

func TestAddGoldIntoPouchWhenFull(t *testing.T) {
	b := newPack(t, 2, 2)
	b.Place(item.NewArmor("Crate", grid.Rect(2, 2), 1, 1), grid.Pos(0, 0))

	b.AddGold(9)
	if b.Gold() != 9 || b.Pouch() != 9 {
		t.Errorf("Expected 9 gold in the pouch, got gold=%d pouch=%d", b.Gold(), b.Pouch())
	}
	checkInvariants(t, b)
}

func TestSpendGold(t *testing.T) {
	b := newPack(t, 4, 2)
	b.Place(item.NewGold(10), grid.Pos(0, 0))
	b.Place(item.NewGold(5), grid.Pos(3, 1))

	before := takeSnapshot(b)
	if b.SpendGold(16) {
		t.Fatal("Expected spending more than carried to fail")
	}
	if after := takeSnapshot(b); !reflect.DeepEqual(before, after) {
		t.Errorf("Failed spend changed state")
	}

	if !b.SpendGold(12) {
		t.Fatal("Expected spending 12 of 15 to succeed")
	}
	if b.Gold() != 3 {
		t.Errorf("Expected 3 gold left, got %d", b.Gold())
	}
	if _, ok := b.ItemAt(grid.Pos(0, 0)); ok {
		t.Error("Expected the emptied pile to be removed")
	}
	checkInvariants(t, b)

	if !b.SpendGold(0) {
		t.Error("Expected spending nothing to succeed")
	}
}

func TestSpendGoldUsesPouchFirst(t *testing.T) {
	b := newPack(t, 2, 2)
	b.Place(item.NewGold(4), grid.Pos(0, 0))
	b.Place(item.NewArmor("Plank", grid.Line(2, false), 1, 1), grid.Pos(0, 1))
	b.Place(gem(), grid.Pos(1, 0))
	// Backpack is now full; more gold lands in the pile, not the pouch
	b.AddGold(6)
	if b.Pouch() != 0 || b.Gold() != 10 {
		t.Fatalf("Expected pile top-up, got pouch=%d gold=%d", b.Pouch(), b.Gold())
	}

	full := newPack(t, 2, 2)
	full.Place(item.NewArmor("Crate", grid.Rect(2, 2), 1, 1), grid.Pos(0, 0))
	full.AddGold(8)
	if !full.SpendGold(3) || full.Pouch() != 5 {
		t.Errorf("Expected pouch 5, got %d", full.Pouch())
	}
}

func TestNegativeGoldIsViolation(t *testing.T) {
	b := newPack(t, 2, 2)
	for name, fn := range map[string]func(){
		"add":   func() { b.AddGold(-1) },
		"spend": func() { b.SpendGold(-1) },
	} {
		func() {
			defer func() {
				if _, ok := recover().(contract.Violation); !ok {
					t.Errorf("%s: expected contract violation", name)
				}
			}()
			fn()
		}()
	}
}
