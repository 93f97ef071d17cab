package control

import (
	"testing"

	"chosenoffset.com/packdelve/action"
	"chosenoffset.com/packdelve/grid"
	"chosenoffset.com/packdelve/internal/config"
	"chosenoffset.com/packdelve/internal/game"
	"chosenoffset.com/packdelve/item"
)

// 5x3 backpack with a vertical sword at (1,0)
func testSnapshot() game.Snapshot {
	return game.Snapshot{
		Backpack: game.BackpackView{
			Width:  5,
			Height: 3,
			Items: []game.PlacedView{{
				Anchor: grid.Pos(1, 0),
				Cells:  []grid.Position{grid.Pos(1, 0), grid.Pos(1, 1)},
			}},
		},
		Enemies: []game.EnemyView{{Name: "A"}, {Name: "B"}},
		Loot:    []item.Definition{{Name: "Dagger"}, {Name: "Shard"}},
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	var c Controller
	snap := testSnapshot()
	c.Handle(CmdUp, snap)
	c.Handle(CmdLeft, snap)
	if c.Cursor != grid.Pos(0, 0) {
		t.Errorf("Expected (0,0), got %s", c.Cursor)
	}
	for i := 0; i < 10; i++ {
		c.Handle(CmdRight, snap)
		c.Handle(CmdDown, snap)
	}
	if c.Cursor != grid.Pos(4, 2) {
		t.Errorf("Expected (4,2), got %s", c.Cursor)
	}
}

func TestPickAndDropKeepsGrabOffset(t *testing.T) {
	c := Controller{Cursor: grid.Pos(1, 1)}
	snap := testSnapshot()

	if _, ok := c.Handle(CmdPick, snap); ok {
		t.Fatal("Expected pick-up to send nothing")
	}
	if anchor, holding := c.Holding(); !holding || anchor != grid.Pos(1, 0) {
		t.Fatalf("Expected to hold the sword at (1,0), got %s %v", anchor, holding)
	}

	c.Handle(CmdRight, snap)
	c.Handle(CmdRight, snap)
	a, ok := c.Handle(CmdPick, snap)
	if !ok || a != action.Move(grid.Pos(1, 1), grid.Pos(3, 0)) {
		t.Errorf("Expected move (1,1)->(3,0), got %+v", a)
	}
	if _, holding := c.Holding(); holding {
		t.Error("Expected the item dropped")
	}
}

func TestDragRotatedAxe(t *testing.T) {
	cfg := config.Default()
	cfg.Backpack.StartingKit = []config.KitItem{{ID: "war_axe", Anchor: &[2]int{0, 0}}}
	s, err := game.NewSession(cfg, game.Options{})
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	s.Apply(action.Rotate(grid.Pos(0, 0)))
	s.Apply(action.Rotate(grid.Pos(0, 0)))

	c := Controller{Cursor: grid.Pos(1, 0)}
	c.Handle(CmdPick, s.Snapshot())
	if anchor, holding := c.Holding(); !holding || anchor != grid.Pos(0, 0) {
		t.Fatalf("Expected to hold the axe anchored at (0,0), got %s %v", anchor, holding)
	}
	c.Handle(CmdRight, s.Snapshot())
	c.Handle(CmdRight, s.Snapshot())

	a, ok := c.Handle(CmdPick, s.Snapshot())
	if !ok {
		t.Fatal("Expected a move")
	}
	if res := s.Apply(a); !res.OK {
		t.Fatalf("Expected %s to succeed, got %q", a, res.Message)
	}
	if it, _ := s.Backpack().ItemAt(grid.Pos(2, 2)); it == nil || it.Name() != "War Axe" {
		t.Errorf("Expected the axe anchored at (2,0):\n%s", s.Backpack())
	}
}

func TestPickEmptyCellAndCancel(t *testing.T) {
	c := Controller{Cursor: grid.Pos(4, 2)}
	snap := testSnapshot()
	c.Handle(CmdPick, snap)
	if _, holding := c.Holding(); holding {
		t.Error("Expected nothing picked from an empty cell")
	}

	c.Cursor = grid.Pos(1, 0)
	c.Handle(CmdPick, snap)
	c.Handle(CmdCancel, snap)
	if _, holding := c.Holding(); holding {
		t.Error("Expected cancel to drop the hold")
	}

	// Dropping in place sends nothing
	c.Handle(CmdPick, snap)
	if _, ok := c.Handle(CmdPick, snap); ok {
		t.Error("Expected no move when dropped in place")
	}
}

func TestCombatCommands(t *testing.T) {
	c := Controller{Cursor: grid.Pos(1, 0)}
	snap := testSnapshot()

	tests := []struct {
		cmd  Command
		want action.Action
	}{
		{CmdAttack2, action.Attack(1, grid.Pos(1, 0))},
		{CmdUse, action.UseItem(grid.Pos(1, 0), 1)},
		{CmdDefend, action.Defend(grid.Pos(1, 0))},
		{CmdRotate, action.Rotate(grid.Pos(1, 0))},
		{CmdDiscard, action.Discard(grid.Pos(1, 0))},
		{CmdEndTurn, action.EndTurn()},
	}
	for _, tt := range tests {
		got, ok := c.Handle(tt.cmd, snap)
		if !ok || got != tt.want {
			t.Errorf("command %d: expected %+v, got %+v", tt.cmd, tt.want, got)
		}
	}
}

func TestCycleSelections(t *testing.T) {
	var c Controller
	snap := testSnapshot()

	c.Handle(CmdTarget, snap)
	if c.Target != 1 {
		t.Errorf("Expected target 1, got %d", c.Target)
	}
	c.Handle(CmdTarget, snap)
	if c.Target != 0 {
		t.Errorf("Expected target to wrap, got %d", c.Target)
	}

	c.Handle(CmdLoot, snap)
	a, ok := c.Handle(CmdTake, snap)
	if !ok || a != action.TakeLoot(1, grid.Pos(0, 0)) {
		t.Errorf("Unexpected take %+v", a)
	}

	a, ok = c.Handle(CmdNext, snap)
	if !ok || a != action.NextEncounter() || c.Loot != 0 {
		t.Errorf("Unexpected next %+v loot=%d", a, c.Loot)
	}

	snap.Loot = nil
	if _, ok := c.Handle(CmdTake, snap); ok {
		t.Error("Expected no take without loot")
	}
}
