// Package control turns abstract key commands into session actions. It keeps
// the cursor and pick-up state for the backpack view and knows nothing about
// the windowing library.
package control

import (
	"chosenoffset.com/packdelve/action"
	"chosenoffset.com/packdelve/grid"
	"chosenoffset.com/packdelve/internal/game"
)

// Command is an input intention
type Command int

const (
	CmdNone Command = iota
	CmdUp
	CmdDown
	CmdLeft
	CmdRight
	CmdPick   // pick up the item under the cursor, or drop the held one
	CmdCancel // put the held item back
	CmdRotate
	CmdDiscard
	CmdAttack1
	CmdAttack2
	CmdAttack3
	CmdDefend
	CmdUse    // use the item under the cursor on the selected target
	CmdTarget // cycle the selected enemy
	CmdLoot   // cycle the selected floor item
	CmdTake   // place the selected floor item at the cursor
	CmdEndTurn
	CmdNext
)

// Controller holds cursor state between frames
type Controller struct {
	Cursor grid.Position
	Target int // selected enemy index
	Loot   int // selected floor item index

	holding bool
	held    grid.Position // anchor of the held item
	grab    grid.Position // cursor offset from the held anchor
}

// Holding reports whether an item is picked up, and its anchor
func (c *Controller) Holding() (grid.Position, bool) {
	return c.held, c.holding
}

// Handle applies cmd to the cursor state and returns the action to send,
// if any. snap is the state the player is looking at.
func (c *Controller) Handle(cmd Command, snap game.Snapshot) (action.Action, bool) {
	w, h := snap.Backpack.Width, snap.Backpack.Height

	switch cmd {
	case CmdUp:
		c.moveCursor(0, -1, w, h)
	case CmdDown:
		c.moveCursor(0, 1, w, h)
	case CmdLeft:
		c.moveCursor(-1, 0, w, h)
	case CmdRight:
		c.moveCursor(1, 0, w, h)
	case CmdCancel:
		c.holding = false
	case CmdPick:
		return c.pick(snap)
	case CmdRotate:
		return action.Rotate(c.Cursor), true
	case CmdDiscard:
		c.holding = false
		return action.Discard(c.Cursor), true
	case CmdAttack1, CmdAttack2, CmdAttack3:
		c.Target = int(cmd - CmdAttack1)
		return action.Attack(c.Target, c.Cursor), true
	case CmdDefend:
		return action.Defend(c.Cursor), true
	case CmdUse:
		return action.UseItem(c.Cursor, c.Target), true
	case CmdTarget:
		c.Target = cycle(c.Target, len(snap.Enemies))
	case CmdLoot:
		c.Loot = cycle(c.Loot, len(snap.Loot))
	case CmdTake:
		if len(snap.Loot) == 0 {
			return action.Action{}, false
		}
		if c.Loot >= len(snap.Loot) {
			c.Loot = 0
		}
		return action.TakeLoot(c.Loot, c.Cursor), true
	case CmdEndTurn:
		return action.EndTurn(), true
	case CmdNext:
		c.holding = false
		c.Target, c.Loot = 0, 0
		return action.NextEncounter(), true
	}
	return action.Action{}, false
}

func (c *Controller) pick(snap game.Snapshot) (action.Action, bool) {
	if c.holding {
		c.holding = false
		to := grid.Pos(c.Cursor.X-c.grab.X, c.Cursor.Y-c.grab.Y)
		if to == c.held {
			return action.Action{}, false
		}
		// Send the grabbed cell: the anchor cell itself may be empty
		return action.Move(c.held.Add(c.grab), to), true
	}

	for _, p := range snap.Backpack.Items {
		for _, cell := range p.Cells {
			if cell == c.Cursor {
				c.holding = true
				c.held = p.Anchor
				c.grab = grid.Pos(c.Cursor.X-p.Anchor.X, c.Cursor.Y-p.Anchor.Y)
				return action.Action{}, false
			}
		}
	}
	return action.Action{}, false
}

func (c *Controller) moveCursor(dx, dy, w, h int) {
	next := c.Cursor.Add(grid.Pos(dx, dy))
	if next.Within(w, h) {
		c.Cursor = next
	}
}

func cycle(i, n int) int {
	if n == 0 {
		return 0
	}
	return (i + 1) % n
}
