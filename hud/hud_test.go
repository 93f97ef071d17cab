package hud

import (
	"testing"

	"chosenoffset.com/packdelve/internal/game"
)

func TestEnemyLines(t *testing.T) {
	snap := game.Snapshot{Enemies: []game.EnemyView{
		{Name: "Rat", HP: 5, MaxHP: 8, Block: 2, Intent: "attack 3", Alive: true},
		{Name: "Slime", HP: 0, MaxHP: 14},
		{Name: "Goblin", HP: 18, MaxHP: 18, Alive: true},
	}}
	lines := EnemyLines(snap)
	want := []string{
		"1. Rat 5/8 [2] > attack 3",
		"2. Slime (defeated)",
		"3. Goblin 18/18",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestHeroLines(t *testing.T) {
	snap := game.Snapshot{
		Floor:     2,
		Floors:    4,
		FloorName: "Sewer",
		Round:     3,
		Score:     17,
		Hero:      game.HeroView{Energy: 2, MaxEnergy: 3, Mana: 1, Block: 4, XP: 3, XPToNextLevel: 10},
		Backpack:  game.BackpackView{Gold: 9},
	}
	lines := HeroLines(snap)
	if len(lines) != 5 {
		t.Fatalf("Expected 5 lines, got %d", len(lines))
	}
	if lines[1] != "Mana 1  Block 4" || lines[4] != "Floor 2/4 Sewer R3" {
		t.Errorf("Unexpected lines %q", lines)
	}
}

func TestHPColor(t *testing.T) {
	if c := hpColor(40, 40); c.G != 180 {
		t.Errorf("Expected green, got %v", c)
	}
	if c := hpColor(10, 40); c.R != 200 || c.G != 50 {
		t.Errorf("Expected red, got %v", c)
	}
	if c := hpColor(0, 0); c.R != 200 {
		t.Errorf("Expected red for empty bar, got %v", c)
	}
}

func TestSetScreenSize(t *testing.T) {
	h := New(nil, 800, 600)
	h.SetScreenSize(1024, 768)
	if h.screenWidth != 1024 || h.screenHeight != 768 {
		t.Errorf("Expected 1024x768, got %dx%d", h.screenWidth, h.screenHeight)
	}
}
