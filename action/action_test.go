package action

import (
	"encoding/json"
	"testing"

	"chosenoffset.com/packdelve/grid"
)

func TestDecode(t *testing.T) {
	a, err := Decode([]byte(`{"type":"move","anchor":{"x":1,"y":0},"to":{"x":3,"y":2}}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if a != Move(grid.Pos(1, 0), grid.Pos(3, 2)) {
		t.Errorf("Unexpected action %+v", a)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []string{
		`{"type":"dance"}`,
		`{"type":"attack","target":-1}`,
		`not json`,
	}
	for _, input := range tests {
		if _, err := Decode([]byte(input)); err == nil {
			t.Errorf("Expected error for %s", input)
		}
	}
}

func TestConstructorsRoundTrip(t *testing.T) {
	actions := []Action{
		Attack(2, grid.Pos(0, 1)),
		Defend(grid.Pos(4, 0)),
		UseItem(grid.Pos(1, 1), 1),
		EndTurn(),
		Rotate(grid.Pos(2, 2)),
		Discard(grid.Pos(0, 0)),
		TakeLoot(1, grid.Pos(3, 0)),
		NextEncounter(),
	}
	for _, a := range actions {
		data, err := json.Marshal(a)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		got, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode %s failed: %v", a, err)
		}
		if got != a {
			t.Errorf("Expected %+v, got %+v", a, got)
		}
	}
}

func TestCatalogueCoversEveryType(t *testing.T) {
	all := All()
	if len(all) != 9 {
		t.Errorf("Expected 9 actions, got %d", len(all))
	}
	if all[0].Type != TypeAttack {
		t.Errorf("Expected attack first, got %s", all[0].Type)
	}
	if info, ok := Lookup(TypeRotate); !ok || info.Hotkey != "R" {
		t.Errorf("Unexpected rotate info %+v", info)
	}
	if got := len(ByCategory(CategoryInventory)); got != 4 {
		t.Errorf("Expected 4 inventory actions, got %d", got)
	}
}

func TestString(t *testing.T) {
	if s := Move(grid.Pos(0, 0), grid.Pos(1, 2)).String(); s != "move (0,0) -> (1,2)" {
		t.Errorf("Unexpected %s", s)
	}
	if s := EndTurn().String(); s != "end_turn" {
		t.Errorf("Unexpected %s", s)
	}
}
