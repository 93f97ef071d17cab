package dice

import (
	"math/rand"
	"testing"
)

func TestRollExpressions(t *testing.T) {
	tests := []struct {
		expr string
		src  []int
		want int
	}{
		{"7", nil, 7},
		{"1d6", []int{3}, 4},
		{"2d6", []int{0, 5}, 7},
		{"1d4+2", []int{1}, 4},
		{"2d4 - 1", []int{0, 0}, 1},
		{"1d4-9", []int{0}, 0},
		{" 3D2 ", []int{1, 1, 1}, 6},
	}
	for _, tt := range tests {
		r := NewRoller(NewReplay(tt.src...))
		got, err := r.Roll(tt.expr)
		if err != nil {
			t.Errorf("Roll(%q) failed: %v", tt.expr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Roll(%q) = %d, want %d", tt.expr, got, tt.want)
		}
	}
}

func TestRollInvalid(t *testing.T) {
	r := NewRoller(rand.New(rand.NewSource(1)))
	for _, expr := range []string{"", "d6", "0d6", "2d0", "abc", "-3", "1d6*2"} {
		if _, err := r.Roll(expr); err == nil {
			t.Errorf("Expected error for %q", expr)
		}
		if Validate(expr) == nil {
			t.Errorf("Expected Validate to reject %q", expr)
		}
	}
}

func TestRollRange(t *testing.T) {
	r := NewRoller(rand.New(rand.NewSource(42)))
	for i := 0; i < 200; i++ {
		v, err := r.Roll("2d6+1")
		if err != nil {
			t.Fatal(err)
		}
		if v < 3 || v > 13 {
			t.Fatalf("Roll out of range: %d", v)
		}
	}
}

func TestCoinFollowsSource(t *testing.T) {
	r := NewRoller(Bits(true, false, false, true))
	want := []bool{true, false, false, true, true}
	for i, w := range want {
		if got := r.Coin(); got != w {
			t.Errorf("flip %d: expected %v, got %v", i, w, got)
		}
	}
}

func TestCoinIsRoughlyFair(t *testing.T) {
	r := NewSeededRoller(7)
	heads := 0
	for i := 0; i < 10000; i++ {
		if r.Coin() {
			heads++
		}
	}
	if heads < 4700 || heads > 5300 {
		t.Errorf("Expected about 5000 heads, got %d", heads)
	}
}
