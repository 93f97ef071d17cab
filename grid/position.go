// Package grid provides integer grid coordinates and polyomino shapes used
// for backpack placement.
package grid

import "fmt"

// Position is a cell coordinate on an integer grid. Origin is top-left.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns the component-wise sum of two positions
func (p Position) Add(other Position) Position {
	return Position{X: p.X + other.X, Y: p.Y + other.Y}
}

// Within reports whether p lies in [0,width)×[0,height)
func (p Position) Within(width, height int) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < width && p.Y < height
}

// Less orders positions row-major (y first, then x)
func (p Position) Less(other Position) bool {
	if p.Y != other.Y {
		return p.Y < other.Y
	}
	return p.X < other.X
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
