package grid

import (
	"sort"
	"strings"

	"chosenoffset.com/packdelve/contract"
)

// Shape is a normalized, non-empty set of cell offsets (a polyomino).
// The minimum x and minimum y among its cells are always 0 and cells are kept
// in row-major order, so two shapes covering the same set are Equal.
type Shape struct {
	cells []Position
}

// NewShape builds a normalized shape from cell offsets. Duplicates are dropped.
func NewShape(cells ...Position) Shape {
	contract.Require(len(cells) > 0, "grid.NewShape", "shape needs at least one cell")
	return Shape{cells: normalize(cells)}
}

// Single is the one-cell shape.
func Single() Shape {
	return NewShape(Pos(0, 0))
}

// Line is a straight shape n cells long.
func Line(n int, vertical bool) Shape {
	contract.Require(n > 0, "grid.Line", "length must be positive, got %d", n)
	cells := make([]Position, n)
	for i := range cells {
		if vertical {
			cells[i] = Pos(0, i)
		} else {
			cells[i] = Pos(i, 0)
		}
	}
	return NewShape(cells...)
}

// Rect is a filled w×h rectangle.
func Rect(w, h int) Shape {
	contract.Require(w > 0 && h > 0, "grid.Rect", "invalid size %dx%d", w, h)
	cells := make([]Position, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cells = append(cells, Pos(x, y))
		}
	}
	return NewShape(cells...)
}

// ParseShape reads a shape from text rows where '#' marks a filled cell
// and any other rune is empty, e.g. []string{"##", "#."}.
func ParseShape(rows []string) (Shape, bool) {
	var cells []Position
	for y, row := range rows {
		for x, r := range []rune(row) {
			if r == '#' {
				cells = append(cells, Pos(x, y))
			}
		}
	}
	if len(cells) == 0 {
		return Shape{}, false
	}
	return NewShape(cells...), true
}

// normalize shifts cells so that min x and min y are 0, dedupes and sorts.
func normalize(cells []Position) []Position {
	minX, minY := cells[0].X, cells[0].Y
	for _, c := range cells[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
	}

	seen := make(map[Position]bool, len(cells))
	out := make([]Position, 0, len(cells))
	for _, c := range cells {
		n := Pos(c.X-minX, c.Y-minY)
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Cells returns a copy of the shape's cell offsets
func (s Shape) Cells() []Position {
	out := make([]Position, len(s.cells))
	copy(out, s.cells)
	return out
}

// Size returns the number of cells
func (s Shape) Size() int {
	return len(s.cells)
}

// IsZero reports whether s is the zero Shape (no cells)
func (s Shape) IsZero() bool {
	return len(s.cells) == 0
}

// Bounds returns the width and height of the shape's bounding box
func (s Shape) Bounds() (width, height int) {
	for _, c := range s.cells {
		if c.X+1 > width {
			width = c.X + 1
		}
		if c.Y+1 > height {
			height = c.Y + 1
		}
	}
	return width, height
}

// Contains reports whether offset is one of the shape's cells
func (s Shape) Contains(offset Position) bool {
	for _, c := range s.cells {
		if c == offset {
			return true
		}
	}
	return false
}

// AbsolutePositions returns the grid cells covered when the shape is anchored
// at anchor. No bounds checking is done.
func (s Shape) AbsolutePositions(anchor Position) []Position {
	out := make([]Position, len(s.cells))
	for i, c := range s.cells {
		out[i] = anchor.Add(c)
	}
	return out
}

// Rotate90 rotates the shape a quarter turn: (x,y) → (-y,x), then normalizes.
func (s Shape) Rotate90() Shape {
	if len(s.cells) <= 1 {
		return s
	}
	rotated := make([]Position, len(s.cells))
	for i, c := range s.cells {
		rotated[i] = Pos(-c.Y, c.X)
	}
	return Shape{cells: normalize(rotated)}
}

// Rotate180 is two quarter turns.
func (s Shape) Rotate180() Shape {
	return s.Rotate90().Rotate90()
}

// Rotate270 is three quarter turns.
func (s Shape) Rotate270() Shape {
	return s.Rotate90().Rotate90().Rotate90()
}

// Equal reports whether both shapes cover the same cell set
func (s Shape) Equal(other Shape) bool {
	if len(s.cells) != len(other.cells) {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows renders the shape as '#'/'.' rows, the inverse of ParseShape.
func (s Shape) Rows() []string {
	w, h := s.Bounds()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			if s.Contains(Pos(x, y)) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		rows[y] = b.String()
	}
	return rows
}

func (s Shape) String() string {
	return strings.Join(s.Rows(), "/")
}
