package geom

import "fmt"

// Line is an infinite line through two integer points. Derived terms are
// computed once at construction since every pairwise test reuses them. They
// are exact for coordinates within scene.MaxCoordinate.
type Line struct {
	X1, Y1, X2, Y2 int64

	DX, DY int64 // direction vector (X2-X1, Y2-Y1)
	Cross  int64 // X2*Y1 - X1*Y2
}

// Circle is a circle with an integer center and radius. R is non-negative; a
// zero radius is a point-circle.
type Circle struct {
	X, Y, R int64
}

func NewLine(x1, y1, x2, y2 int64) Line {
	return Line{
		X1: x1, Y1: y1, X2: x2, Y2: y2,
		DX:    x2 - x1,
		DY:    y2 - y1,
		Cross: x2*y1 - x1*y2,
	}
}

func NewCircle(x, y, r int64) Circle { return Circle{X: x, Y: y, R: r} }

// Degenerate reports whether both endpoints coincide, leaving the line without
// a direction.
func (l Line) Degenerate() bool { return l.DX == 0 && l.DY == 0 }

func (l Line) P1() Point { return Point{float64(l.X1), float64(l.Y1)} }
func (l Line) P2() Point { return Point{float64(l.X2), float64(l.Y2)} }

func (c Circle) Center() Point { return Point{float64(c.X), float64(c.Y)} }

// Bounds returns the circle's bounding box.
func (c Circle) Bounds() Box {
	r := float64(c.R)
	return MakeBox(float64(c.X)-r, float64(c.Y)-r, 2*r, 2*r)
}

func (l Line) String() string {
	return fmt.Sprintf("L(%d,%d -> %d,%d)", l.X1, l.Y1, l.X2, l.Y2)
}

func (c Circle) String() string {
	return fmt.Sprintf("C(%d,%d r=%d)", c.X, c.Y, c.R)
}

// Sgn returns -1 for strictly negative x and +1 otherwise (zero included).
func Sgn(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
