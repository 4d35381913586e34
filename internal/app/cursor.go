package app

import (
	"math"

	"github.com/irfansharif/intersect/internal/geom"
)

// Cursor steps through the intersection points. Points are visited in the
// order they were given, which for a compacted point set is lexicographic.
type Cursor struct {
	points  []geom.Point
	current int // -1 when nothing is selected
}

// NewCursor creates a cursor over points with nothing selected.
func NewCursor(points []geom.Point) *Cursor {
	return &Cursor{points: points, current: -1}
}

// Len returns the number of points.
func (c *Cursor) Len() int { return len(c.points) }

// Current returns the selected point and its index.
func (c *Cursor) Current() (geom.Point, int, bool) {
	if c.current < 0 {
		return geom.Point{}, -1, false
	}
	return c.points[c.current], c.current, true
}

// Select sets the current point directly. Out of range indices clear the
// selection.
func (c *Cursor) Select(i int) {
	if i < 0 || i >= len(c.points) {
		c.current = -1
		return
	}
	c.current = i
}

// Nearest returns the index of the point closest to p. For points at equal
// distance the lower index wins.
func (c *Cursor) Nearest(p geom.Point) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	for i, q := range c.points {
		if d := geom.Dist(p, q); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// Iter moves to the next or previous point, wrapping around. With nothing
// selected it starts from the first (or last) point.
func (c *Cursor) Iter(next bool) (geom.Point, bool) {
	n := len(c.points)
	if n == 0 {
		c.current = -1
		return geom.Point{}, false
	}

	switch {
	case c.current < 0 && next:
		c.current = 0
	case c.current < 0:
		c.current = n - 1
	case next:
		c.current = (c.current + 1) % n
	default:
		c.current = (c.current - 1 + n) % n
	}
	return c.points[c.current], true
}
