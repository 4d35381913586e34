// Package geom provides the 2D value types shared by the intersection engine
// and the renderers:
// - Point, Line and Circle primitives (with derived terms cached at construction)
// - Axis-aligned boxes, including clipping of infinite lines
// - Affine transforms used to map scene space onto a viewport
package geom

import (
	"fmt"
	"math"
)

// Point represents a 2D point or vector in Cartesian coordinates.
type Point struct {
	X float64
	Y float64
}

// Box represents an axis-aligned rectangle.
type Box struct {
	X float64
	Y float64
	W float64
	H float64
}

// Affine represents a 2D affine transform in row-major form:
// [ a b c ]
// [ d e f ]
// where (x', y') = (a*x + b*y + c, d*x + e*y + f)
type Affine struct {
	A float64
	B float64
	C float64
	D float64
	E float64
	F float64
}

func MakePoint(x, y float64) Point               { return Point{X: x, Y: y} }
func MakeBox(x, y, w, h float64) Box             { return Box{X: x, Y: y, W: w, H: h} }
func MakeAffine(a, b, c, d, e, f float64) Affine { return Affine{A: a, B: b, C: c, D: d, E: e, F: f} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

func Dist(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Expand grows the box by margin on every side.
func (b Box) Expand(margin float64) Box {
	return MakeBox(b.X-margin, b.Y-margin, b.W+2*margin, b.H+2*margin)
}

// Contains reports whether p lies inside or on the boundary of the box.
func (b Box) Contains(p Point) bool {
	return p.X >= b.X && p.X <= b.X+b.W && p.Y >= b.Y && p.Y <= b.Y+b.H
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	x0, y0 := math.Min(b.X, o.X), math.Min(b.Y, o.Y)
	x1, y1 := math.Max(b.X+b.W, o.X+o.W), math.Max(b.Y+b.H, o.Y+o.H)
	return MakeBox(x0, y0, x1-x0, y1-y0)
}

// ClipLine clips the infinite line through p and q to the box, using the
// Liang-Barsky parametrisation. It returns false if the line misses the box or
// p == q.
func (b Box) ClipLine(p, q Point) (Point, Point, bool) {
	d := q.Sub(p)
	if d.X == 0 && d.Y == 0 {
		return Point{}, Point{}, false
	}

	tmin, tmax := math.Inf(-1), math.Inf(1)
	clip := func(pd, lo, hi, origin float64) bool {
		if pd == 0 {
			return origin >= lo && origin <= hi // parallel to this slab
		}
		t0, t1 := (lo-origin)/pd, (hi-origin)/pd
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin, tmax = math.Max(tmin, t0), math.Min(tmax, t1)
		return tmin <= tmax
	}
	if !clip(d.X, b.X, b.X+b.W, p.X) || !clip(d.Y, b.Y, b.Y+b.H, p.Y) {
		return Point{}, Point{}, false
	}
	return p.Add(d.Scale(tmin)), p.Add(d.Scale(tmax)), true
}

// MulPoint applies the affine transform to a point.
func (t Affine) MulPoint(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// Mul composes two affine transforms (applies u then t).
func (t Affine) Mul(u Affine) Affine {
	return MakeAffine(
		t.A*u.A+t.B*u.D,
		t.A*u.B+t.B*u.E,
		t.A*u.C+t.B*u.F+t.C,
		t.D*u.A+t.E*u.D,
		t.D*u.B+t.E*u.E,
		t.D*u.C+t.E*u.F+t.F,
	)
}

// Inv returns the inverse of the affine transform.
// Returns an error if the transform is not invertible (determinant is zero).
func (t Affine) Inv() (Affine, error) {
	det := t.A*t.E - t.B*t.D
	if math.Abs(det) < 1e-10 {
		return Affine{}, fmt.Errorf("affine transform is not invertible (determinant ≈ 0)")
	}
	return MakeAffine(
		t.E/det, -t.B/det, (t.B*t.F-t.C*t.E)/det,
		-t.D/det, t.A/det, (t.C*t.D-t.A*t.F)/det,
	), nil
}

// FitBox returns a transform that maps box src into dst, preserving aspect
// ratio and centering. Scene space has y pointing up while screen space has y
// pointing down, so the y axis is flipped.
func FitBox(src, dst Box) (Affine, error) {
	if src.W <= 0 || src.H <= 0 {
		return Affine{}, fmt.Errorf("source box must have positive width and height, got W=%v H=%v", src.W, src.H)
	}
	if dst.W <= 0 || dst.H <= 0 {
		return Affine{}, fmt.Errorf("destination box must have positive width and height, got W=%v H=%v", dst.W, dst.H)
	}

	sc := math.Min(dst.W/src.W, dst.H/src.H)
	centerDst := MakeAffine(1, 0, dst.X+0.5*dst.W, 0, 1, dst.Y+0.5*dst.H)
	centerSrc := MakeAffine(1, 0, -(src.X + 0.5*src.W), 0, 1, -(src.Y + 0.5*src.H))
	return centerDst.Mul(MakeAffine(sc, 0, 0, 0, -sc, 0)).Mul(centerSrc), nil
}
