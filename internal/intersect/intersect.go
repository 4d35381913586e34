// Package intersect computes the intersection points of pairs of infinite
// lines and circles.
//
// Each routine is a pure function of its two primitives. Degenerate pairs
// (parallel or coincident lines, concentric circles, zero-length lines)
// produce no points rather than errors. Near-touching cases are classified
// with a caller-supplied tolerance eps; line-line classification is exact.
//
// Points reached through different formulas are not reconciled here: a point
// that is both a line-line and a line-circle intersection may come out
// differing in its last bits from each routine.
package intersect

import (
	"math"

	"github.com/irfansharif/intersect/internal/geom"
)

// LineLine returns the intersection of two lines. It returns false if the
// lines are parallel, coincident or either line is degenerate.
func LineLine(a, b geom.Line) (geom.Point, bool) {
	// Cramer's rule on dy*x - dx*y + cross = 0 for each line. Terms are exact
	// integers while they fit in an int64; past that they are evaluated in
	// floating point.
	denominator := diffOfProducts(a.DX, b.DY, b.DX, a.DY)
	if denominator == 0 {
		return geom.Point{}, false
	}
	xNumerator := diffOfProducts(a.Cross, b.DX, a.DX, b.Cross)
	yNumerator := diffOfProducts(b.DY, a.Cross, a.DY, b.Cross)

	return geom.Point{
		X: xNumerator / denominator,
		Y: yNumerator / denominator,
	}, true
}

// productLimit bounds each product, with room for float64 rounding of the
// check, so that the difference of two of them cannot overflow an int64.
const productLimit = 1 << 61

// diffOfProducts returns p*q - r*s, exactly when both products stay below
// productLimit.
func diffOfProducts(p, q, r, s int64) float64 {
	fp, fq, fr, fs := float64(p), float64(q), float64(r), float64(s)
	if math.Abs(fp*fq) < productLimit && math.Abs(fr*fs) < productLimit {
		return float64(p*q - r*s)
	}
	return fp*fq - fr*fs
}

// CircleCircle returns zero, one (tangent) or two intersection points of two
// circles. Circles sharing a center, identical circles included, produce no
// points.
func CircleCircle(a, b geom.Circle, eps float64) []geom.Point {
	if a.X == b.X && a.Y == b.Y {
		return nil // concentric
	}

	r1, r2 := float64(a.R), float64(b.R)
	x1, y1 := float64(a.X), float64(a.Y)
	x2, y2 := float64(b.X), float64(b.Y)

	dx, dy := x2-x1, y2-y1
	lr := r1 + r2           // beyond this the circles are apart
	dr := math.Abs(r1 - r2) // below this one is nested inside the other
	d := math.Sqrt(dx*dx + dy*dy)

	if d-lr > eps || d-dr < -eps {
		return nil
	}

	// Height of the triangle (c1, c2, intersection) over the center line,
	// via Heron's formula on the semi-perimeter. Inside the tolerance band the
	// product can dip below zero; that is a touch.
	p := (r1 + r2 + d) / 2
	area2 := p * (p - r1) * (p - r2) * (p - d)
	if area2 < 0 {
		area2 = 0
	}
	h := (2 / d) * math.Sqrt(area2)

	// Foot of the height, at signed distance va from c1 along the center line.
	va := (r1*r1 - r2*r2 + d*d) / (2 * d)
	x0 := x1 + (va/d)*dx
	y0 := y1 + (va/d)*dy

	if h <= eps {
		return []geom.Point{{X: x0, Y: y0}}
	}

	xp := (h / d) * dy
	yp := (h / d) * dx
	return []geom.Point{
		{X: x0 + xp, Y: y0 - yp},
		{X: x0 - xp, Y: y0 + yp},
	}
}

// LineCircle returns zero, one (tangent) or two intersection points of a line
// and a circle. Degenerate lines produce no points.
func LineCircle(l geom.Line, c geom.Circle, eps float64) []geom.Point {
	if l.Degenerate() {
		return nil
	}

	cx, cy := float64(c.X), float64(c.Y)
	x1, y1 := float64(l.X1)-cx, float64(l.Y1)-cy
	x2, y2 := float64(l.X2)-cx, float64(l.Y2)-cy
	r := float64(c.R)

	dx, dy := x2-x1, y2-y1
	dr2 := dx*dx + dy*dy
	d := x1*y2 - x2*y1

	delta := r*r*dr2 - d*d
	switch {
	case delta < -eps:
		return nil
	case math.Abs(delta) <= eps:
		return []geom.Point{{
			X: (d*dy)/dr2 + cx,
			Y: (-d*dx)/dr2 + cy,
		}}
	}

	sqrtDelta := math.Sqrt(delta)
	xp := geom.Sgn(dy) * dx * sqrtDelta
	yp := math.Abs(dy) * sqrtDelta

	return []geom.Point{
		{X: (d*dy+xp)/dr2 + cx, Y: (-d*dx+yp)/dr2 + cy},
		{X: (d*dy-xp)/dr2 + cx, Y: (-d*dx-yp)/dr2 + cy},
	}
}
