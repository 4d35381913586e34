// Package mesh turns a scene and its intersection points into coloured
// triangles ready for upload to the GPU.
//
// Every vertex is six float32s: position (x, y) in screen space followed by
// an RGBA colour. Lines become thin quads clipped to a region around the
// scene, circles become rings (an outer polygon with the inner one as a hole)
// and points become small filled discs.
package mesh

import (
	"fmt"
	"math"

	"github.com/irfansharif/intersect/internal/geom"
	"github.com/irfansharif/intersect/internal/palette"
	"github.com/irfansharif/intersect/internal/scene"
)

// FloatsPerVertex is the vertex stride in float32s.
const FloatsPerVertex = 6

// Style controls the on-screen size of primitives, in pixels.
type Style struct {
	LineWidth   float64
	PointRadius float64
	// LineReach is how far past the scene bounds infinite lines are drawn, as
	// a multiple of the larger scene side.
	LineReach float64
}

func DefaultStyle() Style {
	return Style{LineWidth: 2, PointRadius: 4, LineReach: 20}
}

// Builder accumulates triangles.
type Builder struct {
	vertices []float32
}

// Vertices returns the accumulated vertex data.
func (b *Builder) Vertices() []float32 { return b.vertices }

// VertexCount returns the number of vertices (three per triangle).
func (b *Builder) VertexCount() int { return len(b.vertices) / FloatsPerVertex }

// AddPolygon triangulates the polygon and appends it.
func (b *Builder) AddPolygon(colour [4]float32, outer []geom.Point, holes ...[]geom.Point) error {
	triangles, err := earClip(outer, holes...)
	if err != nil {
		return err
	}
	for _, tri := range triangles {
		for _, v := range tri {
			b.vertices = append(b.vertices,
				float32(v.X), float32(v.Y), // position
				colour[0], colour[1], colour[2], colour[3], // colour
			)
		}
	}
	return nil
}

// RegularPolygon returns the vertices of a regular polygon inscribed in the
// circle of the given center and radius, counter-clockwise.
func RegularPolygon(center geom.Point, radius float64, segments int) []geom.Point {
	points := make([]geom.Point, segments)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		points[i] = geom.Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return points
}

// Quad returns the rectangle of half-width hw around the segment p0-p1.
func Quad(p0, p1 geom.Point, hw float64) []geom.Point {
	d := p1.Sub(p0)
	n := geom.Dist(p0, p1)
	if n == 0 {
		return nil
	}
	normal := geom.Point{X: -d.Y / n * hw, Y: d.X / n * hw}
	return []geom.Point{p0.Add(normal), p1.Add(normal), p1.Sub(normal), p0.Sub(normal)}
}

// segments picks a polygon resolution for a circle of r pixels.
func segments(r float64) int {
	return int(math.Max(16, math.Min(256, r/2)))
}

// Build triangulates the scene. toScreen maps scene coordinates to screen
// pixels; it must be a uniform scale (plus flip and translation).
func Build(sc scene.Scene, points []geom.Point, toScreen geom.Affine, scheme palette.Scheme, style Style) (*Builder, error) {
	bounds, ok := sc.Bounds()
	if !ok {
		return &Builder{}, nil
	}
	scale := math.Hypot(toScreen.A, toScreen.D) // pixels per scene unit
	if scale == 0 {
		return nil, fmt.Errorf("degenerate screen transform")
	}
	reach := bounds.Expand(style.LineReach * math.Max(math.Max(bounds.W, bounds.H), 1))

	b := &Builder{}
	for i, l := range sc.Lines {
		p0, p1, ok := reach.ClipLine(l.P1(), l.P2())
		if !ok {
			continue
		}
		quad := Quad(toScreen.MulPoint(p0), toScreen.MulPoint(p1), style.LineWidth/2)
		if quad == nil {
			continue
		}
		if err := b.AddPolygon(palette.Float32(scheme.Primitive(i)), quad); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
	}

	for i, c := range sc.Circles {
		colour := palette.Float32(scheme.Primitive(len(sc.Lines) + i))
		center := toScreen.MulPoint(c.Center())
		r := float64(c.R) * scale
		outer := r + style.LineWidth/2
		inner := r - style.LineWidth/2
		n := segments(outer)

		var err error
		if inner <= 0 {
			err = b.AddPolygon(colour, RegularPolygon(center, outer, n))
		} else {
			err = b.AddPolygon(colour, RegularPolygon(center, outer, n), RegularPolygon(center, inner, n))
		}
		if err != nil {
			return nil, fmt.Errorf("circle %d: %w", i, err)
		}
	}

	pointColour := palette.Float32(scheme.Point)
	for i, p := range points {
		disc := RegularPolygon(toScreen.MulPoint(p), style.PointRadius, 12)
		if err := b.AddPolygon(pointColour, disc); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
	}
	return b, nil
}
