// Package svg plots a scene and its intersection points as an SVG document.
package svg

import (
	"fmt"
	"io"
	"math"

	jgeom "github.com/jbeda/geom"

	"github.com/irfansharif/intersect/internal/geom"
	"github.com/irfansharif/intersect/internal/palette"
	"github.com/irfansharif/intersect/internal/scene"
)

// Tunable constants for output.
const (
	paddingFraction  = 0.1   // of the larger side, added around the scene
	strokeFraction   = 0.002 // of the larger side
	pointRadiusScale = 3     // point markers, in stroke widths
)

// Writer emits SVG elements. The first write error sticks and is returned by
// End; later writes are skipped.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (s *Writer) printf(format string, a ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, a...)
}

// Start opens the document. Coordinates passed to the other methods are scene
// coordinates (y up); they are flipped into SVG space (y down) here.
func (s *Writer) Start(viewBox jgeom.Rect, background string) {
	s.printf(`<?xml version="1.0"?>
<svg version="1.1"
     viewBox="%f %f %f %f"
     xmlns="http://www.w3.org/2000/svg">
<rect x="%f" y="%f" width="%f" height="%f" fill="%s"/>
`, viewBox.Min.X, -viewBox.Max.Y, viewBox.Width(), viewBox.Height(),
		viewBox.Min.X, -viewBox.Max.Y, viewBox.Width(), viewBox.Height(), background)
}

func (s *Writer) End() error {
	s.printf("</svg>\n")
	return s.err
}

func (s *Writer) Line(p1, p2 jgeom.Coord, stroke string, width float64) {
	s.printf("<line x1='%f' y1='%f' x2='%f' y2='%f' stroke='%s' stroke-width='%f'/>\n",
		p1.X, -p1.Y, p2.X, -p2.Y, stroke, width)
}

func (s *Writer) Circle(c jgeom.Coord, r float64, stroke string, width float64) {
	s.printf("<circle cx='%f' cy='%f' r='%f' stroke='%s' stroke-width='%f' fill='none'/>\n",
		c.X, -c.Y, r, stroke, width)
}

func (s *Writer) Dot(c jgeom.Coord, r float64, fill string) {
	s.printf("<circle cx='%f' cy='%f' r='%f' fill='%s'/>\n", c.X, -c.Y, r, fill)
}

func coord(p geom.Point) jgeom.Coord { return jgeom.Coord{X: p.X, Y: p.Y} }

// ViewBox returns the padded bounds of the scene and the points. An empty
// scene with no points gets a unit box around the origin.
func ViewBox(sc scene.Scene, points []geom.Point) jgeom.Rect {
	b, ok := sc.Bounds()
	if !ok {
		b = geom.MakeBox(-1, -1, 2, 2)
	}
	r := jgeom.Rect{
		Min: jgeom.Coord{X: b.X, Y: b.Y},
		Max: jgeom.Coord{X: b.X + b.W, Y: b.Y + b.H},
	}
	for _, p := range points {
		r.ExpandToContainCoord(coord(p))
	}

	pad := math.Max(paddingFraction*math.Max(r.Width(), r.Height()), 1)
	r.Min = r.Min.Minus(jgeom.Coord{X: pad, Y: pad})
	r.Max = r.Max.Plus(jgeom.Coord{X: pad, Y: pad})
	return r
}

// WritePlot draws every line (clipped to the view box), every circle and a
// marker at every point.
func WritePlot(w io.Writer, sc scene.Scene, points []geom.Point, scheme palette.Scheme) error {
	viewBox := ViewBox(sc, points)
	box := geom.MakeBox(viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height())
	stroke := strokeFraction * math.Max(viewBox.Width(), viewBox.Height())

	out := NewWriter(w)
	out.Start(viewBox, palette.Hex(scheme.Background))

	for i, l := range sc.Lines {
		p1, p2, ok := box.ClipLine(l.P1(), l.P2())
		if !ok {
			continue
		}
		out.Line(coord(p1), coord(p2), palette.Hex(scheme.Primitive(i)), stroke)
	}
	for i, c := range sc.Circles {
		colour := palette.Hex(scheme.Primitive(len(sc.Lines) + i))
		out.Circle(coord(c.Center()), float64(c.R), colour, stroke)
	}
	for _, p := range points {
		out.Dot(coord(p), pointRadiusScale*stroke, palette.Hex(scheme.Point))
	}
	return out.End()
}
