package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/intersect/internal/geom"
	"github.com/irfansharif/intersect/internal/palette"
	"github.com/irfansharif/intersect/internal/scene"
)

// area sums the absolute areas of the triangles in b.
func area(b *Builder) float64 {
	v := b.Vertices()
	total := 0.0
	for i := 0; i+3*FloatsPerVertex <= len(v); i += 3 * FloatsPerVertex {
		ax, ay := float64(v[i]), float64(v[i+1])
		bx, by := float64(v[i+FloatsPerVertex]), float64(v[i+FloatsPerVertex+1])
		cx, cy := float64(v[i+2*FloatsPerVertex]), float64(v[i+2*FloatsPerVertex+1])
		total += math.Abs((bx-ax)*(cy-ay)-(cx-ax)*(by-ay)) / 2
	}
	return total
}

func polygonArea(n int, r float64) float64 {
	return float64(n) / 2 * r * r * math.Sin(2*math.Pi/float64(n))
}

func TestQuad(t *testing.T) {
	b := &Builder{}
	quad := Quad(geom.MakePoint(0, 0), geom.MakePoint(10, 0), 1)
	require.Len(t, quad, 4)
	require.NoError(t, b.AddPolygon([4]float32{1, 0, 0, 1}, quad))

	assert.Equal(t, 6, b.VertexCount())
	assert.InDelta(t, 20, area(b), 1e-4)
	assert.Equal(t, float32(1), b.Vertices()[2], "red channel follows position")

	assert.Nil(t, Quad(geom.MakePoint(1, 1), geom.MakePoint(1, 1), 1))
}

func TestRing(t *testing.T) {
	b := &Builder{}
	center := geom.MakePoint(50, 50)
	outer := RegularPolygon(center, 20, 32)
	inner := RegularPolygon(center, 18, 32)
	require.NoError(t, b.AddPolygon([4]float32{0, 0, 0, 1}, outer, inner))

	assert.InDelta(t, polygonArea(32, 20)-polygonArea(32, 18), area(b), 1e-2)
}

func TestRegularPolygon(t *testing.T) {
	points := RegularPolygon(geom.MakePoint(1, 2), 3, 8)
	require.Len(t, points, 8)
	for _, p := range points {
		assert.InDelta(t, 3, geom.Dist(p, geom.MakePoint(1, 2)), 1e-12)
	}
	assert.InDelta(t, 4, points[0].X, 1e-12)
}

func TestEarClipErrors(t *testing.T) {
	_, err := earClip([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
	assert.ErrorContains(t, err, "degenerate polygon")

	square := []geom.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	_, err = earClip(square, []geom.Point{{X: 1, Y: 1}})
	assert.ErrorContains(t, err, "degenerate hole")
}

func TestBuild(t *testing.T) {
	sc := scene.Scene{
		Lines:   []geom.Line{geom.NewLine(0, 0, 2, 2), geom.NewLine(5, 5, 5, 5)},
		Circles: []geom.Circle{geom.NewCircle(1, 1, 1), geom.NewCircle(0, 0, 0)},
	}
	points := []geom.Point{{X: 1, Y: 1}, {X: 0, Y: 0}}

	bounds, ok := sc.Bounds()
	require.True(t, ok)
	toScreen, err := geom.FitBox(bounds, geom.MakeBox(0, 0, 800, 600))
	require.NoError(t, err)

	b, err := Build(sc, points, toScreen, palette.Default(), DefaultStyle())
	require.NoError(t, err)
	assert.Positive(t, b.VertexCount())
	assert.Zero(t, b.VertexCount()%3)
	assert.Zero(t, len(b.Vertices())%FloatsPerVertex)

	// Without points the mesh shrinks by exactly two 12-gon discs.
	withoutPoints, err := Build(sc, nil, toScreen, palette.Default(), DefaultStyle())
	require.NoError(t, err)
	assert.Equal(t, 2*10*3, b.VertexCount()-withoutPoints.VertexCount())
}

func TestBuildEmptyScene(t *testing.T) {
	b, err := Build(scene.Scene{}, nil, geom.MakeAffine(1, 0, 0, 0, 1, 0), palette.Default(), DefaultStyle())
	require.NoError(t, err)
	assert.Zero(t, b.VertexCount())
}
