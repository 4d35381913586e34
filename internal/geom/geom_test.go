package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineCachesDerivedTerms(t *testing.T) {
	l := NewLine(1, 2, 4, 8)
	assert.Equal(t, int64(3), l.DX)
	assert.Equal(t, int64(6), l.DY)
	assert.Equal(t, int64(4*2-1*8), l.Cross)
	assert.False(t, l.Degenerate())
	assert.True(t, NewLine(3, 3, 3, 3).Degenerate())
}

func TestSgn(t *testing.T) {
	assert.Equal(t, -1.0, Sgn(-0.5))
	assert.Equal(t, 1.0, Sgn(0))
	assert.Equal(t, 1.0, Sgn(2))
}

func TestClipLine(t *testing.T) {
	box := MakeBox(-1, -1, 2, 2)

	tests := []struct {
		name   string
		p, q   Point
		ok     bool
		p0, p1 Point
	}{
		{"horizontal", MakePoint(5, 0), MakePoint(6, 0), true, MakePoint(-1, 0), MakePoint(1, 0)},
		{"vertical", MakePoint(0, 0), MakePoint(0, 3), true, MakePoint(0, -1), MakePoint(0, 1)},
		{"diagonal", MakePoint(0, 0), MakePoint(1, 1), true, MakePoint(-1, -1), MakePoint(1, 1)},
		{"miss", MakePoint(0, 5), MakePoint(1, 5), false, Point{}, Point{}},
		{"degenerate", MakePoint(0, 0), MakePoint(0, 0), false, Point{}, Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p0, p1, ok := box.ClipLine(tt.p, tt.q)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.InDelta(t, tt.p0.X, p0.X, 1e-12)
			assert.InDelta(t, tt.p0.Y, p0.Y, 1e-12)
			assert.InDelta(t, tt.p1.X, p1.X, 1e-12)
			assert.InDelta(t, tt.p1.Y, p1.Y, 1e-12)
		})
	}
}

func TestFitBoxFlipsY(t *testing.T) {
	src := MakeBox(0, 0, 10, 10)
	dst := MakeBox(0, 0, 100, 200)
	tr, err := FitBox(src, dst)
	require.NoError(t, err)

	// Scene origin is bottom-left, so it lands at the bottom of the
	// vertically centred square.
	origin := tr.MulPoint(MakePoint(0, 0))
	assert.InDelta(t, 0, origin.X, 1e-9)
	assert.InDelta(t, 150, origin.Y, 1e-9)

	top := tr.MulPoint(MakePoint(10, 10))
	assert.InDelta(t, 100, top.X, 1e-9)
	assert.InDelta(t, 50, top.Y, 1e-9)

	inv, err := tr.Inv()
	require.NoError(t, err)
	back := inv.MulPoint(top)
	assert.InDelta(t, 10, back.X, 1e-9)
	assert.InDelta(t, 10, back.Y, 1e-9)

	_, err = FitBox(MakeBox(0, 0, 0, 1), dst)
	assert.Error(t, err)
}

func TestBoxUnionAndExpand(t *testing.T) {
	b := MakeBox(0, 0, 1, 1).Union(NewCircle(5, 5, 1).Bounds())
	assert.Equal(t, MakeBox(0, 0, 6, 6), b)
	assert.Equal(t, MakeBox(-1, -1, 8, 8), b.Expand(1))
	assert.True(t, b.Contains(MakePoint(6, 6)))
	assert.False(t, b.Contains(MakePoint(6.5, 6)))
}
