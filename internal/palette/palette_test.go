package palette

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHex(t *testing.T) {
	assert.Equal(t, "#ff0000", Hex(color.RGBA{R: 255, A: 255}))
	assert.Equal(t, "#ffffff", Hex(Default().Background))
}

func TestPrimitiveColoursDiffer(t *testing.T) {
	s := Default()
	seen := map[color.RGBA]bool{}
	for i := 0; i < 8; i++ {
		c := s.Primitive(i)
		assert.Equal(t, uint8(255), c.A)
		seen[c] = true
	}
	assert.Len(t, seen, 8)
}

func TestRandomIsDeterministic(t *testing.T) {
	a := Random(rand.New(rand.NewSource(11)))
	b := Random(rand.New(rand.NewSource(11)))
	assert.Equal(t, a, b)
	assert.Equal(t, a.Primitive(3), b.Primitive(3))
}

func TestFloat32(t *testing.T) {
	assert.Equal(t, [4]float32{1, 0, 0, 1}, Float32(color.RGBA{R: 255, A: 255}))
}

func TestFromSeed(t *testing.T) {
	s, err := FromSeed("")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)

	s, err = FromSeed("11")
	require.NoError(t, err)
	assert.Equal(t, Random(rand.New(rand.NewSource(11))), s)

	_, err = FromSeed("eleven")
	assert.ErrorContains(t, err, `invalid seed "eleven"`)
}
