// Package palette provides the colours used to plot scenes. Primitives get
// hues spread around the HSV wheel; intersection points share one accent.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// goldenAngle spaces successive hues so neighbouring primitives stay
// distinguishable however many there are.
const goldenAngle = 360 * (1 - 1/math.Phi)

// Scheme holds the colours of a plot.
type Scheme struct {
	Background color.RGBA
	Point      color.RGBA

	baseHue    float64
	saturation float64
	brightness float64
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// hsb converts hue in degrees and saturation/brightness in [0, 100] to RGBA.
func hsb(h, s, b float64) color.RGBA {
	c := colorful.Hsv(math.Mod(h, 360), clamp(s/100.0, 0, 1), clamp(b/100.0, 0, 1))
	red, green, blue := c.RGB255()
	return color.RGBA{R: red, G: green, B: blue, A: 255}
}

// Default returns the scheme used when no seed is given.
func Default() Scheme {
	return Scheme{
		Background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Point:      hsb(0, 90, 85),
		baseHue:    210,
		saturation: 60,
		brightness: 55,
	}
}

// Random returns a scheme with a random base hue and point accent.
func Random(r *rand.Rand) Scheme {
	s := Default()
	s.baseHue = r.Float64() * 360
	s.saturation = r.Float64()*30 + 45
	s.brightness = r.Float64()*20 + 45
	s.Point = hsb(s.baseHue+180, 90, 85) // complementary accent
	return s
}

// FromSeed returns Default for an empty seed and otherwise the Random scheme
// drawn from the decimal seed.
func FromSeed(seed string) (Scheme, error) {
	if seed == "" {
		return Default(), nil
	}
	n, err := strconv.ParseInt(seed, 10, 64)
	if err != nil {
		return Scheme{}, fmt.Errorf("invalid seed %q: %w", seed, err)
	}
	return Random(rand.New(rand.NewSource(n))), nil
}

// Primitive returns the colour of the i-th primitive.
func (s Scheme) Primitive(i int) color.RGBA {
	return hsb(s.baseHue+float64(i)*goldenAngle, s.saturation, s.brightness)
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// Float32 returns c as normalised RGBA components.
func Float32(c color.RGBA) [4]float32 {
	return [4]float32{
		float32(c.R) / 255.0, float32(c.G) / 255.0,
		float32(c.B) / 255.0, float32(c.A) / 255.0,
	}
}
