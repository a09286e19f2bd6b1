package colorkit

import (
	"fmt"
	"math"
)

// Complement returns the color opposite on the hue wheel.
func (c *Color) Complement() *Color {
	hsl := c.ToHsl()
	hsl.H = math.Mod(hsl.H+180, 360)
	return Parse(hsl)
}

// Triad returns the receiver and two colors 120 degrees apart.
func (c *Color) Triad() []*Color {
	out, _ := c.Polyad(3)
	return out
}

// Tetrad returns the receiver and three colors 90 degrees apart.
func (c *Color) Tetrad() []*Color {
	out, _ := c.Polyad(4)
	return out
}

// SplitComplement returns the receiver and the colors at +72 and +216
// degrees.
func (c *Color) SplitComplement() []*Color {
	hsl := c.ToHsl()
	return []*Color{
		c,
		Parse(HSL{H: math.Mod(hsl.H+72, 360), S: hsl.S, L: hsl.L}),
		Parse(HSL{H: math.Mod(hsl.H+216, 360), S: hsl.S, L: hsl.L}),
	}
}

// Polyad returns the receiver followed by n-1 colors with equally spaced
// hues. It is experimental. n must be between 1 and MaxSchemeSize.
func (c *Color) Polyad(n int) ([]*Color, error) {
	if n <= 0 || n > MaxSchemeSize {
		return nil, fmt.Errorf("polyad of %d colors: %w", n, ErrInvalidArgument)
	}
	hsl := c.ToHsl()
	step := 360 / float64(n)

	out := make([]*Color, 0, n)
	out = append(out, c)
	for i := 1; i < n; i++ {
		out = append(out, Parse(HSL{
			H: math.Mod(hsl.H+float64(i)*step, 360),
			S: hsl.S,
			L: hsl.L,
		}))
	}
	return out, nil
}

// Analogous returns results colors starting with the receiver, walking the
// hue wheel in steps of 360/slices degrees centered on the receiver's hue.
// Zero or negative arguments select DefaultAnalogousResults and
// DefaultAnalogousSlices; results is capped at MaxSchemeSize.
func (c *Color) Analogous(results, slices int) []*Color {
	if results <= 0 {
		results = DefaultAnalogousResults
	}
	results = min(results, MaxSchemeSize)
	if slices <= 0 {
		slices = DefaultAnalogousSlices
	}

	hsl := c.ToHsl()
	part := 360 / float64(slices)
	half := float64(int32(part*float64(results)) >> 1)

	out := make([]*Color, 0, results)
	out = append(out, c)
	hsl.H = math.Mod(hsl.H-half+720, 360)
	for i := 1; i < results; i++ {
		hsl.H = math.Mod(hsl.H+part, 360)
		out = append(out, Parse(hsl))
	}
	return out
}

// Monochromatic returns results colors sharing the receiver's hue and
// saturation with value stepped by 1/results. Zero or negative results
// selects DefaultMonochromaticResults; results is capped at MaxSchemeSize.
func (c *Color) Monochromatic(results int) []*Color {
	if results <= 0 {
		results = DefaultMonochromaticResults
	}
	results = min(results, MaxSchemeSize)

	hsv := c.ToHsv()
	step := 1 / float64(results)
	v := hsv.V

	out := make([]*Color, 0, results)
	for i := 0; i < results; i++ {
		out = append(out, Parse(HSV{H: hsv.H, S: hsv.S, V: v}))
		v = math.Mod(v+step, 1)
	}
	return out
}
