package colorkit

import (
	"math"

	"github.com/opd-ai/go-colorkit/internal/convert"
)

// modify returns a copy of c carrying the channels and alpha of next. The
// copy keeps c's format, original input and validity.
func (c *Color) modify(next *Color) *Color {
	out := *c
	out.r, out.g, out.b = next.r, next.g, next.b
	out.setAlpha(next.a)
	return &out
}

// Lighten raises HSL lightness by amount percent.
func (c *Color) Lighten(amount float64) *Color {
	hsl := c.ToHsl()
	hsl.L = convert.Clamp01(hsl.L + amount/100)
	return c.modify(Parse(hsl))
}

// Darken lowers HSL lightness by amount percent.
func (c *Color) Darken(amount float64) *Color {
	hsl := c.ToHsl()
	hsl.L = convert.Clamp01(hsl.L - amount/100)
	return c.modify(Parse(hsl))
}

// Saturate raises HSL saturation by amount percent.
func (c *Color) Saturate(amount float64) *Color {
	hsl := c.ToHsl()
	hsl.S = convert.Clamp01(hsl.S + amount/100)
	return c.modify(Parse(hsl))
}

// Desaturate lowers HSL saturation by amount percent.
func (c *Color) Desaturate(amount float64) *Color {
	hsl := c.ToHsl()
	hsl.S = convert.Clamp01(hsl.S - amount/100)
	return c.modify(Parse(hsl))
}

// Greyscale removes all saturation.
func (c *Color) Greyscale() *Color {
	return c.Desaturate(100)
}

// Brighten moves each RGB channel toward 255 by amount percent of the
// full range.
func (c *Color) Brighten(amount float64) *Color {
	rgb := c.ToRgb()
	step := convert.Round(255 * -(amount / 100))
	rgb.R = math.Max(0, math.Min(255, rgb.R-step))
	rgb.G = math.Max(0, math.Min(255, rgb.G-step))
	rgb.B = math.Max(0, math.Min(255, rgb.B-step))
	return c.modify(Parse(rgb))
}

// Spin rotates the hue by degrees, wrapping into [0,360).
func (c *Color) Spin(degrees float64) *Color {
	hsl := c.ToHsl()
	hsl.H = wrapDegrees(hsl.H + degrees)
	return c.modify(Parse(hsl))
}

func wrapDegrees(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Mix blends c toward other by amount percent. See the package level Mix.
func (c *Color) Mix(other any, amount float64) *Color {
	return c.modify(Mix(c, other, amount))
}

// Mix linearly interpolates RGB channels and alpha from a to b. Amount 0
// yields a, 100 yields b. The result is a new color in rgb format.
func Mix(a, b any, amount float64) *Color {
	rgb1 := Parse(a).ToRgb()
	rgb2 := Parse(b).ToRgb()
	p := amount / 100

	return Parse(RGBA{
		R: lerp(rgb1.R, rgb2.R, p),
		G: lerp(rgb1.G, rgb2.G, p),
		B: lerp(rgb1.B, rgb2.B, p),
		A: lerp(rgb1.A, rgb2.A, p),
	})
}

func lerp(from, to, p float64) float64 {
	return (to-from)*p + from
}
