package colorkit

import (
	"fmt"

	"github.com/opd-ai/go-colorkit/internal/convert"
	"github.com/opd-ai/go-colorkit/internal/names"
)

// ToRgb returns rounded channels and alpha.
func (c *Color) ToRgb() RGBA {
	return RGBA{
		R: convert.Round(c.r),
		G: convert.Round(c.g),
		B: convert.Round(c.b),
		A: c.a,
	}
}

// ToRgbString renders "rgb(r, g, b)" or "rgba(r, g, b, a)".
func (c *Color) ToRgbString() string {
	rgb := c.ToRgb()
	if c.a == 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", int(rgb.R), int(rgb.G), int(rgb.B))
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", int(rgb.R), int(rgb.G), int(rgb.B), convert.FormatFloat(c.roundA))
}

func percent(v float64) int {
	return int(convert.Round(convert.Bound01(v, 255) * 100))
}

// ToPercentageRgb returns channels as percentage strings.
func (c *Color) ToPercentageRgb() PercentRGBA {
	return PercentRGBA{
		R: fmt.Sprintf("%d%%", percent(c.r)),
		G: fmt.Sprintf("%d%%", percent(c.g)),
		B: fmt.Sprintf("%d%%", percent(c.b)),
		A: c.a,
	}
}

// ToPercentageRgbString renders "rgb(r%, g%, b%)" or the rgba form.
func (c *Color) ToPercentageRgbString() string {
	if c.a == 1 {
		return fmt.Sprintf("rgb(%d%%, %d%%, %d%%)", percent(c.r), percent(c.g), percent(c.b))
	}
	return fmt.Sprintf("rgba(%d%%, %d%%, %d%%, %s)", percent(c.r), percent(c.g), percent(c.b), convert.FormatFloat(c.roundA))
}

// ToHsl returns hue in degrees and saturation and lightness in [0,1].
func (c *Color) ToHsl() HSLA {
	h, s, l := convert.RGBToHSL(c.r, c.g, c.b)
	return HSLA{H: h * 360, S: s, L: l, A: c.a}
}

// ToHslString renders "hsl(h, s%, l%)" or "hsla(h, s%, l%, a)".
func (c *Color) ToHslString() string {
	h, s, l := convert.RGBToHSL(c.r, c.g, c.b)
	return cylindrical("hsl", h, s, l, c.a, c.roundA)
}

// ToHsv returns hue in degrees and saturation and value in [0,1].
func (c *Color) ToHsv() HSVA {
	h, s, v := convert.RGBToHSV(c.r, c.g, c.b)
	return HSVA{H: h * 360, S: s, V: v, A: c.a}
}

// ToHsvString renders "hsv(h, s%, v%)" or "hsva(h, s%, v%, a)".
func (c *Color) ToHsvString() string {
	h, s, v := convert.RGBToHSV(c.r, c.g, c.b)
	return cylindrical("hsv", h, s, v, c.a, c.roundA)
}

func cylindrical(name string, h, s, x, a, roundA float64) string {
	hh := int(convert.Round(h * 360))
	ss := int(convert.Round(s * 100))
	xx := int(convert.Round(x * 100))
	if a == 1 {
		return fmt.Sprintf("%s(%d, %d%%, %d%%)", name, hh, ss, xx)
	}
	return fmt.Sprintf("%sa(%d, %d%%, %d%%, %s)", name, hh, ss, xx, convert.FormatFloat(roundA))
}

// ToHex returns hex digits without '#'. With allow3 the 3 digit form is
// used when every channel is a doubled digit.
func (c *Color) ToHex(allow3 bool) string {
	return convert.RGBToHex(c.r, c.g, c.b, allow3)
}

// ToHexString is ToHex with a leading '#'.
func (c *Color) ToHexString(allow3 bool) string {
	return "#" + c.ToHex(allow3)
}

// ToHex8 returns 8 hex digits including alpha, or 4 when allow4 is set and
// representable.
func (c *Color) ToHex8(allow4 bool) string {
	return convert.RGBAToHex(c.r, c.g, c.b, c.a, allow4)
}

// ToHex8String is ToHex8 with a leading '#'.
func (c *Color) ToHex8String(allow4 bool) string {
	return "#" + c.ToHex8(allow4)
}

// ToName returns the CSS name of an opaque color, or "transparent" when
// alpha is zero. The second result is false when no name applies.
func (c *Color) ToName() (string, bool) {
	if c.a == 0 {
		return names.Transparent, true
	}
	if c.a < 1 {
		return "", false
	}
	return names.Reverse(c.ToHex(false))
}

// ToFilter renders a legacy IE gradient filter from this color to second.
// A nil second repeats this color.
func (c *Color) ToFilter(second any) string {
	start := "#" + convert.RGBAToARGBHex(c.r, c.g, c.b, c.a)
	end := start
	if second != nil {
		s := Parse(second)
		end = "#" + convert.RGBAToARGBHex(s.r, s.g, s.b, s.a)
	}
	gradientType := ""
	if c.gradientType {
		gradientType = "GradientType = 1, "
	}
	return "progid:DXImageTransform.Microsoft.gradient(" + gradientType +
		"startColorstr=" + start + ",endColorstr=" + end + ")"
}

// String renders the color in its own format. Translucent colors whose
// format is hex or name render as rgba instead.
func (c *Color) String() string {
	return c.render(c.format, false)
}

// ToString renders the color in format f. An empty f behaves like String.
func (c *Color) ToString(f Format) string {
	if f == FormatNone {
		return c.String()
	}
	return c.render(f, true)
}

func (c *Color) render(f Format, explicit bool) string {
	hasAlpha := c.a < 1 && c.a >= 0
	if !explicit && hasAlpha && (f.isHexFamily() || f == FormatName) {
		if f == FormatName && c.a == 0 {
			name, _ := c.ToName()
			return name
		}
		return c.ToRgbString()
	}

	var out string
	switch f {
	case FormatRGB:
		out = c.ToRgbString()
	case FormatPRGB:
		out = c.ToPercentageRgbString()
	case FormatHex, FormatHex6:
		out = c.ToHexString(false)
	case FormatHex3:
		out = c.ToHexString(true)
	case FormatHex4:
		out = c.ToHex8String(true)
	case FormatHex8:
		out = c.ToHex8String(false)
	case FormatName:
		out, _ = c.ToName()
	case FormatHSL:
		out = c.ToHslString()
	case FormatHSV:
		out = c.ToHsvString()
	}
	if out == "" {
		return c.ToHexString(false)
	}
	return out
}
