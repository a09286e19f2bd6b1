package colorkit

import (
	"fmt"
	"image/color"
	"math"

	"github.com/opd-ai/go-colorkit/internal/convert"
	"github.com/opd-ai/go-colorkit/internal/parse"
)

// Color is the canonical color value. Channels are kept unrounded in
// [0,255] and rounded whenever they are observed.
type Color struct {
	r, g, b       float64
	a             float64
	roundA        float64
	ok            bool
	format        Format
	originalInput any
	gradientType  bool
}

// Parse builds a Color from input. Input may be a string, a record (see
// the package documentation), an image/color.Color, a fmt.Stringer or an
// existing *Color. A *Color is returned as-is unless WithFormat is given.
// Unrecognized input yields an invalid color; Parse never returns nil.
func Parse(input any, opts ...Option) *Color {
	o := applyOptions(opts)

	if c, ok := input.(*Color); ok {
		if c == nil {
			input = nil
		} else {
			if o.format == FormatNone {
				return c
			}
			out := *c
			out.format = o.format
			out.gradientType = o.gradientType
			return &out
		}
	}

	if input == nil {
		input = ""
	}

	var res parse.Result
	switch v := input.(type) {
	case string:
		res = parse.String(v)
	case fmt.Stringer:
		res = parse.String(v.String())
	case color.Color:
		n := color.NRGBAModel.Convert(v).(color.NRGBA)
		res = parse.Record(map[string]any{
			"r": n.R, "g": n.G, "b": n.B, "a": float64(n.A) / 255,
		})
	default:
		if rec, ok := record(v); ok {
			res = parse.Record(rec)
		}
	}
	return fromResult(res, input, o)
}

// MustParse is Parse for inputs that must be valid. It panics otherwise.
func MustParse(input any, opts ...Option) *Color {
	c := Parse(input, opts...)
	if !c.ok {
		panic(fmt.Sprintf("colorkit: invalid color %v", input))
	}
	return c
}

// ParseStrict is Parse returning an error for invalid input. The error
// wraps ErrInvalidColor.
func ParseStrict(input any, opts ...Option) (*Color, error) {
	c := Parse(input, opts...)
	if !c.ok {
		return c, NewCategorizedError(ErrInvalidColor, ErrorCategoryParse, SeverityError).
			WithContext("input", fmt.Sprint(input))
	}
	return c, nil
}

// fromResult constructs a Color from a classified input.
func fromResult(res parse.Result, input any, o options) *Color {
	c := &Color{originalInput: input, gradientType: o.gradientType}

	var r, g, b float64
	ch := res.Channels
	switch res.Kind {
	case parse.KindRGB, parse.KindHex, parse.KindNamed:
		r, g, b = convert.RGBToRGB(ch[0], ch[1], ch[2])
		c.ok = true
	case parse.KindHSV:
		r, g, b = convert.HSVToRGB(convert.WrapHue(ch[0]), convert.ToPercentage(ch[1]), convert.ToPercentage(ch[2]))
		c.ok = true
	case parse.KindHSL:
		r, g, b = convert.HSLToRGB(convert.WrapHue(ch[0]), convert.ToPercentage(ch[1]), convert.ToPercentage(ch[2]))
		c.ok = true
	case parse.KindInvalid:
	}

	c.r, c.g, c.b = channel(r), channel(g), channel(b)

	// Invalid colors are opaque black whatever alpha the input carried.
	a := 1.0
	if c.ok && res.HasAlpha {
		a = res.Alpha
	}
	c.setAlpha(a)

	c.format = Format(res.Format)
	if o.format != FormatNone {
		c.format = o.format
	}
	return c
}

// channel clamps to [0,255]; values below one are rounded.
func channel(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Min(255, math.Max(0, v))
	if v < 1 {
		v = convert.Round(v)
	}
	return v
}

func (c *Color) setAlpha(a float64) {
	c.a = convert.BoundAlpha(a)
	c.roundA = convert.RoundAlpha(c.a)
}

// IsValid reports whether the input was recognized.
func (c *Color) IsValid() bool {
	return c.ok
}

// OriginalInput returns the value the color was parsed from. Nil and empty
// input are reported as "".
func (c *Color) OriginalInput() any {
	return c.originalInput
}

// Format returns the color's format tag.
func (c *Color) Format() Format {
	return c.format
}

// Alpha returns alpha in [0,1].
func (c *Color) Alpha() float64 {
	return c.a
}

// SetAlpha replaces alpha in place and returns the receiver. Out of range
// values become 1. It is the only mutator and is not synchronized.
func (c *Color) SetAlpha(a float64) *Color {
	c.setAlpha(a)
	return c
}

// Clone returns an independent copy.
func (c *Color) Clone() *Color {
	out := *c
	return &out
}

// Brightness returns perceived brightness in [0,255].
func (c *Color) Brightness() float64 {
	rgb := c.ToRgb()
	return (rgb.R*299 + rgb.G*587 + rgb.B*114) / 1000
}

// IsDark reports whether Brightness is below 128.
func (c *Color) IsDark() bool {
	return c.Brightness() < 128
}

// IsLight is the negation of IsDark.
func (c *Color) IsLight() bool {
	return !c.IsDark()
}

// Luminance returns WCAG 2 relative luminance.
func (c *Color) Luminance() float64 {
	rgb := c.ToRgb()
	return 0.2126*linear(rgb.R) + 0.7152*linear(rgb.G) + 0.0722*linear(rgb.B)
}

func linear(c float64) float64 {
	s := c / 255
	if s <= 0.03928 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// RGBA implements image/color.Color.
func (c *Color) RGBA() (r, g, b, a uint32) {
	rgb := c.ToRgb()
	return color.NRGBA{
		R: uint8(rgb.R),
		G: uint8(rgb.G),
		B: uint8(rgb.B),
		A: uint8(convert.Round(c.a * 255)),
	}.RGBA()
}
