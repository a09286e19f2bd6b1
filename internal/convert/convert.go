// Package convert implements the numeric color space conversions shared by
// the colorkit parser and serializer.
//
// RGB channels are carried as float64 in [0,255]; hue, saturation,
// lightness and value travel as fractions in [0,1]. Round rounds halves
// up, as serialized output requires.
package convert

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Unit is a numeric channel token together with the notation it was
// written in.
type Unit struct {
	Value float64
	// Percent is set for tokens written with a trailing '%'.
	Percent bool
	// Decimal is set for string tokens written with a decimal point.
	// A decimal token equal to 1 ("1.0") means 100%.
	Decimal bool
}

// Num returns a plain numeric Unit.
func Num(v float64) Unit {
	return Unit{Value: v}
}

// Pct returns a percentage Unit.
func Pct(v float64) Unit {
	return Unit{Value: v, Percent: true}
}

var (
	unitPattern   = regexp.MustCompile(`^[-+]?(?:\d*\.\d+|\d+)%?$`)
	floatPrefix   = regexp.MustCompile(`^[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)
	infinityRegex = regexp.MustCompile(`^[-+]?Infinity`)
)

// ParseUnit parses a CSS unit token such as "255", "-.5" or "50%".
func ParseUnit(tok string) (Unit, bool) {
	tok = strings.TrimSpace(tok)
	if !unitPattern.MatchString(tok) {
		return Unit{}, false
	}
	u := Unit{Decimal: strings.Contains(tok, ".")}
	if strings.HasSuffix(tok, "%") {
		u.Percent = true
		tok = tok[:len(tok)-1]
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return Unit{}, false
	}
	u.Value = v
	return u, true
}

// ParseFloat reads the longest numeric prefix of s. It returns NaN when s
// does not start with a number.
func ParseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if m := infinityRegex.FindString(s); m != "" {
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	m := floatPrefix.FindString(s)
	if m == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Round rounds half toward positive infinity.
func Round(x float64) float64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		return f + 1
	}
	return f
}

// Clamp01 clamps v into [0,1].
func Clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// Bound01 maps u onto [0,1] relative to max. Percent units are resolved
// against max and truncated to two decimals of a percent first.
func (u Unit) Bound01(max float64) float64 {
	if u.Decimal && !u.Percent && u.Value == 1 {
		u = Pct(100)
	}
	n := u.Value
	if u.Percent {
		n = math.Min(100, math.Max(0, n))
		n = math.Trunc(n*max) / 100
	}
	n = math.Min(max, math.Max(0, n))
	if math.Abs(n-max) < 0.000001 {
		return 1
	}
	return math.Mod(n, max) / max
}

// Bound01 is Unit.Bound01 for a plain number.
func Bound01(n, max float64) float64 {
	return Num(n).Bound01(max)
}

// ToPercentage turns a fraction into a percent unit. Values above 1 and
// units already in percent pass through unchanged.
func ToPercentage(u Unit) Unit {
	if !u.Percent && u.Value <= 1 {
		return Pct(u.Value * 100)
	}
	return u
}

// WrapHue normalizes a plain hue in degrees into [0,360). Percent hues are
// left for Bound01 to resolve.
func WrapHue(u Unit) Unit {
	if u.Percent {
		return u
	}
	h := math.Mod(u.Value, 360)
	if h < 0 {
		h += 360
	}
	u.Value = h
	return u
}

// BoundAlpha normalizes an alpha value. NaN, infinities, negative values and
// values above one become 1.
func BoundAlpha(a float64) float64 {
	if math.IsNaN(a) || a < 0 || a > 1 {
		return 1
	}
	if a == 0 {
		// drops the sign of -0
		return 0
	}
	return a
}

// RoundAlpha rounds alpha to two decimal places.
func RoundAlpha(a float64) float64 {
	return Round(100*a) / 100
}

// FormatFloat renders f in its shortest decimal form ("0.5", "1", "0").
func FormatFloat(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
