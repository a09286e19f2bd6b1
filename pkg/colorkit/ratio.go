package colorkit

import (
	"math/rand/v2"

	"github.com/opd-ai/go-colorkit/internal/convert"
	"github.com/opd-ai/go-colorkit/internal/names"
	"github.com/opd-ai/go-colorkit/internal/parse"
)

// FromRatio parses a record whose channels are fractions in [0,1]. Every
// key except "a" is scaled to a percentage first; values above 1 pass
// through.
func FromRatio(input any, opts ...Option) *Color {
	rec, ok := record(input)
	if !ok {
		return Parse(input, opts...)
	}

	scaled := make(map[string]any, len(rec))
	for k, v := range rec {
		if k == "a" {
			scaled[k] = v
			continue
		}
		if u, ok := parse.Value(v); ok {
			scaled[k] = convert.ToPercentage(u)
			continue
		}
		scaled[k] = v
	}

	return fromResult(parse.Record(scaled), input, applyOptions(opts))
}

// Random returns a random saturated, medium to bright color in prgb format.
// It is safe for concurrent use.
func Random() *Color {
	return RandomWith(nil)
}

// RandomWith is Random drawing from src. A nil src uses the global source.
func RandomWith(src *rand.Rand) *Color {
	float := rand.Float64
	if src != nil {
		float = src.Float64
	}

	h := float() * 360
	s := 0.4 + float()*0.6
	v := 0.5 + float()*0.5
	r, g, b := convert.HSVToRGB(convert.Num(h), convert.Pct(s*100), convert.Pct(v*100))
	return FromRatio(RGB{R: r / 255, G: g / 255, B: b / 255})
}

// Equals reports whether a and b render to the same rgba string. Nil or
// empty inputs are never equal.
func Equals(a, b any) bool {
	if empty(a) || empty(b) {
		return false
	}
	return Parse(a).ToRgbString() == Parse(b).ToRgbString()
}

func empty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case *Color:
		return x == nil
	}
	return false
}

// Names returns a copy of the named color table, name to 6 digit hex.
func Names() map[string]string {
	return names.Table()
}

// HexNames returns a copy of the hex to name table. Duplicate hex values
// map to the alphabetically last name.
func HexNames() map[string]string {
	return names.Flipped()
}

// NameList returns all color names in alphabetical order.
func NameList() []string {
	return names.Names()
}
