// Package parse classifies raw color input into a tagged channel result.
//
// The grammar accepts named colors, the transparent keyword, rgb/hsl/hsv
// functional and bare forms with or without alpha, and 3/4/6/8 digit hex.
// Records are classified by their key triple. Parsing never fails loudly:
// anything unrecognized yields a KindInvalid result.
package parse

import (
	"math"
	"regexp"
	"strings"

	"github.com/opd-ai/go-colorkit/internal/convert"
	"github.com/opd-ai/go-colorkit/internal/names"
)

// Kind tags which channel set a Result carries.
type Kind int

const (
	// KindInvalid marks input that matched no dialect.
	KindInvalid Kind = iota
	// KindRGB carries r, g, b units.
	KindRGB
	// KindHSL carries h, s, l units.
	KindHSL
	// KindHSV carries h, s, v units.
	KindHSV
	// KindHex carries r, g, b decoded from hex digits.
	KindHex
	// KindNamed carries r, g, b resolved from the named table.
	KindNamed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRGB:
		return "rgb"
	case KindHSL:
		return "hsl"
	case KindHSV:
		return "hsv"
	case KindHex:
		return "hex"
	case KindNamed:
		return "named"
	default:
		return "invalid"
	}
}

// Result is the outcome of classifying one input.
type Result struct {
	Kind Kind
	// Channels holds r,g,b or h,s,l or h,s,v depending on Kind.
	Channels [3]convert.Unit
	// Alpha is the raw alpha; only meaningful when HasAlpha is set.
	Alpha    float64
	HasAlpha bool
	// Format is the inferred format tag ("rgb", "prgb", "hex", "hex8",
	// "hsl", "hsv", "name"), or the record's explicit format key.
	Format string
}

// Valid reports whether the result carries channels.
func (r Result) Valid() bool {
	return r.Kind != KindInvalid
}

const (
	cssUnit    = `(?:[-\+]?\d*\.\d+%?)|(?:[-\+]?\d+%?)`
	match3     = `[\s|\(]+(` + cssUnit + `)[,|\s]+(` + cssUnit + `)[,|\s]+(` + cssUnit + `)\s*\)?`
	match4     = `[\s|\(]+(` + cssUnit + `)[,|\s]+(` + cssUnit + `)[,|\s]+(` + cssUnit + `)[,|\s]+(` + cssUnit + `)\s*\)?`
	hexDigit   = `[0-9a-fA-F]`
	hexDigits2 = `([0-9a-fA-F]{2})`
)

type functional struct {
	re    *regexp.Regexp
	kind  Kind
	alpha bool
}

// Order matters: the three-channel forms are tried before the alpha forms.
var functionals = []functional{
	{regexp.MustCompile(`rgb` + match3), KindRGB, false},
	{regexp.MustCompile(`rgba` + match4), KindRGB, true},
	{regexp.MustCompile(`hsl` + match3), KindHSL, false},
	{regexp.MustCompile(`hsla` + match4), KindHSL, true},
	{regexp.MustCompile(`hsv` + match3), KindHSV, false},
	{regexp.MustCompile(`hsva` + match4), KindHSV, true},
}

var (
	hex3 = regexp.MustCompile(`^#?(` + hexDigit + `)(` + hexDigit + `)(` + hexDigit + `)$`)
	hex4 = regexp.MustCompile(`^#?(` + hexDigit + `)(` + hexDigit + `)(` + hexDigit + `)(` + hexDigit + `)$`)
	hex6 = regexp.MustCompile(`^#?` + hexDigits2 + hexDigits2 + hexDigits2 + `$`)
	hex8 = regexp.MustCompile(`^#?` + hexDigits2 + hexDigits2 + hexDigits2 + hexDigits2 + `$`)
)

// String classifies a textual color.
func String(s string) Result {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Result{}
	}

	named := false
	if hex, ok := names.Lookup(s); ok {
		s = hex
		named = true
	} else if s == names.Transparent {
		return Result{
			Kind:     KindNamed,
			Channels: [3]convert.Unit{convert.Num(0), convert.Num(0), convert.Num(0)},
			Alpha:    0,
			HasAlpha: true,
			Format:   "name",
		}
	}

	for _, f := range functionals {
		m := f.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		return fromTokens(f.kind, m[1:], f.alpha)
	}

	return fromHex(s, named)
}

func fromTokens(kind Kind, toks []string, withAlpha bool) Result {
	res := Result{Kind: kind}
	for i := 0; i < 3; i++ {
		u, ok := convert.ParseUnit(toks[i])
		if !ok {
			return Result{}
		}
		res.Channels[i] = u
	}
	if withAlpha {
		res.Alpha = convert.ParseFloat(toks[3])
		res.HasAlpha = true
	}
	res.Format = inferFormat(kind, res.Channels)
	return res
}

func fromHex(s string, named bool) Result {
	pick := func(hexFormat string) string {
		if named {
			return "name"
		}
		return hexFormat
	}
	kind := KindHex
	if named {
		kind = KindNamed
	}
	channels := func(r, g, b string) [3]convert.Unit {
		return [3]convert.Unit{
			convert.Num(convert.ParseIntFromHex(r)),
			convert.Num(convert.ParseIntFromHex(g)),
			convert.Num(convert.ParseIntFromHex(b)),
		}
	}

	if m := hex8.FindStringSubmatch(s); m != nil {
		return Result{Kind: kind, Channels: channels(m[1], m[2], m[3]),
			Alpha: convert.HexToAlpha(m[4]), HasAlpha: true, Format: pick("hex8")}
	}
	if m := hex6.FindStringSubmatch(s); m != nil {
		return Result{Kind: kind, Channels: channels(m[1], m[2], m[3]), Format: pick("hex")}
	}
	if m := hex4.FindStringSubmatch(s); m != nil {
		return Result{Kind: kind, Channels: channels(m[1]+m[1], m[2]+m[2], m[3]+m[3]),
			Alpha: convert.HexToAlpha(m[4] + m[4]), HasAlpha: true, Format: pick("hex8")}
	}
	if m := hex3.FindStringSubmatch(s); m != nil {
		return Result{Kind: kind, Channels: channels(m[1]+m[1], m[2]+m[2], m[3]+m[3]), Format: pick("hex")}
	}
	return Result{}
}

func inferFormat(kind Kind, ch [3]convert.Unit) string {
	switch kind {
	case KindRGB:
		for _, u := range ch {
			if u.Percent {
				return "prgb"
			}
		}
		return "rgb"
	case KindHSL:
		return "hsl"
	case KindHSV:
		return "hsv"
	}
	return ""
}

// Record classifies a key/value record. Keys are matched case-sensitively
// against r,g,b then h,s,v then h,s,l; an optional "a" carries alpha and an
// optional "format" overrides the inferred format. Alpha is ignored when no
// channel triple matches. The record is not modified.
func Record(rec map[string]any) Result {
	var res Result
	if ch, ok := triple(rec, "r", "g", "b"); ok {
		res = Result{Kind: KindRGB, Channels: ch}
	} else if ch, ok := triple(rec, "h", "s", "v"); ok {
		res = Result{Kind: KindHSV, Channels: ch}
	} else if ch, ok := triple(rec, "h", "s", "l"); ok {
		res = Result{Kind: KindHSL, Channels: ch}
	}
	res.Format = inferFormat(res.Kind, res.Channels)

	if raw, ok := rec["a"]; ok && res.Kind != KindInvalid {
		res.Alpha = alphaValue(raw)
		res.HasAlpha = true
	}
	if f, ok := rec["format"].(string); ok && f != "" {
		res.Format = f
	}
	return res
}

func triple(rec map[string]any, k1, k2, k3 string) ([3]convert.Unit, bool) {
	var out [3]convert.Unit
	for i, k := range []string{k1, k2, k3} {
		raw, ok := rec[k]
		if !ok {
			return out, false
		}
		u, ok := Value(raw)
		if !ok {
			return out, false
		}
		out[i] = u
	}
	return out, true
}

// Value coerces a record value into a unit. Numbers pass through; strings
// must be CSS unit tokens.
func Value(raw any) (convert.Unit, bool) {
	switch v := raw.(type) {
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return convert.Num(float64(v)), true
	case int8:
		return convert.Num(float64(v)), true
	case int16:
		return convert.Num(float64(v)), true
	case int32:
		return convert.Num(float64(v)), true
	case int64:
		return convert.Num(float64(v)), true
	case uint:
		return convert.Num(float64(v)), true
	case uint8:
		return convert.Num(float64(v)), true
	case uint16:
		return convert.Num(float64(v)), true
	case uint32:
		return convert.Num(float64(v)), true
	case uint64:
		return convert.Num(float64(v)), true
	case string:
		return convert.ParseUnit(v)
	case convert.Unit:
		return v, true
	}
	return convert.Unit{}, false
}

func finite(v float64) (convert.Unit, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return convert.Unit{}, false
	}
	return convert.Num(v), true
}

func alphaValue(raw any) float64 {
	if s, ok := raw.(string); ok {
		return convert.ParseFloat(s)
	}
	if u, ok := Value(raw); ok {
		return u.Value
	}
	return math.NaN()
}
