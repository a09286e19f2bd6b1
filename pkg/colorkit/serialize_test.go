package colorkit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// conversions lists the same color in hex, percent rgb, hsv and hsl
// record form.
var conversions = []struct {
	hex string
	rgb [3]string
	hsv [3]string
	hsl [3]string
}{
	{"#FFFFFF", [3]string{"100.0%", "100.0%", "100.0%"}, [3]string{"0", "0.000", "1.000"}, [3]string{"0", "0.000", "1.000"}},
	{"#808080", [3]string{"050.0%", "050.0%", "050.0%"}, [3]string{"0", "0.000", "0.500"}, [3]string{"0", "0.000", "0.500"}},
	{"#000000", [3]string{"000.0%", "000.0%", "000.0%"}, [3]string{"0", "0.000", "0.000"}, [3]string{"0", "0.000", "0.000"}},
	{"#FF0000", [3]string{"100.0%", "000.0%", "000.0%"}, [3]string{"0.0", "1.000", "1.000"}, [3]string{"0.0", "1.000", "0.500"}},
	{"#BFBF00", [3]string{"075.0%", "075.0%", "000.0%"}, [3]string{"60.0", "1.000", "0.750"}, [3]string{"60.0", "1.000", "0.375"}},
	{"#008000", [3]string{"000.0%", "050.0%", "000.0%"}, [3]string{"120.0", "1.000", "0.500"}, [3]string{"120.0", "1.000", "0.250"}},
	{"#80FFFF", [3]string{"050.0%", "100.0%", "100.0%"}, [3]string{"180.0", "0.500", "1.000"}, [3]string{"180.0", "1.000", "0.750"}},
	{"#8080FF", [3]string{"050.0%", "050.0%", "100.0%"}, [3]string{"240.0", "0.500", "1.000"}, [3]string{"240.0", "1.000", "0.750"}},
	{"#BF40BF", [3]string{"075.0%", "025.0%", "075.0%"}, [3]string{"300.0", "0.667", "0.750"}, [3]string{"300.0", "0.500", "0.500"}},
	{"#A0A424", [3]string{"062.8%", "064.3%", "014.2%"}, [3]string{"61.8", "0.779", "0.643"}, [3]string{"61.8", "0.638", "0.393"}},
	{"#1EAC41", [3]string{"011.6%", "067.5%", "025.5%"}, [3]string{"134.9", "0.828", "0.675"}, [3]string{"134.9", "0.707", "0.396"}},
	{"#B430E5", [3]string{"070.4%", "018.7%", "089.7%"}, [3]string{"283.7", "0.792", "0.897"}, [3]string{"283.7", "0.775", "0.542"}},
	{"#FEF888", [3]string{"099.8%", "097.4%", "053.2%"}, [3]string{"56.9", "0.467", "0.998"}, [3]string{"56.9", "0.991", "0.765"}},
	{"#19CB97", [3]string{"009.9%", "079.5%", "059.1%"}, [3]string{"162.4", "0.875", "0.795"}, [3]string{"162.4", "0.779", "0.447"}},
	{"#362698", [3]string{"021.1%", "014.9%", "059.7%"}, [3]string{"248.3", "0.750", "0.597"}, [3]string{"248.3", "0.601", "0.373"}},
	{"#7E7EB8", [3]string{"049.5%", "049.3%", "072.1%"}, [3]string{"240.5", "0.316", "0.721"}, [3]string{"240.5", "0.290", "0.607"}},
}

func rgbRecord(ch [3]string) map[string]any {
	return map[string]any{"r": ch[0], "g": ch[1], "b": ch[2]}
}

func hsvRecord(ch [3]string) map[string]any {
	return map[string]any{"h": ch[0], "s": ch[1], "v": ch[2]}
}

func hslRecord(ch [3]string) map[string]any {
	return map[string]any{"h": ch[0], "s": ch[1], "l": ch[2]}
}

func TestConversions_Equality(t *testing.T) {
	for _, c := range conversions {
		t.Run(c.hex, func(t *testing.T) {
			rgb, hsv, hsl := rgbRecord(c.rgb), hsvRecord(c.hsv), hslRecord(c.hsl)
			hex8 := c.hex + "FF"

			require.True(t, Parse(c.hex).IsValid())
			assert.True(t, Equals(rgb, c.hex), "rgb equals hex")
			assert.True(t, Equals(rgb, hex8), "rgb equals hex8")
			assert.True(t, Equals(rgb, hsl), "rgb equals hsl")
			assert.True(t, Equals(rgb, hsv), "rgb equals hsv")
			assert.True(t, Equals(rgb, rgb), "rgb equals rgb")
			assert.True(t, Equals(c.hex, c.hex), "hex equals hex")
			assert.True(t, Equals(c.hex, hex8), "hex equals hex8")
			assert.True(t, Equals(c.hex, hsl), "hex equals hsl")
			assert.True(t, Equals(c.hex, hsv), "hex equals hsv")
			assert.True(t, Equals(hsl, hsv), "hsl equals hsv")
		})
	}
}

func TestConversions_RoundTrip(t *testing.T) {
	const maxDiff = 2

	near := func(t *testing.T, what string, in, out RGBA) {
		t.Helper()
		if math.Abs(in.R-out.R) > maxDiff || math.Abs(in.G-out.G) > maxDiff || math.Abs(in.B-out.B) > maxDiff {
			t.Errorf("%s: %v and %v differ by more than %d", what, in, out, maxDiff)
		}
	}

	for _, c := range conversions {
		t.Run(c.hex, func(t *testing.T) {
			tiny := Parse(c.hex)
			hex := tiny.ToHexString(false)
			in := tiny.ToRgb()

			assert.Equal(t, hex, Parse(tiny.ToHsl()).ToHexString(false), "hsl object")
			assert.Equal(t, hex, Parse(tiny.ToHsv()).ToHexString(false), "hsv object")
			assert.Equal(t, hex, Parse(tiny.ToRgb()).ToHexString(false), "rgb object")
			assert.Equal(t, hex, Parse(tiny.ToRgbString()).ToHexString(false), "rgb string")

			near(t, "hsl string", in, Parse(tiny.ToHslString()).ToRgb())
			near(t, "hsv string", in, Parse(tiny.ToHsvString()).ToRgb())
			near(t, "prgb object", in, Parse(tiny.ToPercentageRgb()).ToRgb())
			near(t, "prgb string", in, Parse(tiny.ToPercentageRgbString()).ToRgb())
		})
	}
}

func TestRGBTextParsing(t *testing.T) {
	for _, in := range []any{
		"rgb 255 0 0",
		"rgb(255, 0, 0)",
		"rgb (255, 0, 0)",
		"rgb 100% 0% 0%",
		"rgb(100%, 0%, 0%)",
		"rgb (100%, 0%, 0%)",
		map[string]any{"r": 255, "g": 0, "b": 0},
		map[string]any{"r": "100%", "g": "0%", "b": "0%"},
	} {
		c := Parse(in)
		assert.Equal(t, "#ff0000", c.ToHexString(false), "%v", in)
		assert.Equal(t, RGBA{R: 255, G: 0, B: 0, A: 1}, c.ToRgb(), "%v", in)
	}

	assert.True(t, Equals(map[string]any{"r": 200, "g": 100, "b": 0}, "rgb(200, 100, 0)"))
	assert.True(t, Equals(map[string]any{"r": 200, "g": 100, "b": 0}, "rgb 200 100 0"))
	assert.True(t, Equals(map[string]any{"r": 200, "g": 100, "b": 0, "a": 0.4}, "rgba 200 100 0 .4"))
	assert.True(t, Equals(Parse(map[string]any{"r": 200, "g": 100, "b": 0}), "rgb 200 100 0"))
	assert.False(t, Equals(map[string]any{"r": 199, "g": 100, "b": 0}, "rgba 200 100 0 1"))
	assert.False(t, Equals(map[string]any{"r": 199, "g": 100, "b": 0}, "rgb(200, 100, 0)"))

	assert.True(t, Equals(map[string]any{"r": "90%", "g": "45%", "b": "0%"}, "rgb(90%, 45%, 0%)"))
	assert.True(t, Equals(map[string]any{"r": "90%", "g": "45%", "b": "0%", "a": 0.4}, "rgba 90% 45% 0% .4"))
	assert.False(t, Equals(map[string]any{"r": "89%", "g": "45%", "b": "0%"}, "rgb 90% 45% 0%"))
}

func TestHSLParsing(t *testing.T) {
	rec := map[string]any{"h": 251, "s": 100, "l": 0.38}
	assert.Equal(t, "#2400c2", Parse(rec).ToHexString(false))
	assert.Equal(t, "rgb(36, 0, 194)", Parse(rec).ToRgbString())
	assert.Equal(t, "hsl(251, 100%, 38%)", Parse(rec).ToHslString())
	assert.Equal(t, "hsla(251, 100%, 38%, 0.5)",
		Parse(map[string]any{"h": 251, "s": 100, "l": 0.38, "a": 0.5}).ToHslString())

	assert.Equal(t, "#2400c2", Parse("hsl(251, 100, 38)").ToHexString(false))
	assert.Equal(t, "rgb(36, 0, 194)", Parse("hsl(251, 100%, 38%)").ToRgbString())
	assert.Equal(t, "hsl(251, 100%, 38%)", Parse("hsl(251, 100%, 38%)").ToHslString())
	assert.Equal(t, "hsl(100, 20%, 10%)", Parse("hsl 100 20 10").ToHslString())
}

func TestHSVParsing(t *testing.T) {
	assert.Equal(t, "hsv(251, 89%, 92%)", Parse("hsv 251.1 0.887 .918").ToHsvString())
	assert.Equal(t, "hsv(251, 89%, 92%)", Parse("hsv 251.1 0.887 0.918").ToHsvString())
	assert.Equal(t, "hsva(251, 89%, 92%, 0.5)", Parse("hsva 251.1 0.887 0.918 0.5").ToHsvString())
}

func TestHexParsing(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"hex", Parse("rgb 255 0 0").ToHexString(false), "#ff0000"},
		{"short hex", Parse("rgb 255 0 0").ToHexString(true), "#f00"},
		{"hex8 half", Parse("rgba 255 0 0 0.5").ToHex8String(false), "#ff000080"},
		{"hex8 zero", Parse("rgba 255 0 0 0").ToHex8String(false), "#ff000000"},
		{"hex8 opaque", Parse("rgba 255 0 0 1").ToHex8String(false), "#ff0000ff"},
		{"short hex8", Parse("rgba 255 0 0 1").ToHex8String(true), "#f00f"},
		{"bare hex", Parse("rgb 255 0 0").ToHex(false), "ff0000"},
		{"bare short hex", Parse("rgb 255 0 0").ToHex(true), "f00"},
		{"bare hex8", Parse("rgba 255 0 0 0.5").ToHex8(false), "ff000080"},
		{"no short form", Parse("#fa0a0a").ToHexString(true), "#fa0a0a"},
		{"hex4 input", Parse("#f009").ToRgbString(), "rgba(255, 0, 0, 0.6)"},
		{"hex without hash", Parse("369").ToHexString(false), "#336699"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestNamedColors(t *testing.T) {
	tests := map[string]string{
		"aliceblue":      "f0f8ff",
		"burntsienna":    "ea7e5d",
		"cyan":           "00ffff",
		"goldenrod":      "daa520",
		"grey":           "808080",
		"indianred ":     "cd5c5c",
		"indigo ":        "4b0082",
		"LightSlateGray": "778899",
		"rebeccapurple":  "663399",
		"yellowgreen":    "9acd32",
	}
	for name, hex := range tests {
		c := Parse(name)
		assert.True(t, c.IsValid(), name)
		assert.Equal(t, hex, c.ToHex(false), name)
		assert.Equal(t, FormatName, c.Format(), name)
	}

	name, ok := Parse("#f00").ToName()
	assert.True(t, ok)
	assert.Equal(t, "red", name)

	_, ok = Parse("#fa0a0a").ToName()
	assert.False(t, ok)

	name, ok = Parse(map[string]any{"r": 255, "g": 20, "b": 10, "a": 0}).ToName()
	assert.True(t, ok)
	assert.Equal(t, "transparent", name)
}

func TestToString_WithAlpha(t *testing.T) {
	redNamed := FromRatio(map[string]any{"r": 255, "g": 0, "b": 0, "a": 0.6}, WithFormat(FormatName))
	transparentNamed := FromRatio(map[string]any{"r": 255, "g": 0, "b": 0, "a": 0}, WithFormat(FormatName))
	redHex := FromRatio(map[string]any{"r": 255, "g": 0, "b": 0, "a": 0.4}, WithFormat(FormatHex))

	assert.Equal(t, FormatName, redNamed.Format())
	assert.Equal(t, FormatHex, redHex.Format())
	assert.Equal(t, "rgba(255, 0, 0, 0.6)", redNamed.String())
	assert.Equal(t, "rgba(255, 0, 0, 0.4)", redHex.String())

	tests := []struct {
		format Format
		want   string
	}{
		{FormatHex, "#ff0000"},
		{FormatHex6, "#ff0000"},
		{FormatHex3, "#f00"},
		{FormatHex8, "#ff000099"},
		{FormatHex4, "#f009"},
		{FormatName, "#ff0000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, redNamed.ToString(tt.format), "ToString(%s)", tt.format)
	}

	_, ok := redNamed.ToName()
	assert.False(t, ok)
	assert.Equal(t, "transparent", transparentNamed.String())

	redHex.SetAlpha(0)
	assert.Equal(t, "rgba(255, 0, 0, 0)", redHex.String())
}

func TestToString_Formats(t *testing.T) {
	red := Parse("red")
	tests := []struct {
		format Format
		want   string
	}{
		{FormatNone, "red"},
		{FormatRGB, "rgb(255, 0, 0)"},
		{FormatPRGB, "rgb(100%, 0%, 0%)"},
		{FormatHex, "#ff0000"},
		{FormatHex6, "#ff0000"},
		{FormatHex3, "#f00"},
		{FormatHex4, "#f00f"},
		{FormatHex8, "#ff0000ff"},
		{FormatHSL, "hsl(0, 100%, 50%)"},
		{FormatHSV, "hsv(0, 100%, 100%)"},
		{FormatName, "red"},
		{Format("bogus"), "#ff0000"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.want, red.ToString(tt.format))
		})
	}

	assert.Equal(t, "#fa0a0a", Parse("rgb(250, 10, 10)").ToString(FormatName))
}

func TestString_InferredFormat(t *testing.T) {
	tests := []struct {
		input  string
		format Format
		want   string
	}{
		{"red", FormatName, "red"},
		{"#f00", FormatHex, "#ff0000"},
		{"#ff0000", FormatHex, "#ff0000"},
		{"#f00f", FormatHex8, "#ff0000ff"},
		{"#ff000080", FormatHex8, "rgba(255, 0, 0, 0.5)"},
		{"rgb 255 0 0", FormatRGB, "rgb(255, 0, 0)"},
		{"rgb(100%, 0%, 0%)", FormatPRGB, "rgb(100%, 0%, 0%)"},
		{"rgb(255, 0%, 0)", FormatPRGB, "rgb(100%, 0%, 0%)"},
		{"hsl(0, 100%, 50%)", FormatHSL, "hsl(0, 100%, 50%)"},
		{"hsva(0, 100%, 100%, .5)", FormatHSV, "hsva(0, 100%, 100%, 0.5)"},
		{"transparent", FormatName, "transparent"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := Parse(tt.input)
			assert.Equal(t, tt.format, c.Format())
			assert.Equal(t, tt.want, c.String())
		})
	}

	assert.Equal(t, "000000", Parse("transparent").ToHex(false))
}

func TestToFilter(t *testing.T) {
	const prefix = "progid:DXImageTransform.Microsoft.gradient("
	tests := []struct {
		name   string
		color  *Color
		second any
		want   string
	}{
		{"red", Parse("red"), nil, "startColorstr=#ffff0000,endColorstr=#ffff0000)"},
		{"red to blue", Parse("red"), "blue", "startColorstr=#ffff0000,endColorstr=#ff0000ff)"},
		{"transparent", Parse("transparent"), nil, "startColorstr=#00000000,endColorstr=#00000000)"},
		{"transparent to red", Parse("transparent"), "red", "startColorstr=#00000000,endColorstr=#ffff0000)"},
		{"hex8", Parse("#f0f0f0dd"), nil, "startColorstr=#ddf0f0f0,endColorstr=#ddf0f0f0)"},
		{"unclosed rgba", Parse("rgba(0, 0, 255, .5"), nil, "startColorstr=#800000ff,endColorstr=#800000ff)"},
		{"gradient type", Parse("red", WithGradientType(true)), nil,
			"GradientType = 1, startColorstr=#ffff0000,endColorstr=#ffff0000)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, prefix+tt.want, tt.color.ToFilter(tt.second))
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, ok := ParseFormat(" " + string(f) + " ")
		assert.True(t, ok, f)
		assert.Equal(t, f, got)
	}
	got, ok := ParseFormat("HEX8")
	assert.True(t, ok)
	assert.Equal(t, FormatHex8, got)

	_, ok = ParseFormat("cmyk")
	assert.False(t, ok)
}
