package colorkit

// RGB is a record input with channels in [0,255].
type RGB struct {
	R, G, B float64
}

// RGBA is RGB with alpha in [0,1]. ToRgb returns rounded channels.
type RGBA struct {
	R, G, B float64
	A       float64
}

// HSL is a record input: hue in degrees, saturation and lightness as
// fractions (values above 1 are read as percentages).
type HSL struct {
	H, S, L float64
}

// HSLA is HSL with alpha.
type HSLA struct {
	H, S, L float64
	A       float64
}

// HSV is a record input: hue in degrees, saturation and value as fractions.
type HSV struct {
	H, S, V float64
}

// HSVA is HSV with alpha.
type HSVA struct {
	H, S, V float64
	A       float64
}

// PercentRGBA holds channels rendered as percentages ("50%").
type PercentRGBA struct {
	R, G, B string
	A       float64
}

// record converts typed inputs to the key/value form the parser reads.
func record(input any) (map[string]any, bool) {
	switch v := input.(type) {
	case RGB:
		return map[string]any{"r": v.R, "g": v.G, "b": v.B}, true
	case RGBA:
		return map[string]any{"r": v.R, "g": v.G, "b": v.B, "a": v.A}, true
	case HSL:
		return map[string]any{"h": v.H, "s": v.S, "l": v.L}, true
	case HSLA:
		return map[string]any{"h": v.H, "s": v.S, "l": v.L, "a": v.A}, true
	case HSV:
		return map[string]any{"h": v.H, "s": v.S, "v": v.V}, true
	case HSVA:
		return map[string]any{"h": v.H, "s": v.S, "v": v.V, "a": v.A}, true
	case PercentRGBA:
		return map[string]any{"r": v.R, "g": v.G, "b": v.B, "a": v.A}, true
	case map[string]any:
		return v, true
	case map[string]string:
		out := make(map[string]any, len(v))
		for k, s := range v {
			out[k] = s
		}
		return out, true
	case map[string]float64:
		out := make(map[string]any, len(v))
		for k, f := range v {
			out[k] = f
		}
		return out, true
	case map[string]int:
		out := make(map[string]any, len(v))
		for k, n := range v {
			out[k] = n
		}
		return out, true
	}
	return nil, false
}
