package convert

import "math"

// RGBToRGB normalizes channel units into [0,255].
func RGBToRGB(r, g, b Unit) (float64, float64, float64) {
	return r.Bound01(255) * 255, g.Bound01(255) * 255, b.Bound01(255) * 255
}

// RGBToHSL converts [0,255] channels to hue, saturation and lightness in
// [0,1].
func RGBToHSL(r, g, b float64) (h, s, l float64) {
	r, g, b = Bound01(r, 255), Bound01(g, 255), Bound01(b, 255)
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	h = hue(r, g, b, max, d)
	return h, s, l
}

// HSLToRGB converts hue, saturation and lightness units to [0,255] channels.
// h is resolved against 360, s and l against 100.
func HSLToRGB(h, s, l Unit) (float64, float64, float64) {
	hh := h.Bound01(360)
	ss := s.Bound01(100)
	ll := l.Bound01(100)

	var r, g, b float64
	if ss == 0 {
		r, g, b = ll, ll, ll
	} else {
		var q float64
		if ll < 0.5 {
			q = ll * (1 + ss)
		} else {
			q = ll + ss - ll*ss
		}
		p := 2*ll - q
		r = hueToRGB(p, q, hh+1.0/3)
		g = hueToRGB(p, q, hh)
		b = hueToRGB(p, q, hh-1.0/3)
	}
	return r * 255, g * 255, b * 255
}

// hueToRGB is a helper function for HSL to RGB conversion.
func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

// RGBToHSV converts [0,255] channels to hue, saturation and value in [0,1].
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r, g, b = Bound01(r, 255), Bound01(g, 255), Bound01(b, 255)
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	v = max

	d := max - min
	if max != 0 {
		s = d / max
	}
	if max == min {
		return 0, s, v
	}
	return hue(r, g, b, max, d), s, v
}

// HSVToRGB converts hue, saturation and value units to [0,255] channels.
func HSVToRGB(h, s, v Unit) (float64, float64, float64) {
	hh := h.Bound01(360) * 6
	ss := s.Bound01(100)
	vv := v.Bound01(100)

	i := math.Floor(hh)
	f := hh - i
	p := vv * (1 - ss)
	q := vv * (1 - f*ss)
	t := vv * (1 - (1-f)*ss)
	mod := int(i) % 6

	r := [6]float64{vv, q, p, p, t, vv}[mod]
	g := [6]float64{t, vv, vv, q, p, p}[mod]
	b := [6]float64{p, p, t, vv, vv, q}[mod]
	return r * 255, g * 255, b * 255
}

// hue derives the hue fraction shared by the HSL and HSV conversions.
func hue(r, g, b, max, d float64) float64 {
	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	return h / 6
}
