package convert

import (
	"strconv"
	"strings"
)

// pad2 left-pads a one character hex string with '0'.
func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func channelHex(c float64) string {
	return pad2(strconv.FormatInt(int64(Round(c)), 16))
}

// AlphaHex encodes alpha in [0,1] as a two digit hex byte.
func AlphaHex(a float64) string {
	return pad2(strconv.FormatInt(int64(Round(a*255)), 16))
}

// short reports whether every pair is a doubled digit and returns the
// collapsed form.
func short(pairs []string) (string, bool) {
	var b strings.Builder
	for _, p := range pairs {
		if p[0] != p[1] {
			return "", false
		}
		b.WriteByte(p[0])
	}
	return b.String(), true
}

// RGBToHex returns the 6 digit hex for the channels, or the 3 digit form
// when allow3 is set and every channel is a doubled digit.
func RGBToHex(r, g, b float64, allow3 bool) string {
	pairs := []string{channelHex(r), channelHex(g), channelHex(b)}
	if allow3 {
		if s, ok := short(pairs); ok {
			return s
		}
	}
	return strings.Join(pairs, "")
}

// RGBAToHex returns the 8 digit hex for the channels and alpha, or the 4
// digit form when allow4 is set and representable.
func RGBAToHex(r, g, b, a float64, allow4 bool) string {
	pairs := []string{channelHex(r), channelHex(g), channelHex(b), AlphaHex(a)}
	if allow4 {
		if s, ok := short(pairs); ok {
			return s
		}
	}
	return strings.Join(pairs, "")
}

// RGBAToARGBHex returns the 8 digit hex with alpha first, as used by
// legacy gradient filters.
func RGBAToARGBHex(r, g, b, a float64) string {
	return AlphaHex(a) + channelHex(r) + channelHex(g) + channelHex(b)
}

// ParseIntFromHex parses a hex string. The grammar guarantees the digits.
func ParseIntFromHex(s string) float64 {
	v, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return 0
	}
	return float64(v)
}

// HexToAlpha converts a hex byte to an alpha fraction.
func HexToAlpha(s string) float64 {
	return ParseIntFromHex(s) / 255
}
