package colorkit

import (
	"math"
	"strings"
)

// WCAG conformance levels and text sizes.
const (
	LevelAA   = "AA"
	LevelAAA  = "AAA"
	SizeSmall = "small"
	SizeLarge = "large"
)

// WCAGOptions selects the contrast threshold. Empty or unknown values
// select AA and small.
type WCAGOptions struct {
	Level string
	Size  string
}

func (o WCAGOptions) normalize() WCAGOptions {
	level := strings.ToUpper(o.Level)
	size := strings.ToLower(o.Size)
	if level != LevelAA && level != LevelAAA {
		level = LevelAA
	}
	if size != SizeSmall && size != SizeLarge {
		size = SizeSmall
	}
	return WCAGOptions{Level: level, Size: size}
}

// Threshold returns the minimum contrast ratio for the options.
func (o WCAGOptions) Threshold() float64 {
	n := o.normalize()
	switch n.Level + n.Size {
	case "AAlarge":
		return 3
	case "AAAsmall":
		return 7
	default:
		return 4.5
	}
}

// ReadableOptions configures MostReadable.
type ReadableOptions struct {
	WCAGOptions
	// IncludeFallbackColors falls back to black or white when no
	// candidate meets the threshold.
	IncludeFallbackColors bool
}

// Readability returns the WCAG contrast ratio of a and b, from 1 to 21.
// Alpha is ignored.
func Readability(a, b any) float64 {
	l1 := Parse(a).Luminance()
	l2 := Parse(b).Luminance()
	return (math.Max(l1, l2) + 0.05) / (math.Min(l1, l2) + 0.05)
}

// IsReadable reports whether a and b meet the contrast threshold.
func IsReadable(a, b any, opts WCAGOptions) bool {
	return Readability(a, b) >= opts.Threshold()
}

// MostReadable returns the candidate with the highest contrast against
// base; the first candidate wins ties. If that candidate is not readable
// and fallback is enabled, the more readable of black and white is
// returned instead. It returns nil for an empty candidate list without
// fallback.
func MostReadable(base any, candidates []any, opts ReadableOptions) *Color {
	var best *Color
	bestScore := 0.0
	for _, cand := range candidates {
		score := Readability(base, cand)
		if score > bestScore {
			bestScore = score
			best = Parse(cand)
		}
	}

	if best != nil && (IsReadable(base, best, opts.WCAGOptions) || !opts.IncludeFallbackColors) {
		return best
	}
	if !opts.IncludeFallbackColors {
		return nil
	}

	opts.IncludeFallbackColors = false
	return MostReadable(base, []any{"#000", "#fff"}, opts)
}
