package colorkit

import "strings"

// Format is the textual dialect a color renders to by default.
type Format string

// Supported formats.
const (
	FormatNone Format = ""
	FormatRGB  Format = "rgb"
	FormatPRGB Format = "prgb"
	FormatHex  Format = "hex"
	FormatHex6 Format = "hex6"
	FormatHex3 Format = "hex3"
	FormatHex4 Format = "hex4"
	FormatHex8 Format = "hex8"
	FormatHSL  Format = "hsl"
	FormatHSV  Format = "hsv"
	FormatName Format = "name"
)

// Formats lists every supported format in display order.
var Formats = []Format{
	FormatHex, FormatHex3, FormatHex6, FormatHex4, FormatHex8,
	FormatRGB, FormatPRGB, FormatHSL, FormatHSV, FormatName,
}

// ParseFormat resolves a format name case-insensitively.
func ParseFormat(s string) (Format, bool) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, true
		}
	}
	return FormatNone, false
}

// isHexFamily reports whether f renders as some hex form.
func (f Format) isHexFamily() bool {
	switch f {
	case FormatHex, FormatHex6, FormatHex3, FormatHex4, FormatHex8:
		return true
	}
	return false
}

// Default amounts for callers that have no argument of their own.
const (
	DefaultAmount               = 10
	DefaultMixAmount            = 50
	DefaultAnalogousResults     = 6
	DefaultAnalogousSlices      = 30
	DefaultMonochromaticResults = 6

	// MaxSchemeSize bounds the number of colors a single scheme may hold.
	MaxSchemeSize = 360
)

// Option configures Parse and FromRatio.
type Option func(*options)

type options struct {
	format       Format
	gradientType bool
}

// WithFormat overrides the inferred format.
func WithFormat(f Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithGradientType makes ToFilter emit a horizontal gradient type.
func WithGradientType(enabled bool) Option {
	return func(o *options) {
		o.gradientType = enabled
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
