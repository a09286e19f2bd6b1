// Package colorkit parses, converts, manipulates and compares colors.
//
// # Parsing
//
// [Parse] accepts strings in many dialects and key/value records, and never
// fails: unrecognized input produces an invalid color that renders as
// opaque black.
//
//	c := colorkit.Parse("hsla(251, 100%, 38%, 0.5)")
//	fmt.Println(c.ToHexString(false)) // #2400c2
//	fmt.Println(c)                    // hsla(251, 100%, 38%, 0.5)
//
// Accepted strings include CSS names, "transparent", hex with 3, 4, 6 or 8
// digits (with or without '#'), and rgb/rgba/hsl/hsla/hsv/hsva in both
// functional ("rgb(255, 0, 0)") and bare ("rgb 255 0 0") form. Records are
// maps or the typed values [RGB], [RGBA], [HSL], [HSLA], [HSV] and [HSVA].
//
// # Immutability
//
// Every manipulator and combination returns new colors. [Color.SetAlpha] is
// the only mutator; use [Color.Clone] before changing alpha on a shared
// value.
//
// # Readability
//
// [Readability], [IsReadable] and [MostReadable] implement WCAG 2 relative
// luminance and contrast thresholds:
//
//	best := colorkit.MostReadable("#123", []any{"#124", "#125"},
//		colorkit.ReadableOptions{IncludeFallbackColors: true})
//	fmt.Println(best.ToHexString(false)) // #ffffff
//
// All package level functions are safe for concurrent use.
package colorkit
