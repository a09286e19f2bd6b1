// Package names holds the CSS named-color table used by colorkit.
// The table is built once at package initialization and never mutated.
package names

import (
	"fmt"
	"image/color"
	"sort"

	"golang.org/x/image/colornames"
)

// Transparent is the reserved keyword for a fully transparent black.
const Transparent = "transparent"

// extras are CSS names that the SVG 1.1 table in colornames predates.
var extras = map[string]string{
	"burntsienna":   "ea7e5d",
	"rebeccapurple": "663399",
}

var (
	byName map[string]string
	byHex  map[string]string
	sorted []string
)

func init() {
	byName = make(map[string]string, len(colornames.Map)+len(extras))
	for name, c := range colornames.Map {
		byName[name] = toHex(c)
	}
	for name, hex := range extras {
		if _, ok := byName[name]; !ok {
			byName[name] = hex
		}
	}

	sorted = make([]string, 0, len(byName))
	for name := range byName {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	// Duplicates resolve to the alphabetically last name (cyan over aqua,
	// grey over gray).
	byHex = make(map[string]string, len(byName))
	for _, name := range sorted {
		byHex[byName[name]] = name
	}
}

func toHex(c color.RGBA) string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// Lookup returns the six digit lowercase hex for a lowercase color name.
func Lookup(name string) (string, bool) {
	hex, ok := byName[name]
	return hex, ok
}

// Reverse returns the name for a six digit lowercase hex value.
func Reverse(hex string) (string, bool) {
	name, ok := byHex[hex]
	return name, ok
}

// Names returns every known name in alphabetical order.
func Names() []string {
	out := make([]string, len(sorted))
	copy(out, sorted)
	return out
}

// Table returns a copy of the name to hex mapping.
func Table() map[string]string {
	out := make(map[string]string, len(byName))
	for k, v := range byName {
		out[k] = v
	}
	return out
}

// Flipped returns a copy of the hex to name mapping.
func Flipped() map[string]string {
	out := make(map[string]string, len(byHex))
	for k, v := range byHex {
		out[k] = v
	}
	return out
}

// Len reports the number of named colors.
func Len() int {
	return len(byName)
}
