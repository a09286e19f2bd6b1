// Package ops maps operation and scheme names used by the command line
// and the MCP tools onto colorkit calls.
package ops

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

// AdjustOperations lists the names accepted by Adjust.
var AdjustOperations = []string{"lighten", "brighten", "darken", "desaturate", "saturate", "greyscale", "spin"}

// SchemeKinds lists the names accepted by Scheme.
var SchemeKinds = []string{"complement", "analogous", "monochromatic", "splitcomplement", "triad", "tetrad", "polyad"}

// Adjust applies the manipulation named op to c. "grayscale" is accepted
// as an alias.
func Adjust(c *colorkit.Color, op string, amount float64) (*colorkit.Color, error) {
	switch strings.ToLower(op) {
	case "lighten":
		return c.Lighten(amount), nil
	case "brighten":
		return c.Brighten(amount), nil
	case "darken":
		return c.Darken(amount), nil
	case "desaturate":
		return c.Desaturate(amount), nil
	case "saturate":
		return c.Saturate(amount), nil
	case "greyscale", "grayscale":
		return c.Greyscale(), nil
	case "spin":
		return c.Spin(amount), nil
	}
	return nil, argumentError("operation", op, fmt.Errorf("%w: unknown operation %q", colorkit.ErrInvalidArgument, op))
}

// argumentError classifies err as a rejected argument named key.
func argumentError(key, value string, err error) error {
	return colorkit.NewCategorizedError(err, colorkit.ErrorCategoryArgument, colorkit.SeverityWarning).
		WithContext(key, value)
}

// DefaultAmount returns the amount op uses when none is given: zero
// degrees for spin, adjust for the rest.
func DefaultAmount(op string, adjust float64) float64 {
	if strings.EqualFold(op, "spin") {
		return 0
	}
	return adjust
}

// SchemeParams holds the counts used by the parameterized schemes.
type SchemeParams struct {
	Results int
	Slices  int
	N       int
}

// Validate rejects counts above colorkit.MaxSchemeSize. Zero and negative
// counts are left to the scheme, which picks its default or fails.
func (p SchemeParams) Validate() error {
	for _, f := range []struct {
		name  string
		value int
	}{{"results", p.Results}, {"slices", p.Slices}, {"n", p.N}} {
		if f.value > colorkit.MaxSchemeSize {
			return argumentError(f.name, strconv.Itoa(f.value),
				fmt.Errorf("%w: %s %d exceeds %d", colorkit.ErrInvalidArgument, f.name, f.value, colorkit.MaxSchemeSize))
		}
	}
	return nil
}

// Scheme generates the scheme named kind from c. The complement scheme is
// the pair of c and its complement.
func Scheme(c *colorkit.Color, kind string, p SchemeParams) ([]*colorkit.Color, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	switch strings.ToLower(kind) {
	case "complement":
		return []*colorkit.Color{c.Clone(), c.Complement()}, nil
	case "analogous":
		return c.Analogous(p.Results, p.Slices), nil
	case "monochromatic":
		return c.Monochromatic(p.Results), nil
	case "splitcomplement":
		return c.SplitComplement(), nil
	case "triad":
		return c.Triad(), nil
	case "tetrad":
		return c.Tetrad(), nil
	case "polyad":
		colors, err := c.Polyad(p.N)
		if err != nil {
			return nil, argumentError("n", strconv.Itoa(p.N), err)
		}
		return colors, nil
	}
	return nil, argumentError("scheme", kind, fmt.Errorf("%w: unknown scheme %q", colorkit.ErrInvalidArgument, kind))
}

// Contrast is the result of a contrast check.
type Contrast struct {
	Ratio    float64 `json:"ratio" yaml:"ratio"`
	AASmall  bool    `json:"aa_small" yaml:"aa_small"`
	AALarge  bool    `json:"aa_large" yaml:"aa_large"`
	AAASmall bool    `json:"aaa_small" yaml:"aaa_small"`
	AAALarge bool    `json:"aaa_large" yaml:"aaa_large"`
	Readable bool    `json:"readable" yaml:"readable"`
}

// CheckContrast computes the ratio of a and b and every WCAG verdict.
// Readable applies opts.
func CheckContrast(a, b *colorkit.Color, opts colorkit.WCAGOptions) Contrast {
	check := func(level, size string) bool {
		return colorkit.IsReadable(a, b, colorkit.WCAGOptions{Level: level, Size: size})
	}
	return Contrast{
		Ratio:    colorkit.Readability(a, b),
		AASmall:  check(colorkit.LevelAA, colorkit.SizeSmall),
		AALarge:  check(colorkit.LevelAA, colorkit.SizeLarge),
		AAASmall: check(colorkit.LevelAAA, colorkit.SizeSmall),
		AAALarge: check(colorkit.LevelAAA, colorkit.SizeLarge),
		Readable: colorkit.IsReadable(a, b, opts),
	}
}

// ErrNotReadable reports a color pair below the requested WCAG level.
var ErrNotReadable = errors.New("contrast below required level")

// RequireReadable returns nil when r is readable and otherwise an
// informational error naming the ratio and the threshold of opts.
func RequireReadable(r Contrast, opts colorkit.WCAGOptions) error {
	if r.Readable {
		return nil
	}
	err := fmt.Errorf("%w: contrast %.2f is below %s %s (%.1f)",
		ErrNotReadable, r.Ratio, opts.Level, opts.Size, opts.Threshold())
	return colorkit.NewCategorizedError(err, colorkit.ErrorCategoryArgument, colorkit.SeverityInfo).
		WithContext("ratio", strconv.FormatFloat(r.Ratio, 'f', 2, 64))
}
