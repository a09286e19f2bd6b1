package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

// Output selects how commands write results.
type Output string

// Supported outputs.
const (
	OutputText Output = "text"
	OutputJSON Output = "json"
	OutputYAML Output = "yaml"
)

// ParseOutput resolves an output name case-insensitively.
func ParseOutput(s string) (Output, error) {
	switch o := Output(strings.ToLower(strings.TrimSpace(s))); o {
	case "", OutputText:
		return OutputText, nil
	case OutputJSON, OutputYAML:
		return o, nil
	}
	return "", fmt.Errorf("unknown output %q (expected text, json or yaml)", s)
}

// Record is the structured description of a color.
type Record struct {
	Input      string  `json:"input,omitempty" yaml:"input,omitempty"`
	Valid      bool    `json:"valid" yaml:"valid"`
	Format     string  `json:"format,omitempty" yaml:"format,omitempty"`
	String     string  `json:"string" yaml:"string"`
	Hex        string  `json:"hex" yaml:"hex"`
	Hex8       string  `json:"hex8" yaml:"hex8"`
	RGB        string  `json:"rgb" yaml:"rgb"`
	PRGB       string  `json:"prgb" yaml:"prgb"`
	HSL        string  `json:"hsl" yaml:"hsl"`
	HSV        string  `json:"hsv" yaml:"hsv"`
	Name       string  `json:"name,omitempty" yaml:"name,omitempty"`
	Alpha      float64 `json:"alpha" yaml:"alpha"`
	Brightness float64 `json:"brightness" yaml:"brightness"`
	Luminance  float64 `json:"luminance" yaml:"luminance"`
	Dark       bool    `json:"dark" yaml:"dark"`
}

// Describe builds the Record of c.
func Describe(c *colorkit.Color) Record {
	r := Record{
		Valid:      c.IsValid(),
		Format:     string(c.Format()),
		String:     c.String(),
		Hex:        c.ToHexString(false),
		Hex8:       c.ToHex8String(false),
		RGB:        c.ToRgbString(),
		PRGB:       c.ToPercentageRgbString(),
		HSL:        c.ToHslString(),
		HSV:        c.ToHsvString(),
		Alpha:      c.Alpha(),
		Brightness: c.Brightness(),
		Luminance:  c.Luminance(),
		Dark:       c.IsDark(),
	}
	if s, ok := c.OriginalInput().(string); ok {
		r.Input = s
	}
	if name, ok := c.ToName(); ok {
		r.Name = name
	}
	return r
}

// DescribeAll builds the Records of colors.
func DescribeAll(colors []*colorkit.Color) []Record {
	out := make([]Record, len(colors))
	for i, c := range colors {
		out[i] = Describe(c)
	}
	return out
}

// Encode writes v to w as JSON or YAML.
func Encode(w io.Writer, output Output, v any) error {
	switch output {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("output %q is not structured", output)
}
