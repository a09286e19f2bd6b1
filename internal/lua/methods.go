package lua

import (
	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

// registerMethods fills the __index table of color userdata.
func (m *ColorModule) registerMethods(methods *rt.Table) {
	for name, fn := range map[string]func(*colorkit.Color) string{
		"to_rgb_string":            (*colorkit.Color).ToRgbString,
		"to_percentage_rgb_string": (*colorkit.Color).ToPercentageRgbString,
		"to_hsl_string":            (*colorkit.Color).ToHslString,
		"to_hsv_string":            (*colorkit.Color).ToHsvString,
		"format":                   func(c *colorkit.Color) string { return string(c.Format()) },
	} {
		setTableGoFunction(methods, name, stringMethod(fn), 1)
	}

	for name, fn := range map[string]func(*colorkit.Color, bool) string{
		"to_hex":         (*colorkit.Color).ToHex,
		"to_hex_string":  (*colorkit.Color).ToHexString,
		"to_hex8":        (*colorkit.Color).ToHex8,
		"to_hex8_string": (*colorkit.Color).ToHex8String,
	} {
		setTableGoFunction(methods, name, hexMethod(fn), 2)
	}

	for name, fn := range map[string]func(*colorkit.Color) float64{
		"alpha":      (*colorkit.Color).Alpha,
		"brightness": (*colorkit.Color).Brightness,
		"luminance":  (*colorkit.Color).Luminance,
	} {
		setTableGoFunction(methods, name, floatMethod(fn), 1)
	}

	for name, fn := range map[string]func(*colorkit.Color) bool{
		"is_valid": (*colorkit.Color).IsValid,
		"is_dark":  (*colorkit.Color).IsDark,
		"is_light": (*colorkit.Color).IsLight,
	} {
		setTableGoFunction(methods, name, boolMethod(fn), 1)
	}

	for name, fn := range map[string]func(*colorkit.Color, float64) *colorkit.Color{
		"lighten":    (*colorkit.Color).Lighten,
		"brighten":   (*colorkit.Color).Brighten,
		"darken":     (*colorkit.Color).Darken,
		"desaturate": (*colorkit.Color).Desaturate,
		"saturate":   (*colorkit.Color).Saturate,
	} {
		setTableGoFunction(methods, name, m.amountMethod(fn, colorkit.DefaultAmount), 2)
	}
	setTableGoFunction(methods, "spin", m.amountMethod((*colorkit.Color).Spin, 0), 2)

	for name, fn := range map[string]func(*colorkit.Color) *colorkit.Color{
		"greyscale":  (*colorkit.Color).Greyscale,
		"complement": (*colorkit.Color).Complement,
		"clone":      (*colorkit.Color).Clone,
	} {
		setTableGoFunction(methods, name, m.colorMethod(fn), 1)
	}

	for name, fn := range map[string]func(*colorkit.Color) []*colorkit.Color{
		"split_complement": (*colorkit.Color).SplitComplement,
		"triad":            (*colorkit.Color).Triad,
		"tetrad":           (*colorkit.Color).Tetrad,
	} {
		setTableGoFunction(methods, name, m.setMethod(fn), 1)
	}

	setTableGoFunction(methods, "set_alpha", m.setAlpha, 2)
	setTableGoFunction(methods, "mix", m.mixMethod, 3)
	setTableGoFunction(methods, "analogous", m.analogous, 3)
	setTableGoFunction(methods, "monochromatic", m.monochromatic, 2)
	setTableGoFunction(methods, "polyad", m.polyad, 2)
	setTableGoFunction(methods, "to_rgb", m.toRgb, 1)
	setTableGoFunction(methods, "to_hsl", m.toHsl, 1)
	setTableGoFunction(methods, "to_hsv", m.toHsv, 1)
	setTableGoFunction(methods, "to_name", m.toName, 1)
	setTableGoFunction(methods, "to_filter", m.toFilter, 2)
	setTableGoFunction(methods, "to_string", m.toStringFormat, 2)
	setTableGoFunction(methods, "original_input", m.originalInput, 1)
}

func stringMethod(fn func(*colorkit.Color) string) rt.GoFunctionFunc {
	return func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		col, err := selfArg(c)
		if err != nil {
			return nil, err
		}
		return c.PushingNext1(t.Runtime, rt.StringValue(fn(col))), nil
	}
}

func hexMethod(fn func(*colorkit.Color, bool) string) rt.GoFunctionFunc {
	return func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		col, err := selfArg(c)
		if err != nil {
			return nil, err
		}
		return c.PushingNext1(t.Runtime, rt.StringValue(fn(col, optBool(c.Args(), 1)))), nil
	}
}

func floatMethod(fn func(*colorkit.Color) float64) rt.GoFunctionFunc {
	return func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		col, err := selfArg(c)
		if err != nil {
			return nil, err
		}
		return c.PushingNext1(t.Runtime, rt.FloatValue(fn(col))), nil
	}
}

func boolMethod(fn func(*colorkit.Color) bool) rt.GoFunctionFunc {
	return func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		col, err := selfArg(c)
		if err != nil {
			return nil, err
		}
		return c.PushingNext1(t.Runtime, rt.BoolValue(fn(col))), nil
	}
}

func (m *ColorModule) amountMethod(fn func(*colorkit.Color, float64) *colorkit.Color, def float64) rt.GoFunctionFunc {
	return func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		col, err := selfArg(c)
		if err != nil {
			return nil, err
		}
		amount, err := optFloat(c.Args(), 1, def)
		if err != nil {
			return nil, err
		}
		return c.PushingNext1(t.Runtime, m.wrap(fn(col, amount))), nil
	}
}

func (m *ColorModule) colorMethod(fn func(*colorkit.Color) *colorkit.Color) rt.GoFunctionFunc {
	return func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		col, err := selfArg(c)
		if err != nil {
			return nil, err
		}
		return c.PushingNext1(t.Runtime, m.wrap(fn(col))), nil
	}
}

func (m *ColorModule) setMethod(fn func(*colorkit.Color) []*colorkit.Color) rt.GoFunctionFunc {
	return func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		col, err := selfArg(c)
		if err != nil {
			return nil, err
		}
		return c.PushingNext1(t.Runtime, m.wrapAll(fn(col))), nil
	}
}

// setAlpha mutates the receiver and returns it.
func (m *ColorModule) setAlpha(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	col, err := selfArg(c)
	if err != nil {
		return nil, err
	}
	a, err := optFloat(c.Args(), 1, 1)
	if err != nil {
		return nil, err
	}
	col.SetAlpha(a)
	return c.PushingNext1(t.Runtime, c.Args()[0]), nil
}

func (m *ColorModule) mixMethod(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	col, err := selfArg(c)
	if err != nil {
		return nil, err
	}
	args := c.Args()
	amount, err := optFloat(args, 2, colorkit.DefaultMixAmount)
	if err != nil {
		return nil, err
	}
	return c.PushingNext1(t.Runtime, m.wrap(col.Mix(inputArg(args, 1), amount))), nil
}

func (m *ColorModule) analogous(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	col, err := selfArg(c)
	if err != nil {
		return nil, err
	}
	args := c.Args()
	results, err := optInt(args, 1, colorkit.DefaultAnalogousResults)
	if err != nil {
		return nil, err
	}
	slices, err := optInt(args, 2, colorkit.DefaultAnalogousSlices)
	if err != nil {
		return nil, err
	}
	return c.PushingNext1(t.Runtime, m.wrapAll(col.Analogous(results, slices))), nil
}

func (m *ColorModule) monochromatic(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	col, err := selfArg(c)
	if err != nil {
		return nil, err
	}
	results, err := optInt(c.Args(), 1, colorkit.DefaultMonochromaticResults)
	if err != nil {
		return nil, err
	}
	return c.PushingNext1(t.Runtime, m.wrapAll(col.Monochromatic(results))), nil
}

func (m *ColorModule) polyad(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	col, err := selfArg(c)
	if err != nil {
		return nil, err
	}
	n, err := optInt(c.Args(), 1, 0)
	if err != nil {
		return nil, err
	}
	colors, err := col.Polyad(n)
	if err != nil {
		return nil, err
	}
	return c.PushingNext1(t.Runtime, m.wrapAll(colors)), nil
}

func (m *ColorModule) toRgb(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	col, err := selfArg(c)
	if err != nil {
		return nil, err
	}
	v := col.ToRgb()
	return c.PushingNext1(t.Runtime, recordTable("rgba", v.R, v.G, v.B, v.A)), nil
}

func (m *ColorModule) toHsl(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	col, err := selfArg(c)
	if err != nil {
		return nil, err
	}
	v := col.ToHsl()
	return c.PushingNext1(t.Runtime, recordTable("hsla", v.H, v.S, v.L, v.A)), nil
}

func (m *ColorModule) toHsv(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	col, err := selfArg(c)
	if err != nil {
		return nil, err
	}
	v := col.ToHsv()
	return c.PushingNext1(t.Runtime, recordTable("hsva", v.H, v.S, v.V, v.A)), nil
}

// toName returns the name, or false when the color has none.
func (m *ColorModule) toName(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	col, err := selfArg(c)
	if err != nil {
		return nil, err
	}
	name, ok := col.ToName()
	if !ok {
		return c.PushingNext1(t.Runtime, rt.BoolValue(false)), nil
	}
	return c.PushingNext1(t.Runtime, rt.StringValue(name)), nil
}

func (m *ColorModule) toFilter(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	col, err := selfArg(c)
	if err != nil {
		return nil, err
	}
	args := c.Args()
	var second any
	if present(args, 1) {
		second = toInput(args[1])
	}
	return c.PushingNext1(t.Runtime, rt.StringValue(col.ToFilter(second))), nil
}

func (m *ColorModule) toStringFormat(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	col, err := selfArg(c)
	if err != nil {
		return nil, err
	}
	args := c.Args()
	f := colorkit.FormatNone
	if present(args, 1) {
		s, _ := args[1].TryString()
		f, _ = colorkit.ParseFormat(s)
	}
	return c.PushingNext1(t.Runtime, rt.StringValue(col.ToString(f))), nil
}

// originalInput returns the parsed string, or nil for non-string input.
func (m *ColorModule) originalInput(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	col, err := selfArg(c)
	if err != nil {
		return nil, err
	}
	if s, ok := col.OriginalInput().(string); ok {
		return c.PushingNext1(t.Runtime, rt.StringValue(s)), nil
	}
	return c.PushingNext1(t.Runtime, rt.NilValue), nil
}
