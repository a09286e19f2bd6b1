package lua

import (
	"fmt"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

// ColorModule exposes colorkit to Lua scripts through the global
// `colorkit` table. Colors are userdata whose methods mirror *colorkit.Color:
//
//	local c = colorkit.parse("#336699")
//	print(c:lighten(20):to_hex_string())
//	for _, s in ipairs(c:triad()) do print(s) end
type ColorModule struct {
	runtime  *ColorRuntime
	meta     *rt.Table
	palette  map[string]string
	readable colorkit.ReadableOptions
	onParse  func(valid bool)
}

// ModuleOption configures a ColorModule at construction time.
type ModuleOption func(*ColorModule)

// WithPalette exposes named colors to scripts as colorkit.palette.
func WithPalette(palette map[string]string) ModuleOption {
	return func(m *ColorModule) {
		m.palette = palette
	}
}

// WithReadableDefaults sets the options is_readable and most_readable use
// when a script passes none.
func WithReadableDefaults(opts colorkit.ReadableOptions) ModuleOption {
	return func(m *ColorModule) {
		m.readable = opts
	}
}

// WithParseHook registers fn to observe every color a script parses.
func WithParseHook(fn func(valid bool)) ModuleOption {
	return func(m *ColorModule) {
		m.onParse = fn
	}
}

// NewColorModule registers the colorkit table in runtime, both as a global
// and in package.loaded so require("colorkit") returns it.
func NewColorModule(runtime *ColorRuntime, opts ...ModuleOption) (*ColorModule, error) {
	if runtime == nil {
		return nil, ErrNilRuntime
	}

	m := &ColorModule{runtime: runtime}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	m.meta = rt.NewTable()
	methods := rt.NewTable()
	m.registerMethods(methods)
	m.meta.Set(rt.StringValue("__index"), rt.TableValue(methods))
	m.meta.Set(rt.StringValue("__name"), rt.StringValue("colorkit.color"))
	setTableGoFunction(m.meta, "__tostring", m.toString, 1)
	setTableGoFunction(m.meta, "__eq", m.equal, 2)

	m.registerModule()
	return m, nil
}

func (m *ColorModule) registerModule() {
	table := rt.NewTable()
	setTableGoFunction(table, "parse", m.parse, 2)
	setTableGoFunction(table, "from_ratio", m.fromRatio, 2)
	setTableGoFunction(table, "random", m.random, 0)
	setTableGoFunction(table, "equals", m.equals, 2)
	setTableGoFunction(table, "readability", m.readability, 2)
	setTableGoFunction(table, "is_readable", m.isReadable, 3)
	setTableGoFunction(table, "most_readable", m.mostReadable, 3)
	setTableGoFunction(table, "mix", m.mix, 3)
	setTableGoFunction(table, "names", m.names, 0)

	formats := rt.NewTable()
	for i, f := range colorkit.Formats {
		formats.Set(rt.IntValue(int64(i+1)), rt.StringValue(string(f)))
	}
	table.Set(rt.StringValue("formats"), rt.TableValue(formats))

	palette := rt.NewTable()
	for name, value := range m.palette {
		palette.Set(rt.StringValue(name), m.wrap(colorkit.Parse(value)))
	}
	table.Set(rt.StringValue("palette"), rt.TableValue(palette))

	tableVal := rt.TableValue(table)
	m.runtime.SetGlobal("colorkit", tableVal)

	m.runtime.mu.Lock()
	defer m.runtime.mu.Unlock()
	pkgVal := m.runtime.runtime.Registry(rt.StringValue("package"))
	pkgTable, ok := pkgVal.TryTable()
	if !ok {
		return
	}
	if loaded, ok := pkgTable.Get(rt.StringValue("loaded")).TryTable(); ok {
		loaded.Set(rt.StringValue("colorkit"), tableVal)
	}
}

// setTableGoFunction registers a Go function in a Lua table.
func setTableGoFunction(table *rt.Table, name string, fn rt.GoFunctionFunc, nArgs int) {
	table.Set(rt.StringValue(name), rt.FunctionValue(newGoFunction(name, fn, nArgs, false)))
}

// wrap returns c as color userdata.
func (m *ColorModule) wrap(c *colorkit.Color) rt.Value {
	return rt.UserDataValue(rt.NewUserData(c, m.meta))
}

func (m *ColorModule) wrapAll(colors []*colorkit.Color) rt.Value {
	out := rt.NewTable()
	for i, c := range colors {
		out.Set(rt.IntValue(int64(i+1)), m.wrap(c))
	}
	return rt.TableValue(out)
}

func (m *ColorModule) observe(c *colorkit.Color) *colorkit.Color {
	if m.onParse != nil {
		m.onParse(c.IsValid())
	}
	return c
}

// --- colorkit table functions ---

func (m *ColorModule) parse(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := c.Args()
	opts, err := formatOption(args, 1)
	if err != nil {
		return nil, err
	}
	col := colorkit.Parse(inputArg(args, 0), opts...)
	return c.PushingNext1(t.Runtime, m.wrap(m.observe(col))), nil
}

func (m *ColorModule) fromRatio(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := c.Args()
	opts, err := formatOption(args, 1)
	if err != nil {
		return nil, err
	}
	col := colorkit.FromRatio(inputArg(args, 0), opts...)
	return c.PushingNext1(t.Runtime, m.wrap(m.observe(col))), nil
}

func (m *ColorModule) random(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	return c.PushingNext1(t.Runtime, m.wrap(colorkit.Random())), nil
}

func (m *ColorModule) equals(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := c.Args()
	return c.PushingNext1(t.Runtime, rt.BoolValue(colorkit.Equals(inputArg(args, 0), inputArg(args, 1)))), nil
}

func (m *ColorModule) readability(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := c.Args()
	ratio := colorkit.Readability(inputArg(args, 0), inputArg(args, 1))
	return c.PushingNext1(t.Runtime, rt.FloatValue(ratio)), nil
}

func (m *ColorModule) isReadable(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := c.Args()
	opts := m.readableOptions(args, 2)
	ok := colorkit.IsReadable(inputArg(args, 0), inputArg(args, 1), opts.WCAGOptions)
	return c.PushingNext1(t.Runtime, rt.BoolValue(ok)), nil
}

func (m *ColorModule) mostReadable(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := c.Args()
	if len(args) < 2 {
		return nil, fmt.Errorf("most_readable: expected base color and candidate list")
	}
	list, ok := args[1].TryTable()
	if !ok {
		return nil, fmt.Errorf("most_readable: candidates must be a table")
	}

	var candidates []any
	for i := int64(1); ; i++ {
		v := list.Get(rt.IntValue(i))
		if v == rt.NilValue {
			break
		}
		candidates = append(candidates, toInput(v))
	}

	best := colorkit.MostReadable(inputArg(args, 0), candidates, m.readableOptions(args, 2))
	if best == nil {
		return c.PushingNext1(t.Runtime, rt.NilValue), nil
	}
	return c.PushingNext1(t.Runtime, m.wrap(best)), nil
}

func (m *ColorModule) mix(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := c.Args()
	amount, err := optFloat(args, 2, colorkit.DefaultMixAmount)
	if err != nil {
		return nil, err
	}
	return c.PushingNext1(t.Runtime, m.wrap(colorkit.Mix(inputArg(args, 0), inputArg(args, 1), amount))), nil
}

func (m *ColorModule) names(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	out := rt.NewTable()
	for name, hex := range colorkit.Names() {
		out.Set(rt.StringValue(name), rt.StringValue(hex))
	}
	return c.PushingNext1(t.Runtime, rt.TableValue(out)), nil
}

// --- metamethods ---

func (m *ColorModule) toString(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	col, err := selfArg(c)
	if err != nil {
		return nil, err
	}
	return c.PushingNext1(t.Runtime, rt.StringValue(col.String())), nil
}

func (m *ColorModule) equal(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := c.Args()
	return c.PushingNext1(t.Runtime, rt.BoolValue(colorkit.Equals(inputArg(args, 0), inputArg(args, 1)))), nil
}

// readableOptions reads {level=, size=, include_fallback_colors=} from
// args[idx], starting from the module defaults.
func (m *ColorModule) readableOptions(args []rt.Value, idx int) colorkit.ReadableOptions {
	opts := m.readable
	if idx >= len(args) {
		return opts
	}
	tbl, ok := args[idx].TryTable()
	if !ok {
		return opts
	}
	if s, ok := tbl.Get(rt.StringValue("level")).TryString(); ok {
		opts.Level = s
	}
	if s, ok := tbl.Get(rt.StringValue("size")).TryString(); ok {
		opts.Size = s
	}
	if b, ok := tbl.Get(rt.StringValue("include_fallback_colors")).TryBool(); ok {
		opts.IncludeFallbackColors = b
	}
	return opts
}
