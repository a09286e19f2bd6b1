package lua

import (
	"fmt"
	"math"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

// recordKeys are the table fields a Lua color record may carry.
var recordKeys = []string{"r", "g", "b", "h", "s", "l", "v", "a", "format"}

// toInput converts a Lua value into an input colorkit.Parse accepts.
// Strings pass through, color userdata unwraps, and tables become records.
// Anything else yields nil, which parses as an invalid color.
func toInput(v rt.Value) any {
	if ud, ok := v.TryUserData(); ok {
		if col, ok := ud.Value().(*colorkit.Color); ok {
			return col
		}
		return nil
	}
	if s, ok := v.TryString(); ok {
		return s
	}
	if tbl, ok := v.TryTable(); ok {
		return tableRecord(tbl)
	}
	return nil
}

func tableRecord(tbl *rt.Table) map[string]any {
	rec := make(map[string]any, len(recordKeys))
	for _, k := range recordKeys {
		v := tbl.Get(rt.StringValue(k))
		if v == rt.NilValue {
			continue
		}
		if f, ok := v.TryFloat(); ok {
			rec[k] = f
		} else if i, ok := v.TryInt(); ok {
			rec[k] = i
		} else if s, ok := v.TryString(); ok {
			rec[k] = s
		}
	}
	return rec
}

func inputArg(args []rt.Value, idx int) any {
	if idx >= len(args) {
		return nil
	}
	return toInput(args[idx])
}

// selfArg returns the color receiver of a method call.
func selfArg(c *rt.GoCont) (*colorkit.Color, error) {
	args := c.Args()
	if len(args) == 0 {
		return nil, ErrNotAColor
	}
	ud, ok := args[0].TryUserData()
	if !ok {
		return nil, ErrNotAColor
	}
	col, ok := ud.Value().(*colorkit.Color)
	if !ok {
		return nil, ErrNotAColor
	}
	return col, nil
}

func present(args []rt.Value, idx int) bool {
	return idx < len(args) && args[idx] != rt.NilValue
}

// optFloat returns args[idx] as a number, or def when absent.
func optFloat(args []rt.Value, idx int, def float64) (float64, error) {
	if !present(args, idx) {
		return def, nil
	}
	if f, ok := args[idx].TryFloat(); ok {
		return f, nil
	}
	if i, ok := args[idx].TryInt(); ok {
		return float64(i), nil
	}
	return 0, fmt.Errorf("argument %d is not a number", idx)
}

// optInt returns args[idx] as an integer, or def when absent.
func optInt(args []rt.Value, idx int, def int) (int, error) {
	if !present(args, idx) {
		return def, nil
	}
	if i, ok := args[idx].TryInt(); ok {
		return int(i), nil
	}
	if f, ok := args[idx].TryFloat(); ok && !math.IsNaN(f) {
		// Clamped so huge floats do not wrap around on conversion.
		return int(math.Max(math.MinInt32, math.Min(math.MaxInt32, f))), nil
	}
	return 0, fmt.Errorf("argument %d is not an integer", idx)
}

// optBool returns args[idx] as a boolean, or false when absent.
func optBool(args []rt.Value, idx int) bool {
	if !present(args, idx) {
		return false
	}
	b, _ := args[idx].TryBool()
	return b
}

// formatOption reads an optional format name from args[idx].
func formatOption(args []rt.Value, idx int) ([]colorkit.Option, error) {
	if !present(args, idx) {
		return nil, nil
	}
	s, ok := args[idx].TryString()
	if !ok {
		return nil, fmt.Errorf("argument %d is not a format name", idx)
	}
	f, ok := colorkit.ParseFormat(s)
	if !ok {
		return nil, fmt.Errorf("unknown format %q", s)
	}
	return []colorkit.Option{colorkit.WithFormat(f)}, nil
}

// recordTable builds a table keyed by the letters of keys, so
// recordTable("hsla", h, s, l, a) yields {h=h, s=s, l=l, a=a}.
func recordTable(keys string, values ...float64) rt.Value {
	tbl := rt.NewTable()
	for i, k := range keys {
		tbl.Set(rt.StringValue(string(k)), rt.FloatValue(values[i]))
	}
	return rt.TableValue(tbl)
}
