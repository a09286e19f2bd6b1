package main

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-colorkit/internal/ops"
	"github.com/opd-ai/go-colorkit/internal/render"
	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

func newConvertCmd(a *app) *cobra.Command {
	var to []string

	cmd := &cobra.Command{
		Use:   "convert <color>",
		Short: "Print a color in every format",
		Long: `Print a color in every supported format, or only in the formats
given with --to.`,
		Example: `  colorkit convert "#336699"
  colorkit convert red --to hsl --to hex8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.parseColor(args[0])
			if err != nil {
				return err
			}

			if len(to) == 0 {
				if a.structured() {
					return render.Encode(a.stdout, a.output, render.Describe(c))
				}
				return a.printer.PrintTable(describeRows(c))
			}

			formats := make([]colorkit.Format, 0, len(to))
			for _, name := range to {
				f, ok := colorkit.ParseFormat(name)
				if !ok {
					return fmt.Errorf("%w: unknown format %q", colorkit.ErrInvalidArgument, name)
				}
				formats = append(formats, f)
			}

			if a.structured() {
				out := make(map[string]string, len(formats))
				for _, f := range formats {
					out[string(f)] = c.ToString(f)
				}
				return render.Encode(a.stdout, a.output, out)
			}
			rows := make([]render.Row, 0, len(formats))
			for _, f := range formats {
				rows = append(rows, render.Row{Label: string(f), Value: c.ToString(f), Color: c})
			}
			return a.printer.PrintTable(rows)
		},
	}
	cmd.Flags().StringSliceVar(&to, "to", nil, "Formats to print (repeatable)")
	return cmd
}

// describeRows lays out a Record as table rows.
func describeRows(c *colorkit.Color) []render.Row {
	r := render.Describe(c)
	rows := []render.Row{
		{Label: "input", Value: r.Input},
		{Label: "format", Value: r.Format},
		{Label: "hex", Value: r.Hex, Color: c},
		{Label: "hex8", Value: r.Hex8},
		{Label: "rgb", Value: r.RGB},
		{Label: "prgb", Value: r.PRGB},
		{Label: "hsl", Value: r.HSL},
		{Label: "hsv", Value: r.HSV},
	}
	if r.Name != "" {
		rows = append(rows, render.Row{Label: "name", Value: r.Name})
	}
	return append(rows,
		render.Row{Label: "alpha", Value: strconv.FormatFloat(r.Alpha, 'f', -1, 64)},
		render.Row{Label: "brightness", Value: strconv.FormatFloat(r.Brightness, 'f', 3, 64)},
		render.Row{Label: "luminance", Value: strconv.FormatFloat(r.Luminance, 'f', 4, 64)},
		render.Row{Label: "dark", Value: strconv.FormatBool(r.Dark)},
	)
}

func newAdjustCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "adjust <operation> <color> [amount]",
		Short: "Lighten, darken, saturate, desaturate, brighten, greyscale or spin a color",
		Long: fmt.Sprintf(`Apply a manipulation to a color. Operations: %s.

The amount is a percentage, or degrees for spin. Without an amount the
configured default is used (10 unless configured), and 0 for spin.`,
			strings.Join(ops.AdjustOperations, ", ")),
		Example: `  colorkit adjust lighten "#336699" 20
  colorkit adjust spin red -- -60`,
		Args:      cobra.RangeArgs(2, 3),
		ValidArgs: ops.AdjustOperations,
		RunE: func(cmd *cobra.Command, args []string) error {
			op := args[0]
			c, err := a.parseColor(args[1])
			if err != nil {
				return err
			}
			amount := ops.DefaultAmount(op, a.cfg.Amounts.Adjust)
			if len(args) == 3 {
				if amount, err = parseAmount(args[2]); err != nil {
					return err
				}
			}

			adjusted, err := ops.Adjust(c, op, amount)
			if err != nil {
				return err
			}
			a.logger.Debug("adjusted color", "operation", op, "amount", amount)
			return a.emitColor(adjusted)
		},
	}
}

func newMixCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mix <color1> <color2> [amount]",
		Short: "Blend two colors",
		Long: `Blend two colors in RGB space. The amount is the percentage of the
second color, 50 unless configured.`,
		Example: `  colorkit mix red blue
  colorkit mix "#fff" "#000" 25`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c1, err := a.parseColor(args[0])
			if err != nil {
				return err
			}
			c2, err := a.parseColor(args[1])
			if err != nil {
				return err
			}
			amount := a.cfg.Amounts.Mix
			if len(args) == 3 {
				if amount, err = parseAmount(args[2]); err != nil {
					return err
				}
			}
			return a.emitColor(colorkit.Mix(c1, c2, amount))
		},
	}
}

func newSchemeCmd(a *app) *cobra.Command {
	var results, slices, n int

	cmd := &cobra.Command{
		Use:   "scheme <kind> <color>",
		Short: "Generate a color scheme",
		Long: fmt.Sprintf(`Generate a color scheme from a base color. Kinds: %s.`,
			strings.Join(ops.SchemeKinds, ", ")),
		Example: `  colorkit scheme triad "#336699"
  colorkit scheme analogous red --results 4 --slices 12
  colorkit scheme polyad red --n 5`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: ops.SchemeKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			c, err := a.parseColor(args[1])
			if err != nil {
				return err
			}

			params := ops.SchemeParams{
				Results: a.cfg.Amounts.AnalogousResults,
				Slices:  a.cfg.Amounts.AnalogousSlices,
				N:       n,
			}
			if strings.EqualFold(kind, "monochromatic") {
				params.Results = a.cfg.Amounts.MonochromaticResults
			}
			if cmd.Flags().Changed("results") {
				params.Results = results
			}
			if cmd.Flags().Changed("slices") {
				params.Slices = slices
			}

			colors, err := ops.Scheme(c, kind, params)
			if err != nil {
				return err
			}
			return a.emitColors(kind, colors)
		},
	}
	cmd.Flags().IntVar(&results, "results", 0, "Number of colors for analogous and monochromatic schemes")
	cmd.Flags().IntVar(&slices, "slices", 0, "Hue wheel slices for analogous schemes")
	cmd.Flags().IntVar(&n, "n", 3, "Number of colors for polyad schemes")
	return cmd
}

func newContrastCmd(a *app) *cobra.Command {
	var level, size string

	cmd := &cobra.Command{
		Use:   "contrast <color1> <color2>",
		Short: "Check the WCAG contrast of two colors",
		Long: `Print the WCAG contrast ratio of two colors and whether they are readable
at each conformance level. The exit status is non-zero when the pair is not
readable at the selected level and size.`,
		Example: `  colorkit contrast "#767676" white --level AAA`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c1, err := a.parseColor(args[0])
			if err != nil {
				return err
			}
			c2, err := a.parseColor(args[1])
			if err != nil {
				return err
			}

			opts := a.wcagOptions(cmd, level, size)
			result := ops.CheckContrast(c1, c2, opts)

			if a.structured() {
				if err := render.Encode(a.stdout, a.output, result); err != nil {
					return err
				}
			} else if err := a.printer.PrintTable(contrastRows(result, opts)); err != nil {
				return err
			}

			return ops.RequireReadable(result, opts)
		},
	}
	cmd.Flags().StringVar(&level, "level", colorkit.LevelAA, "WCAG level: AA or AAA")
	cmd.Flags().StringVar(&size, "size", colorkit.SizeSmall, "Text size: small or large")
	return cmd
}

func contrastRows(c ops.Contrast, opts colorkit.WCAGOptions) []render.Row {
	verdict := func(ok bool) string {
		if ok {
			return "pass"
		}
		return "fail"
	}
	return []render.Row{
		{Label: "ratio", Value: strconv.FormatFloat(c.Ratio, 'f', 2, 64)},
		{Label: "AA small", Value: verdict(c.AASmall)},
		{Label: "AA large", Value: verdict(c.AALarge)},
		{Label: "AAA small", Value: verdict(c.AAASmall)},
		{Label: "AAA large", Value: verdict(c.AAALarge)},
		{Label: "readable", Value: fmt.Sprintf("%s (%s %s)", verdict(c.Readable), opts.Level, opts.Size)},
	}
}

// wcagOptions uses the level and size flags when given and the configured
// readability defaults otherwise.
func (a *app) wcagOptions(cmd *cobra.Command, level, size string) colorkit.WCAGOptions {
	opts := a.cfg.ReadableOptions().WCAGOptions
	if cmd.Flags().Changed("level") {
		opts.Level = strings.ToUpper(level)
	}
	if cmd.Flags().Changed("size") {
		opts.Size = strings.ToLower(size)
	}
	return opts
}

func newReadableCmd(a *app) *cobra.Command {
	var level, size string
	var fallback bool

	cmd := &cobra.Command{
		Use:   "readable <base> <candidate>...",
		Short: "Pick the most readable color against a base",
		Long: `Pick the candidate with the highest contrast against the base color.
With --fallback, black or white is chosen when no candidate is readable.`,
		Example: `  colorkit readable "#ff0088" "#ff0000" "#00ff00" --fallback`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := a.parseColor(args[0])
			if err != nil {
				return err
			}
			candidates := make([]any, 0, len(args)-1)
			for _, arg := range args[1:] {
				c, err := a.parseColor(arg)
				if err != nil {
					return err
				}
				candidates = append(candidates, c)
			}

			opts := a.cfg.ReadableOptions()
			opts.WCAGOptions = a.wcagOptions(cmd, level, size)
			if cmd.Flags().Changed("fallback") {
				opts.IncludeFallbackColors = fallback
			}

			best := colorkit.MostReadable(base, candidates, opts)
			if best == nil {
				return fmt.Errorf("%w: no candidate colors", colorkit.ErrInvalidArgument)
			}
			return a.emitColor(best)
		},
	}
	cmd.Flags().StringVar(&level, "level", colorkit.LevelAA, "WCAG level: AA or AAA")
	cmd.Flags().StringVar(&size, "size", colorkit.SizeSmall, "Text size: small or large")
	cmd.Flags().BoolVar(&fallback, "fallback", false, "Fall back to black or white when no candidate is readable")
	return cmd
}

// namedColor is the structured form of one entry of the name table.
type namedColor struct {
	Name string `json:"name" yaml:"name"`
	Hex  string `json:"hex" yaml:"hex"`
}

func newNamesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "names [filter]",
		Short: "List named colors",
		Long:  `List the CSS color names, optionally only those containing filter.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = strings.ToLower(args[0])
			}

			table := colorkit.Names()
			var matches []namedColor
			for _, name := range colorkit.NameList() {
				if strings.Contains(name, filter) {
					matches = append(matches, namedColor{Name: name, Hex: "#" + table[name]})
				}
			}

			if a.structured() {
				return render.Encode(a.stdout, a.output, matches)
			}
			rows := make([]render.Row, 0, len(matches))
			for _, m := range matches {
				rows = append(rows, render.Row{Label: m.Name, Value: m.Hex, Color: colorkit.Parse(m.Hex)})
			}
			return a.printer.PrintTable(rows)
		},
	}
}

func newRandomCmd(a *app) *cobra.Command {
	var count int
	var seed uint64

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generate random colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("%w: count must be at least 1", colorkit.ErrInvalidArgument)
			}

			var src *rand.Rand
			if cmd.Flags().Changed("seed") {
				src = rand.New(rand.NewPCG(seed, seed))
			}
			colors := make([]*colorkit.Color, count)
			for i := range colors {
				colors[i] = colorkit.RandomWith(src)
			}
			return a.emitColors("", colors)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of colors")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for reproducible output")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of colorkit",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "colorkit version %s\n", Version)
		},
	}
}

// parseAmount parses a numeric command line amount.
func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q is not a number", colorkit.ErrInvalidArgument, s)
	}
	return v, nil
}
