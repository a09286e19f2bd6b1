// Package render prints colors for terminals. Colors may be shown next to
// a swatch block painted with lipgloss; structured output is available as
// JSON or YAML through Encode.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

// swatchWidth is the number of cells a swatch occupies.
const swatchWidth = 4

// Options configures a Printer.
type Options struct {
	// Format renders every color in this format. FormatNone keeps each
	// color's own format.
	Format colorkit.Format
	// Swatch enables colored blocks before each color.
	Swatch bool
}

// Printer writes colors to a terminal.
type Printer struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	opts     Options

	label lipgloss.Style
	title lipgloss.Style
	muted lipgloss.Style
}

// NewPrinter creates a Printer writing to w. Color support is detected
// from w, so swatches degrade to plain text when w is not a terminal.
func NewPrinter(w io.Writer, opts Options) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:        w,
		renderer: r,
		opts:     opts,
		label:    r.NewStyle().Bold(true),
		title:    r.NewStyle().Bold(true).Underline(true),
		muted:    r.NewStyle().Faint(true),
	}
}

// Text renders c in the configured format.
func (p *Printer) Text(c *colorkit.Color) string {
	if p.opts.Format != colorkit.FormatNone {
		return c.ToString(p.opts.Format)
	}
	return c.String()
}

// Swatch renders a block filled with c between half-block edges drawn
// in BorderColor.
func (p *Printer) Swatch(c *colorkit.Color) string {
	return p.renderer.NewStyle().
		Background(lipgloss.Color(c.ToHexString(false))).
		Foreground(lipgloss.Color(BorderColor(c))).
		Render("▌" + strings.Repeat(" ", swatchWidth-2) + "▐")
}

// Color renders c with its swatch when swatches are enabled.
func (p *Printer) Color(c *colorkit.Color) string {
	text := p.Text(c)
	if !c.IsValid() {
		text += " " + p.muted.Render("(invalid)")
	}
	if !p.opts.Swatch {
		return text
	}
	return p.Swatch(c) + " " + text
}

// PrintColor writes one color on its own line.
func (p *Printer) PrintColor(c *colorkit.Color) error {
	_, err := fmt.Fprintln(p.w, p.Color(c))
	return err
}

// PrintColors writes colors one per line, under title when it is not empty.
func (p *Printer) PrintColors(title string, colors []*colorkit.Color) error {
	var b strings.Builder
	if title != "" {
		b.WriteString(p.title.Render(title))
		b.WriteByte('\n')
	}
	for _, c := range colors {
		b.WriteString(p.Color(c))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

// Row is one line of a table. Color, when set, adds a swatch to the value.
type Row struct {
	Label string
	Value string
	Color *colorkit.Color
}

// PrintTable writes rows as label/value pairs with the values aligned.
func (p *Printer) PrintTable(rows []Row) error {
	width := 0
	for _, row := range rows {
		width = max(width, lipgloss.Width(row.Label))
	}
	label := p.label.Width(width + 2)

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		value := row.Value
		if row.Color != nil && p.opts.Swatch {
			value = p.Swatch(row.Color) + " " + value
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label.Render(row.Label), value))
	}
	_, err := fmt.Fprintln(p.w, strings.Join(lines, "\n"))
	return err
}

// BorderColor returns a hex color a quarter of the way from c toward
// black for light colors and white for dark ones, blended in CIE L*a*b*.
func BorderColor(c *colorkit.Color) string {
	rgb := c.ToRgb()
	base := colorful.Color{R: rgb.R / 255, G: rgb.G / 255, B: rgb.B / 255}

	target := colorful.Color{R: 1, G: 1, B: 1}
	if c.IsLight() {
		target = colorful.Color{}
	}
	return base.BlendLab(target, 0.25).Clamped().Hex()
}
