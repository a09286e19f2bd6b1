// Package mcpserver exposes the color engine as Model Context Protocol
// tools served over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/opd-ai/go-colorkit/internal/config"
	"github.com/opd-ai/go-colorkit/internal/logging"
	"github.com/opd-ai/go-colorkit/internal/metrics"
	"github.com/opd-ai/go-colorkit/internal/ops"
	"github.com/opd-ai/go-colorkit/internal/render"
	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

// ServerName is announced to MCP clients during initialization.
const ServerName = "colorkit"

// Options configures a Server. Zero fields fall back to defaults.
type Options struct {
	Config  *config.Config
	Metrics *metrics.Metrics
	Logger  logging.Logger
	Version string
}

// Server holds the color tools and the MCP server they are registered on.
type Server struct {
	cfg     *config.Config
	metrics *metrics.Metrics
	logger  logging.Logger
	mcp     *server.MCPServer
}

// New creates a Server with every color tool registered.
func New(opts Options) *Server {
	if opts.Config == nil {
		cfg := config.DefaultConfig()
		opts.Config = &cfg
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		cfg:     opts.Config,
		metrics: opts.Metrics,
		logger:  opts.Logger,
	}
	s.mcp = server.NewMCPServer(
		ServerName,
		opts.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	s.mcp.AddTools(s.Tools()...)
	return s
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves the tools on stdin and stdout until the client
// disconnects.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP tools on stdio", "tools", len(s.Tools()))
	return server.ServeStdio(s.mcp)
}

// Tools returns every color tool paired with its instrumented handler.
func (s *Server) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("color_convert",
				mcp.WithDescription("Describe a color in every format, or print it in one format"),
				mcp.WithString("color",
					mcp.Required(),
					mcp.Description("Color in any accepted notation (hex, rgb(), hsl(), hsv() or a name)"),
				),
				mcp.WithString("format",
					mcp.Description("Output format; omit for a full description"),
					mcp.Enum(formatNames()...),
				),
			),
			Handler: s.instrument("color_convert", s.HandleConvert),
		},
		{
			Tool: mcp.NewTool("color_adjust",
				mcp.WithDescription("Apply a manipulation to a color"),
				mcp.WithString("color",
					mcp.Required(),
					mcp.Description("Color to adjust"),
				),
				mcp.WithString("operation",
					mcp.Required(),
					mcp.Description("Manipulation to apply"),
					mcp.Enum(ops.AdjustOperations...),
				),
				mcp.WithNumber("amount",
					mcp.Description("Percentage amount, or degrees for spin"),
				),
				mcp.WithString("format",
					mcp.Description("Output format; omit to keep the color's own format"),
					mcp.Enum(formatNames()...),
				),
			),
			Handler: s.instrument("color_adjust", s.HandleAdjust),
		},
		{
			Tool: mcp.NewTool("color_mix",
				mcp.WithDescription("Blend two colors in RGB space"),
				mcp.WithString("color1",
					mcp.Required(),
					mcp.Description("First color"),
				),
				mcp.WithString("color2",
					mcp.Required(),
					mcp.Description("Second color"),
				),
				mcp.WithNumber("amount",
					mcp.Description("Percentage of the second color, 0 to 100"),
				),
				mcp.WithString("format",
					mcp.Description("Output format; omit to keep the color's own format"),
					mcp.Enum(formatNames()...),
				),
			),
			Handler: s.instrument("color_mix", s.HandleMix),
		},
		{
			Tool: mcp.NewTool("color_scheme",
				mcp.WithDescription("Generate a color scheme from a base color"),
				mcp.WithString("color",
					mcp.Required(),
					mcp.Description("Base color"),
				),
				mcp.WithString("scheme",
					mcp.Required(),
					mcp.Description("Scheme to generate"),
					mcp.Enum(ops.SchemeKinds...),
				),
				mcp.WithNumber("results",
					mcp.Description("Number of colors for analogous and monochromatic schemes"),
				),
				mcp.WithNumber("slices",
					mcp.Description("Hue wheel slices for analogous schemes"),
				),
				mcp.WithNumber("n",
					mcp.Description("Number of colors for polyad schemes"),
				),
				mcp.WithString("format",
					mcp.Description("Output format; omit to keep the color's own format"),
					mcp.Enum(formatNames()...),
				),
			),
			Handler: s.instrument("color_scheme", s.HandleScheme),
		},
		{
			Tool: mcp.NewTool("color_contrast",
				mcp.WithDescription("Compute the WCAG contrast ratio of two colors"),
				mcp.WithString("color1",
					mcp.Required(),
					mcp.Description("First color"),
				),
				mcp.WithString("color2",
					mcp.Required(),
					mcp.Description("Second color"),
				),
				mcp.WithString("level",
					mcp.Description("WCAG level"),
					mcp.Enum(colorkit.LevelAA, colorkit.LevelAAA),
				),
				mcp.WithString("size",
					mcp.Description("Text size"),
					mcp.Enum(colorkit.SizeSmall, colorkit.SizeLarge),
				),
			),
			Handler: s.instrument("color_contrast", s.HandleContrast),
		},
		{
			Tool: mcp.NewTool("color_most_readable",
				mcp.WithDescription("Pick the candidate with the highest contrast against a base color"),
				mcp.WithString("base",
					mcp.Required(),
					mcp.Description("Background color"),
				),
				mcp.WithString("candidates",
					mcp.Required(),
					mcp.Description("Comma separated candidate colors"),
				),
				mcp.WithBoolean("include_fallback",
					mcp.Description("Fall back to black or white when no candidate is readable"),
				),
				mcp.WithString("level",
					mcp.Description("WCAG level"),
					mcp.Enum(colorkit.LevelAA, colorkit.LevelAAA),
				),
				mcp.WithString("size",
					mcp.Description("Text size"),
					mcp.Enum(colorkit.SizeSmall, colorkit.SizeLarge),
				),
				mcp.WithString("format",
					mcp.Description("Output format; omit to keep the color's own format"),
					mcp.Enum(formatNames()...),
				),
			),
			Handler: s.instrument("color_most_readable", s.HandleMostReadable),
		},
		{
			Tool: mcp.NewTool("color_names",
				mcp.WithDescription("List named colors and their hex values"),
				mcp.WithString("filter",
					mcp.Description("Only names containing this text"),
				),
			),
			Handler: s.instrument("color_names", s.HandleNames),
		},
	}
}

// instrument records the outcome of every call in metrics.
func (s *Server) instrument(name string, h server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := h(ctx, req)
		failed := err != nil || (result != nil && result.IsError)
		s.metrics.RecordToolCall(failed)
		s.logger.Debug("tool call", "tool", name, "failed", failed)
		return result, err
	}
}

func formatNames() []string {
	names := make([]string, len(colorkit.Formats))
	for i, f := range colorkit.Formats {
		names[i] = string(f)
	}
	return names
}

// HandleConvert handles the color_convert tool call
func (s *Server) HandleConvert(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, errResult := s.requireColor(req, "color")
	if errResult != nil {
		return errResult, nil
	}

	if name := req.GetString("format", ""); name != "" {
		f, ok := colorkit.ParseFormat(name)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", name)), nil
		}
		return mcp.NewToolResultText(c.ToString(f)), nil
	}

	return jsonResult(render.Describe(c))
}

// HandleAdjust handles the color_adjust tool call
func (s *Server) HandleAdjust(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, errResult := s.requireColor(req, "color")
	if errResult != nil {
		return errResult, nil
	}
	op, err := req.RequireString("operation")
	if err != nil {
		return mcp.NewToolResultError("operation is required"), nil
	}

	amount, err := numberArg(req, "amount", ops.DefaultAmount(op, s.cfg.Amounts.Adjust))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f, errResult := s.outputFormat(req)
	if errResult != nil {
		return errResult, nil
	}
	adjusted, err := ops.Adjust(c, op, amount)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(adjusted.ToString(f)), nil
}

// HandleMix handles the color_mix tool call
func (s *Server) HandleMix(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, errResult := s.requireColor(req, "color1")
	if errResult != nil {
		return errResult, nil
	}
	b, errResult := s.requireColor(req, "color2")
	if errResult != nil {
		return errResult, nil
	}
	amount, err := numberArg(req, "amount", s.cfg.Amounts.Mix)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	f, errResult := s.outputFormat(req)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(colorkit.Mix(a, b, amount).ToString(f)), nil
}

// HandleScheme handles the color_scheme tool call
func (s *Server) HandleScheme(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, errResult := s.requireColor(req, "color")
	if errResult != nil {
		return errResult, nil
	}
	kind, err := req.RequireString("scheme")
	if err != nil {
		return mcp.NewToolResultError("scheme is required"), nil
	}

	params := ops.SchemeParams{
		Results: s.cfg.Amounts.AnalogousResults,
		Slices:  s.cfg.Amounts.AnalogousSlices,
		N:       3,
	}
	if strings.EqualFold(kind, "monochromatic") {
		params.Results = s.cfg.Amounts.MonochromaticResults
	}
	for name, dst := range map[string]*int{"results": &params.Results, "slices": &params.Slices, "n": &params.N} {
		v, err := countArg(req, name, *dst)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		*dst = v
	}

	f, errResult := s.outputFormat(req)
	if errResult != nil {
		return errResult, nil
	}
	colors, err := ops.Scheme(c, kind, params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := make([]string, len(colors))
	for i, sc := range colors {
		out[i] = sc.ToString(f)
	}
	return jsonResult(out)
}

// HandleContrast handles the color_contrast tool call
func (s *Server) HandleContrast(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, errResult := s.requireColor(req, "color1")
	if errResult != nil {
		return errResult, nil
	}
	b, errResult := s.requireColor(req, "color2")
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(ops.CheckContrast(a, b, s.wcagOptions(req)))
}

// HandleMostReadable handles the color_most_readable tool call
func (s *Server) HandleMostReadable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	base, errResult := s.requireColor(req, "base")
	if errResult != nil {
		return errResult, nil
	}
	list, err := req.RequireString("candidates")
	if err != nil {
		return mcp.NewToolResultError("candidates is required"), nil
	}

	var candidates []any
	for _, field := range splitCandidates(list) {
		c := colorkit.Parse(field)
		s.metrics.RecordParse(c.IsValid())
		if !c.IsValid() {
			return mcp.NewToolResultError(fmt.Sprintf("invalid color %q", field)), nil
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return mcp.NewToolResultError("candidates is empty"), nil
	}

	opts := colorkit.ReadableOptions{
		WCAGOptions:           s.wcagOptions(req),
		IncludeFallbackColors: req.GetBool("include_fallback", s.cfg.Readability.Fallback),
	}
	f, errResult := s.outputFormat(req)
	if errResult != nil {
		return errResult, nil
	}
	best := colorkit.MostReadable(base, candidates, opts)
	if best == nil {
		return mcp.NewToolResultError("no candidate colors"), nil
	}
	return mcp.NewToolResultText(best.ToString(f)), nil
}

// splitCandidates splits a comma separated list. Commas inside parentheses
// belong to functional notations such as rgb(1, 2, 3).
func splitCandidates(s string) []string {
	var fields []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				fields = append(fields, s[start:i])
				start = i + 1
			}
		}
	}
	fields = append(fields, s[start:])

	out := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// HandleNames handles the color_names tool call
func (s *Server) HandleNames(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := strings.ToLower(strings.TrimSpace(req.GetString("filter", "")))

	names := colorkit.Names()
	keys := make([]string, 0, len(names))
	for name := range names {
		if strings.Contains(name, filter) {
			keys = append(keys, name)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, name := range keys {
		fmt.Fprintf(&b, "%s #%s\n", name, names[name])
	}
	return mcp.NewToolResultText(b.String()), nil
}

// outputFormat reads the optional format argument, defaulting to the
// configured output format.
func (s *Server) outputFormat(req mcp.CallToolRequest) (colorkit.Format, *mcp.CallToolResult) {
	name := req.GetString("format", "")
	if name == "" {
		return s.cfg.Output.Format, nil
	}
	f, ok := colorkit.ParseFormat(name)
	if !ok {
		return colorkit.FormatNone, mcp.NewToolResultError(fmt.Sprintf("unknown format %q", name))
	}
	return f, nil
}

func (s *Server) wcagOptions(req mcp.CallToolRequest) colorkit.WCAGOptions {
	return colorkit.WCAGOptions{
		Level: req.GetString("level", s.cfg.Readability.Level),
		Size:  req.GetString("size", s.cfg.Readability.Size),
	}
}

// requireColor reads and parses a required color argument. The returned
// result is non-nil when the argument is missing or invalid.
func (s *Server) requireColor(req mcp.CallToolRequest, name string) (*colorkit.Color, *mcp.CallToolResult) {
	input, err := req.RequireString(name)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("%s is required", name))
	}
	c := colorkit.Parse(input)
	s.metrics.RecordParse(c.IsValid())
	if !c.IsValid() {
		return nil, mcp.NewToolResultError(fmt.Sprintf("invalid color %q", input))
	}
	return c, nil
}

// numberArg reads an optional numeric argument. Clients may send numbers
// as JSON numbers or strings.
func numberArg(req mcp.CallToolRequest, name string, def float64) (float64, error) {
	v, ok := req.GetArguments()[name]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be a number, got %q", name, n)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%s must be a number", name)
}

// countArg reads a scheme size. Values above colorkit.MaxSchemeSize are
// rejected before conversion; negative values become -1, which every
// scheme treats like zero.
func countArg(req mcp.CallToolRequest, name string, def int) (int, error) {
	v, err := numberArg(req, name, float64(def))
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || v > colorkit.MaxSchemeSize {
		return 0, fmt.Errorf("%s must be at most %d", name, colorkit.MaxSchemeSize)
	}
	return int(math.Max(v, -1)), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
