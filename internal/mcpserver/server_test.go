package mcpserver

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-colorkit/internal/config"
	"github.com/opd-ai/go-colorkit/internal/metrics"
	"github.com/opd-ai/go-colorkit/internal/ops"
	"github.com/opd-ai/go-colorkit/internal/render"
	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

func newTestServer(t *testing.T) (*Server, *metrics.Metrics) {
	t.Helper()
	cfg := config.DefaultConfig()
	m := metrics.New()
	return New(Options{Config: &cfg, Metrics: m}), m
}

func request(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "Expected TextContent")
	return text.Text
}

func TestTools(t *testing.T) {
	s, _ := newTestServer(t)

	names := make(map[string]bool)
	for _, tool := range s.Tools() {
		names[tool.Tool.Name] = true
		assert.NotNil(t, tool.Handler, tool.Tool.Name)
	}

	assert.Len(t, names, 7)
	for _, name := range []string{
		"color_convert", "color_adjust", "color_mix", "color_scheme",
		"color_contrast", "color_most_readable", "color_names",
	} {
		assert.True(t, names[name], name)
	}
	assert.NotNil(t, s.MCPServer())
}

func TestHandleConvert(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	result, err := s.HandleConvert(ctx, request("color_convert", map[string]interface{}{
		"color":  "red",
		"format": "hex",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "#ff0000", resultText(t, result))

	result, err = s.HandleConvert(ctx, request("color_convert", map[string]interface{}{
		"color": "hsl(210, 50%, 40%)",
	}))
	require.NoError(t, err)
	var record render.Record
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &record))
	assert.True(t, record.Valid)
	assert.Equal(t, "#336699", record.Hex)
	assert.Equal(t, "hsl", record.Format)
}

func TestHandleConvert_Errors(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing color", map[string]interface{}{}},
		{"invalid color", map[string]interface{}{"color": "not a color"}},
		{"unknown format", map[string]interface{}{"color": "red", "format": "cmyk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.HandleConvert(ctx, request("color_convert", tt.args))
			assert.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
		})
	}
}

func TestHandleAdjust(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"lighten", map[string]interface{}{"color": "#ff0000", "operation": "lighten", "amount": 20.0}, "#ff6666"},
		{"darken default amount", map[string]interface{}{"color": "#ff0000", "operation": "darken"}, "#cc0000"},
		{"amount as string", map[string]interface{}{"color": "#ff0000", "operation": "lighten", "amount": "20"}, "#ff6666"},
		{"spin", map[string]interface{}{"color": "red", "operation": "spin", "amount": 120.0, "format": "hex"}, "#00ff00"},
		{"spin default is identity", map[string]interface{}{"color": "#ff0000", "operation": "spin"}, "#ff0000"},
		{"greyscale", map[string]interface{}{"color": "#ff0000", "operation": "greyscale"}, "#808080"},
		{"forced format", map[string]interface{}{"color": "#ff0000", "operation": "darken", "format": "rgb"}, "rgb(204, 0, 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.HandleAdjust(ctx, request("color_adjust", tt.args))
			require.NoError(t, err)
			assert.False(t, result.IsError, resultText(t, result))
			assert.Equal(t, tt.want, resultText(t, result))
		})
	}
}

func TestHandleAdjust_Errors(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	for _, args := range []map[string]interface{}{
		{"color": "red"},
		{"color": "red", "operation": "explode"},
		{"color": "red", "operation": "lighten", "amount": "lots"},
		{"color": "red", "operation": "lighten", "amount": true},
		{"color": "nope", "operation": "lighten"},
	} {
		result, err := s.HandleAdjust(ctx, request("color_adjust", args))
		assert.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError, "%v", args)
	}
}

func TestHandleMix(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	result, err := s.HandleMix(ctx, request("color_mix", map[string]interface{}{
		"color1": "#ff0000",
		"color2": "#0000ff",
		"format": "hex",
	}))
	require.NoError(t, err)
	assert.Equal(t, "#800080", resultText(t, result))

	result, err = s.HandleMix(ctx, request("color_mix", map[string]interface{}{
		"color1": "#ff0000",
		"color2": "#0000ff",
		"amount": 0.0,
		"format": "hex",
	}))
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", resultText(t, result))

	result, err = s.HandleMix(ctx, request("color_mix", map[string]interface{}{
		"color1": "#ff0000",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleScheme(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	schemeOf := func(args map[string]interface{}) []string {
		t.Helper()
		result, err := s.HandleScheme(ctx, request("color_scheme", args))
		require.NoError(t, err)
		require.False(t, result.IsError, resultText(t, result))
		var out []string
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
		return out
	}

	assert.Equal(t, []string{"#ff0000", "#00ff00", "#0000ff"},
		schemeOf(map[string]interface{}{"color": "red", "scheme": "triad", "format": "hex"}))
	assert.Equal(t, []string{"#ff0000", "#00ffff"},
		schemeOf(map[string]interface{}{"color": "red", "scheme": "complement", "format": "hex"}))
	assert.Len(t, schemeOf(map[string]interface{}{"color": "red", "scheme": "analogous"}), colorkit.DefaultAnalogousResults)
	assert.Len(t, schemeOf(map[string]interface{}{"color": "red", "scheme": "analogous", "results": 3.0}), 3)
	assert.Len(t, schemeOf(map[string]interface{}{"color": "red", "scheme": "monochromatic", "results": 4.0}), 4)
	assert.Len(t, schemeOf(map[string]interface{}{"color": "red", "scheme": "polyad", "n": 5.0}), 5)
	assert.Len(t, schemeOf(map[string]interface{}{"color": "red", "scheme": "tetrad"}), 4)
	assert.Len(t, schemeOf(map[string]interface{}{"color": "red", "scheme": "splitcomplement"}), 3)
}

func TestHandleScheme_Errors(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	for _, args := range []map[string]interface{}{
		{"color": "red"},
		{"color": "red", "scheme": "rainbow"},
		{"color": "red", "scheme": "polyad", "n": 0.0},
		{"color": "red", "scheme": "analogous", "results": "many"},
		{"color": "red", "scheme": "polyad", "n": 1e15},
		{"color": "red", "scheme": "polyad", "n": math.Inf(1)},
		{"color": "red", "scheme": "monochromatic", "results": 1e10},
		{"color": "red", "scheme": "analogous", "slices": "1e300"},
	} {
		result, err := s.HandleScheme(ctx, request("color_scheme", args))
		assert.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError, "%v", args)
	}
}

func TestSchemeSizeOverProtocol(t *testing.T) {
	s, m := newTestServer(t)

	msg := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"color_scheme","arguments":{"color":"red","scheme":"polyad","n":1e15}}}`
	resp := s.MCPServer().HandleMessage(context.Background(), json.RawMessage(msg))

	rpc, ok := resp.(mcp.JSONRPCResponse)
	require.True(t, ok, "expected a response, got %#v", resp)
	result, ok := rpc.Result.(mcp.CallToolResult)
	require.True(t, ok, "expected a tool result, got %#v", rpc.Result)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, &result), "n must be at most 360")
	assert.Equal(t, int64(1), m.Snapshot().ToolErrors)
}

func TestHandleContrast(t *testing.T) {
	s, _ := newTestServer(t)

	result, err := s.HandleContrast(context.Background(), request("color_contrast", map[string]interface{}{
		"color1": "black",
		"color2": "white",
		"level":  "AAA",
	}))
	require.NoError(t, err)

	var got ops.Contrast
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &got))
	assert.InDelta(t, 21, got.Ratio, 1e-9)
	assert.Equal(t, ops.Contrast{Ratio: got.Ratio, AASmall: true, AALarge: true, AAASmall: true, AAALarge: true, Readable: true}, got)
}

func TestHandleMostReadable(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{
			name: "highest contrast wins",
			args: map[string]interface{}{"base": "#ffffff", "candidates": "#eeeeee, rgb(0, 0, 0)", "format": "hex"},
			want: "#000000",
		},
		{
			name: "best candidate without fallback",
			args: map[string]interface{}{"base": "#ff0088", "candidates": "#ff0000,#ff0044"},
			want: "#ff0000",
		},
		{
			name: "fallback when nothing is readable",
			args: map[string]interface{}{"base": "#ff0088", "candidates": "#ff0000", "include_fallback": true, "format": "hex"},
			want: "#000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.HandleMostReadable(ctx, request("color_most_readable", tt.args))
			require.NoError(t, err)
			assert.False(t, result.IsError, resultText(t, result))
			assert.Equal(t, tt.want, resultText(t, result))
		})
	}
}

func TestHandleMostReadable_Errors(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	for _, args := range []map[string]interface{}{
		{"base": "#fff"},
		{"base": "#fff", "candidates": " , "},
		{"base": "#fff", "candidates": "#000, nope"},
		{"base": "nope", "candidates": "#000"},
	} {
		result, err := s.HandleMostReadable(ctx, request("color_most_readable", args))
		assert.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError, "%v", args)
	}
}

func TestSplitCandidates(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"red", []string{"red"}},
		{"red, blue", []string{"red", "blue"}},
		{"rgb(1, 2, 3),hsl(0, 100%, 50%)", []string{"rgb(1, 2, 3)", "hsl(0, 100%, 50%)"}},
		{" , ,", []string{}},
	}

	for _, tt := range tests {
		got := splitCandidates(tt.input)
		if len(tt.want) == 0 {
			assert.Empty(t, got, tt.input)
			continue
		}
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestHandleNames(t *testing.T) {
	s, _ := newTestServer(t)

	result, err := s.HandleNames(context.Background(), request("color_names", map[string]interface{}{
		"filter": "Rebecca",
	}))
	require.NoError(t, err)
	assert.Equal(t, "rebeccapurple #663399\n", resultText(t, result))

	result, err = s.HandleNames(context.Background(), request("color_names", map[string]interface{}{}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "aliceblue #f0f8ff\n")
}

func TestInstrumentRecordsMetrics(t *testing.T) {
	s, m := newTestServer(t)
	ctx := context.Background()

	handlers := make(map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error))
	for _, tool := range s.Tools() {
		handlers[tool.Tool.Name] = tool.Handler
	}

	_, err := handlers["color_convert"](ctx, request("color_convert", map[string]interface{}{"color": "red"}))
	require.NoError(t, err)
	_, err = handlers["color_convert"](ctx, request("color_convert", map[string]interface{}{"color": "nope"}))
	require.NoError(t, err)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.ToolCalls)
	assert.Equal(t, int64(1), snap.ToolErrors)
	assert.Equal(t, int64(2), snap.Parses)
	assert.Equal(t, int64(1), snap.InvalidInputs)
}
