// Package mcptools exposes the calculators as Model Context Protocol tools.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tartampluch/go-folio/internal/calculator"
	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/engine"
	"github.com/tartampluch/go-folio/internal/i18n"
	"github.com/tartampluch/go-folio/internal/units"
)

// Tools holds what the tool handlers share.
type Tools struct {
	clock   engine.Clock
	catalog *i18n.Catalog
}

// New returns the tool set. A nil clock selects the wall clock.
func New(clock engine.Clock, catalog *i18n.Catalog) *Tools {
	if clock == nil {
		clock = engine.RealClock{}
	}
	if catalog == nil {
		catalog = i18n.Load()
	}
	return &Tools{clock: clock, catalog: catalog}
}

// NewServer builds an MCP server with every calculator tool registered.
func NewServer(t *Tools) *server.MCPServer {
	s := server.NewMCPServer(
		config.MCPServerName,
		config.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	t.Register(s)
	return s
}

// Serve runs the server on stdin/stdout until the client disconnects.
func Serve(s *server.MCPServer) error {
	slog.Info(config.MsgMCPStarting, config.LogKeyComponent, config.CompMCP)
	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("%s: %w", config.ErrMCPServe, err)
	}
	return nil
}

// Register adds the tools to s.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool(config.ToolConvert,
		mcp.WithDescription("Convert a value between two units of the same category"),
		mcp.WithString(config.ArgCategory,
			mcp.Required(),
			mcp.Description("Unit category"),
			mcp.Enum("length", "weight", "temperature", "volume", "area", "speed"),
		),
		mcp.WithString(config.ArgFrom, mcp.Required(), mcp.Description("Source unit key, e.g. cm, kg, celsius")),
		mcp.WithString(config.ArgTo, mcp.Required(), mcp.Description("Target unit key, e.g. in, lbs, fahrenheit")),
		mcp.WithString(config.ArgValue, mcp.Required(), mcp.Description("Decimal value; a decimal comma is accepted")),
	), t.convert)

	s.AddTool(mcp.NewTool(config.ToolAge,
		mcp.WithDescription("Compute an age breakdown, totals, zodiac sign and the next birthday"),
		mcp.WithString(config.ArgBirth, mcp.Required(), mcp.Description("Birth date, YYYY-MM-DD")),
		mcp.WithString(config.ArgNow, mcp.Description("Reference date or RFC 3339 timestamp, defaults to now")),
		mcp.WithString(config.ArgLanguage, mcp.Description("Language of the summary (en, fr)")),
	), t.age)

	s.AddTool(mcp.NewTool(config.ToolDifference,
		mcp.WithDescription("Compute the calendar distance, totals and working days between two dates"),
		mcp.WithString(config.ArgStart, mcp.Required(), mcp.Description("Start date, YYYY-MM-DD")),
		mcp.WithString(config.ArgEnd, mcp.Required(), mcp.Description("End date, YYYY-MM-DD")),
		mcp.WithString(config.ArgLanguage, mcp.Description("Language of the description (en, fr)")),
	), t.difference)

	s.AddTool(mcp.NewTool(config.ToolEvaluate,
		mcp.WithDescription("Evaluate an arithmetic expression with scientific functions, e.g. 2 × (3 + 4)^2 ÷ sin(30)"),
		mcp.WithString(config.ArgExpression, mcp.Required(), mcp.Description("Expression to evaluate")),
		mcp.WithString(config.ArgAngleMode,
			mcp.Description("Unit of trigonometric arguments"),
			mcp.Enum(string(calculator.Degrees), string(calculator.Radians)),
		),
	), t.evaluate)

	s.AddTool(mcp.NewTool(config.ToolKeys,
		mcp.WithDescription("Press calculator keys in order and return the resulting display, e.g. \"2 + 3 + 4 =\""),
		mcp.WithString(config.ArgKeys, mcp.Required(), mcp.Description("Whitespace separated key labels")),
	), t.keys)
}

type convertResult struct {
	Category  units.Category `json:"category"`
	From      string         `json:"from"`
	To        string         `json:"to"`
	Value     float64        `json:"value"`
	Formatted string         `json:"formatted"`
}

func (t *Tools) convert(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, ok := units.ParseCategory(req.GetString(config.ArgCategory, ""))
	if !ok {
		return mcp.NewToolResultError(config.ErrUnknownCategory), nil
	}
	table, _ := units.Lookup(category)
	from, to := req.GetString(config.ArgFrom, ""), req.GetString(config.ArgTo, "")
	for _, key := range []string{from, to} {
		if !table.Has(key) {
			return mcp.NewToolResultError(config.ErrUnknownUnit + ": " + key), nil
		}
	}

	v, ok := units.ConvertText(category, from, to, req.GetString(config.ArgValue, ""))
	if !ok {
		return mcp.NewToolResultError(config.ErrValueNotNumber), nil
	}
	return jsonResult(convertResult{
		Category:  category,
		From:      from,
		To:        to,
		Value:     v,
		Formatted: units.FormatValue(v, config.ResultDecimals),
	})
}

type ageResult struct {
	engine.Age
	BirthDay string `json:"birthDay"`
	Summary  string `json:"summary"`
}

func (t *Tools) age(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	birth, err := req.RequireString(config.ArgBirth)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	now := req.GetString(config.ArgNow, "")
	if now == "" {
		now = t.clock.Now().Format(time.RFC3339)
	}

	a, ok := engine.ComputeAgeISO(birth, now)
	if !ok {
		return mcp.NewToolResultError(config.ErrBirthNotReady), nil
	}
	tr := t.catalog.For(req.GetString(config.ArgLanguage, config.DefaultLanguage))
	return jsonResult(ageResult{
		Age:      a,
		BirthDay: tr.Weekday(a.BirthDay),
		Summary: tr.Format(config.TKeyAgeSummary, map[string]any{
			"Years": a.Years, "Months": a.Months, "Days": a.Days,
		}),
	})
}

type differenceResult struct {
	engine.Difference
	Description string `json:"description"`
}

func (t *Tools) difference(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, ok := engine.ComputeDifferenceISO(req.GetString(config.ArgStart, ""), req.GetString(config.ArgEnd, ""))
	if !ok {
		return mcp.NewToolResultError(config.ErrRangeNotReady), nil
	}
	tr := t.catalog.For(req.GetString(config.ArgLanguage, config.DefaultLanguage))
	return jsonResult(differenceResult{Difference: d, Description: tr.Describe(d)})
}

type evaluateResult struct {
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

func (t *Tools) evaluate(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr, err := req.RequireString(config.ArgExpression)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	v, err := calculator.Evaluate(expr, calculator.ParseAngleMode(req.GetString(config.ArgAngleMode, "")))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(evaluateResult{Value: v, Display: calculator.FormatNumber(v)})
}

func (t *Tools) keys(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seq, err := req.RequireString(config.ArgKeys)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	keys, err := calculator.ParseKeys(seq)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(calculator.Run(keys...))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrToolResult, err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
