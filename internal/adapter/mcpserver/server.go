// Package mcpserver registers the BLS toolkit as MCP tools and serves them
// over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/RakeemRanger/bls-mcp/internal/tools"
)

const (
	serverName    = "bls-mcp"
	serverVersion = "1.0.0"
)

// Server wires toolkit methods to MCP tool definitions. Tool handlers answer
// with JSON text content; upstream failures arrive inside that JSON (the
// toolkit's error records), so a handler error means the caller sent
// malformed arguments.
type Server struct {
	mcp     *server.MCPServer
	toolkit *tools.Toolkit
	logger  *slog.Logger
}

// New builds the MCP server and registers every tool.
func New(kit *tools.Toolkit, logger *slog.Logger) *Server {
	s := &Server{
		mcp: server.NewMCPServer(
			serverName,
			serverVersion,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		toolkit: kit,
		logger:  logger,
	}
	s.registerTools()
	return s
}

// Serve runs the stdio transport until stdin closes or the client disconnects.
func (s *Server) Serve() error {
	s.logger.Info("mcp server starting", "name", serverName, "version", serverVersion)
	if err := server.ServeStdio(s.mcp); err != nil {
		return fmt.Errorf("mcp stdio server: %w", err)
	}
	return nil
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("get_bls_series_data",
		mcp.WithDescription("Get all cached observations for one BLS series ID."),
		mcp.WithString("series_id",
			mcp.Required(),
			mcp.Description("BLS series ID, for example LNS14000000 or CUUR0000SA0."),
		),
	), s.handleSeriesData)

	s.mcp.AddTool(mcp.NewTool("search_bls_series",
		mcp.WithDescription("Search tracked BLS series by keyword against series names."),
		mcp.WithString("keyword",
			mcp.Required(),
			mcp.Description("Case-insensitive substring to match, for example 'unemployment'."),
		),
	), s.handleSearch)

	s.mcp.AddTool(mcp.NewTool("list_available_bls_series",
		mcp.WithDescription("List every BLS series this server tracks, with IDs, names, and categories."),
	), s.handleListSeries)

	s.mcp.AddTool(mcp.NewTool("get_all_bls_data",
		mcp.WithDescription("Summarize the latest observation of every cached BLS series."),
	), s.handleAllData)

	s.mcp.AddTool(mcp.NewTool("get_state_labor_data",
		mcp.WithDescription("Get LAUS labor force data for a US state."),
		mcp.WithString("state",
			mcp.Required(),
			mcp.Description("State name, two-letter abbreviation, or FIPS code."),
		),
		mcp.WithString("measure",
			mcp.Description("LAUS measure code: 03 unemployment rate, 04 unemployment, 05 employment, 06 labor force. Defaults to 03."),
		),
		mcp.WithNumber("start_year",
			mcp.Description("First year of data. Defaults to two years before the latest complete year."),
		),
		mcp.WithNumber("end_year",
			mcp.Description("Last year of data. Defaults to the latest complete year."),
		),
	), s.handleStateData)

	s.mcp.AddTool(mcp.NewTool("get_county_labor_data",
		mcp.WithDescription("Get LAUS labor force data for a US county by FIPS code."),
		mcp.WithString("county_fips",
			mcp.Required(),
			mcp.Description("5-digit county FIPS code, for example 39049 for Franklin County, OH."),
		),
		mcp.WithString("county_name",
			mcp.Description("Optional display name for the county."),
		),
		mcp.WithString("measure",
			mcp.Description("LAUS measure code: 03 unemployment rate, 04 unemployment, 05 employment, 06 labor force. Defaults to 03."),
		),
		mcp.WithNumber("start_year",
			mcp.Description("First year of data. Defaults to two years before the latest complete year."),
		),
		mcp.WithNumber("end_year",
			mcp.Description("Last year of data. Defaults to the latest complete year."),
		),
	), s.handleCountyData)

	s.mcp.AddTool(mcp.NewTool("list_us_states",
		mcp.WithDescription("List US states with FIPS codes and example LAUS series IDs."),
	), s.handleListStates)
}

func (s *Server) handleSeriesData(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seriesID, err := req.RequireString("series_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.toolkit.SeriesData(ctx, seriesID))
}

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword, err := req.RequireString("keyword")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.toolkit.SearchSeries(ctx, keyword))
}

func (s *Server) handleListSeries(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.toolkit.ListSeries())
}

func (s *Server) handleAllData(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.toolkit.AllData(ctx))
}

func (s *Server) handleStateData(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := req.RequireString("state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	measure := req.GetString("measure", "")
	startYear := req.GetInt("start_year", 0)
	endYear := req.GetInt("end_year", 0)
	return jsonResult(s.toolkit.StateData(ctx, state, measure, startYear, endYear))
}

func (s *Server) handleCountyData(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	countyFIPS, err := req.RequireString("county_fips")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	countyName := req.GetString("county_name", "")
	measure := req.GetString("measure", "")
	startYear := req.GetInt("start_year", 0)
	endYear := req.GetInt("end_year", 0)
	return jsonResult(s.toolkit.CountyData(ctx, countyFIPS, countyName, measure, startYear, endYear))
}

func (s *Server) handleListStates(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.toolkit.ListStates())
}

// jsonResult marshals a toolkit value into MCP text content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
