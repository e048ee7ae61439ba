// Package tools is the data boundary consumed by the MCP, HTTP, and CLI
// surfaces. Its methods never return Go errors for user input or upstream
// failures: problems travel as data (error records or message envelopes) so
// transports can hand them to callers verbatim.
package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/RakeemRanger/bls-mcp/internal/adapter/bls"
	"github.com/RakeemRanger/bls-mcp/internal/domain"
	"github.com/RakeemRanger/bls-mcp/internal/observability"
)

// SeriesSource is the slice of the BLS client the toolkit consumes.
type SeriesSource interface {
	Series(ctx context.Context, id string) ([]domain.SeriesRecord, error)
	Search(ctx context.Context, keyword string) ([]bls.SearchResult, error)
	AllSeries(ctx context.Context) (map[string][]domain.SeriesRecord, error)
	Catalog() []domain.CatalogEntry
	StateData(ctx context.Context, state, measure string, startYear, endYear int) ([]domain.SeriesRecord, error)
	CountyData(ctx context.Context, countyFIPS, countyName, measure string, startYear, endYear int) ([]domain.SeriesRecord, error)
}

// Record is one tool-facing observation. Either the data fields or Error is
// populated, never both; a failure becomes a one-element []Record.
type Record struct {
	SeriesID   string `json:"series_id,omitempty"`
	SeriesName string `json:"series_name,omitempty"`
	State      string `json:"state,omitempty"`
	County     string `json:"county,omitempty"`
	Year       string `json:"year,omitempty"`
	Period     string `json:"period,omitempty"`
	Value      string `json:"value,omitempty"`
	Footnotes  string `json:"footnotes,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SearchResponse carries either matches or a human-readable miss message.
type SearchResponse struct {
	Results []bls.SearchResult `json:"results,omitempty"`
	Message string             `json:"message,omitempty"`
}

// SeriesSummary condenses one cached series to its latest observation.
type SeriesSummary struct {
	SeriesID     string `json:"series_id"`
	SeriesName   string `json:"series_name"`
	LatestValue  string `json:"latest_value"`
	LatestPeriod string `json:"latest_period"`
	TotalRecords int    `json:"total_records"`
}

// StateListing is one row of the list_us_states output.
type StateListing struct {
	State           string `json:"state"`
	Abbreviation    string `json:"abbreviation"`
	FIPS            string `json:"fips"`
	ExampleSeriesID string `json:"example_series_id"`
}

// Toolkit exposes BLS data to tool callers.
type Toolkit struct {
	source  SeriesSource
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New builds a toolkit around a series source.
func New(source SeriesSource, logger *slog.Logger, metrics *observability.Metrics) *Toolkit {
	return &Toolkit{source: source, logger: logger, metrics: metrics}
}

// SeriesData returns every cached observation for one series ID. An unknown
// ID or a failed refresh yields a one-element error record.
func (t *Toolkit) SeriesData(ctx context.Context, seriesID string) []Record {
	records, err := t.source.Series(ctx, seriesID)
	if err != nil {
		t.logger.Warn("series data fetch failed", "series_id", seriesID, "error", err)
		t.observe("get_bls_series_data", false)
		return errorRecord("Request failed: " + err.Error())
	}
	if len(records) == 0 {
		t.observe("get_bls_series_data", false)
		return errorRecord("No data found for series ID: " + seriesID)
	}
	t.observe("get_bls_series_data", true)
	return fromDomain(records)
}

// SearchSeries matches a keyword against catalog names.
func (t *Toolkit) SearchSeries(ctx context.Context, keyword string) SearchResponse {
	results, err := t.source.Search(ctx, keyword)
	if err != nil {
		t.logger.Warn("series search failed", "keyword", keyword, "error", err)
		t.observe("search_bls_series", false)
		return SearchResponse{Message: "Request failed: " + err.Error()}
	}
	if len(results) == 0 {
		t.observe("search_bls_series", true)
		return SearchResponse{Message: fmt.Sprintf("No series found matching %q", keyword)}
	}
	t.observe("search_bls_series", true)
	return SearchResponse{Results: results}
}

// ListSeries lists the tracked catalog without touching the network.
func (t *Toolkit) ListSeries() []domain.CatalogEntry {
	t.observe("list_available_bls_series", true)
	return t.source.Catalog()
}

// AllData summarizes every cached series: latest observation plus record
// count. Catalog series come first in table order; on-demand extras follow
// sorted by ID. Series with no records are skipped.
func (t *Toolkit) AllData(ctx context.Context) []SeriesSummary {
	all, err := t.source.AllSeries(ctx)
	if err != nil {
		t.logger.Warn("bulk data fetch failed", "error", err)
		t.observe("get_all_bls_data", false)
		return nil
	}
	t.observe("get_all_bls_data", true)

	var summaries []SeriesSummary
	seen := make(map[string]bool, len(all))

	appendSummary := func(id string) {
		records := all[id]
		if len(records) == 0 {
			return
		}
		latest := records[0]
		summaries = append(summaries, SeriesSummary{
			SeriesID:     id,
			SeriesName:   latest.SeriesName,
			LatestValue:  latest.Value,
			LatestPeriod: latest.PeriodLabel(),
			TotalRecords: len(records),
		})
		seen[id] = true
	}

	for _, e := range t.source.Catalog() {
		if _, ok := all[e.SeriesID]; ok {
			appendSummary(e.SeriesID)
		}
	}

	var extras []string
	for id := range all {
		if !seen[id] {
			extras = append(extras, id)
		}
	}
	sort.Strings(extras)
	for _, id := range extras {
		appendSummary(id)
	}

	return summaries
}

// StateData returns LAUS records for a state given by name, abbreviation, or
// FIPS code. Resolution and fetch failures become a one-element error record.
func (t *Toolkit) StateData(ctx context.Context, state, measure string, startYear, endYear int) []Record {
	records, err := t.source.StateData(ctx, state, measure, startYear, endYear)
	if err != nil {
		t.observe("get_state_labor_data", false)
		if errors.Is(err, domain.ErrUnknownRegion) {
			return errorRecord(fmt.Sprintf("Unknown state: %q. Use a state name, abbreviation, or FIPS code.", state))
		}
		t.logger.Warn("state data fetch failed", "state", state, "error", err)
		return errorRecord("Request failed: " + err.Error())
	}
	t.observe("get_state_labor_data", true)
	return fromDomain(records)
}

// CountyData returns LAUS records for a 5-digit county FIPS code.
func (t *Toolkit) CountyData(ctx context.Context, countyFIPS, countyName, measure string, startYear, endYear int) []Record {
	records, err := t.source.CountyData(ctx, countyFIPS, countyName, measure, startYear, endYear)
	if err != nil {
		t.observe("get_county_labor_data", false)
		t.logger.Warn("county data fetch failed", "county_fips", countyFIPS, "error", err)
		return errorRecord("Request failed: " + err.Error())
	}
	t.observe("get_county_labor_data", true)
	return fromDomain(records)
}

// ListStates lists every known state with its FIPS code and an example
// series ID, sorted by name.
func (t *Toolkit) ListStates() []StateListing {
	t.observe("list_us_states", true)

	states := domain.States()
	out := make([]StateListing, len(states))
	for i, s := range states {
		out[i] = StateListing{
			State:           s.Name,
			Abbreviation:    s.Abbreviation,
			FIPS:            s.FIPS,
			ExampleSeriesID: domain.StateSeriesID(s.FIPS, domain.MeasureUnemploymentRate, domain.SeasonallyAdjusted),
		}
	}
	return out
}

func (t *Toolkit) observe(tool string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	t.metrics.ToolCalls.WithLabelValues(tool, outcome).Inc()
}

func errorRecord(msg string) []Record {
	return []Record{{Error: msg}}
}

func fromDomain(records []domain.SeriesRecord) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = Record{
			SeriesID:   r.SeriesID,
			SeriesName: r.SeriesName,
			State:      r.State,
			County:     r.County,
			Year:       r.Year,
			Period:     r.Period,
			Value:      r.Value,
			Footnotes:  r.Footnotes,
		}
	}
	return out
}
