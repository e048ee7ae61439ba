package tools

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RakeemRanger/bls-mcp/internal/adapter/bls"
	"github.com/RakeemRanger/bls-mcp/internal/config"
	"github.com/RakeemRanger/bls-mcp/internal/domain"
	"github.com/RakeemRanger/bls-mcp/internal/observability"
)

// stubSource serves canned data, or a single error for every method.
type stubSource struct {
	records       map[string][]domain.SeriesRecord
	searchResults []bls.SearchResult
	all           map[string][]domain.SeriesRecord
	catalog       []domain.CatalogEntry
	stateRecords  []domain.SeriesRecord
	countyRecords []domain.SeriesRecord
	err           error
}

func (s *stubSource) Series(_ context.Context, id string) ([]domain.SeriesRecord, error) {
	return s.records[id], s.err
}

func (s *stubSource) Search(_ context.Context, _ string) ([]bls.SearchResult, error) {
	return s.searchResults, s.err
}

func (s *stubSource) AllSeries(_ context.Context) (map[string][]domain.SeriesRecord, error) {
	return s.all, s.err
}

func (s *stubSource) Catalog() []domain.CatalogEntry {
	return s.catalog
}

func (s *stubSource) StateData(_ context.Context, state, _ string, _, _ int) ([]domain.SeriesRecord, error) {
	if s.err == nil && s.stateRecords == nil {
		return nil, domain.ErrUnknownRegion
	}
	return s.stateRecords, s.err
}

func (s *stubSource) CountyData(_ context.Context, _, _, _ string, _, _ int) ([]domain.SeriesRecord, error) {
	return s.countyRecords, s.err
}

func testToolkit(source SeriesSource) *Toolkit {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(source, logger, observability.NewMetricsForTesting())
}

func TestToolkit_SeriesData(t *testing.T) {
	t.Run("maps records", func(t *testing.T) {
		source := &stubSource{records: map[string][]domain.SeriesRecord{
			"LNS14000000": {
				{SeriesID: "LNS14000000", SeriesName: "Unemployment Rate", Year: "2023", Period: "M12", Value: "3.7", Footnotes: "Preliminary"},
			},
		}}

		records := testToolkit(source).SeriesData(context.Background(), "LNS14000000")
		require.Len(t, records, 1)
		assert.Equal(t, "LNS14000000", records[0].SeriesID)
		assert.Equal(t, "Unemployment Rate", records[0].SeriesName)
		assert.Equal(t, "3.7", records[0].Value)
		assert.Equal(t, "Preliminary", records[0].Footnotes)
		assert.Empty(t, records[0].Error)
	})

	t.Run("unknown series becomes an error record", func(t *testing.T) {
		records := testToolkit(&stubSource{}).SeriesData(context.Background(), "BOGUS")
		require.Len(t, records, 1)
		assert.Equal(t, "No data found for series ID: BOGUS", records[0].Error)
		assert.Empty(t, records[0].SeriesID)
	})

	t.Run("source failure becomes an error record", func(t *testing.T) {
		source := &stubSource{err: errors.New("connection refused")}
		records := testToolkit(source).SeriesData(context.Background(), "LNS14000000")
		require.Len(t, records, 1)
		assert.Contains(t, records[0].Error, "Request failed")
		assert.Contains(t, records[0].Error, "connection refused")
	})
}

func TestToolkit_SearchSeries(t *testing.T) {
	t.Run("matches", func(t *testing.T) {
		source := &stubSource{searchResults: []bls.SearchResult{
			{SeriesID: "LNS14000000", SeriesName: "Unemployment Rate", LatestValue: "3.7", LatestPeriod: "2023 M12"},
		}}

		resp := testToolkit(source).SearchSeries(context.Background(), "unemployment")
		require.Len(t, resp.Results, 1)
		assert.Empty(t, resp.Message)
	})

	t.Run("no matches returns a message", func(t *testing.T) {
		resp := testToolkit(&stubSource{}).SearchSeries(context.Background(), "zzzzz")
		assert.Empty(t, resp.Results)
		assert.Contains(t, resp.Message, "zzzzz")
	})

	t.Run("source failure returns a message", func(t *testing.T) {
		source := &stubSource{err: errors.New("boom")}
		resp := testToolkit(source).SearchSeries(context.Background(), "cpi")
		assert.Empty(t, resp.Results)
		assert.Contains(t, resp.Message, "Request failed")
	})
}

func TestToolkit_ListSeries(t *testing.T) {
	source := &stubSource{catalog: []domain.CatalogEntry{
		{SeriesID: "A", Name: "Series A", Category: "cpi"},
		{SeriesID: "B", Name: "Series B", Category: "ppi"},
	}}

	entries := testToolkit(source).ListSeries()
	require.Len(t, entries, 2)
	assert.Equal(t, "A", entries[0].SeriesID)
}

func TestToolkit_AllData(t *testing.T) {
	rec := func(id, name, value string, n int) []domain.SeriesRecord {
		records := make([]domain.SeriesRecord, n)
		for i := range records {
			records[i] = domain.SeriesRecord{SeriesID: id, SeriesName: name, Year: "2023", Period: "M12", Value: value}
		}
		return records
	}

	source := &stubSource{
		catalog: []domain.CatalogEntry{
			{SeriesID: "CUUR0000SA0", Name: "CPI"},
			{SeriesID: "LNS14000000", Name: "Unemployment Rate"},
			{SeriesID: "WPUFD4", Name: "PPI"},
		},
		all: map[string][]domain.SeriesRecord{
			"LNS14000000":          rec("LNS14000000", "Unemployment Rate", "3.7", 36),
			"CUUR0000SA0":          rec("CUUR0000SA0", "CPI", "307.0", 24),
			"WPUFD4":               {},
			"LASST390000000000003": rec("LASST390000000000003", "Ohio - Unemployment Rate", "4.1", 12),
		},
	}

	summaries := testToolkit(source).AllData(context.Background())

	// Catalog series in table order first; on-demand extras follow; empty
	// series are skipped.
	require.Len(t, summaries, 3)
	assert.Equal(t, "CUUR0000SA0", summaries[0].SeriesID)
	assert.Equal(t, "LNS14000000", summaries[1].SeriesID)
	assert.Equal(t, "LASST390000000000003", summaries[2].SeriesID)

	assert.Equal(t, "307.0", summaries[0].LatestValue)
	assert.Equal(t, "2023 M12", summaries[0].LatestPeriod)
	assert.Equal(t, 24, summaries[0].TotalRecords)
}

func TestToolkit_StateData(t *testing.T) {
	t.Run("maps records", func(t *testing.T) {
		source := &stubSource{stateRecords: []domain.SeriesRecord{
			{SeriesID: "LASST390000000000003", SeriesName: "Ohio - Unemployment Rate", State: "Ohio", Year: "2023", Period: "M12", Value: "4.1"},
		}}

		records := testToolkit(source).StateData(context.Background(), "OH", "03", 2021, 2023)
		require.Len(t, records, 1)
		assert.Equal(t, "Ohio", records[0].State)
		assert.Empty(t, records[0].Error)
	})

	t.Run("unknown state mentions the input", func(t *testing.T) {
		records := testToolkit(&stubSource{}).StateData(context.Background(), "Atlantis", "03", 0, 0)
		require.Len(t, records, 1)
		assert.Contains(t, records[0].Error, "Atlantis")
		assert.Contains(t, records[0].Error, "abbreviation")
	})

	t.Run("fetch failure becomes an error record", func(t *testing.T) {
		source := &stubSource{err: errors.New("timeout")}
		records := testToolkit(source).StateData(context.Background(), "OH", "03", 0, 0)
		require.Len(t, records, 1)
		assert.Contains(t, records[0].Error, "Request failed")
	})
}

func TestToolkit_CountyData(t *testing.T) {
	t.Run("maps records", func(t *testing.T) {
		source := &stubSource{countyRecords: []domain.SeriesRecord{
			{SeriesID: "LAUCN390490000000003", SeriesName: "Franklin County, OH - Unemployment Rate", County: "Franklin County, OH", Year: "2023", Period: "M12", Value: "3.9"},
		}}

		records := testToolkit(source).CountyData(context.Background(), "39049", "Franklin County, OH", "03", 2021, 2023)
		require.Len(t, records, 1)
		assert.Equal(t, "Franklin County, OH", records[0].County)
	})

	t.Run("fetch failure becomes an error record", func(t *testing.T) {
		source := &stubSource{err: errors.New("unreachable")}
		records := testToolkit(source).CountyData(context.Background(), "39049", "", "03", 0, 0)
		require.Len(t, records, 1)
		assert.Contains(t, records[0].Error, "Request failed")
	})
}

func TestToolkit_ListStates(t *testing.T) {
	listings := testToolkit(&stubSource{}).ListStates()
	require.Len(t, listings, 52)

	assert.Equal(t, "Alabama", listings[0].State)

	var ohio StateListing
	for _, l := range listings {
		if l.State == "Ohio" {
			ohio = l
		}
	}
	assert.Equal(t, "OH", ohio.Abbreviation)
	assert.Equal(t, "39", ohio.FIPS)
	assert.Equal(t, "LASST390000000000003", ohio.ExampleSeriesID)
}

// The soft-failure contract end to end: a real client pointed at a dead
// endpoint produces a one-element error record, never a Go error.
func TestToolkit_UnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(nil)
	deadURL := srv.URL
	srv.Close()

	cfg := &config.Config{
		BLSBaseURL: deadURL,
		BLSTimeout: time.Second,
		CacheTTL:   time.Hour,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := bls.NewClient(cfg, logger, observability.NewMetricsForTesting())

	records := testToolkit(client).StateData(context.Background(), "OH", "", 2021, 2023)
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Error, "Request failed")
	assert.Empty(t, records[0].Value)
}
