package bls

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/RakeemRanger/bls-mcp/internal/config"
	"github.com/RakeemRanger/bls-mcp/internal/domain"
	"github.com/RakeemRanger/bls-mcp/internal/observability"
)

// API tier limits. v1 is public; v2 requires a registration key and allows
// larger batches and longer year spans.
const (
	unregisteredBatchLimit = 25
	registeredBatchLimit   = 50
)

// Fetch mode labels for logs and metrics.
const (
	modeBulk     = "bulk"
	modeOnDemand = "on_demand"
)

// AccessMode captures the API tier fixed at construction: which endpoint
// version to call and how many series fit in one request.
type AccessMode struct {
	Registered   bool
	Version      string
	MaxBatchSize int
}

// ModeFor selects the access tier for a registration key.
func ModeFor(apiKey string) AccessMode {
	if apiKey == "" {
		return AccessMode{Registered: false, Version: "v1", MaxBatchSize: unregisteredBatchLimit}
	}
	return AccessMode{Registered: true, Version: "v2", MaxBatchSize: registeredBatchLimit}
}

func (m AccessMode) endpoint(baseURL string) string {
	return baseURL + "/" + m.Version + "/timeseries/data/"
}

// Client fetches BLS time series over the public API and caches them in
// memory. Every fetch path funnels through fetchBatch, which paces requests
// and enforces the wire contract; the access mode caps batch sizes.
type Client struct {
	apiKey     string
	mode       AccessMode
	apiURL     string
	httpClient *http.Client
	limiter    *rate.Limiter
	catalog    []domain.CatalogEntry
	cache      *seriesCache
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient builds a client from config. The access mode is derived from the
// API key once and never changes for the client's lifetime.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Client {
	mode := ModeFor(cfg.BLSAPIKey)

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.RequestInterval), 1)
	}

	logger.Info("bls client initialized",
		"registered", mode.Registered,
		"batch_size", mode.MaxBatchSize,
	)

	return &Client{
		apiKey:     cfg.BLSAPIKey,
		mode:       mode,
		apiURL:     mode.endpoint(cfg.BLSBaseURL),
		httpClient: &http.Client{Timeout: cfg.BLSTimeout},
		limiter:    limiter,
		catalog:    domain.Catalog(),
		cache:      newSeriesCache(cfg.CacheTTL),
		logger:     logger,
		metrics:    metrics,
	}
}

// Mode returns the access tier fixed at construction.
func (c *Client) Mode() AccessMode {
	return c.mode
}

// Catalog lists the series tracked by bulk fetches, in table order.
func (c *Client) Catalog() []domain.CatalogEntry {
	out := make([]domain.CatalogEntry, len(c.catalog))
	copy(out, c.catalog)
	return out
}

// FetchAll refreshes the snapshot of every catalog series. While the cache is
// fresh this is a no-op, so callers may invoke it before every read. Chunk
// failures are logged and skipped; the refresh stamp advances regardless, so
// failed series wait for the next full cycle instead of retrying hot. Returns
// an error only when the context is canceled mid-refresh.
func (c *Client) FetchAll(ctx context.Context, startYear, endYear int) error {
	if c.cache.valid() {
		c.metrics.RefreshSkipped.Inc()
		c.logger.Debug("series cache still fresh, skipping fetch")
		return nil
	}

	startYear, endYear = defaultYears(startYear, endYear)

	ids := make([]string, len(c.catalog))
	for i, e := range c.catalog {
		ids[i] = e.SeriesID
	}

	c.logger.Info("fetching all series",
		"series", len(ids),
		"start_year", startYear,
		"end_year", endYear,
		"batch_size", c.mode.MaxBatchSize,
	)

	for _, batch := range chunkIDs(ids, c.mode.MaxBatchSize) {
		series, err := c.fetchBatch(ctx, batch, startYear, endYear, modeBulk)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("fetch all series: %w", ctx.Err())
			}
			c.logger.Error("series batch fetch failed", "series", len(batch), "error", err)
			continue
		}
		for _, s := range series {
			base := domain.SeriesRecord{
				SeriesID:   s.SeriesID,
				SeriesName: domain.SeriesName(s.SeriesID),
			}
			c.cache.put(s.SeriesID, recordsFromSeries(s, base))
		}
	}

	c.cache.markRefreshed()
	c.metrics.CachedSeries.Set(float64(c.cache.size()))
	c.logger.Info("series cached", "series", c.cache.size())
	return nil
}

// Series returns the records for one catalog series, refreshing the snapshot
// first when stale. IDs outside the catalog yield an empty slice, not an error.
func (c *Client) Series(ctx context.Context, id string) ([]domain.SeriesRecord, error) {
	if err := c.FetchAll(ctx, 0, 0); err != nil {
		return nil, err
	}

	records, ok := c.cache.get(id)
	if ok {
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
	} else {
		c.metrics.CacheLookups.WithLabelValues("miss").Inc()
	}
	return records, nil
}

// SearchResult pairs a catalog hit with its most recent observation.
type SearchResult struct {
	SeriesID     string `json:"series_id"`
	SeriesName   string `json:"series_name"`
	LatestValue  string `json:"latest_value,omitempty"`
	LatestPeriod string `json:"latest_period,omitempty"`
}

// Search matches keyword against catalog display names, case-insensitively.
// Results keep catalog order, so repeated searches return identical slices.
func (c *Client) Search(ctx context.Context, keyword string) ([]SearchResult, error) {
	if err := c.FetchAll(ctx, 0, 0); err != nil {
		return nil, err
	}

	needle := strings.ToLower(keyword)
	var results []SearchResult
	for _, e := range c.catalog {
		if !strings.Contains(strings.ToLower(e.Name), needle) {
			continue
		}
		result := SearchResult{SeriesID: e.SeriesID, SeriesName: e.Name}
		// The API orders data newest first, so the head record is the latest.
		if records, ok := c.cache.get(e.SeriesID); ok && len(records) > 0 {
			result.LatestValue = records[0].Value
			result.LatestPeriod = records[0].PeriodLabel()
		}
		results = append(results, result)
	}
	return results, nil
}

// AllSeries refreshes the snapshot if stale and returns it keyed by series ID.
func (c *Client) AllSeries(ctx context.Context) (map[string][]domain.SeriesRecord, error) {
	if err := c.FetchAll(ctx, 0, 0); err != nil {
		return nil, err
	}
	return c.cache.snapshot(), nil
}

// StateData returns LAUS records for a state given by name, abbreviation, or
// FIPS code. The snapshot is consulted first; a miss triggers a single-series
// fetch that is cached but leaves the bulk refresh stamp untouched.
func (c *Client) StateData(ctx context.Context, state, measure string, startYear, endYear int) ([]domain.SeriesRecord, error) {
	region, ok := domain.ResolveState(state)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a state name, abbreviation, or FIPS code", domain.ErrUnknownRegion, state)
	}
	if measure == "" {
		measure = domain.MeasureUnemploymentRate
	}
	seriesID := domain.StateSeriesID(region.FIPS, measure, domain.SeasonallyAdjusted)

	if records, ok := c.cache.getValid(seriesID); ok {
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
		c.logger.Info("cache hit for state series", "series_id", seriesID)
		return records, nil
	}
	c.metrics.CacheLookups.WithLabelValues("miss").Inc()

	base := domain.SeriesRecord{
		SeriesID:   seriesID,
		SeriesName: region.Name + " - " + domain.MeasureName(measure),
		State:      region.Name,
	}
	return c.fetchOne(ctx, seriesID, base, startYear, endYear)
}

// CountyData returns LAUS records for a 5-digit county FIPS code, zero-padding
// shorter inputs. County series exist only not seasonally adjusted.
func (c *Client) CountyData(ctx context.Context, countyFIPS, countyName, measure string, startYear, endYear int) ([]domain.SeriesRecord, error) {
	region := domain.CountyRegion(countyFIPS, countyName)
	if measure == "" {
		measure = domain.MeasureUnemploymentRate
	}
	seriesID := domain.CountySeriesID(region.FIPS, measure)

	if records, ok := c.cache.getValid(seriesID); ok {
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
		c.logger.Info("cache hit for county series", "series_id", seriesID)
		return records, nil
	}
	c.metrics.CacheLookups.WithLabelValues("miss").Inc()

	base := domain.SeriesRecord{
		SeriesID:   seriesID,
		SeriesName: region.Name + " - " + domain.MeasureName(measure),
		County:     region.Name,
	}
	return c.fetchOne(ctx, seriesID, base, startYear, endYear)
}

// CheckReadiness reports whether at least one series has been cached.
func (c *Client) CheckReadiness(_ context.Context) error {
	if c.cache.size() == 0 {
		return errors.New("series cache is empty")
	}
	return nil
}

// fetchOne performs an on-demand single-series fetch and caches the result
// wholesale under seriesID.
func (c *Client) fetchOne(ctx context.Context, seriesID string, base domain.SeriesRecord, startYear, endYear int) ([]domain.SeriesRecord, error) {
	startYear, endYear = defaultYears(startYear, endYear)

	series, err := c.fetchBatch(ctx, []string{seriesID}, startYear, endYear, modeOnDemand)
	if err != nil {
		return nil, err
	}

	records := []domain.SeriesRecord{}
	for _, s := range series {
		records = append(records, recordsFromSeries(s, base)...)
	}

	c.cache.put(seriesID, records)
	c.metrics.CachedSeries.Set(float64(c.cache.size()))
	return records, nil
}

// fetchBatch POSTs one batched request and decodes the envelope. Callers keep
// len(ids) within the mode's ceiling; pacing and status checks happen here.
func (c *Client) fetchBatch(ctx context.Context, ids []string, startYear, endYear int, mode string) ([]apiSeries, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(payload{
		SeriesID:        ids,
		StartYear:       strconv.Itoa(startYear),
		EndYear:         strconv.Itoa(endYear),
		RegistrationKey: c.apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	c.logger.Info("bls api request",
		"series", len(ids),
		"start_year", startYear,
		"end_year", endYear,
		"url", c.apiURL,
	)
	c.metrics.RequestBatchSize.Observe(float64(len(ids)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.APIRequests.WithLabelValues(mode, "transport_error").Inc()
		return nil, fmt.Errorf("bls api request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.APIRequestDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		c.metrics.APIRequests.WithLabelValues(mode, "transport_error").Inc()
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bls api error: status %d: %s", resp.StatusCode, b)
	}

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.metrics.APIRequests.WithLabelValues(mode, "transport_error").Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if envelope.Status != statusSucceeded {
		c.metrics.APIRequests.WithLabelValues(mode, "api_error").Inc()
		return nil, fmt.Errorf("bls api status %q: %s", envelope.Status, strings.Join(envelope.Message, "; "))
	}

	c.metrics.APIRequests.WithLabelValues(mode, "success").Inc()
	return envelope.Results.Series, nil
}

// defaultYears fills unset bounds: the latest complete year, back three years.
// BLS finalizes data with a lag, so the current year is excluded by default.
func defaultYears(startYear, endYear int) (int, int) {
	if endYear == 0 {
		endYear = clock.Now().Year() - 1
	}
	if startYear == 0 {
		startYear = endYear - 2
	}
	return startYear, endYear
}

// chunkIDs splits ids into runs of at most size, preserving order.
func chunkIDs(ids []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// recordsFromSeries converts one wire series into records. base carries the
// naming fields (ID, display name, state/county labels); year, period, value
// and footnotes come from the wire.
func recordsFromSeries(s apiSeries, base domain.SeriesRecord) []domain.SeriesRecord {
	records := make([]domain.SeriesRecord, 0, len(s.Data))
	for _, item := range s.Data {
		rec := base
		rec.Year = item.Year
		rec.Period = item.Period
		rec.Value = item.Value
		rec.Footnotes = joinFootnotes(item.Footnotes)
		records = append(records, rec)
	}
	return records
}

func joinFootnotes(notes []apiFootnote) string {
	var parts []string
	for _, n := range notes {
		if n.Text != "" {
			parts = append(parts, n.Text)
		}
	}
	return strings.Join(parts, ", ")
}

// BLS API request/response types.

const statusSucceeded = "REQUEST_SUCCEEDED"

type payload struct {
	SeriesID        []string `json:"seriesid"`
	StartYear       string   `json:"startyear"`
	EndYear         string   `json:"endyear"`
	RegistrationKey string   `json:"registrationkey,omitempty"`
}

type apiResponse struct {
	Status  string   `json:"status"`
	Message []string `json:"message"`
	Results struct {
		Series []apiSeries `json:"series"`
	} `json:"Results"`
}

type apiSeries struct {
	SeriesID string     `json:"seriesID"`
	Data     []apiDatum `json:"data"`
}

type apiDatum struct {
	Year      string        `json:"year"`
	Period    string        `json:"period"`
	Value     string        `json:"value"`
	Footnotes []apiFootnote `json:"footnotes"`
}

type apiFootnote struct {
	Text string `json:"text"`
}
