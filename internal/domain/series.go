package domain

import "strings"

// SeriesRecord is a single observation of a BLS time series. Values and years
// stay in the API's string encoding; records are never mutated after decode.
type SeriesRecord struct {
	SeriesID   string `json:"series_id"`
	SeriesName string `json:"series_name"`
	State      string `json:"state,omitempty"`
	County     string `json:"county,omitempty"`
	Year       string `json:"year"`
	Period     string `json:"period"`
	Value      string `json:"value"`
	Footnotes  string `json:"footnotes"`
}

// PeriodLabel renders the record's observation period as "<year> <period>",
// e.g. "2024 M09". Either part may be empty for malformed records.
func (r SeriesRecord) PeriodLabel() string {
	return strings.TrimSpace(r.Year + " " + r.Period)
}

// CatalogEntry describes one series in the static national catalog.
type CatalogEntry struct {
	SeriesID string `json:"series_id"`
	Name     string `json:"series_name"`
	Category string `json:"category"`
}

// catalog lists the national series this service tracks. Order is meaningful:
// search results and summaries iterate it as written.
var catalog = []CatalogEntry{
	// Consumer Price Index (CPI)
	{SeriesID: "CUUR0000SA0", Name: "CPI - All Urban Consumers, All Items, US City Average", Category: "cpi"},
	{SeriesID: "SUUR0000SA0", Name: "CPI - All Urban Wage Earners, All Items, US City Average", Category: "cpi"},
	{SeriesID: "CUUR0000SAF1", Name: "CPI - Food", Category: "cpi"},
	{SeriesID: "CUUR0000SAH1", Name: "CPI - Shelter", Category: "cpi"},
	{SeriesID: "CUUR0000SETA01", Name: "CPI - New Vehicles", Category: "cpi"},
	{SeriesID: "CUUR0000SETB01", Name: "CPI - Used Cars and Trucks", Category: "cpi"},
	{SeriesID: "CUUR0000SAM", Name: "CPI - Medical Care", Category: "cpi"},
	{SeriesID: "CUUR0000SA0E", Name: "CPI - Energy", Category: "cpi"},
	// Employment / unemployment (Current Population Survey)
	{SeriesID: "LNS14000000", Name: "Unemployment Rate", Category: "employment"},
	{SeriesID: "LNS12000000", Name: "Employment Level", Category: "employment"},
	{SeriesID: "LNS11000000", Name: "Civilian Labor Force Level", Category: "employment"},
	{SeriesID: "LNS13000000", Name: "Unemployment Level", Category: "employment"},
	{SeriesID: "LNS14000006", Name: "Unemployment Rate - Black or African American", Category: "employment"},
	{SeriesID: "LNS14000003", Name: "Unemployment Rate - Hispanic or Latino", Category: "employment"},
	{SeriesID: "LNS14000009", Name: "Unemployment Rate - White", Category: "employment"},
	// Nonfarm payrolls (Current Employment Statistics)
	{SeriesID: "CES0000000001", Name: "Total Nonfarm Employment", Category: "payrolls"},
	{SeriesID: "CES0500000001", Name: "Total Private Employment", Category: "payrolls"},
	{SeriesID: "CES1000000001", Name: "Mining and Logging Employment", Category: "payrolls"},
	{SeriesID: "CES2000000001", Name: "Construction Employment", Category: "payrolls"},
	{SeriesID: "CES3000000001", Name: "Manufacturing Employment", Category: "payrolls"},
	{SeriesID: "CES4000000001", Name: "Trade, Transportation, and Utilities Employment", Category: "payrolls"},
	{SeriesID: "CES5000000001", Name: "Information Employment", Category: "payrolls"},
	{SeriesID: "CES5500000001", Name: "Financial Activities Employment", Category: "payrolls"},
	{SeriesID: "CES6000000001", Name: "Professional and Business Services Employment", Category: "payrolls"},
	{SeriesID: "CES6500000001", Name: "Education and Health Services Employment", Category: "payrolls"},
	{SeriesID: "CES7000000001", Name: "Leisure and Hospitality Employment", Category: "payrolls"},
	{SeriesID: "CES8000000001", Name: "Other Services Employment", Category: "payrolls"},
	{SeriesID: "CES9000000001", Name: "Government Employment", Category: "payrolls"},
	// Average hourly earnings
	{SeriesID: "CES0500000003", Name: "Average Hourly Earnings - Total Private", Category: "earnings"},
	// Job Openings and Labor Turnover Survey (JOLTS)
	{SeriesID: "JTS000000000000000JOL", Name: "Total Nonfarm Job Openings", Category: "jolts"},
	{SeriesID: "JTS000000000000000HIL", Name: "Total Nonfarm Hires", Category: "jolts"},
	{SeriesID: "JTS000000000000000TSL", Name: "Total Nonfarm Separations", Category: "jolts"},
	{SeriesID: "JTS000000000000000QUL", Name: "Total Nonfarm Quits", Category: "jolts"},
	// Producer Price Index (PPI)
	{SeriesID: "WPUFD4", Name: "PPI - Finished Goods", Category: "ppi"},
	{SeriesID: "WPUFD49104", Name: "PPI - Finished Consumer Foods", Category: "ppi"},
	{SeriesID: "WPUFD49116", Name: "PPI - Finished Energy Goods", Category: "ppi"},
}

// catalogNames indexes the catalog for display-name lookups.
var catalogNames = func() map[string]string {
	m := make(map[string]string, len(catalog))
	for _, e := range catalog {
		m[e.SeriesID] = e.Name
	}
	return m
}()

// Catalog returns the tracked national series in table order. The result is a
// copy; callers may reorder or filter it freely.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// SeriesIDs returns every catalog series ID in table order.
func SeriesIDs() []string {
	ids := make([]string, len(catalog))
	for i, e := range catalog {
		ids[i] = e.SeriesID
	}
	return ids
}

// SeriesName returns the catalog display name for a series ID, or "Unknown"
// for IDs outside the catalog (constructed LAUS series name themselves).
func SeriesName(id string) string {
	if name, ok := catalogNames[id]; ok {
		return name
	}
	return "Unknown"
}
