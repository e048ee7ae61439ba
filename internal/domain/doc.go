// Package domain models Bureau of Labor Statistics (BLS) public time-series data.
//
// # Data Source
//
// Observations come from the BLS Public Data API v1/v2 timeseries endpoints,
// documented at https://www.bls.gov/developers/. Requests are JSON POSTs naming
// up to N series IDs and a year range; responses carry per-series arrays of
// yearly/monthly observations. The API tiers differ only in limits:
//
//	v1 (no registration key): max 25 series per request, 10-year span.
//	v2 (registration key):    max 50 series per request, 20-year span.
//
// # Series ID Conventions
//
// National series IDs are opaque survey-specific strings (e.g. "CUUR0000SA0"
// for headline CPI, "LNS14000000" for the unemployment rate) and are kept in a
// static catalog; see [Catalog].
//
// Local Area Unemployment Statistics (LAUS) series IDs are constructed, not
// looked up. The grammar is:
//
//	LA + seasonal(1) + area_code(15) + measure(2)  =  20 chars
//
//	state area code:  ST + 2-digit state FIPS + 11 zeros
//	county area code: CN + 5-digit county FIPS + 8 zeros
//
// County series exist only in the not-seasonally-adjusted variant, so the
// seasonal character is always "U". See [StateSeriesID] and [CountySeriesID].
//
// Measure codes (the trailing two digits):
//
//	03 = Unemployment Rate
//	04 = Unemployment
//	05 = Employment
//	06 = Labor Force
//
// # Period Format
//
// The API reports periods as survey-defined codes: "M01".."M12" for months,
// "M13" for annual averages, "Q01".."Q04" for quarters, "A01" for annual
// series. Values arrive as strings and are kept verbatim; the API orders data
// newest first, so the first record of a series is its latest observation.
//
// # Geography
//
// State FIPS codes follow FIPS PUB 5-2, which skips 03, 07, 14, 43 and 52.
// The tables here cover the 50 states, the District of Columbia (11) and
// Puerto Rico (72). Free-form state input resolves by USPS abbreviation,
// full name, or FIPS code, in that order; see [ResolveState].
package domain
