package domain

// LAUS measure codes, the trailing two digits of a LAUS series ID.
const (
	MeasureUnemploymentRate = "03"
	MeasureUnemployment     = "04"
	MeasureEmployment       = "05"
	MeasureLaborForce       = "06"
)

// Seasonal adjustment codes, the third character of a LAUS series ID.
const (
	SeasonallyAdjusted    = "S"
	NotSeasonallyAdjusted = "U"
)

var lausMeasures = map[string]string{
	MeasureUnemploymentRate: "Unemployment Rate",
	MeasureUnemployment:     "Unemployment",
	MeasureEmployment:       "Employment",
	MeasureLaborForce:       "Labor Force",
}

// MeasureName returns the display name for a LAUS measure code. Unknown codes
// fall back to the code itself so callers always get something printable.
func MeasureName(code string) string {
	if name, ok := lausMeasures[code]; ok {
		return name
	}
	return code
}

// StateSeriesID builds a LAUS state-level series ID:
// LA + seasonal + "ST" + 2-digit FIPS + 11 zeros + measure, 20 chars total.
func StateSeriesID(fips, measure, seasonal string) string {
	return "LA" + seasonal + "ST" + fips + "00000000000" + measure
}

// CountySeriesID builds a LAUS county-level series ID:
// LA + "U" + "CN" + 5-digit FIPS + 8 zeros + measure, 20 chars total.
// County data is published not seasonally adjusted only.
func CountySeriesID(countyFIPS, measure string) string {
	return "LAUCN" + countyFIPS + "00000000" + measure
}
