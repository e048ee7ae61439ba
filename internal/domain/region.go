package domain

import (
	"errors"
	"sort"
	"strings"
)

// ErrUnknownRegion reports a state reference that matched no abbreviation,
// name, or FIPS code.
var ErrUnknownRegion = errors.New("unknown region")

// Region is a resolved geography: a 2-digit state FIPS code with its canonical
// name, or a 5-digit county FIPS code with a display label. Regions are
// derived per call and never stored.
type Region struct {
	FIPS string
	Name string
}

// stateFIPS maps canonical state names to 2-digit FIPS codes.
var stateFIPS = map[string]string{
	"Alabama": "01", "Alaska": "02", "Arizona": "04", "Arkansas": "05",
	"California": "06", "Colorado": "08", "Connecticut": "09", "Delaware": "10",
	"District of Columbia": "11", "Florida": "12", "Georgia": "13", "Hawaii": "15",
	"Idaho": "16", "Illinois": "17", "Indiana": "18", "Iowa": "19",
	"Kansas": "20", "Kentucky": "21", "Louisiana": "22", "Maine": "23",
	"Maryland": "24", "Massachusetts": "25", "Michigan": "26", "Minnesota": "27",
	"Mississippi": "28", "Missouri": "29", "Montana": "30", "Nebraska": "31",
	"Nevada": "32", "New Hampshire": "33", "New Jersey": "34", "New Mexico": "35",
	"New York": "36", "North Carolina": "37", "North Dakota": "38", "Ohio": "39",
	"Oklahoma": "40", "Oregon": "41", "Pennsylvania": "42", "Rhode Island": "44",
	"South Carolina": "45", "South Dakota": "46", "Tennessee": "47", "Texas": "48",
	"Utah": "49", "Vermont": "50", "Virginia": "51", "Washington": "53",
	"West Virginia": "54", "Wisconsin": "55", "Wyoming": "56",
	"Puerto Rico": "72",
}

// stateAbbreviations maps USPS abbreviations to canonical state names.
var stateAbbreviations = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"DC": "District of Columbia", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota",
	"MS": "Mississippi", "MO": "Missouri", "MT": "Montana", "NE": "Nebraska",
	"NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas",
	"UT": "Utah", "VT": "Vermont", "VA": "Virginia", "WA": "Washington",
	"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming", "PR": "Puerto Rico",
}

// Derived lookup tables.
var (
	fipsToState = func() map[string]string {
		m := make(map[string]string, len(stateFIPS))
		for name, fips := range stateFIPS {
			m[fips] = name
		}
		return m
	}()

	stateToAbbreviation = func() map[string]string {
		m := make(map[string]string, len(stateAbbreviations))
		for abbrev, name := range stateAbbreviations {
			m[name] = abbrev
		}
		return m
	}()
)

// ResolveState resolves free-form state input to its region. Inputs match by
// USPS abbreviation ("OH"), full name ("ohio"), or FIPS code ("39" or "9"),
// tried in that order; the first match wins.
func ResolveState(input string) (Region, bool) {
	val := strings.TrimSpace(input)
	if val == "" {
		return Region{}, false
	}

	if name, ok := stateAbbreviations[strings.ToUpper(val)]; ok {
		return Region{FIPS: stateFIPS[name], Name: name}, true
	}

	for name, fips := range stateFIPS {
		if strings.EqualFold(name, val) {
			return Region{FIPS: fips, Name: name}, true
		}
	}

	if name, ok := fipsToState[zeroPad(val, 2)]; ok {
		return Region{FIPS: zeroPad(val, 2), Name: name}, true
	}

	return Region{}, false
}

// CountyRegion normalizes a county FIPS code, zero-padding to five digits.
// When no display label is supplied the code itself becomes the label.
func CountyRegion(fips, label string) Region {
	code := zeroPad(strings.TrimSpace(fips), 5)
	if label == "" {
		label = "County FIPS " + code
	}
	return Region{FIPS: code, Name: label}
}

// StateInfo pairs a state with its abbreviation for listings.
type StateInfo struct {
	Name         string
	Abbreviation string
	FIPS         string
}

// States returns every entry of the FIPS table sorted by state name.
func States() []StateInfo {
	out := make([]StateInfo, 0, len(stateFIPS))
	for name, fips := range stateFIPS {
		out = append(out, StateInfo{
			Name:         name,
			Abbreviation: stateToAbbreviation[name],
			FIPS:         fips,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// zeroPad left-pads s with zeros to the given width. Longer inputs pass
// through untouched.
func zeroPad(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
