// Command mockbls runs a local stand-in for the BLS public API so the other
// binaries can be exercised without network access or an API key. It answers
// the v1 and v2 timeseries endpoints with deterministic synthetic monthly
// data derived from the series ID, so repeated runs return identical values.
//
// Usage:
//
//	go run ./cmd/mockbls -addr :9090
//	BLS_API_BASE_URL=http://localhost:9090 go run ./cmd/blsctl summary
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"hash/fnv"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/RakeemRanger/bls-mcp/internal/domain"
)

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/timeseries/data/", handleTimeseries(25, false))
	mux.HandleFunc("POST /v2/timeseries/data/", handleTimeseries(50, true))

	log.Printf("mock BLS API listening on %s", *addr)
	log.Printf("point clients at it with BLS_API_BASE_URL=http://localhost%s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}

// handleTimeseries mimics one API tier. Like the real service, every answer
// is HTTP 200; failures travel in the body status.
func handleTimeseries(maxBatch int, requireKey bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			reject(w, "unable to parse request: "+err.Error())
			return
		}

		if requireKey && req.RegistrationKey == "" {
			reject(w, "registrationkey is required for v2 requests")
			return
		}
		if len(req.SeriesID) == 0 {
			reject(w, "no series ids supplied")
			return
		}
		if len(req.SeriesID) > maxBatch {
			reject(w, fmt.Sprintf("request exceeds the %d series limit", maxBatch))
			return
		}

		startYear, errStart := strconv.Atoi(req.StartYear)
		endYear, errEnd := strconv.Atoi(req.EndYear)
		if errStart != nil || errEnd != nil || startYear > endYear {
			reject(w, fmt.Sprintf("invalid year range %q-%q", req.StartYear, req.EndYear))
			return
		}

		resp := response{Status: "REQUEST_SUCCEEDED", Message: []string{}}
		for _, id := range req.SeriesID {
			if domain.SeriesName(id) == "Unknown" && !strings.HasPrefix(id, "LA") {
				log.Printf("warning: series %s is not in the tracked catalog", id)
			}
			resp.Results.Series = append(resp.Results.Series, synthSeries(id, startYear, endYear))
		}

		log.Printf("served %d series, years %d-%d", len(req.SeriesID), startYear, endYear)
		writeJSON(w, resp)
	}
}

// synthSeries builds monthly observations newest-first, matching the real
// API's ordering. The newest observation carries a preliminary footnote.
func synthSeries(id string, startYear, endYear int) series {
	s := series{SeriesID: id, Data: []datum{}}
	for year := endYear; year >= startYear; year-- {
		for month := 12; month >= 1; month-- {
			d := datum{
				Year:      strconv.Itoa(year),
				Period:    fmt.Sprintf("M%02d", month),
				Value:     synthValue(id, year, month),
				Footnotes: []footnote{},
			}
			if year == endYear && month == 12 {
				d.Footnotes = []footnote{{Text: "Data are preliminary"}}
			}
			s.Data = append(s.Data, d)
		}
	}
	return s
}

// synthValue derives a stable pseudo-observation in the 2.0-9.9 range.
func synthValue(id string, year, month int) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s:%d:%d", id, year, month)
	return strconv.FormatFloat(2.0+float64(h.Sum32()%800)/100.0, 'f', 1, 64)
}

func reject(w http.ResponseWriter, msg string) {
	writeJSON(w, response{
		Status:  "REQUEST_NOT_PROCESSED",
		Message: []string{msg},
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

type request struct {
	SeriesID        []string `json:"seriesid"`
	StartYear       string   `json:"startyear"`
	EndYear         string   `json:"endyear"`
	RegistrationKey string   `json:"registrationkey,omitempty"`
}

type response struct {
	Status  string   `json:"status"`
	Message []string `json:"message"`
	Results results  `json:"Results"`
}

type results struct {
	Series []series `json:"series"`
}

type series struct {
	SeriesID string  `json:"seriesID"`
	Data     []datum `json:"data"`
}

type datum struct {
	Year      string     `json:"year"`
	Period    string     `json:"period"`
	Value     string     `json:"value"`
	Footnotes []footnote `json:"footnotes"`
}

type footnote struct {
	Text string `json:"text,omitempty"`
}
