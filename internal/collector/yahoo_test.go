package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"TrendScope/internal/model"
)

// Three sessions, a null holiday bar, and a repeated live bar for the last date.
const yahooFixture = `{"chart":{"result":[{
	"meta":{"symbol":"COST","gmtoffset":-14400},
	"timestamp":[1717421400,1717507800,1717594200,1717680600,1717686000],
	"indicators":{"quote":[{
		"open":  [820.1, 823.0, null, 825.5, 825.5],
		"high":  [825.0, 828.4, null, 830.0, 831.2],
		"low":   [818.2, 821.7, null, 824.1, 824.1],
		"close": [823.4, 827.9, null, 829.0, 830.6],
		"volume":[1500000, 1720000, null, 1810000, 1900000]
	}]}
}],"error":null}}`

func TestYahooFetcher_FetchDailyBars(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		w.Write([]byte(yahooFixture))
	}))
	defer srv.Close()

	f := &YahooFetcher{BaseURL: srv.URL, Client: srv.Client()}
	bars, err := f.FetchDailyBars(context.Background(), "COST", model.Lookback1mo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/v8/finance/chart/COST" {
		t.Errorf("path: got %q", gotPath)
	}
	if !strings.Contains(gotQuery, "range=1mo") || !strings.Contains(gotQuery, "interval=1d") {
		t.Errorf("query: got %q", gotQuery)
	}

	if len(bars) != 3 {
		t.Fatalf("expected 3 bars, got %d: %+v", len(bars), bars)
	}
	wantDates := []time.Time{
		time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC),
	}
	for i, want := range wantDates {
		if !bars[i].Date.Equal(want) {
			t.Errorf("bar %d date: got %s, want %s", i, bars[i].Date, want)
		}
	}
	last := bars[2]
	if last.Close != 830.6 || last.Volume != 1900000 || last.High != 831.2 {
		t.Errorf("repeated date should keep the latest bar, got %+v", last)
	}
}

func TestYahooFetcher_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"http status", http.StatusNotFound, `not found`, "status 404"},
		{"api error", http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`, "delisted"},
		{"empty result", http.StatusOK, `{"chart":{"result":[],"error":null}}`, "no data"},
		{"bad json", http.StatusOK, `{`, "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			f := &YahooFetcher{BaseURL: srv.URL, Client: srv.Client()}
			_, err := f.FetchDailyBars(context.Background(), "ZZZZ", model.Lookback5d)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
