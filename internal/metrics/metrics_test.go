package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_HandlerExposesCollectors(t *testing.T) {
	m := NewMetrics()
	m.AnalysesTotal.WithLabelValues("ok").Inc()
	m.AnalysesTotal.WithLabelValues("ok").Inc()
	m.UnavailableTotal.WithLabelValues("STAGE2").Inc()
	m.Stage2.WithLabelValues("COST").Set(1)
	m.FetchDuration.WithLabelValues("yahoo", "1y").Observe(0.2)

	if got := testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("ok")); got != 2 {
		t.Errorf("analyses ok: got %v, want 2", got)
	}

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		`trendscope_analyses_total{result="ok"} 2`,
		`trendscope_indicator_unavailable_total{indicator="STAGE2"} 1`,
		`trendscope_stage2{symbol="COST"} 1`,
		`trendscope_fetch_duration_seconds_count{lookback="1y",provider="yahoo"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("scrape output missing %q", want)
		}
	}
}
