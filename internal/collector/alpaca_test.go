package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"TrendScope/internal/model"
)

type fakeBarsClient struct {
	bars   []marketdata.Bar
	err    error
	symbol string
	req    marketdata.GetBarsRequest
}

func (f *fakeBarsClient) GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error) {
	f.symbol, f.req = symbol, req
	return f.bars, f.err
}

func TestAlpacaFetcher_FetchDailyBars(t *testing.T) {
	now := time.Date(2024, 7, 15, 20, 0, 0, 0, time.UTC)
	raw := make([]marketdata.Bar, 7)
	for i := range raw {
		raw[i] = marketdata.Bar{
			Timestamp: time.Date(2024, 7, 5+i, 4, 0, 0, 0, time.UTC),
			Open:      100 + float64(i),
			High:      102 + float64(i),
			Low:       99 + float64(i),
			Close:     101 + float64(i),
			Volume:    uint64(5000 + i),
		}
	}
	client := &fakeBarsClient{bars: raw}
	f := &AlpacaFetcher{Client: client, Now: func() time.Time { return now }}

	bars, err := f.FetchDailyBars(context.Background(), "AAPL", model.Lookback5d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.symbol != "AAPL" || client.req.Feed != marketdata.IEX {
		t.Errorf("unexpected request: %s %+v", client.symbol, client.req)
	}
	if !client.req.Start.Equal(now.AddDate(0, 0, -9)) {
		t.Errorf("start: got %s", client.req.Start)
	}
	if len(bars) != 5 {
		t.Fatalf("5d lookback should keep 5 bars, got %d", len(bars))
	}
	if bars[0].Close != 103 || bars[0].Volume != 5002 {
		t.Errorf("first kept bar: got %+v", bars[0])
	}
	if !bars[4].Date.Equal(time.Date(2024, 7, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("last date: got %s", bars[4].Date)
	}
}

func TestAlpacaFetcher_Errors(t *testing.T) {
	f := &AlpacaFetcher{Client: &fakeBarsClient{err: errors.New("forbidden")}, Now: time.Now}
	if _, err := f.FetchDailyBars(context.Background(), "AAPL", model.Lookback1y); err == nil {
		t.Error("expected client error to propagate")
	}
	if _, err := f.FetchDailyBars(context.Background(), "AAPL", model.Lookback("3y")); err == nil {
		t.Error("expected unsupported lookback error")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.FetchDailyBars(ctx, "AAPL", model.Lookback1mo); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
