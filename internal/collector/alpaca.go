package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"TrendScope/internal/model"
)

// barsClient is the subset of the Alpaca market data client used here.
type barsClient interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

// AlpacaFetcher implements Fetcher using Alpaca market data (IEX feed).
type AlpacaFetcher struct {
	Client barsClient
	Now    func() time.Time
}

// NewAlpacaFetcher creates a fetcher authenticated with the given key pair.
func NewAlpacaFetcher(apiKey, apiSecret string) *AlpacaFetcher {
	return &AlpacaFetcher{
		Client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
		Now: time.Now,
	}
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

// lookbackStart converts a lookback into a calendar start date. 5d reaches
// back far enough to span a weekend; the result is trimmed afterwards.
func lookbackStart(now time.Time, lookback model.Lookback) (time.Time, error) {
	switch lookback {
	case model.Lookback5d:
		return now.AddDate(0, 0, -9), nil
	case model.Lookback1mo:
		return now.AddDate(0, -1, 0), nil
	case model.Lookback6mo:
		return now.AddDate(0, -6, 0), nil
	case model.Lookback1y:
		return now.AddDate(-1, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported lookback %q", lookback)
	}
}

func (f *AlpacaFetcher) FetchDailyBars(ctx context.Context, symbol string, lookback model.Lookback) ([]model.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start, err := lookbackStart(f.Now(), lookback)
	if err != nil {
		return nil, err
	}

	raw, err := f.Client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     start,
		Feed:      marketdata.IEX,
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca get bars: %w", err)
	}

	bars := make([]model.Bar, 0, len(raw))
	for _, b := range raw {
		ts := b.Timestamp.UTC()
		bars = append(bars, model.Bar{
			Date:   time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: int64(b.Volume),
		})
	}
	if lookback == model.Lookback5d && len(bars) > lookback.TradingDays() {
		bars = bars[len(bars)-lookback.TradingDays():]
	}
	return bars, nil
}
