package collector

import (
	"context"
	"fmt"

	"TrendScope/internal/model"
)

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, lookback model.Lookback) ([]model.Bar, error)
	Name() string
}

// FetcherOptions selects and configures a Fetcher.
type FetcherOptions struct {
	Provider     string // yahoo, alpaca or mock
	AlpacaKey    string
	AlpacaSecret string
	Proxy        string
}

// NewFetcher builds the Fetcher named by opts.Provider. An empty provider
// selects Yahoo.
func NewFetcher(opts FetcherOptions) (Fetcher, error) {
	switch opts.Provider {
	case "", "yahoo":
		return NewYahooFetcher(opts.Proxy), nil
	case "alpaca":
		if opts.AlpacaKey == "" || opts.AlpacaSecret == "" {
			return nil, fmt.Errorf("alpaca provider requires an API key and secret")
		}
		return NewAlpacaFetcher(opts.AlpacaKey, opts.AlpacaSecret), nil
	case "mock":
		return &MockFetcher{Price: 100}, nil
	default:
		return nil, fmt.Errorf("unknown data provider %q", opts.Provider)
	}
}
