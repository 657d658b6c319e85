package collector

import (
	"context"
	"time"

	"TrendScope/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  []model.Bar
	Err   error
}

func (m *MockFetcher) Name() string { return "mock" }

// FetchDailyBars returns the last lookback.TradingDays() of Bars, or a gently
// rising generated series when Bars is nil.
func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, lookback model.Lookback) ([]model.Bar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	n := lookback.TradingDays()
	if m.Bars != nil {
		if len(m.Bars) > n {
			return m.Bars[len(m.Bars)-n:], nil
		}
		return m.Bars, nil
	}
	return generateMockBars(m.Price, n), nil
}

func generateMockBars(basePrice float64, count int) []model.Bar {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Date:   end.AddDate(0, 0, -(count - 1 - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: int64(1000000 + 1000*i),
		}
	}
	return bars
}
