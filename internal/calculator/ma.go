package calculator

import (
	"fmt"

	"TrendScope/internal/model"
)

// DefaultWindows are the snapshot windows used when none are configured.
var DefaultWindows = []int{10, 21, 50}

// CalculateSMA computes the simple moving average of the last period values.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("sma period %d: %w", period, ErrInvalidParameter)
	}
	if err := needBars("sma", period, len(values)); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// ComputeSnapshot returns the close, date and simple moving averages of the
// last bar. A window longer than the series yields an undefined average, not
// an error, so short histories still produce a partial snapshot.
func ComputeSnapshot(series model.PriceSeries, windows ...int) (*model.MovingAverageSnapshot, error) {
	last, ok := series.Last()
	if !ok {
		return nil, fmt.Errorf("snapshot %s: empty series: %w", series.Symbol, ErrDataUnavailable)
	}
	if len(windows) == 0 {
		windows = DefaultWindows
	}
	for _, w := range windows {
		if w <= 0 {
			return nil, fmt.Errorf("snapshot window %d: %w", w, ErrInvalidParameter)
		}
	}

	closes := series.Closes()
	snap := &model.MovingAverageSnapshot{
		Close:    last.Close,
		AsOf:     last.Date,
		Averages: make([]model.MovingAverage, 0, len(windows)),
	}
	for _, w := range windows {
		ma := model.MovingAverage{Window: w}
		if len(closes) >= w {
			v, err := CalculateSMA(closes, w)
			if err != nil {
				return nil, err
			}
			ma.Value = v
			ma.Valid = true
		}
		snap.Averages = append(snap.Averages, ma)
	}
	return snap, nil
}
