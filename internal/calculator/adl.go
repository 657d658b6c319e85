package calculator

import (
	"fmt"

	"TrendScope/internal/model"
)

// MoneyFlowMultiplier places the close within the bar's range, from -1 at the
// low to +1 at the high. A flat bar (high == low) contributes 0.
func MoneyFlowMultiplier(b model.Bar) float64 {
	rng := b.High - b.Low
	if rng == 0 {
		return 0
	}
	return ((b.Close - b.Low) - (b.High - b.Close)) / rng
}

// ComputeADL returns the Accumulation/Distribution Line, one point per bar.
func ComputeADL(series model.PriceSeries) (model.ADLSeries, error) {
	if series.Len() == 0 {
		return nil, fmt.Errorf("adl %s: empty series: %w", series.Symbol, ErrDataUnavailable)
	}
	out := make(model.ADLSeries, len(series.Bars))
	running := 0.0
	for i, b := range series.Bars {
		mfv := MoneyFlowMultiplier(b) * float64(b.Volume)
		running += mfv
		out[i] = model.ADLPoint{Date: b.Date, MoneyFlowVolume: mfv, Value: running}
	}
	return out, nil
}

// LatestTwoADL returns the ADL of the last bar and of the bar before it.
func LatestTwoADL(series model.PriceSeries) (today, yesterday float64, err error) {
	if err := needBars("adl latest two", 2, series.Len()); err != nil {
		return 0, 0, err
	}
	adl, err := ComputeADL(series)
	if err != nil {
		return 0, 0, err
	}
	n := len(adl)
	return adl[n-1].Value, adl[n-2].Value, nil
}
