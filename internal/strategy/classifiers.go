package strategy

import (
	"fmt"

	"TrendScope/internal/calculator"
	"TrendScope/internal/model"
)

// Stage2Window is the long-horizon SMA used by the Stage-2 classifier.
const Stage2Window = 150

// IsStage2 reports whether closeToday is above the 150-bar simple moving
// average. Unlike the snapshot, a short series is an error: there is no safe
// undefined answer for a binary decision.
func IsStage2(series model.PriceSeries, closeToday float64) (bool, error) {
	if series.Len() == 0 {
		return false, fmt.Errorf("stage2 %s: empty series: %w", series.Symbol, calculator.ErrDataUnavailable)
	}
	if series.Len() < Stage2Window {
		return false, &calculator.HistoryError{Op: "stage2", Need: Stage2Window, Have: series.Len()}
	}
	sma, err := calculator.CalculateSMA(series.Tail(Stage2Window).Closes(), Stage2Window)
	if err != nil {
		return false, fmt.Errorf("stage2 %s: %w", series.Symbol, err)
	}
	return closeToday > sma, nil
}

// IsHighLiquidity reports whether the last bar traded more volume than the one before.
func IsHighLiquidity(series model.PriceSeries) (bool, error) {
	n := series.Len()
	if n == 0 {
		return false, fmt.Errorf("liquidity %s: empty series: %w", series.Symbol, calculator.ErrDataUnavailable)
	}
	if n < 2 {
		return false, &calculator.HistoryError{Op: "liquidity", Need: 2, Have: n}
	}
	vols := series.Tail(2).Volumes()
	return vols[1] > vols[0], nil
}
