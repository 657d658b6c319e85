package calculator

import (
	"fmt"

	"TrendScope/internal/model"
)

// ValidateSeries checks the ordering and bar invariants the indicators rely on.
func ValidateSeries(series model.PriceSeries) error {
	if series.Len() == 0 {
		return fmt.Errorf("series %s: %w", series.Symbol, ErrDataUnavailable)
	}
	for i, b := range series.Bars {
		if b.High < b.Low {
			return fmt.Errorf("series %s bar %d (%s): high %g below low %g",
				series.Symbol, i, b.Date.Format("2006-01-02"), b.High, b.Low)
		}
		if b.Close < b.Low || b.Close > b.High {
			return fmt.Errorf("series %s bar %d (%s): close %g outside range [%g, %g]",
				series.Symbol, i, b.Date.Format("2006-01-02"), b.Close, b.Low, b.High)
		}
		if b.Volume < 0 {
			return fmt.Errorf("series %s bar %d (%s): negative volume %d",
				series.Symbol, i, b.Date.Format("2006-01-02"), b.Volume)
		}
		if i > 0 && !b.Date.After(series.Bars[i-1].Date) {
			return fmt.Errorf("series %s bar %d (%s): dates not strictly increasing",
				series.Symbol, i, b.Date.Format("2006-01-02"))
		}
	}
	return nil
}
