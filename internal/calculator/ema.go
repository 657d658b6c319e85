package calculator

import "fmt"

// NextEMA advances the exponential moving average by one day using
// alpha = smoothing / (days + 1). The caller keeps the previous value.
func NextEMA(valueToday, emaYesterday, smoothing float64, days int) (float64, error) {
	if days < 0 {
		return 0, fmt.Errorf("ema days %d: %w", days, ErrInvalidParameter)
	}
	if smoothing <= 0 {
		return 0, fmt.Errorf("ema smoothing %g: %w", smoothing, ErrInvalidParameter)
	}
	alpha := smoothing / float64(days+1)
	return valueToday*alpha + emaYesterday*(1-alpha), nil
}

// RunEMA seeds the recurrence with the simple average of the first days
// values and feeds the remaining values through NextEMA.
func RunEMA(values []float64, smoothing float64, days int) (float64, error) {
	if days < 0 || smoothing <= 0 {
		// Surface the same error NextEMA would.
		return NextEMA(0, 0, smoothing, days)
	}
	seedLen := days
	if seedLen < 1 {
		seedLen = 1
	}
	if err := needBars("ema seed", seedLen, len(values)); err != nil {
		return 0, err
	}

	sum := 0.0
	for _, v := range values[:seedLen] {
		sum += v
	}
	ema := sum / float64(seedLen)
	for _, v := range values[seedLen:] {
		next, err := NextEMA(v, ema, smoothing, days)
		if err != nil {
			return 0, err
		}
		ema = next
	}
	return ema, nil
}
