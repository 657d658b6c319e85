package model

import "time"

// Lookback is a retrieval window understood by the data providers.
type Lookback string

const (
	Lookback5d  Lookback = "5d"
	Lookback1mo Lookback = "1mo"
	Lookback6mo Lookback = "6mo"
	Lookback1y  Lookback = "1y"
)

// TradingDays returns the approximate number of daily bars the lookback covers.
func (l Lookback) TradingDays() int {
	switch l {
	case Lookback5d:
		return 5
	case Lookback1mo:
		return 22
	case Lookback6mo:
		return 126
	case Lookback1y:
		return 252
	default:
		return 0
	}
}

// Bar represents a single daily bar. Open is carried for completeness only.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// PriceSeries holds the daily bars of one security in chronological order.
// Indicator code treats it as read-only.
type PriceSeries struct {
	Symbol string
	Bars   []Bar
}

// Len returns the number of bars.
func (s PriceSeries) Len() int { return len(s.Bars) }

// Last returns the most recent bar.
func (s PriceSeries) Last() (Bar, bool) {
	if len(s.Bars) == 0 {
		return Bar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Tail returns a series holding at most the last n bars. The result shares
// storage with s and must not be modified.
func (s PriceSeries) Tail(n int) PriceSeries {
	if n < 0 {
		n = 0
	}
	if n >= len(s.Bars) {
		return s
	}
	return PriceSeries{Symbol: s.Symbol, Bars: s.Bars[len(s.Bars)-n:]}
}

// Closes returns a fresh slice of closing prices.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Volumes returns a fresh slice of volumes.
func (s PriceSeries) Volumes() []int64 {
	vols := make([]int64, len(s.Bars))
	for i, b := range s.Bars {
		vols[i] = b.Volume
	}
	return vols
}
