package model

import "time"

// MovingAverage is one window of a snapshot. Valid is false when the series
// was shorter than Window and the average is undefined.
type MovingAverage struct {
	Window int
	Value  float64
	Valid  bool
}

// MovingAverageSnapshot holds the simple moving averages as of the last bar.
type MovingAverageSnapshot struct {
	Close    float64
	AsOf     time.Time
	Averages []MovingAverage
}

// Get returns the average for the given window.
func (s MovingAverageSnapshot) Get(window int) (MovingAverage, bool) {
	for _, ma := range s.Averages {
		if ma.Window == window {
			return ma, true
		}
	}
	return MovingAverage{}, false
}

// ADLPoint is one element of the Accumulation/Distribution Line.
type ADLPoint struct {
	Date            time.Time
	MoneyFlowVolume float64
	Value           float64
}

// ADLSeries is aligned one-to-one with the bars it was computed from.
type ADLSeries []ADLPoint
