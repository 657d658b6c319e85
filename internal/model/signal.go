package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Indicator names used in reports and in the recorder.
const (
	IndicatorSnapshot  = "MA_SNAPSHOT"
	IndicatorEMA       = "EMA"
	IndicatorADL       = "ADL"
	IndicatorStage2    = "STAGE2"
	IndicatorLiquidity = "LIQUIDITY"
	IndicatorQuote     = "QUOTE"
)

// Unavailable explains why an indicator is missing from a report.
type Unavailable struct {
	Indicator string
	Reason    string
}

// Classification is the output of the classifier layer. A nil flag means the
// classifier could not run; Reasons then names the cause.
type Classification struct {
	Stage2        *bool
	HighLiquidity *bool
	Reasons       []Unavailable
}

// EMAValue is the result of threading the EMA recurrence over a series.
type EMAValue struct {
	Smoothing float64
	Days      int
	Value     float64
}

// Report is the assembled analysis of one symbol.
type Report struct {
	Symbol       string
	PageURL      string
	AsOf         time.Time
	Quote        *decimal.Decimal // live quote, display only
	Snapshot     *MovingAverageSnapshot
	EMA          *EMAValue
	ADLToday     *float64
	ADLYesterday *float64
	Stage2       *bool
	HighLiquid   *bool
	Unavailable  []Unavailable
	GeneratedAt  time.Time
}

// MarkUnavailable records a missing indicator.
func (r *Report) MarkUnavailable(indicator string, err error) {
	r.Unavailable = append(r.Unavailable, Unavailable{Indicator: indicator, Reason: err.Error()})
}
