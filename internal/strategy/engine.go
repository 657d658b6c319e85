package strategy

import "TrendScope/internal/model"

// Evaluate runs both classifiers. trend feeds Stage-2 and must cover at
// least Stage2Window bars; recent feeds the liquidity check. A classifier that
// fails leaves its flag nil and adds a reason instead of defaulting to false.
func Evaluate(trend, recent model.PriceSeries, closeToday float64) model.Classification {
	var c model.Classification

	if ok, err := IsStage2(trend, closeToday); err != nil {
		c.Reasons = append(c.Reasons, model.Unavailable{Indicator: model.IndicatorStage2, Reason: err.Error()})
	} else {
		c.Stage2 = &ok
	}

	if ok, err := IsHighLiquidity(recent); err != nil {
		c.Reasons = append(c.Reasons, model.Unavailable{Indicator: model.IndicatorLiquidity, Reason: err.Error()})
	} else {
		c.HighLiquidity = &ok
	}

	return c
}
