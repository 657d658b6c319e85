package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"TrendScope/internal/calculator"
	"TrendScope/internal/metrics"
	"TrendScope/internal/model"
	"TrendScope/internal/strategy"
	"TrendScope/internal/symbol"
)

// QuoteSource supplies an optional live price for display.
type QuoteSource interface {
	Quote(ctx context.Context, symbol string) (decimal.Decimal, bool, error)
}

// Settings holds the indicator parameters used by Analyze.
type Settings struct {
	MAWindows    []int
	EMASmoothing float64
	EMADays      int
}

// DefaultSettings returns the 10/21/50 snapshot and a 2-smoothing 20-day EMA.
func DefaultSettings() Settings {
	return Settings{
		MAWindows:    calculator.DefaultWindows,
		EMASmoothing: 2,
		EMADays:      20,
	}
}

// Retrieval windows per indicator.
var (
	snapshotLookback  = model.Lookback6mo
	trendLookback     = model.Lookback1y
	adlLookback       = model.Lookback1mo
	liquidityLookback = model.Lookback5d
)

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher  Fetcher
	Quotes   QuoteSource      // optional
	Metrics  *metrics.Metrics // optional
	Settings Settings
	Now      func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, quotes QuoteSource, m *metrics.Metrics, settings Settings) *Collector {
	return &Collector{
		Fetcher:  fetcher,
		Quotes:   quotes,
		Metrics:  m,
		Settings: settings,
		Now:      time.Now,
	}
}

// FetchSeries retrieves and validates one lookback of daily bars. Any
// retrieval problem is reported as calculator.ErrDataUnavailable.
func (c *Collector) FetchSeries(ctx context.Context, sym string, lookback model.Lookback) (model.PriceSeries, error) {
	start := time.Now()
	bars, err := c.Fetcher.FetchDailyBars(ctx, sym, lookback)
	if c.Metrics != nil {
		c.Metrics.FetchDuration.WithLabelValues(c.Fetcher.Name(), string(lookback)).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if c.Metrics != nil {
			c.Metrics.FetchErrors.WithLabelValues(c.Fetcher.Name()).Inc()
		}
		return model.PriceSeries{}, fmt.Errorf("fetch %s %s: %w: %w", sym, lookback, calculator.ErrDataUnavailable, err)
	}

	series := model.PriceSeries{Symbol: sym, Bars: bars}
	if err := calculator.ValidateSeries(series); err != nil {
		if errors.Is(err, calculator.ErrDataUnavailable) {
			return model.PriceSeries{}, fmt.Errorf("fetch %s %s: %w", sym, lookback, err)
		}
		return model.PriceSeries{}, fmt.Errorf("fetch %s %s: %w: %w", sym, lookback, calculator.ErrDataUnavailable, err)
	}
	return series, nil
}

// Analyze fetches the history of a ticker (or market-page URL) and computes
// every indicator it can. Indicators that cannot be computed are listed in
// Report.Unavailable with the reason; an error is returned only when the
// input is invalid or no history could be retrieved at all.
func (c *Collector) Analyze(ctx context.Context, input string) (*model.Report, error) {
	sym, err := symbol.Normalize(input)
	if err != nil {
		return nil, err
	}
	pageURL, _ := symbol.BuildURLFromSymbol(sym)
	report := &model.Report{Symbol: sym, PageURL: pageURL, GeneratedAt: c.now()}

	lookbacks := []model.Lookback{snapshotLookback, trendLookback, adlLookback, liquidityLookback}
	series := make(map[model.Lookback]model.PriceSeries, len(lookbacks))
	fetchErrs := make(map[model.Lookback]error, len(lookbacks))
	var allErrs []error
	for _, lb := range lookbacks {
		s, err := c.FetchSeries(ctx, sym, lb)
		if err != nil {
			log.Printf("[WARN] %v", err)
			fetchErrs[lb] = err
			allErrs = append(allErrs, err)
			continue
		}
		series[lb] = s
	}
	if len(series) == 0 {
		c.countResult("failed")
		return nil, errors.Join(allErrs...)
	}

	latest := latestBar(series)
	report.AsOf = latest.Date

	c.addSnapshotAndEMA(report, series[snapshotLookback], fetchErrs[snapshotLookback])
	c.addADL(report, series[adlLookback], fetchErrs[adlLookback])

	cls := strategy.Evaluate(series[trendLookback], series[liquidityLookback], latest.Close)
	report.Stage2 = cls.Stage2
	report.HighLiquid = cls.HighLiquidity
	for _, r := range cls.Reasons {
		lb := trendLookback
		if r.Indicator == model.IndicatorLiquidity {
			lb = liquidityLookback
		}
		if err := fetchErrs[lb]; err != nil {
			r.Reason = err.Error()
		}
		report.Unavailable = append(report.Unavailable, r)
	}

	c.addQuote(ctx, report)
	c.observe(report)
	return report, nil
}

func (c *Collector) addSnapshotAndEMA(report *model.Report, s model.PriceSeries, fetchErr error) {
	if fetchErr != nil {
		report.MarkUnavailable(model.IndicatorSnapshot, fetchErr)
		report.MarkUnavailable(model.IndicatorEMA, fetchErr)
		return
	}

	snap, err := calculator.ComputeSnapshot(s, c.Settings.MAWindows...)
	if err != nil {
		report.MarkUnavailable(model.IndicatorSnapshot, err)
	} else {
		report.Snapshot = snap
		for _, ma := range snap.Averages {
			if !ma.Valid {
				op := fmt.Sprintf("MA%d", ma.Window)
				report.MarkUnavailable(op, &calculator.HistoryError{Op: op, Need: ma.Window, Have: s.Len()})
			}
		}
	}

	ema, err := calculator.RunEMA(s.Closes(), c.Settings.EMASmoothing, c.Settings.EMADays)
	if err != nil {
		report.MarkUnavailable(model.IndicatorEMA, err)
		return
	}
	report.EMA = &model.EMAValue{Smoothing: c.Settings.EMASmoothing, Days: c.Settings.EMADays, Value: ema}
}

func (c *Collector) addADL(report *model.Report, s model.PriceSeries, fetchErr error) {
	if fetchErr != nil {
		report.MarkUnavailable(model.IndicatorADL, fetchErr)
		return
	}
	today, yesterday, err := calculator.LatestTwoADL(s)
	if err != nil {
		report.MarkUnavailable(model.IndicatorADL, err)
		return
	}
	report.ADLToday = &today
	report.ADLYesterday = &yesterday
}

func (c *Collector) addQuote(ctx context.Context, report *model.Report) {
	if c.Quotes == nil {
		return
	}
	price, ok, err := c.Quotes.Quote(ctx, report.Symbol)
	switch {
	case err != nil:
		log.Printf("[WARN] live quote %s: %v", report.Symbol, err)
		report.MarkUnavailable(model.IndicatorQuote, err)
	case !ok:
		report.MarkUnavailable(model.IndicatorQuote, errors.New("price tag not found on quote page"))
	default:
		report.Quote = &price
	}
}

func (c *Collector) observe(report *model.Report) {
	if c.Metrics == nil {
		return
	}
	for _, u := range report.Unavailable {
		c.Metrics.UnavailableTotal.WithLabelValues(u.Indicator).Inc()
	}
	if report.Stage2 != nil {
		v := 0.0
		if *report.Stage2 {
			v = 1
		}
		c.Metrics.Stage2.WithLabelValues(report.Symbol).Set(v)
	}
	if len(report.Unavailable) == 0 {
		c.countResult("ok")
	} else {
		c.countResult("partial")
	}
}

func (c *Collector) countResult(result string) {
	if c.Metrics != nil {
		c.Metrics.AnalysesTotal.WithLabelValues(result).Inc()
	}
}

func (c *Collector) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// latestBar returns the most recent bar across all fetched lookbacks.
func latestBar(series map[model.Lookback]model.PriceSeries) model.Bar {
	var latest model.Bar
	for _, s := range series {
		if b, ok := s.Last(); ok && b.Date.After(latest.Date) {
			latest = b
		}
	}
	return latest
}
