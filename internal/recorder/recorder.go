package recorder

import "TrendScope/internal/model"

// RunEvent summarizes one pass of a scheduled job over the watchlist.
type RunEvent struct {
	Job       string // "DAILY" or "COMMAND"
	Symbols   int
	Succeeded int
	Failed    int
	Note      string
}

// Recorder journals analysis reports for later review.
type Recorder interface {
	RecordReport(rep *model.Report) error
	RecordRun(evt *RunEvent) error
	Close() error
}
