package calculator

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientHistory = errors.New("insufficient history")
	ErrDataUnavailable     = errors.New("data unavailable")
	ErrInvalidParameter    = errors.New("invalid parameter")
)

// HistoryError reports how many bars an operation needed and how many it got.
type HistoryError struct {
	Op   string
	Need int
	Have int
}

func (e *HistoryError) Error() string {
	return fmt.Sprintf("%s: need %d bars, have %d: %v", e.Op, e.Need, e.Have, ErrInsufficientHistory)
}

// Unwrap lets errors.Is match ErrInsufficientHistory.
func (e *HistoryError) Unwrap() error {
	return ErrInsufficientHistory
}

func needBars(op string, need, have int) error {
	if have == 0 {
		return fmt.Errorf("%s: empty series: %w", op, ErrDataUnavailable)
	}
	if have < need {
		return &HistoryError{Op: op, Need: need, Have: have}
	}
	return nil
}
