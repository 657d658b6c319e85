package model

import (
	"reflect"
	"testing"
	"time"
)

func testSeries(vols ...int64) PriceSeries {
	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	bars := make([]Bar, len(vols))
	for i, v := range vols {
		c := float64(10 + i)
		bars[i] = Bar{Date: start.AddDate(0, 0, i), High: c + 1, Low: c - 1, Close: c, Volume: v}
	}
	return PriceSeries{Symbol: "COST", Bars: bars}
}

func TestPriceSeries_Tail(t *testing.T) {
	s := testSeries(100, 200, 300, 400)

	tail := s.Tail(2)
	if tail.Symbol != "COST" || !reflect.DeepEqual(tail.Volumes(), []int64{300, 400}) {
		t.Errorf("Tail(2): got %+v", tail)
	}
	if got := s.Tail(10); got.Len() != 4 {
		t.Errorf("Tail beyond length should return the whole series, got %d bars", got.Len())
	}
	if got := s.Tail(-1); got.Len() != 0 {
		t.Errorf("negative Tail should be empty, got %d bars", got.Len())
	}
}

func TestPriceSeries_FreshSlices(t *testing.T) {
	s := testSeries(100, 200)

	vols := s.Volumes()
	vols[0] = 999
	closes := s.Closes()
	closes[0] = 999
	if s.Bars[0].Volume != 100 || s.Bars[0].Close != 10 {
		t.Errorf("accessors must not alias bar storage: %+v", s.Bars[0])
	}

	last, ok := s.Last()
	if !ok || last.Volume != 200 {
		t.Errorf("Last: got %+v, %v", last, ok)
	}
	if _, ok := (PriceSeries{}).Last(); ok {
		t.Error("Last on empty series should report false")
	}
}
