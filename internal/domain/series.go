package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one trading day's close for a single ticker. Points are
// immutable once stored in a Series.
type PricePoint struct {
	Date   time.Time
	Close  decimal.Decimal
	Volume int64
}

// Series is a price history ordered strictly ascending by date, one point
// per trading day, no duplicate dates. Components that receive a Series
// must not mutate it.
type Series []PricePoint

// Validate checks the Series invariant: strictly increasing dates and
// positive closes.
func (s Series) Validate() error {
	for i, p := range s {
		if !p.Close.IsPositive() {
			return fmt.Errorf("close on %s must be positive, got %s", p.Date.Format(time.DateOnly), p.Close)
		}
		if p.Volume < 0 {
			return fmt.Errorf("volume on %s must be non-negative, got %d", p.Date.Format(time.DateOnly), p.Volume)
		}
		if i > 0 && !s[i-1].Date.Before(p.Date) {
			return fmt.Errorf("dates out of order: %s before %s",
				s[i-1].Date.Format(time.DateOnly), p.Date.Format(time.DateOnly))
		}
	}
	return nil
}

// Closes returns the close prices in series order as float64, for the
// statistics kernels.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Close.InexactFloat64()
	}
	return out
}

// Last returns the most recent point. ok is false on an empty series.
func (s Series) Last() (PricePoint, bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[len(s)-1], true
}

// Slice returns the points with start <= date <= end, preserving order.
func (s Series) Slice(start, end time.Time) Series {
	out := Series{}
	for _, p := range s {
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Merge performs an outer union of two series keyed by date. Where both
// hold a point for the same date, the fetched point wins - the source is
// canonical, the cache only exists to avoid re-downloading settled history.
// The result always satisfies the Series invariant regardless of input
// order. Merging two empty series fails with NoDataError; an empty fetch
// yields the existing series unchanged.
func Merge(existing, fetched Series) (Series, error) {
	if len(existing) == 0 && len(fetched) == 0 {
		return nil, &NoDataError{}
	}

	byDate := map[string]PricePoint{}
	for _, p := range existing {
		byDate[p.Date.Format(time.DateOnly)] = p
	}
	for _, p := range fetched {
		byDate[p.Date.Format(time.DateOnly)] = p
	}

	out := make(Series, 0, len(byDate))
	for _, p := range byDate {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return out, nil
}
