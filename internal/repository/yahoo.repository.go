package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"stocksense/internal/domain"
	"stocksense/internal/util"
)

// PriceFetchRepository supplies a daily close series for one ticker over a
// date range. It does not retry; backoff policy belongs to the caller.
type PriceFetchRepository interface {
	List(ctx context.Context, symbol string, start, end time.Time) (domain.Series, error)
}

func NewYahooRepository() PriceFetchRepository {
	return &yahooRepositoryHandler{}
}

type yahooRepositoryHandler struct{}

// List pulls daily adjusted-close bars from Yahoo Finance. Bars arrive
// oldest-first; timestamps are truncated to their UTC calendar day.
func (h *yahooRepositoryHandler) List(ctx context.Context, symbol string, start, end time.Time) (domain.Series, error) {
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	out := domain.Series{}
	for iter.Next() {
		bar := iter.Bar()
		if bar.AdjClose.IsZero() {
			continue
		}
		out = append(out, domain.PricePoint{
			Date:   util.Midnight(time.Unix(int64(bar.Timestamp), 0)),
			Close:  bar.AdjClose,
			Volume: int64(bar.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get prices for %s: %w", symbol, err)
	}

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("yahoo returned an invalid series for %s: %w", symbol, err)
	}

	return out, nil
}
