package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"stocksense/internal/domain"
	"stocksense/internal/util"
)

type fakeFetchRepository struct {
	series domain.Series
	err    error
	calls  int
}

func (f *fakeFetchRepository) List(ctx context.Context, symbol string, start, end time.Time) (domain.Series, error) {
	f.calls++
	return f.series, f.err
}

type fakeCacheRepository struct {
	stored    map[string]domain.Series
	saveErr   error
	loadCalls int
	saveCalls int
}

func newFakeCacheRepository() *fakeCacheRepository {
	return &fakeCacheRepository{stored: map[string]domain.Series{}}
}

func (f *fakeCacheRepository) Load(ticker string) (domain.Series, error) {
	f.loadCalls++
	return f.stored[ticker], nil
}

func (f *fakeCacheRepository) Save(ticker string, series domain.Series) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.stored[ticker] = series
	return nil
}

func weekdaySeries(start time.Time, closes ...float64) domain.Series {
	date := start
	for date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		date = date.AddDate(0, 0, 1)
	}
	out := make(domain.Series, 0, len(closes))
	for _, c := range closes {
		out = append(out, domain.PricePoint{
			Date:   date,
			Close:  decimal.NewFromFloat(c),
			Volume: 1000,
		})
		date = util.NextTradingDay(date)
	}
	return out
}

func TestSeriesService_Load(t *testing.T) {
	ctx := context.Background()
	series := weekdaySeries(util.NewDate(2024, 1, 1), 100, 101, 102, 103, 104)
	start := series[0].Date
	end := series[len(series)-1].Date

	t.Run("cache covering the range skips the fetch", func(t *testing.T) {
		fetch := &fakeFetchRepository{}
		cache := newFakeCacheRepository()
		cache.stored["AAPL"] = series

		svc := NewSeriesService(fetch, cache, true)
		got, err := svc.Load(ctx, "AAPL", start, end)
		require.NoError(t, err)
		require.Len(t, got, len(series))
		require.Zero(t, fetch.calls)
	})

	t.Run("cache miss fetches merges and re-caches", func(t *testing.T) {
		fetch := &fakeFetchRepository{series: series}
		cache := newFakeCacheRepository()

		svc := NewSeriesService(fetch, cache, true)
		got, err := svc.Load(ctx, "AAPL", start, end)
		require.NoError(t, err)
		require.Len(t, got, len(series))
		require.Equal(t, 1, fetch.calls)
		require.Equal(t, 1, cache.saveCalls)
		require.Len(t, cache.stored["AAPL"], len(series))
	})

	t.Run("fetched values overwrite stale cache rows", func(t *testing.T) {
		stale := weekdaySeries(util.NewDate(2024, 1, 1), 999)
		fetch := &fakeFetchRepository{series: series}
		cache := newFakeCacheRepository()
		cache.stored["AAPL"] = stale

		svc := NewSeriesService(fetch, cache, true)
		got, err := svc.Load(ctx, "AAPL", start, end)
		require.NoError(t, err)
		require.True(t, got[0].Close.Equal(decimal.NewFromInt(100)))
	})

	t.Run("disabled cache goes straight to the source", func(t *testing.T) {
		fetch := &fakeFetchRepository{series: series}
		cache := newFakeCacheRepository()
		cache.stored["AAPL"] = series

		svc := NewSeriesService(fetch, cache, false)
		got, err := svc.Load(ctx, "AAPL", start, end)
		require.NoError(t, err)
		require.Len(t, got, len(series))
		require.Equal(t, 1, fetch.calls)
		require.Zero(t, cache.loadCalls)
		require.Zero(t, cache.saveCalls)
	})

	t.Run("cache save failure is non-fatal", func(t *testing.T) {
		fetch := &fakeFetchRepository{series: series}
		cache := newFakeCacheRepository()
		cache.saveErr = context.DeadlineExceeded

		svc := NewSeriesService(fetch, cache, true)
		got, err := svc.Load(ctx, "AAPL", start, end)
		require.NoError(t, err)
		require.Len(t, got, len(series))
	})

	t.Run("empty everywhere fails with NoDataError", func(t *testing.T) {
		fetch := &fakeFetchRepository{series: domain.Series{}}
		cache := newFakeCacheRepository()

		svc := NewSeriesService(fetch, cache, true)
		_, err := svc.Load(ctx, "ZZZZ", start, end)
		var noData *domain.NoDataError
		require.ErrorAs(t, err, &noData)
		require.Equal(t, "ZZZZ", noData.Ticker)
	})

	t.Run("fetch outside the requested range fails with NoDataError", func(t *testing.T) {
		outside := weekdaySeries(util.NewDate(2023, 1, 2), 50, 51)
		fetch := &fakeFetchRepository{series: outside}
		cache := newFakeCacheRepository()

		svc := NewSeriesService(fetch, cache, true)
		_, err := svc.Load(ctx, "AAPL", start, end)
		var noData *domain.NoDataError
		require.ErrorAs(t, err, &noData)
	})
}
