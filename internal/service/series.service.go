package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stocksense/internal/domain"
	"stocksense/internal/logger"
	"stocksense/internal/repository"
)

/**

behavior - when the caller asks for a range, serve it from the local cache
if the cache already covers it. otherwise fetch the range from the source,
merge (fetched wins on conflict), re-cache the merged superset, and return
the requested slice.

the cache is advisory: a missing or disabled cache just means a fetch.

*/

// SeriesService loads a validated price series for one ticker and range.
type SeriesService interface {
	Load(ctx context.Context, ticker string, start, end time.Time) (domain.Series, error)
}

func NewSeriesService(
	fetchRepository repository.PriceFetchRepository,
	cacheRepository repository.PriceCacheRepository,
	cacheEnabled bool,
) SeriesService {
	return &seriesServiceHandler{
		FetchRepository: fetchRepository,
		CacheRepository: cacheRepository,
		CacheEnabled:    cacheEnabled,
	}
}

type seriesServiceHandler struct {
	FetchRepository repository.PriceFetchRepository
	CacheRepository repository.PriceCacheRepository
	CacheEnabled    bool
}

func (h *seriesServiceHandler) Load(ctx context.Context, ticker string, start, end time.Time) (domain.Series, error) {
	log := logger.FromContext(ctx)

	var cached domain.Series
	if h.CacheEnabled {
		var err error
		cached, err = h.CacheRepository.Load(ticker)
		if err != nil {
			return nil, fmt.Errorf("failed to load cached prices for %s: %w", ticker, err)
		}
		if slice := cached.Slice(start, end); covers(slice, start, end) {
			log.Infow("serving prices from cache", "ticker", ticker, "rows", len(slice))
			return slice, nil
		}
	}

	fetched, err := h.FetchRepository.List(ctx, ticker, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices for %s: %w", ticker, err)
	}

	merged, err := domain.Merge(cached, fetched)
	if err != nil {
		var noData *domain.NoDataError
		if errors.As(err, &noData) {
			return nil, &domain.NoDataError{Ticker: ticker}
		}
		return nil, err
	}

	if h.CacheEnabled {
		if err := h.CacheRepository.Save(ticker, merged); err != nil {
			// the cache is best-effort; the fetched data is already in hand
			log.Warnw("failed to update price cache", "ticker", ticker, "error", err)
		}
	}

	out := merged.Slice(start, end)
	if len(out) == 0 {
		return nil, &domain.NoDataError{Ticker: ticker}
	}
	return out, nil
}

// covers reports whether the slice reaches both edges of the requested
// range. A 7-day slack absorbs weekends and holidays at the boundaries,
// where no trading day exists on the exact requested date.
func covers(s domain.Series, start, end time.Time) bool {
	if len(s) == 0 {
		return false
	}
	return !s[0].Date.After(start.AddDate(0, 0, 7)) &&
		!s[len(s)-1].Date.Before(end.AddDate(0, 0, -7))
}
