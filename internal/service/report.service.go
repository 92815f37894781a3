package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"stocksense/internal/domain"
)

// BuildReport assembles the snapshot and forecast for a series into a
// single immutable report. It performs no computation of its own; the
// cross-checks guard against inputs derived from different series and are
// never expected to fire at runtime. No partial report is ever returned.
func BuildReport(
	ticker string,
	series domain.Series,
	snapshot *domain.IndicatorSnapshot,
	forecast *domain.ForecastResult,
) (*domain.Report, error) {
	last, ok := series.Last()
	if !ok {
		return nil, &domain.NoDataError{Ticker: ticker}
	}

	if !snapshot.AsOfDate.Equal(last.Date) {
		return nil, &domain.InconsistentStateError{
			Reason: fmt.Sprintf("snapshot as-of %s does not match series end %s",
				snapshot.AsOfDate.Format(time.DateOnly), last.Date.Format(time.DateOnly)),
		}
	}
	if !snapshot.LastClose.Equal(last.Close) {
		return nil, &domain.InconsistentStateError{
			Reason: fmt.Sprintf("snapshot last close %s does not match series close %s",
				snapshot.LastClose, last.Close),
		}
	}
	if len(forecast.Projections) != forecast.Horizon {
		return nil, &domain.InconsistentStateError{
			Reason: fmt.Sprintf("forecast declares horizon %d but holds %d projections",
				forecast.Horizon, len(forecast.Projections)),
		}
	}
	if forecast.Horizon > 0 && !forecast.Projections[0].Date.After(last.Date) {
		return nil, &domain.InconsistentStateError{
			Reason: fmt.Sprintf("first projection %s does not follow series end %s",
				forecast.Projections[0].Date.Format(time.DateOnly), last.Date.Format(time.DateOnly)),
		}
	}

	return &domain.Report{
		AnalysisID: uuid.New(),
		Ticker:     ticker,
		Range: domain.DateRange{
			Start: series[0].Date,
			End:   last.Date,
		},
		RowCount:  len(series),
		Snapshot:  *snapshot,
		Forecast:  *forecast,
		CreatedAt: time.Now().UTC(),
	}, nil
}
