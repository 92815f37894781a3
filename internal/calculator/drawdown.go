package calculator

import (
	"stocksense/internal/domain"
)

// MaxDrawdown scans the full series once, tracking the running peak, and
// returns the largest peak-to-trough percentage decline with its dates.
// The peak always precedes the trough. A series that only rises reports
// 0% with both dates at the first point.
func MaxDrawdown(series domain.Series) (domain.Drawdown, error) {
	if len(series) == 0 {
		return domain.Drawdown{}, &domain.NoDataError{}
	}

	closes := series.Closes()
	peak := closes[0]
	peakDate := series[0].Date
	out := domain.Drawdown{
		FromDate: series[0].Date,
		ToDate:   series[0].Date,
	}

	for i, price := range closes {
		if price > peak {
			peak = price
			peakDate = series[i].Date
			continue
		}
		dd := (peak - price) / peak * 100
		if dd > out.Percent {
			out.Percent = dd
			out.FromDate = peakDate
			out.ToDate = series[i].Date
		}
	}

	return out, nil
}
