package forecast

import (
	"fmt"
	"math"

	"stocksense/internal/domain"
	"stocksense/internal/util"
)

// Run backtests the baseline models on the held-out tail of the series,
// selects the lowest-RMSE model, and projects horizonDays future closes.
// The projection is recursive: the selected model folds its own predictions
// into the trailing window as it rolls forward, and projected dates skip
// weekends.
func Run(series domain.Series, horizonDays int, opts Options) (*domain.ForecastResult, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("forecast horizon must be positive, got %d", horizonDays)
	}

	n := len(series)
	k := opts.holdout(n)
	if k < 1 || n-k < opts.maxMinHistory() {
		return nil, &domain.InsufficientDataError{
			Stat: "forecast backtest",
			Have: n,
			Need: opts.maxMinHistory() + 1,
		}
	}

	closes := series.Closes()

	scores := map[string]float64{}
	var best Model
	bestRMSE := math.Inf(1)
	for _, m := range opts.models() {
		rmse, err := backtest(m, closes, k)
		if err != nil {
			return nil, err
		}
		scores[m.Name()] = rmse
		if rmse < bestRMSE {
			best = m
			bestRMSE = rmse
		}
	}

	history := make([]float64, n, n+horizonDays)
	copy(history, closes)
	projections := make([]domain.ProjectedPoint, 0, horizonDays)
	date := series[n-1].Date
	for i := 0; i < horizonDays; i++ {
		pred := best.Predict(history)
		history = append(history, pred)
		date = util.NextTradingDay(date)
		projections = append(projections, domain.ProjectedPoint{
			Date:           date,
			PredictedClose: pred,
		})
	}

	return &domain.ForecastResult{
		ModelUsed: domain.ModelScore{
			Name:   best.Name(),
			Window: best.Window,
			RMSE:   bestRMSE,
		},
		ScoresByModel: scores,
		Projections:   projections,
		Horizon:       horizonDays,
	}, nil
}
