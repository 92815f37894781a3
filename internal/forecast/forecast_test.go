package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"stocksense/internal/domain"
	"stocksense/internal/util"
)

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

func constantSeries(n int, price float64) domain.Series {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return weekdaySeries(util.NewDate(2024, 1, 1), closes...)
}

func TestRun(t *testing.T) {
	t.Run("naive rmse is zero on a constant series", func(t *testing.T) {
		got, err := Run(constantSeries(60, 10), 3, DefaultOptions())
		require.NoError(t, err)
		require.InDelta(t, 0, got.ScoresByModel["naive"], 1e-9)
	})

	t.Run("ties break toward naive", func(t *testing.T) {
		// every model is exact on a constant series, so all RMSEs tie
		got, err := Run(constantSeries(60, 10), 3, DefaultOptions())
		require.NoError(t, err)
		require.Len(t, got.ScoresByModel, 3)
		require.InDelta(t, got.ScoresByModel["naive"], got.ScoresByModel["moving_average(5)"], 1e-9)
		require.Equal(t, "naive", got.ModelUsed.Name)
	})

	t.Run("constant series projects the constant", func(t *testing.T) {
		got, err := Run(constantSeries(60, 10), 3, DefaultOptions())
		require.NoError(t, err)
		require.Len(t, got.Projections, 3)
		for _, p := range got.Projections {
			require.InDelta(t, 10, p.PredictedClose, 1e-9)
		}
	})

	t.Run("linear series selects drift and extrapolates recursively", func(t *testing.T) {
		closes := make([]float64, 40)
		for i := range closes {
			closes[i] = float64(i + 1)
		}
		got, err := Run(weekdaySeries(util.NewDate(2024, 1, 1), closes...), 3, DefaultOptions())
		require.NoError(t, err)

		require.Equal(t, "drift(5)", got.ModelUsed.Name)
		require.InDelta(t, 0, got.ModelUsed.RMSE, 1e-9)

		// the window keeps folding the model's own predictions back in
		require.InDelta(t, 41, got.Projections[0].PredictedClose, 1e-9)
		require.InDelta(t, 42, got.Projections[1].PredictedClose, 1e-9)
		require.InDelta(t, 43, got.Projections[2].PredictedClose, 1e-9)
	})

	t.Run("projection dates skip weekends", func(t *testing.T) {
		series := constantSeries(60, 10)
		got, err := Run(series, 10, DefaultOptions())
		require.NoError(t, err)

		last := series[len(series)-1].Date
		require.True(t, got.Projections[0].Date.Equal(util.NextTradingDay(last)))
		for i, p := range got.Projections {
			require.NotEqual(t, time.Saturday, p.Date.Weekday())
			require.NotEqual(t, time.Sunday, p.Date.Weekday())
			if i > 0 {
				require.True(t, p.Date.Equal(util.NextTradingDay(got.Projections[i-1].Date)))
			}
		}
	})

	t.Run("short series fails with InsufficientDataError", func(t *testing.T) {
		_, err := Run(constantSeries(6, 10), 3, DefaultOptions())
		var insufficient *domain.InsufficientDataError
		require.ErrorAs(t, err, &insufficient)
	})

	t.Run("non-positive horizon rejected", func(t *testing.T) {
		_, err := Run(constantSeries(60, 10), 0, DefaultOptions())
		require.Error(t, err)
	})

	t.Run("holdout override is honored", func(t *testing.T) {
		opts := DefaultOptions()
		opts.HoldoutDays = 10
		got, err := Run(constantSeries(60, 10), 1, opts)
		require.NoError(t, err)
		require.Equal(t, "naive", got.ModelUsed.Name)
	})
}

func TestModel_Predict(t *testing.T) {
	t.Run("naive repeats the last close", func(t *testing.T) {
		m := Model{Kind: ModelNaive}
		require.InDelta(t, 7, m.Predict([]float64{1, 2, 7}), 1e-9)
	})

	t.Run("moving average means the trailing window", func(t *testing.T) {
		m := Model{Kind: ModelMovingAverage, Window: 3}
		require.InDelta(t, 4, m.Predict([]float64{100, 3, 4, 5}), 1e-9)
	})

	t.Run("drift extends the mean daily change", func(t *testing.T) {
		m := Model{Kind: ModelDrift, Window: 4}
		// changes of +2 per day over the window
		require.InDelta(t, 12, m.Predict([]float64{2, 4, 6, 8, 10}), 1e-9)
	})
}

func TestBacktest_NoLookahead(t *testing.T) {
	// a spike on the last day must not leak into earlier predictions
	closes := []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 1000}
	rmse, err := backtest(Model{Kind: ModelNaive}, closes, 2)
	require.NoError(t, err)

	// tail errors: predict 10 for 10 (0), predict 10 for 1000 (990)
	require.InDelta(t, 700.035713, rmse, 1e-3)
}
