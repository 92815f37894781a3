package forecast

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// Options controls the candidate model windows and the backtest hold-out.
// A zero HoldoutDays selects min(30, n/4).
type Options struct {
	HoldoutDays int
	MAWindow    int
	DriftWindow int
}

func DefaultOptions() Options {
	return Options{
		MAWindow:    5,
		DriftWindow: 5,
	}
}

// models returns the candidates in tie-break order: when RMSEs are equal
// the earliest (simplest) entry wins.
func (o Options) models() []Model {
	return []Model{
		{Kind: ModelNaive},
		{Kind: ModelMovingAverage, Window: o.MAWindow},
		{Kind: ModelDrift, Window: o.DriftWindow},
	}
}

func (o Options) holdout(n int) int {
	if o.HoldoutDays > 0 {
		return o.HoldoutDays
	}
	k := n / 4
	if k > 30 {
		k = 30
	}
	return k
}

func (o Options) maxMinHistory() int {
	need := 1
	for _, m := range o.models() {
		if m.minHistory() > need {
			need = m.minHistory()
		}
	}
	return need
}

// backtest walks forward one day at a time over the held-out tail,
// predicting each close from all data strictly before it, and returns the
// model's RMSE over the tail.
func backtest(m Model, closes []float64, holdout int) (float64, error) {
	sqErrs := make([]float64, 0, holdout)
	for i := len(closes) - holdout; i < len(closes); i++ {
		diff := m.Predict(closes[:i]) - closes[i]
		sqErrs = append(sqErrs, diff*diff)
	}
	mse, err := stats.Mean(sqErrs)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate %s backtest errors: %w", m.Name(), err)
	}
	return math.Sqrt(mse), nil
}
