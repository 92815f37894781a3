package calculator

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"stocksense/internal/domain"
)

// Volatility returns the sample standard deviation of daily percentage
// returns over the trailing window, expressed as a percentage.
func Volatility(closes []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, fmt.Errorf("volatility window must be positive, got %d", window)
	}
	if len(closes) < 3 {
		return 0, &domain.InsufficientDataError{
			Stat: fmt.Sprintf("volatility(%d)", window),
			Have: len(closes),
			Need: 3,
		}
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1]*100)
	}
	if len(returns) > window {
		returns = returns[len(returns)-window:]
	}

	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return 0, fmt.Errorf("failed to compute volatility(%d): %w", window, err)
	}
	return stdev, nil
}
