package calculator

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"stocksense/internal/domain"
)

// SMA returns the arithmetic mean of the last window closes. It is only
// defined once window points are available; no partial-window value is
// reported.
func SMA(closes []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, fmt.Errorf("sma window must be positive, got %d", window)
	}
	if len(closes) < window {
		return 0, &domain.InsufficientDataError{
			Stat: fmt.Sprintf("sma(%d)", window),
			Have: len(closes),
			Need: window,
		}
	}
	mean, err := stats.Mean(closes[len(closes)-window:])
	if err != nil {
		return 0, fmt.Errorf("failed to compute sma(%d): %w", window, err)
	}
	return mean, nil
}
