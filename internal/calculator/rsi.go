package calculator

import (
	"fmt"

	"stocksense/internal/domain"
)

// RSI computes the relative strength index over the trailing window of
// close-to-close changes. Gains and losses are averaged with a plain
// rolling mean, not Wilder smoothing. An all-gain window has avgLoss = 0
// and maps to 100 rather than dividing by zero.
func RSI(closes []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, fmt.Errorf("rsi window must be positive, got %d", window)
	}
	if len(closes) < window+1 {
		return 0, &domain.InsufficientDataError{
			Stat: fmt.Sprintf("rsi(%d)", window),
			Have: len(closes),
			Need: window + 1,
		}
	}

	tail := closes[len(closes)-window-1:]
	var gains, losses float64
	for i := 1; i < len(tail); i++ {
		change := tail[i] - tail[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(window)
	avgLoss := losses / float64(window)
	if avgLoss == 0 {
		return 100, nil
	}

	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), nil
}
