package forecast

import (
	"fmt"
)

type ModelKind string

const (
	ModelNaive         ModelKind = "naive"
	ModelMovingAverage ModelKind = "moving_average"
	ModelDrift         ModelKind = "drift"
)

// Model is one of the closed set of baseline projection models. Each is a
// pure function from a price history prefix to the predicted next close;
// selection is a fold over this finite set, there is no open hierarchy.
type Model struct {
	Kind   ModelKind
	Window int
}

func (m Model) Name() string {
	if m.Kind == ModelNaive {
		return string(m.Kind)
	}
	return fmt.Sprintf("%s(%d)", m.Kind, m.Window)
}

// minHistory is the shortest prefix the model can predict from. Drift
// needs window+1 closes to form window daily changes.
func (m Model) minHistory() int {
	switch m.Kind {
	case ModelMovingAverage:
		return m.Window
	case ModelDrift:
		return m.Window + 1
	default:
		return 1
	}
}

// Predict returns the one-step-ahead forecast given history, which must
// hold at least minHistory points.
func (m Model) Predict(history []float64) float64 {
	last := history[len(history)-1]
	switch m.Kind {
	case ModelMovingAverage:
		tail := history[len(history)-m.Window:]
		sum := 0.0
		for _, v := range tail {
			sum += v
		}
		return sum / float64(m.Window)
	case ModelDrift:
		// mean daily change over the window telescopes to (last-first)/window
		first := history[len(history)-m.Window-1]
		return last + (last-first)/float64(m.Window)
	default:
		return last
	}
}
