package domain

import "fmt"

// NoDataError means no usable price history exists for the request. It is
// terminal for the current analysis run.
type NoDataError struct {
	Ticker string
}

func (e *NoDataError) Error() string {
	if e.Ticker == "" {
		return "no usable price history"
	}
	return fmt.Sprintf("no usable price history for %s", e.Ticker)
}

// InsufficientDataError means the series is shorter than a required
// statistical window. Callers decide whether to degrade or abort.
type InsufficientDataError struct {
	Stat string
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s needs %d points, series has %d", e.Stat, e.Need, e.Have)
}

// InconsistentStateError reports a mismatch between report inputs. It is a
// defensive check, not an expected runtime condition.
type InconsistentStateError struct {
	Reason string
}

func (e *InconsistentStateError) Error() string {
	return "inconsistent report inputs: " + e.Reason
}
