package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TrendDirection string

const (
	TrendUp   TrendDirection = "UP"
	TrendDown TrendDirection = "DOWN"
	TrendFlat TrendDirection = "FLAT"
)

// Drawdown is the largest peak-to-trough percentage decline observed over
// a series, with the dates of the peak and the trough.
type Drawdown struct {
	Percent  float64
	FromDate time.Time
	ToDate   time.Time
}

// IndicatorSnapshot holds the windowed statistics for a series as of its
// most recent point. Snapshots are recomputed fresh on every run and never
// persisted on their own.
type IndicatorSnapshot struct {
	AsOfDate      time.Time
	LastClose     decimal.Decimal
	SMAShort      float64
	SMALong       float64
	Trend         TrendDirection
	RSI14         float64
	Volatility30D float64
	MaxDrawdown   Drawdown
}

// ProjectedPoint is a single forecasted close on a future trading day.
type ProjectedPoint struct {
	Date           time.Time
	PredictedClose float64
}

// ModelScore identifies a forecast model and its backtested RMSE.
type ModelScore struct {
	Name   string
	Window int
	RMSE   float64
}

// ForecastResult holds the backtest scores for every candidate model, the
// winning model, and its multi-day projection.
type ForecastResult struct {
	ModelUsed     ModelScore
	ScoresByModel map[string]float64
	Projections   []ProjectedPoint
	Horizon       int
}

type DateRange struct {
	Start time.Time
	End   time.Time
}

// Report is the exportable record for one completed analysis run. It is
// immutable after construction.
type Report struct {
	AnalysisID uuid.UUID
	Ticker     string
	Range      DateRange
	RowCount   int
	Snapshot   IndicatorSnapshot
	Forecast   ForecastResult
	CreatedAt  time.Time
}
