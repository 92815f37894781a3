package app

import (
	"context"
	"fmt"
	"time"

	"stocksense/internal/calculator"
	"stocksense/internal/domain"
	"stocksense/internal/forecast"
	"stocksense/internal/logger"
	"stocksense/internal/service"
)

type AnalysisHandler struct {
	SeriesService service.SeriesService
}

type AnalysisInput struct {
	Ticker          string
	Start           time.Time
	End             time.Time
	HorizonDays     int
	SnapshotOptions calculator.SnapshotOptions
	ForecastOptions forecast.Options
}

type AnalysisResult struct {
	Report *domain.Report
	Series domain.Series
}

// Run executes the full pipeline for one ticker: load the series, compute
// the indicator snapshot, backtest and project the forecast, and assemble
// the report. Every output is recomputed fresh; nothing is carried between
// runs.
func (h AnalysisHandler) Run(ctx context.Context, in AnalysisInput) (*AnalysisResult, error) {
	log := logger.FromContext(ctx)

	series, err := h.SeriesService.Load(ctx, in.Ticker, in.Start, in.End)
	if err != nil {
		return nil, err
	}
	log.Infow("series loaded", "ticker", in.Ticker, "rows", len(series))

	snapshot, err := calculator.Snapshot(series, in.SnapshotOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to compute indicators for %s: %w", in.Ticker, err)
	}

	forecastResult, err := forecast.Run(series, in.HorizonDays, in.ForecastOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to forecast %s: %w", in.Ticker, err)
	}

	report, err := service.BuildReport(in.Ticker, series, snapshot, forecastResult)
	if err != nil {
		return nil, err
	}

	return &AnalysisResult{
		Report: report,
		Series: series,
	}, nil
}
