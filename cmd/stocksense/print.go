package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"stocksense/internal/domain"
)

func printReport(out io.Writer, report *domain.Report) {
	s := report.Snapshot
	fmt.Fprintf(out, "\n--- %s  %s to %s  (%d rows) ---\n",
		report.Ticker,
		report.Range.Start.Format(time.DateOnly),
		report.Range.End.Format(time.DateOnly),
		report.RowCount)
	fmt.Fprintf(out, "last close:      %s\n", s.LastClose.StringFixed(2))
	fmt.Fprintf(out, "sma 20 / 50:     %.2f / %.2f  (%s)\n", s.SMAShort, s.SMALong, s.Trend)
	fmt.Fprintf(out, "rsi 14:          %.2f (%s)\n", s.RSI14, rsiStatus(s.RSI14))
	fmt.Fprintf(out, "volatility 30d:  %.2f%%\n", s.Volatility30D)
	fmt.Fprintf(out, "max drawdown:    %.2f%% (%s to %s)\n",
		s.MaxDrawdown.Percent,
		s.MaxDrawdown.FromDate.Format(time.DateOnly),
		s.MaxDrawdown.ToDate.Format(time.DateOnly))
	printForecast(out, &report.Forecast)
}

func printForecast(out io.Writer, forecast *domain.ForecastResult) {
	fmt.Fprintf(out, "model:           %s (rmse %.4f)\n",
		forecast.ModelUsed.Name, forecast.ModelUsed.RMSE)

	names := make([]string, 0, len(forecast.ScoresByModel))
	for name := range forecast.ScoresByModel {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-18s rmse %.4f\n", name, forecast.ScoresByModel[name])
	}

	for _, p := range forecast.Projections {
		fmt.Fprintf(out, "  %s -> %.2f\n", p.Date.Format(time.DateOnly), p.PredictedClose)
	}
}

func rsiStatus(rsi float64) string {
	switch {
	case rsi < 30:
		return "oversold"
	case rsi > 70:
		return "overbought"
	default:
		return "neutral"
	}
}
