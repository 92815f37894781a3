package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"

	"stocksense/internal/domain"
)

// Renderer writes PNG charts for a completed analysis into Dir.
type Renderer struct {
	Dir string
}

// RenderAll renders the close-price chart, the price/SMA overlay, and the
// history-vs-forecast comparison. It returns the paths written.
func (r Renderer) RenderAll(series domain.Series, report *domain.Report) ([]string, error) {
	if len(series) == 0 {
		return nil, &domain.NoDataError{Ticker: report.Ticker}
	}
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart dir: %w", err)
	}

	dates := make([]time.Time, len(series))
	closes := series.Closes()
	for i, p := range series {
		dates[i] = p.Date
	}

	type render struct {
		name  string
		graph gochart.Chart
	}
	renders := []render{
		{
			name:  fmt.Sprintf("%s_price.png", report.Ticker),
			graph: r.priceChart(report.Ticker, dates, closes),
		},
		{
			name:  fmt.Sprintf("%s_sma.png", report.Ticker),
			graph: r.smaChart(report.Ticker, dates, closes, 20),
		},
		{
			name:  fmt.Sprintf("%s_forecast.png", report.Ticker),
			graph: r.forecastChart(report.Ticker, dates, closes, report.Forecast.Projections),
		},
	}

	paths := make([]string, 0, len(renders))
	for _, rd := range renders {
		path := filepath.Join(r.Dir, rd.name)
		if err := writePNG(rd.graph, path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (r Renderer) priceChart(ticker string, dates []time.Time, closes []float64) gochart.Chart {
	return gochart.Chart{
		Title: fmt.Sprintf("%s close", ticker),
		XAxis: gochart.XAxis{ValueFormatter: gochart.TimeDateValueFormatter},
		Series: []gochart.Series{
			gochart.TimeSeries{Name: "close", XValues: dates, YValues: closes},
		},
	}
}

func (r Renderer) smaChart(ticker string, dates []time.Time, closes []float64, window int) gochart.Chart {
	smaDates, smaValues := rollingMean(dates, closes, window)
	series := []gochart.Series{
		gochart.TimeSeries{Name: "close", XValues: dates, YValues: closes},
	}
	if len(smaValues) > 0 {
		series = append(series, gochart.TimeSeries{
			Name:    fmt.Sprintf("sma(%d)", window),
			XValues: smaDates,
			YValues: smaValues,
		})
	}
	return gochart.Chart{
		Title:  fmt.Sprintf("%s close with %d-day moving average", ticker, window),
		XAxis:  gochart.XAxis{ValueFormatter: gochart.TimeDateValueFormatter},
		Series: series,
	}
}

func (r Renderer) forecastChart(ticker string, dates []time.Time, closes []float64, projections []domain.ProjectedPoint) gochart.Chart {
	projDates := make([]time.Time, len(projections))
	projValues := make([]float64, len(projections))
	for i, p := range projections {
		projDates[i] = p.Date
		projValues[i] = p.PredictedClose
	}
	return gochart.Chart{
		Title: fmt.Sprintf("%s history vs forecast", ticker),
		XAxis: gochart.XAxis{ValueFormatter: gochart.TimeDateValueFormatter},
		Series: []gochart.Series{
			gochart.TimeSeries{Name: "history", XValues: dates, YValues: closes},
			gochart.TimeSeries{Name: "forecast", XValues: projDates, YValues: projValues},
		},
	}
}

// rollingMean aligns a full-window moving average with its end dates.
// Presentation only - the snapshot's SMA comes from the calculator.
func rollingMean(dates []time.Time, closes []float64, window int) ([]time.Time, []float64) {
	if len(closes) < window || window <= 0 {
		return nil, nil
	}
	outDates := make([]time.Time, 0, len(closes)-window+1)
	outValues := make([]float64, 0, len(closes)-window+1)
	sum := 0.0
	for i, v := range closes {
		sum += v
		if i >= window {
			sum -= closes[i-window]
		}
		if i >= window-1 {
			outDates = append(outDates, dates[i])
			outValues = append(outValues, sum/float64(window))
		}
	}
	return outDates, outValues
}

func writePNG(graph gochart.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(gochart.PNG, f); err != nil {
		return fmt.Errorf("failed to render %s: %w", filepath.Base(path), err)
	}
	return nil
}
