package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"stocksense/internal/app"
	"stocksense/internal/domain"
)

// menuState carries the data loaded so far through the interactive session,
// mirroring the "fetch first, then analyze" flow.
type menuState struct {
	Ticker string
	Start  time.Time
	End    time.Time
	Series domain.Series
	Report *domain.Report
}

func runMenu(ctx context.Context, h *handler) error {
	start, end, err := h.Config.DateRange()
	if err != nil {
		return err
	}
	state := &menuState{
		Ticker: h.Config.DefaultTicker,
		Start:  start,
		End:    end,
	}

	in := bufio.NewScanner(os.Stdin)
	out := os.Stdout

	for {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "=== StockSense ===")
		fmt.Fprintln(out, "1. Fetch/Update data")
		fmt.Fprintln(out, "2. Analyze indicators")
		fmt.Fprintln(out, "3. Render charts")
		fmt.Fprintln(out, "4. Forecast next N days")
		fmt.Fprintln(out, "5. Export report")
		fmt.Fprintln(out, "6. Quit")

		choice, ok := prompt(in, out, "Select option (1-6): ")
		if !ok {
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "1":
			h.menuFetch(ctx, in, out, state)
		case "2":
			h.menuAnalyze(ctx, out, state)
		case "3":
			h.menuCharts(ctx, out, state)
		case "4":
			h.menuForecast(ctx, in, out, state)
		case "5":
			h.menuExport(ctx, out, state)
		case "6":
			fmt.Fprintln(out, "goodbye")
			return nil
		default:
			fmt.Fprintln(out, "invalid choice, pick 1-6")
		}
	}
}

func (h *handler) menuFetch(ctx context.Context, in *bufio.Scanner, out io.Writer, state *menuState) {
	if v, ok := prompt(in, out, fmt.Sprintf("Ticker (default %s): ", state.Ticker)); ok && strings.TrimSpace(v) != "" {
		state.Ticker = strings.ToUpper(strings.TrimSpace(v))
	}
	if v, ok := prompt(in, out, fmt.Sprintf("Start date (default %s): ", state.Start.Format(time.DateOnly))); ok && strings.TrimSpace(v) != "" {
		if d, err := time.Parse(time.DateOnly, strings.TrimSpace(v)); err == nil {
			state.Start = d
		} else {
			fmt.Fprintf(out, "ignoring bad start date: %v\n", err)
		}
	}
	if v, ok := prompt(in, out, fmt.Sprintf("End date (default %s): ", state.End.Format(time.DateOnly))); ok && strings.TrimSpace(v) != "" {
		if d, err := time.Parse(time.DateOnly, strings.TrimSpace(v)); err == nil {
			state.End = d
		} else {
			fmt.Fprintf(out, "ignoring bad end date: %v\n", err)
		}
	}

	fmt.Fprintf(out, "fetching %s from %s to %s...\n",
		state.Ticker, state.Start.Format(time.DateOnly), state.End.Format(time.DateOnly))

	started := time.Now()
	series, err := h.Series.Load(ctx, state.Ticker, state.Start, state.End)
	h.logSession(ctx, "FETCH", state.Ticker, state.Start, state.End, len(series), err,
		time.Since(started).Round(time.Millisecond).String())
	if err != nil {
		fmt.Fprintf(out, "fetch failed: %v\n", err)
		return
	}

	state.Series = series
	state.Report = nil
	fmt.Fprintf(out, "data ready, rows: %d\n", len(series))
}

func (h *handler) menuAnalyze(ctx context.Context, out io.Writer, state *menuState) {
	if !state.hasData(out) {
		return
	}

	in, err := h.analysisInput(state, h.Config.ForecastDays)
	if err != nil {
		fmt.Fprintf(out, "analysis failed: %v\n", err)
		return
	}
	result, err := h.Analysis.Run(ctx, in)
	h.logSession(ctx, "ANALYZE", state.Ticker, state.Start, state.End, len(state.Series), err, "")
	if err != nil {
		fmt.Fprintf(out, "analysis failed: %v\n", err)
		return
	}

	state.Series = result.Series
	state.Report = result.Report
	printReport(out, result.Report)
}

func (h *handler) menuCharts(ctx context.Context, out io.Writer, state *menuState) {
	if !state.hasData(out) {
		return
	}
	if state.Report == nil {
		fmt.Fprintln(out, "no analysis yet, run option 2 first")
		return
	}

	paths, err := h.Charts.RenderAll(state.Series, state.Report)
	h.logSession(ctx, "VISUALIZE", state.Ticker, state.Start, state.End, len(state.Series), err, "")
	if err != nil {
		fmt.Fprintf(out, "chart rendering failed: %v\n", err)
		return
	}
	for _, p := range paths {
		fmt.Fprintf(out, "chart written to %s\n", p)
	}
}

func (h *handler) menuForecast(ctx context.Context, in *bufio.Scanner, out io.Writer, state *menuState) {
	if !state.hasData(out) {
		return
	}

	horizon := h.Config.ForecastDays
	if v, ok := prompt(in, out, fmt.Sprintf("Forecast days (default %d): ", horizon)); ok && strings.TrimSpace(v) != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			horizon = n
		} else {
			fmt.Fprintln(out, "ignoring bad horizon, using default")
		}
	}

	input, err := h.analysisInput(state, horizon)
	if err != nil {
		fmt.Fprintf(out, "forecasting failed: %v\n", err)
		return
	}
	result, err := h.Analysis.Run(ctx, input)
	h.logSession(ctx, "FORECAST", state.Ticker, state.Start, state.End, len(state.Series), err, "")
	if err != nil {
		fmt.Fprintf(out, "forecasting failed: %v\n", err)
		return
	}

	state.Series = result.Series
	state.Report = result.Report
	printForecast(out, &result.Report.Forecast)
}

func (h *handler) menuExport(ctx context.Context, out io.Writer, state *menuState) {
	if state.Report == nil {
		fmt.Fprintln(out, "no analysis yet, run option 2 first")
		return
	}

	err := h.Reports.Append(state.Report)
	h.logSession(ctx, "EXPORT", state.Ticker, state.Start, state.End, len(state.Series), err, "")
	if err != nil {
		fmt.Fprintf(out, "export failed: %v\n", err)
		return
	}
	fmt.Fprintf(out, "report appended to %s/report_summary.csv\n", h.Config.ExportDir)
}

func (h *handler) analysisInput(state *menuState, horizon int) (app.AnalysisInput, error) {
	return h.resolveInput(state.Ticker,
		state.Start.Format(time.DateOnly), state.End.Format(time.DateOnly), horizon)
}

func (s *menuState) hasData(out io.Writer) bool {
	if len(s.Series) == 0 {
		fmt.Fprintln(out, "no data yet, fetch first (option 1)")
		return false
	}
	return true
}

func prompt(in *bufio.Scanner, out io.Writer, msg string) (string, bool) {
	fmt.Fprint(out, msg)
	if !in.Scan() {
		fmt.Fprintln(out)
		return "", false
	}
	return in.Text(), true
}
