package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"stocksense/internal/app"
	"stocksense/internal/calculator"
	"stocksense/internal/chart"
	"stocksense/internal/config"
	"stocksense/internal/forecast"
	"stocksense/internal/logger"
	"stocksense/internal/repository"
	"stocksense/internal/service"
)

type handler struct {
	Config   *config.Config
	Analysis app.AnalysisHandler
	Series   service.SeriesService
	Reports  repository.ReportRepository
	Sessions repository.SessionLogRepository
	Charts   chart.Renderer
}

func initializeDependencies(configPath string) (*handler, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	seriesService := service.NewSeriesService(
		repository.NewYahooRepository(),
		repository.NewPriceCacheRepository(cfg.DataDir),
		cfg.Cache(),
	)

	return &handler{
		Config:   cfg,
		Analysis: app.AnalysisHandler{SeriesService: seriesService},
		Series:   seriesService,
		Reports:  repository.NewReportRepository(cfg.ExportDir),
		Sessions: repository.NewSessionLogRepository(cfg.LogFile),
		Charts:   chart.Renderer{Dir: cfg.ExportDir},
	}, nil
}

func newContext() context.Context {
	return context.WithValue(context.Background(), logger.ContextKey, logger.New())
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "stocksense",
		Short: "Fetch, analyze, chart, and forecast daily stock prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := initializeDependencies(configPath)
			if err != nil {
				return err
			}
			return runMenu(newContext(), h)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.json", "path to config file")
	root.AddCommand(newFetchCmd(&configPath), newAnalyzeCmd(&configPath))
	return root
}

func newFetchCmd(configPath *string) *cobra.Command {
	var (
		ticker string
		start  string
		end    string
	)
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch or update cached price history for a ticker",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := initializeDependencies(*configPath)
			if err != nil {
				return err
			}
			in, err := h.resolveInput(ticker, start, end, 0)
			if err != nil {
				return err
			}

			ctx := newContext()
			started := time.Now()
			series, err := h.Series.Load(ctx, in.Ticker, in.Start, in.End)
			h.logSession(ctx, "FETCH", in.Ticker, in.Start, in.End, len(series), err,
				time.Since(started).Round(time.Millisecond).String())
			if err != nil {
				return err
			}
			cmd.Printf("fetched %d rows for %s\n", len(series), in.Ticker)
			return nil
		},
	}
	cmd.Flags().StringVarP(&ticker, "ticker", "t", "", "ticker symbol (default from config)")
	cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD (default from config)")
	cmd.Flags().StringVar(&end, "end", "", `end date YYYY-MM-DD or "today" (default from config)`)
	return cmd
}

func newAnalyzeCmd(configPath *string) *cobra.Command {
	var (
		ticker  string
		start   string
		end     string
		horizon int
		export  bool
		charts  bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full indicator and forecast pipeline for a ticker",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := initializeDependencies(*configPath)
			if err != nil {
				return err
			}
			in, err := h.resolveInput(ticker, start, end, horizon)
			if err != nil {
				return err
			}

			ctx := newContext()
			result, err := h.Analysis.Run(ctx, in)
			rows := 0
			if result != nil {
				rows = len(result.Series)
			}
			h.logSession(ctx, "ANALYZE", in.Ticker, in.Start, in.End, rows, err, "")
			if err != nil {
				return err
			}

			printReport(cmd.OutOrStdout(), result.Report)

			if export {
				if err := h.Reports.Append(result.Report); err != nil {
					return err
				}
				cmd.Printf("report appended to %s\n", filepath.Join(h.Config.ExportDir, "report_summary.csv"))
			}
			if charts {
				paths, err := h.Charts.RenderAll(result.Series, result.Report)
				if err != nil {
					return err
				}
				for _, p := range paths {
					cmd.Printf("chart written to %s\n", p)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&ticker, "ticker", "t", "", "ticker symbol (default from config)")
	cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD (default from config)")
	cmd.Flags().StringVar(&end, "end", "", `end date YYYY-MM-DD or "today" (default from config)`)
	cmd.Flags().IntVarP(&horizon, "horizon", "n", 0, "forecast horizon in trading days (default from config)")
	cmd.Flags().BoolVar(&export, "export", false, "append the report to the summary CSV")
	cmd.Flags().BoolVar(&charts, "charts", false, "render PNG charts to the export dir")
	return cmd
}

// resolveInput merges flag values over config defaults.
func (h *handler) resolveInput(ticker, start, end string, horizon int) (app.AnalysisInput, error) {
	cfg := *h.Config
	if ticker != "" {
		cfg.DefaultTicker = ticker
	}
	if start != "" {
		cfg.Start = start
	}
	if end != "" {
		cfg.End = end
	}
	if horizon <= 0 {
		horizon = cfg.ForecastDays
	}

	rangeStart, rangeEnd, err := cfg.DateRange()
	if err != nil {
		return app.AnalysisInput{}, err
	}

	return app.AnalysisInput{
		Ticker:          cfg.DefaultTicker,
		Start:           rangeStart,
		End:             rangeEnd,
		HorizonDays:     horizon,
		SnapshotOptions: calculator.DefaultSnapshotOptions(),
		ForecastOptions: forecast.DefaultOptions(),
	}, nil
}

func (h *handler) logSession(ctx context.Context, action, ticker string, start, end time.Time, rows int, runErr error, note string) {
	status := "OK"
	if runErr != nil {
		status = "ERROR"
		note = runErr.Error()
	}
	err := h.Sessions.Append(repository.SessionLogEntry{
		Action: action,
		Ticker: ticker,
		Start:  start,
		End:    end,
		Rows:   rows,
		Status: status,
		Note:   note,
	})
	if err != nil {
		// the session log must never take down a run
		logger.FromContext(ctx).Warnw("failed to append session log", "error", err)
	}
}
