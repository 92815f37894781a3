package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"stocksense/internal/domain"
)

// ReportRepository appends completed analysis reports to the summary CSV.
// The file grows one row per run; the header is written once.
type ReportRepository interface {
	Append(report *domain.Report) error
}

type reportRow struct {
	Timestamp     string  `csv:"timestamp"`
	AnalysisID    string  `csv:"analysis_id"`
	Ticker        string  `csv:"ticker"`
	PeriodStart   string  `csv:"period_start"`
	PeriodEnd     string  `csv:"period_end"`
	Rows          int     `csv:"rows"`
	LastClose     string  `csv:"last_close"`
	SMAShort      float64 `csv:"sma_short"`
	SMALong       float64 `csv:"sma_long"`
	Trend         string  `csv:"trend"`
	RSI14         float64 `csv:"rsi_14"`
	Volatility30D float64 `csv:"volatility_30d"`
	MaxDrawdown   float64 `csv:"max_drawdown_pct"`
	DrawdownFrom  string  `csv:"drawdown_from"`
	DrawdownTo    string  `csv:"drawdown_to"`
	Model         string  `csv:"model"`
	RMSE          float64 `csv:"rmse"`
}

func NewReportRepository(dir string) ReportRepository {
	return &reportRepositoryHandler{Dir: dir}
}

type reportRepositoryHandler struct {
	Dir string
}

func (h *reportRepositoryHandler) Append(report *domain.Report) error {
	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}

	path := filepath.Join(h.Dir, "report_summary.csv")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open report summary: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat report summary: %w", err)
	}

	rows := []*reportRow{{
		Timestamp:     report.CreatedAt.Format(time.RFC3339),
		AnalysisID:    report.AnalysisID.String(),
		Ticker:        report.Ticker,
		PeriodStart:   report.Range.Start.Format(time.DateOnly),
		PeriodEnd:     report.Range.End.Format(time.DateOnly),
		Rows:          report.RowCount,
		LastClose:     report.Snapshot.LastClose.StringFixed(2),
		SMAShort:      report.Snapshot.SMAShort,
		SMALong:       report.Snapshot.SMALong,
		Trend:         string(report.Snapshot.Trend),
		RSI14:         report.Snapshot.RSI14,
		Volatility30D: report.Snapshot.Volatility30D,
		MaxDrawdown:   report.Snapshot.MaxDrawdown.Percent,
		DrawdownFrom:  report.Snapshot.MaxDrawdown.FromDate.Format(time.DateOnly),
		DrawdownTo:    report.Snapshot.MaxDrawdown.ToDate.Format(time.DateOnly),
		Model:         report.Forecast.ModelUsed.Name,
		RMSE:          report.Forecast.ModelUsed.RMSE,
	}}

	if info.Size() == 0 {
		err = gocsv.Marshal(&rows, f)
	} else {
		err = gocsv.MarshalWithoutHeaders(&rows, f)
	}
	if err != nil {
		return fmt.Errorf("failed to append report summary: %w", err)
	}
	return nil
}
