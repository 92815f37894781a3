package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"stocksense/internal/domain"
)

// PriceCacheRepository persists a merged price series per ticker as a flat
// row-per-day CSV. The cache only exists to avoid re-downloading settled
// history; callers must never depend on its contents being present.
type PriceCacheRepository interface {
	Load(ticker string) (domain.Series, error)
	Save(ticker string, series domain.Series) error
}

type priceRow struct {
	Date   string          `csv:"date"`
	Close  decimal.Decimal `csv:"close"`
	Volume int64           `csv:"volume"`
}

func NewPriceCacheRepository(dir string) PriceCacheRepository {
	return &priceCacheRepositoryHandler{Dir: dir}
}

type priceCacheRepositoryHandler struct {
	Dir string
}

func (h *priceCacheRepositoryHandler) path(ticker string) string {
	return filepath.Join(h.Dir, strings.ToUpper(ticker)+".csv")
}

// Load reads the cached series for ticker. A missing file yields an empty
// series, not an error; a corrupt file fails the load.
func (h *priceCacheRepositoryHandler) Load(ticker string) (domain.Series, error) {
	f, err := os.Open(h.path(ticker))
	if os.IsNotExist(err) {
		return domain.Series{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open price cache for %s: %w", ticker, err)
	}
	defer f.Close()

	rows := []*priceRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse price cache for %s: %w", ticker, err)
	}

	out := make(domain.Series, 0, len(rows))
	for _, r := range rows {
		date, err := time.Parse(time.DateOnly, r.Date)
		if err != nil {
			return nil, fmt.Errorf("bad date %q in price cache for %s: %w", r.Date, ticker, err)
		}
		out = append(out, domain.PricePoint{
			Date:   date,
			Close:  r.Close,
			Volume: r.Volume,
		})
	}

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("price cache for %s violates series invariant: %w", ticker, err)
	}

	return out, nil
}

// Save writes the series atomically via a temp file rename so a crash
// mid-write never leaves a truncated cache behind.
func (h *priceCacheRepositoryHandler) Save(ticker string, series domain.Series) error {
	if err := series.Validate(); err != nil {
		return fmt.Errorf("refusing to cache invalid series for %s: %w", ticker, err)
	}
	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}

	rows := make([]*priceRow, 0, len(series))
	for _, p := range series {
		rows = append(rows, &priceRow{
			Date:   p.Date.Format(time.DateOnly),
			Close:  p.Close,
			Volume: p.Volume,
		})
	}

	tmp := h.path(ticker) + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create cache file for %s: %w", ticker, err)
	}
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write price cache for %s: %w", ticker, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close price cache for %s: %w", ticker, err)
	}

	if err := os.Rename(tmp, h.path(ticker)); err != nil {
		return fmt.Errorf("failed to replace price cache for %s: %w", ticker, err)
	}
	return nil
}
