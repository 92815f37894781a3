package calculator

import (
	"stocksense/internal/domain"

	"golang.org/x/sync/errgroup"
)

// SnapshotOptions holds the window lengths for the snapshot statistics.
type SnapshotOptions struct {
	ShortWindow int
	LongWindow  int
	RSIWindow   int
	VolWindow   int
}

func DefaultSnapshotOptions() SnapshotOptions {
	return SnapshotOptions{
		ShortWindow: 20,
		LongWindow:  50,
		RSIWindow:   14,
		VolWindow:   30,
	}
}

// minPoints is the shortest series the snapshot is defined on. RSI needs
// one extra point to form its first close-to-close change.
func (o SnapshotOptions) minPoints() int {
	need := o.ShortWindow
	for _, n := range []int{o.LongWindow, o.RSIWindow + 1, o.VolWindow} {
		if n > need {
			need = n
		}
	}
	return need
}

// Snapshot computes the indicator snapshot for the series as of its most
// recent point. The four indicators are independent given the same series,
// so they run concurrently and join before assembly; nothing shared is
// written until all of them return.
func Snapshot(series domain.Series, opts SnapshotOptions) (*domain.IndicatorSnapshot, error) {
	if need := opts.minPoints(); len(series) < need {
		return nil, &domain.InsufficientDataError{Stat: "indicator snapshot", Have: len(series), Need: need}
	}

	closes := series.Closes()

	var (
		smaShort, smaLong float64
		rsi               float64
		vol               float64
		dd                domain.Drawdown
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		if smaShort, err = SMA(closes, opts.ShortWindow); err != nil {
			return err
		}
		smaLong, err = SMA(closes, opts.LongWindow)
		return err
	})
	g.Go(func() error {
		var err error
		rsi, err = RSI(closes, opts.RSIWindow)
		return err
	})
	g.Go(func() error {
		var err error
		vol, err = Volatility(closes, opts.VolWindow)
		return err
	})
	g.Go(func() error {
		var err error
		dd, err = MaxDrawdown(series)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	trend := domain.TrendFlat
	switch {
	case smaShort > smaLong:
		trend = domain.TrendUp
	case smaShort < smaLong:
		trend = domain.TrendDown
	}

	last := series[len(series)-1]
	return &domain.IndicatorSnapshot{
		AsOfDate:      last.Date,
		LastClose:     last.Close,
		SMAShort:      smaShort,
		SMALong:       smaLong,
		Trend:         trend,
		RSI14:         rsi,
		Volatility30D: vol,
		MaxDrawdown:   dd,
	}, nil
}
