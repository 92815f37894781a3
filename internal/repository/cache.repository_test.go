package repository

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"stocksense/internal/domain"
	"stocksense/internal/util"
)

func cacheSeries() domain.Series {
	return domain.Series{
		{Date: util.NewDate(2024, 1, 2), Close: decimal.NewFromFloat(187.15), Volume: 58414500},
		{Date: util.NewDate(2024, 1, 3), Close: decimal.NewFromFloat(184.25), Volume: 71983600},
		{Date: util.NewDate(2024, 1, 4), Close: decimal.NewFromFloat(181.91), Volume: 0},
	}
}

func TestPriceCacheRepository(t *testing.T) {
	t.Run("save then load restores the series", func(t *testing.T) {
		repo := NewPriceCacheRepository(t.TempDir())
		original := cacheSeries()

		require.NoError(t, repo.Save("aapl", original))

		got, err := repo.Load("AAPL")
		require.NoError(t, err)
		require.Len(t, got, len(original))
		for i, p := range got {
			require.True(t, p.Date.Equal(original[i].Date))
			require.True(t, p.Close.Equal(original[i].Close))
			require.Equal(t, original[i].Volume, p.Volume)
		}
	})

	t.Run("missing file loads an empty series", func(t *testing.T) {
		repo := NewPriceCacheRepository(t.TempDir())
		got, err := repo.Load("MSFT")
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("save refuses an invalid series", func(t *testing.T) {
		repo := NewPriceCacheRepository(t.TempDir())
		outOfOrder := domain.Series{
			{Date: util.NewDate(2024, 1, 3), Close: decimal.NewFromInt(10)},
			{Date: util.NewDate(2024, 1, 2), Close: decimal.NewFromInt(11)},
		}
		require.Error(t, repo.Save("AAPL", outOfOrder))
	})

	t.Run("corrupt cache file fails the load", func(t *testing.T) {
		dir := t.TempDir()
		repo := NewPriceCacheRepository(dir)
		corrupt := "date,close,volume\nnot-a-date,10,100\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "AAPL.csv"), []byte(corrupt), 0o644))

		_, err := repo.Load("AAPL")
		require.Error(t, err)
	})

	t.Run("save leaves no temp file behind", func(t *testing.T) {
		dir := t.TempDir()
		repo := NewPriceCacheRepository(dir)
		require.NoError(t, repo.Save("AAPL", cacheSeries()))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "AAPL.csv", entries[0].Name())
	})
}

func TestSessionLogRepository(t *testing.T) {
	t.Run("appends one row per entry with a single header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs.csv")
		repo := NewSessionLogRepository(path)

		entry := SessionLogEntry{
			Action: "ANALYZE",
			Ticker: "AAPL",
			Start:  util.NewDate(2024, 1, 2),
			End:    util.NewDate(2024, 6, 28),
			Rows:   124,
			Status: "OK",
		}
		require.NoError(t, repo.Append(entry))
		entry.Status = "ERROR"
		entry.Note = "no usable price history for AAPL"
		require.NoError(t, repo.Append(entry))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := nonEmptyLines(string(data))
		require.Len(t, lines, 3)
		require.Contains(t, lines[0], "timestamp")
		require.Contains(t, lines[1], "OK")
		require.Contains(t, lines[2], "ERROR")
	})
}

func nonEmptyLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
