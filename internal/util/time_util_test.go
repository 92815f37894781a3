package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNextTradingDay(t *testing.T) {
	t.Run("midweek advances one day", func(t *testing.T) {
		tuesday := NewDate(2024, 1, 2)
		got := NextTradingDay(tuesday)
		require.Equal(t, time.Wednesday, got.Weekday())
		require.True(t, got.Equal(NewDate(2024, 1, 3)))
	})

	t.Run("friday skips to monday", func(t *testing.T) {
		friday := NewDate(2024, 1, 5)
		got := NextTradingDay(friday)
		require.Equal(t, time.Monday, got.Weekday())
		require.True(t, got.Equal(NewDate(2024, 1, 8)))
	})

	t.Run("saturday skips to monday", func(t *testing.T) {
		saturday := NewDate(2024, 1, 6)
		require.True(t, NextTradingDay(saturday).Equal(NewDate(2024, 1, 8)))
	})
}

func TestMidnight(t *testing.T) {
	ts := time.Date(2024, 3, 15, 21, 30, 12, 0, time.FixedZone("EST", -5*3600))
	got := Midnight(ts)
	require.True(t, got.Equal(NewDate(2024, 3, 16)))
	require.Equal(t, time.UTC, got.Location())
}

func TestDateLte(t *testing.T) {
	require.True(t, DateLte(NewDate(2024, 1, 2), NewDate(2024, 1, 2)))
	require.True(t, DateLte(NewDate(2024, 1, 1), NewDate(2024, 1, 2)))
	require.False(t, DateLte(NewDate(2024, 1, 3), NewDate(2024, 1, 2)))
}
