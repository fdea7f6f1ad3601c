package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBookingBeforeSaveTotals(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		end       time.Time
		wantDays  int
		wantHours int
	}{
		{"two full days", start.Add(48 * time.Hour), 2, 48},
		{"partial day rounds up", start.Add(30 * time.Hour), 2, 30},
		{"partial hour rounds up", start.Add(90 * time.Minute), 1, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := &Booking{StartDate: start, EndDate: tc.end}
			require.NoError(t, b.BeforeSave(nil))
			require.Equal(t, tc.wantDays, b.TotalDays)
			require.Equal(t, tc.wantHours, b.TotalHours)
		})
	}

	t.Run("zero dates leave totals alone", func(t *testing.T) {
		b := &Booking{TotalDays: 3, TotalHours: 72}
		require.NoError(t, b.BeforeSave(nil))
		require.Equal(t, 3, b.TotalDays)
		require.Equal(t, 72, b.TotalHours)
	})
}
