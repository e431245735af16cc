package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseTimezone(t *testing.T) {
	tests := []struct {
		name    string
		tz      string
		want    string
		wantErr bool
	}{
		{"empty defaults to UTC", "", "UTC", false},
		{"explicit UTC", "UTC", "UTC", false},
		{"valid IANA identifier", "Asia/Tokyo", "Asia/Tokyo", false},
		{"invalid identifier falls back to UTC", "Invalid/Zone", "UTC", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseTimezone(tt.tz)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.want, loc.String())
		})
	}
}

func TestDayBoundaries(t *testing.T) {
	tokyo, err := ParseTimezone("Asia/Tokyo")
	require.NoError(t, err)

	// 2024-01-05 23:30 UTC is already 2024-01-06 08:30 in Tokyo.
	at := time.Date(2024, 1, 5, 23, 30, 0, 0, time.UTC)

	start := StartOfDay(at, tokyo)
	require.Equal(t, "2024-01-06", FormatDate(start))
	require.Equal(t, 0, start.Hour())

	end := EndOfDay(at, tokyo)
	require.Equal(t, "2024-01-06", FormatDate(end))
	require.Equal(t, 23, end.Hour())
	require.True(t, end.After(start))
}

func TestDateOfCollapsesSameDay(t *testing.T) {
	utc := time.UTC
	morning := time.Date(2024, 3, 10, 8, 0, 0, 0, utc).Unix()
	evening := time.Date(2024, 3, 10, 22, 45, 0, 0, utc).Unix()
	nextDay := time.Date(2024, 3, 11, 0, 0, 1, 0, utc).Unix()

	require.Equal(t, DateOf(morning, utc), DateOf(evening, utc))
	require.NotEqual(t, DateOf(morning, utc), DateOf(nextDay, utc))
}

func TestStartOfDayNilLocationDefaultsToUTC(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.Equal(t, StartOfDay(at, time.UTC), StartOfDay(at, nil))
}
