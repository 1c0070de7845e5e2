package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestParseClaimDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{name: "colon delimited", raw: "2024:05:10", want: date(2024, time.May, 10)},
		{name: "iso", raw: "2024-05-10", want: date(2024, time.May, 10)},
		{name: "long form", raw: "May 10, 2024", want: date(2024, time.May, 10)},
		{name: "day first", raw: "10 May 2024", want: date(2024, time.May, 10)},
		{name: "exif datetime", raw: "2024:05:10 14:23:01", want: date(2024, time.May, 10)},
		{name: "surrounding whitespace", raw: "  2024-05-10  ", want: date(2024, time.May, 10)},
		{name: "empty", raw: "", wantErr: true},
		{name: "gibberish", raw: "sometime last spring", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClaimDate(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestMinusOneMonth(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{name: "mid month", in: date(2024, time.May, 10), want: date(2024, time.April, 10)},
		{name: "month end clamps to shorter month", in: date(2024, time.March, 31), want: date(2024, time.February, 29)},
		{name: "month end clamps in non leap year", in: date(2023, time.March, 31), want: date(2023, time.February, 28)},
		{name: "may 31 clamps to april 30", in: date(2024, time.May, 31), want: date(2024, time.April, 30)},
		{name: "january rolls into previous year", in: date(2024, time.January, 31), want: date(2023, time.December, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := minusOneMonth(tt.in)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestConsistencyCheck(t *testing.T) {
	svc := NewConsistencyService(zap.NewNop())

	t.Run("capture inside the window is valid", func(t *testing.T) {
		verdict, err := svc.Check(date(2024, time.April, 20), "2024:05:10")
		require.NoError(t, err)
		assert.True(t, verdict.Valid)
		assert.Equal(t, MessageValidDate, verdict.Message)
		assert.True(t, date(2024, time.April, 10).Equal(verdict.WindowStart))
	})

	t.Run("window start is inclusive", func(t *testing.T) {
		verdict, err := svc.Check(date(2024, time.April, 10), "2024:05:10")
		require.NoError(t, err)
		assert.True(t, verdict.Valid)
	})

	t.Run("capture after the claim date is valid", func(t *testing.T) {
		verdict, err := svc.Check(date(2024, time.May, 11), "2024:05:10")
		require.NoError(t, err)
		assert.True(t, verdict.Valid)
	})

	t.Run("capture before the window is stale", func(t *testing.T) {
		verdict, err := svc.Check(date(2024, time.March, 1), "2024:05:10")
		require.NoError(t, err)
		assert.False(t, verdict.Valid)
		assert.Equal(t, MessageStaleDate, verdict.Message)
	})

	t.Run("one day before the window is stale", func(t *testing.T) {
		verdict, err := svc.Check(date(2024, time.April, 9), "2024:05:10")
		require.NoError(t, err)
		assert.False(t, verdict.Valid)
	})

	t.Run("capture time of day does not change the verdict", func(t *testing.T) {
		capture := time.Date(2024, time.April, 10, 23, 59, 59, 0, time.UTC)
		verdict, err := svc.Check(capture, "2024:05:10")
		require.NoError(t, err)
		assert.True(t, verdict.Valid)
	})

	t.Run("month end claim date uses the clamped window", func(t *testing.T) {
		// Window for March 31 starts on the last day of February
		verdict, err := svc.Check(date(2024, time.February, 29), "2024:03:31")
		require.NoError(t, err)
		assert.True(t, verdict.Valid)

		verdict, err = svc.Check(date(2024, time.February, 28), "2024:03:31")
		require.NoError(t, err)
		assert.False(t, verdict.Valid)
	})

	t.Run("unparseable claim date does not default to valid", func(t *testing.T) {
		verdict, err := svc.Check(date(2024, time.April, 20), "no idea")
		require.ErrorIs(t, err, ErrInvalidDate)
		assert.Nil(t, verdict)
	})
}
