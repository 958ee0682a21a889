package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScheduler(t *testing.T, schedule string) *Scheduler {
	t.Helper()
	s, err := New(schedule, "America/Sao_Paulo", time.Minute,
		func(context.Context, time.Time) {},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func TestParseSchedule(t *testing.T) {
	times, err := parseSchedule("17:00, 14:00")
	require.NoError(t, err)
	require.Len(t, times, 2)
	assert.Equal(t, timeOfDay{hour: 14, minute: 0}, times[0], "entries must be sorted")
	assert.Equal(t, timeOfDay{hour: 17, minute: 0}, times[1])
}

func TestParseScheduleInvalid(t *testing.T) {
	for _, schedule := range []string{"", "25:00", "14:75", "1400", "aa:bb"} {
		_, err := parseSchedule(schedule)
		assert.Error(t, err, "schedule %q", schedule)
	}
}

func TestNewRejectsBadTimezone(t *testing.T) {
	_, err := New("14:00", "Not/AZone", time.Minute,
		func(context.Context, time.Time) {},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestNextRun(t *testing.T) {
	s := testScheduler(t, "14:00,17:00")
	day := func(hour, minute int) time.Time {
		return time.Date(2026, 8, 14, hour, minute, 0, 0, s.location)
	}

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"before first trigger", day(9, 30), day(14, 0)},
		{"between triggers", day(15, 0), day(17, 0)},
		{"exactly at a trigger", day(14, 0), day(17, 0)},
		{"after last trigger", day(18, 0), day(14, 0).AddDate(0, 0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.nextRun(tt.now))
		})
	}
}

func TestRunNowSerialized(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var order []int

	s, err := New("14:00", "UTC", time.Minute,
		func(ctx context.Context, asOf time.Time) {
			select {
			case started <- struct{}{}:
				<-release
				order = append(order, 1)
			default:
				order = append(order, 2)
			}
		},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		s.RunNow(context.Background())
		close(done)
	}()
	<-started

	second := make(chan struct{})
	go func() {
		s.RunNow(context.Background())
		close(second)
	}()

	close(release)
	<-done
	<-second

	require.Len(t, order, 2)
	assert.Equal(t, []int{1, 2}, order, "runs must not overlap")
}
