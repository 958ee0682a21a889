// Package scheduler triggers quote ingestion at fixed wall-clock times.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// timeOfDay is a wall-clock trigger point within a day.
type timeOfDay struct {
	hour   int
	minute int
}

// RunFunc is invoked at each trigger point with the trigger time.
type RunFunc func(ctx context.Context, asOf time.Time)

// Scheduler fires a run function at configured times of day in a fixed
// timezone. Runs are serialized; a slow run delays the next trigger rather
// than overlapping it.
type Scheduler struct {
	times    []timeOfDay
	location *time.Location
	run      RunFunc
	logger   *slog.Logger
	timeout  time.Duration

	mu sync.Mutex
}

// New parses a schedule like "14:00,17:00" and a timezone name. Each run
// gets a fresh context bounded by timeout.
func New(schedule, timezone string, timeout time.Duration, run RunFunc, logger *slog.Logger) (*Scheduler, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	times, err := parseSchedule(schedule)
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		times:    times,
		location: location,
		run:      run,
		logger:   logger,
		timeout:  timeout,
	}, nil
}

// Start blocks, firing runs until ctx is cancelled. Callers run it in a
// goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("scheduler started",
		slog.String("timezone", s.location.String()),
		slog.Int("trigger_count", len(s.times)),
	)

	for {
		now := time.Now().In(s.location)
		next := s.nextRun(now)
		wait := next.Sub(now)

		s.logger.Info("next scheduled run",
			slog.String("at", next.Format(time.RFC3339)),
			slog.Duration("in", wait),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("scheduler stopped")
			return
		case fired := <-timer.C:
			s.fire(ctx, fired.In(s.location))
		}
	}
}

// RunNow fires one run immediately, serialized with scheduled runs.
func (s *Scheduler) RunNow(ctx context.Context) {
	s.fire(ctx, time.Now().In(s.location))
}

func (s *Scheduler) fire(ctx context.Context, asOf time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.logger.Info("scheduled run starting", slog.String("as_of", asOf.Format(time.RFC3339)))
	s.run(runCtx, asOf)
}

// nextRun returns the earliest trigger strictly after now, today or tomorrow.
func (s *Scheduler) nextRun(now time.Time) time.Time {
	for _, t := range s.times {
		candidate := time.Date(now.Year(), now.Month(), now.Day(), t.hour, t.minute, 0, 0, now.Location())
		if candidate.After(now) {
			return candidate
		}
	}
	first := s.times[0]
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), first.hour, first.minute, 0, 0, now.Location())
}

// parseSchedule parses a comma-separated list of HH:MM times, sorted ascending.
func parseSchedule(schedule string) ([]timeOfDay, error) {
	parts := strings.Split(schedule, ",")
	times := make([]timeOfDay, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		hm := strings.Split(part, ":")
		if len(hm) != 2 {
			return nil, fmt.Errorf("invalid schedule entry %q, want HH:MM", part)
		}
		hour, err := strconv.Atoi(hm[0])
		if err != nil || hour < 0 || hour > 23 {
			return nil, fmt.Errorf("invalid hour in schedule entry %q", part)
		}
		minute, err := strconv.Atoi(hm[1])
		if err != nil || minute < 0 || minute > 59 {
			return nil, fmt.Errorf("invalid minute in schedule entry %q", part)
		}
		times = append(times, timeOfDay{hour: hour, minute: minute})
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("schedule %q has no entries", schedule)
	}
	sort.Slice(times, func(i, j int) bool {
		if times[i].hour != times[j].hour {
			return times[i].hour < times[j].hour
		}
		return times[i].minute < times[j].minute
	})
	return times, nil
}
