package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/carebridge-health/evv-timeclock-go/internal/domain/timesheet"
)

type TimesheetJobs struct {
	timesheetRepo timesheet.TimesheetRepository
	staleAfter    time.Duration
}

func NewTimesheetJobs(timesheetRepo timesheet.TimesheetRepository, staleAfter time.Duration) *TimesheetJobs {
	return &TimesheetJobs{
		timesheetRepo: timesheetRepo,
		staleAfter:    staleAfter,
	}
}

func (j *TimesheetJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("flag_stale_open_sessions", 1*time.Hour, j.FlagStaleOpenSessions)
}

// FlagStaleOpenSessions moves open sessions whose clock-in is older than the
// configured window to needs_review, so a forgotten clock-out surfaces in the
// timesheet editor instead of accruing units forever.
func (j *TimesheetJobs) FlagStaleOpenSessions(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.staleAfter)

	flagged, err := j.timesheetRepo.MarkStaleOpenSessions(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to flag stale open sessions: %w", err)
	}

	if flagged > 0 {
		slog.Info("Cron: Flagged stale open sessions for review", "count", flagged, "cutoff", cutoff)
	}

	return nil
}
