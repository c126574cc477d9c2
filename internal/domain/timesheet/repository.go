package timesheet

import (
	"context"
	"time"
)

// TimesheetRepository defines data access methods for timesheet records.
type TimesheetRepository interface {
	// Create persists a new (open) timesheet record.
	Create(ctx context.Context, ts Timesheet) (Timesheet, error)

	// GetByID retrieves a timesheet by ID.
	GetByID(ctx context.Context, id string) (Timesheet, error)

	// GetOpenSession retrieves the open session for an employee, nil when
	// there is none. Used to prevent a second open session.
	GetOpenSession(ctx context.Context, employeeID string) (*Timesheet, error)

	// GetLatestOpenSession retrieves the most recently opened session
	// regardless of employee; nil when there is none.
	GetLatestOpenSession(ctx context.Context) (*Timesheet, error)

	// Update updates an existing timesheet record.
	Update(ctx context.Context, ts Timesheet) error

	// List retrieves timesheet records with filters and pagination.
	List(ctx context.Context, filter TimesheetFilter) ([]Timesheet, int64, error)

	// MarkStaleOpenSessions flags open sessions whose clock-in is older
	// than the cutoff as needs_review and returns how many were flagged.
	MarkStaleOpenSessions(ctx context.Context, cutoff time.Time) (int64, error)
}
