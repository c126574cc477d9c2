package timesheet

import "context"

// TimesheetService defines business logic for manual clock events and the
// timesheet editor.
type TimesheetService interface {
	// ActiveSession returns the open session for an employee, or the most
	// recent open session when employeeID is empty. Returns nil when there
	// is no open session.
	ActiveSession(ctx context.Context, employeeID string) (*TimesheetResponse, error)

	// ManualClockIn opens a session: validates the patient geofence anchor,
	// rejects a second open session per employee, recomputes the geofence
	// validation server-side and persists the clock-in.
	ManualClockIn(ctx context.Context, req ManualClockInRequest) (TimesheetResponse, error)

	// ManualClockOut closes an open session and computes billable units.
	ManualClockOut(ctx context.Context, req ManualClockOutRequest) (TimesheetResponse, error)

	// ListTimesheets retrieves timesheets with filters (editor view).
	ListTimesheets(ctx context.Context, filter TimesheetFilter) (ListTimesheetsResponse, error)

	// GetTimesheet retrieves a single timesheet by ID.
	GetTimesheet(ctx context.Context, id string) (TimesheetResponse, error)

	// UpdateTimesheet fixes clock times or status; units are recomputed
	// when both clock events are present.
	UpdateTimesheet(ctx context.Context, req UpdateTimesheetRequest) (TimesheetResponse, error)
}
