package timesheet

import (
	"time"

	"github.com/carebridge-health/evv-timeclock-go/internal/pkg/geo"
)

type Status string

const (
	// StatusOpen: clock-in recorded, clock-out pending.
	StatusOpen Status = "open"
	// StatusClosed: both clock events recorded.
	StatusClosed Status = "closed"
	// StatusNeedsReview: the sweeper flagged a session left open too long.
	// Clock events are billing evidence, so stale sessions are never closed
	// automatically.
	StatusNeedsReview Status = "needs_review"
)

// Location is a single GPS fix captured for one clock event. Each clock-in
// and clock-out gets its own fix; a fix is never reused across events.
type Location struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   float64   `json:"accuracy"`
	CapturedAt time.Time `json:"captured_at"`
}

type Timesheet struct {
	ID         string
	PatientID  string
	EmployeeID string

	ClockInTime  time.Time
	ClockOutTime *time.Time

	ClockInLocation    Location
	ClockInValidation  geo.Validation
	ClockOutLocation   *Location
	ClockOutValidation *geo.Validation

	// Units is the 15-minute billable unit count, set at clock-out and
	// recomputed whenever an editor changes the clock times.
	Units *int

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses
	PatientName      *string
	EmployeeName     *string
	PatientLatitude  *float64
	PatientLongitude *float64
}

// IsOpen reports whether the session still awaits a clock-out.
func (t Timesheet) IsOpen() bool {
	return t.ClockOutTime == nil
}
