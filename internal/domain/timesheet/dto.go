package timesheet

import (
	"strings"
	"time"

	"github.com/carebridge-health/evv-timeclock-go/internal/pkg/geo"
	"github.com/carebridge-health/evv-timeclock-go/internal/pkg/validator"
)

// ========================================
// CLOCK EVENT DTOs
// ========================================

type ManualClockInRequest struct {
	PatientID  string         `json:"patient_id"`
	EmployeeID string         `json:"employee_id"`
	Location   Location       `json:"location"`
	Validation geo.Validation `json:"validation"`
	Timestamp  time.Time      `json:"timestamp"`
}

func (r *ManualClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PatientID) {
		errs = append(errs, validator.ValidationError{
			Field:   "patient_id",
			Message: "patient_id is required",
		})
	}

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	errs = append(errs, validateLocation(r.Location)...)

	if r.Timestamp.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ManualClockOutRequest struct {
	TimesheetID string         `json:"timesheet_id"`
	Location    Location       `json:"location"`
	Validation  geo.Validation `json:"validation"`
	Timestamp   time.Time      `json:"timestamp"`
}

func (r *ManualClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TimesheetID) {
		errs = append(errs, validator.ValidationError{
			Field:   "timesheet_id",
			Message: "timesheet_id is required",
		})
	}

	errs = append(errs, validateLocation(r.Location)...)

	if r.Timestamp.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateLocation(loc Location) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(loc.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "location.latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(loc.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "location.longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if loc.Accuracy < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "location.accuracy",
			Message: "accuracy must not be negative",
		})
	}

	if loc.CapturedAt.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "location.captured_at",
			Message: "captured_at is required",
		})
	}

	return errs
}

type TimesheetResponse struct {
	ID           string `json:"id"`
	PatientID    string `json:"patient_id"`
	EmployeeID   string `json:"employee_id"`
	PatientName  string `json:"patient_name,omitempty"`
	EmployeeName string `json:"employee_name,omitempty"`

	ClockInTime  string  `json:"clock_in_time"`
	ClockOutTime *string `json:"clock_out_time,omitempty"`

	ClockInLocation    Location        `json:"clock_in_location"`
	ClockInValidation  geo.Validation  `json:"clock_in_validation"`
	ClockOutLocation   *Location       `json:"clock_out_location,omitempty"`
	ClockOutValidation *geo.Validation `json:"clock_out_validation,omitempty"`

	// The geofence center the session is anchored to; clients clocking out
	// validate their fix against these without re-fetching the patient.
	PatientLatitude  *float64 `json:"patient_latitude,omitempty"`
	PatientLongitude *float64 `json:"patient_longitude,omitempty"`

	Units  *int   `json:"units,omitempty"`
	Status Status `json:"status"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// ActiveTimesheetResponse is the body of GET /timesheets/active. Timesheet is
// null when the employee has no open session.
type ActiveTimesheetResponse struct {
	Timesheet *TimesheetResponse `json:"timesheet"`
}

// ========================================
// EDITOR DTOs
// ========================================

type TimesheetFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	PatientID  *string `json:"patient_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // clock_in_time, clock_out_time, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *TimesheetFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil {
		validStatuses := []string{string(StatusOpen), string(StatusClosed), string(StatusNeedsReview)}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: open, closed, needs_review",
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"clock_in_time", "clock_out_time", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: clock_in_time, clock_out_time, status",
			})
		}
	} else {
		f.SortBy = "clock_in_time" // Default sort
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListTimesheetsResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Showing    string              `json:"showing"`
	Timesheets []TimesheetResponse `json:"timesheets"`
}

// UpdateTimesheetRequest lets the timesheet editor fix wrong clock times;
// units are recomputed whenever both clock events are present.
type UpdateTimesheetRequest struct {
	ID           string  `json:"-"`
	ClockInTime  *string `json:"clock_in_time,omitempty"`  // RFC3339
	ClockOutTime *string `json:"clock_out_time,omitempty"` // RFC3339
	Status       *string `json:"status,omitempty"`
}

func (r *UpdateTimesheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ClockInTime != nil && *r.ClockInTime != "" {
		if _, valid := validator.IsValidDateTime(*r.ClockInTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in_time",
				Message: "clock_in_time must be an RFC3339 timestamp",
			})
		}
	}

	if r.ClockOutTime != nil && *r.ClockOutTime != "" {
		if _, valid := validator.IsValidDateTime(*r.ClockOutTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out_time",
				Message: "clock_out_time must be an RFC3339 timestamp",
			})
		}
	}

	if r.Status != nil {
		validStatuses := []string{string(StatusOpen), string(StatusClosed), string(StatusNeedsReview)}
		if !validator.IsInSlice(strings.ToLower(*r.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: open, closed, needs_review",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
