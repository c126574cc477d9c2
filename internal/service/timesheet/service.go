package timesheet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/carebridge-health/evv-timeclock-go/internal/domain/employee"
	"github.com/carebridge-health/evv-timeclock-go/internal/domain/patient"
	"github.com/carebridge-health/evv-timeclock-go/internal/domain/timesheet"
	"github.com/carebridge-health/evv-timeclock-go/internal/pkg/database"
	"github.com/carebridge-health/evv-timeclock-go/internal/pkg/geo"
	"github.com/google/uuid"
)

type TimesheetServiceImpl struct {
	db *database.DB
	timesheet.TimesheetRepository
	patient.PatientRepository
	employee.EmployeeRepository

	// radiusFeet is the configured geofence radius used when the server
	// recomputes a clock event validation.
	radiusFeet float64
}

func NewTimesheetService(
	db *database.DB,
	timesheetRepo timesheet.TimesheetRepository,
	patientRepo patient.PatientRepository,
	employeeRepo employee.EmployeeRepository,
	radiusFeet float64,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		db:                  db,
		TimesheetRepository: timesheetRepo,
		PatientRepository:   patientRepo,
		EmployeeRepository:  employeeRepo,
		radiusFeet:          radiusFeet,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format(time.RFC3339)
	return &format
}

// ActiveSession implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ActiveSession(ctx context.Context, employeeID string) (*timesheet.TimesheetResponse, error) {
	var (
		open *timesheet.Timesheet
		err  error
	)
	if employeeID == "" {
		open, err = s.TimesheetRepository.GetLatestOpenSession(ctx)
	} else {
		open, err = s.TimesheetRepository.GetOpenSession(ctx, employeeID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up open session: %w", err)
	}
	if open == nil {
		return nil, nil
	}

	resp := mapTimesheetToResponse(*open)
	return &resp, nil
}

// ManualClockIn implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ManualClockIn(ctx context.Context, req timesheet.ManualClockInRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return timesheet.TimesheetResponse{}, employee.ErrEmployeeNotFound
		}
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	pat, err := s.PatientRepository.GetByID(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, patient.ErrPatientNotFound) {
			return timesheet.TimesheetResponse{}, patient.ErrPatientNotFound
		}
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to get patient: %w", err)
	}

	// The geofence is anchored on the patient address; without coordinates
	// a clock event cannot be validated at all.
	if !pat.HasCoordinates() {
		return timesheet.TimesheetResponse{}, timesheet.ErrPatientMissingCoordinates
	}

	open, err := s.TimesheetRepository.GetOpenSession(ctx, req.EmployeeID)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to check for open session: %w", err)
	}
	if open != nil {
		return timesheet.TimesheetResponse{}, timesheet.ErrOpenSessionExists
	}

	// The client submits its own validation for the audit trail, but the
	// stored validation is recomputed here from the raw fix.
	validation := geo.Validate(
		req.Location.Latitude, req.Location.Longitude,
		*pat.AddressLatitude, *pat.AddressLongitude,
		s.radiusFeet,
	)

	empName := emp.FullName()
	patName := pat.FullName()
	data := timesheet.Timesheet{
		ID:                uuid.NewString(),
		PatientID:         req.PatientID,
		EmployeeID:        req.EmployeeID,
		ClockInTime:       req.Timestamp.UTC(),
		ClockInLocation:   req.Location,
		ClockInValidation: validation,
		Status:            timesheet.StatusOpen,

		PatientName:      &patName,
		EmployeeName:     &empName,
		PatientLatitude:  pat.AddressLatitude,
		PatientLongitude: pat.AddressLongitude,
	}

	created, err := s.TimesheetRepository.Create(ctx, data)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to create timesheet record: %w", err)
	}

	return mapTimesheetToResponse(created), nil
}

// ManualClockOut implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ManualClockOut(ctx context.Context, req timesheet.ManualClockOutRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	ts, err := s.TimesheetRepository.GetByID(ctx, req.TimesheetID)
	if err != nil {
		if errors.Is(err, timesheet.ErrTimesheetNotFound) {
			return timesheet.TimesheetResponse{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to get timesheet: %w", err)
	}

	if !ts.IsOpen() {
		return timesheet.TimesheetResponse{}, timesheet.ErrAlreadyClockedOut
	}

	pat, err := s.PatientRepository.GetByID(ctx, ts.PatientID)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to get patient for geofence anchor: %w", err)
	}
	if !pat.HasCoordinates() {
		return timesheet.TimesheetResponse{}, timesheet.ErrPatientMissingCoordinates
	}

	validation := geo.Validate(
		req.Location.Latitude, req.Location.Longitude,
		*pat.AddressLatitude, *pat.AddressLongitude,
		s.radiusFeet,
	)

	clockOut := req.Timestamp.UTC()
	units := timesheet.Units(ts.ClockInTime, clockOut)
	loc := req.Location

	ts.ClockOutTime = &clockOut
	ts.ClockOutLocation = &loc
	ts.ClockOutValidation = &validation
	ts.Units = &units
	ts.Status = timesheet.StatusClosed

	if err := s.TimesheetRepository.Update(ctx, ts); err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to update timesheet record: %w", err)
	}

	return mapTimesheetToResponse(ts), nil
}

// ListTimesheets implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ListTimesheets(ctx context.Context, filter timesheet.TimesheetFilter) (timesheet.ListTimesheetsResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.ListTimesheetsResponse{}, err
	}

	timesheets, total, err := s.TimesheetRepository.List(ctx, filter)
	if err != nil {
		return timesheet.ListTimesheetsResponse{}, fmt.Errorf("failed to list timesheets: %w", err)
	}

	responses := make([]timesheet.TimesheetResponse, 0, len(timesheets))
	for _, ts := range timesheets {
		responses = append(responses, mapTimesheetToResponse(ts))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return timesheet.ListTimesheetsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Timesheets: responses,
	}, nil
}

// GetTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetTimesheet(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	ts, err := s.TimesheetRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timesheet.ErrTimesheetNotFound) {
			return timesheet.TimesheetResponse{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to get timesheet: %w", err)
	}

	return mapTimesheetToResponse(ts), nil
}

// UpdateTimesheet implements timesheet.TimesheetService.
// This lets coordinators fix wrong clock times from the timesheet editor.
func (s *TimesheetServiceImpl) UpdateTimesheet(ctx context.Context, req timesheet.UpdateTimesheetRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	ts, err := s.TimesheetRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, timesheet.ErrTimesheetNotFound) {
			return timesheet.TimesheetResponse{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to get timesheet: %w", err)
	}

	if req.ClockInTime != nil && *req.ClockInTime != "" {
		clockIn, err := time.Parse(time.RFC3339, *req.ClockInTime)
		if err == nil {
			ts.ClockInTime = clockIn.UTC()
		}
	}

	if req.ClockOutTime != nil && *req.ClockOutTime != "" {
		clockOut, err := time.Parse(time.RFC3339, *req.ClockOutTime)
		if err == nil {
			utc := clockOut.UTC()
			ts.ClockOutTime = &utc
		}
	}

	if req.Status != nil {
		ts.Status = timesheet.Status(*req.Status)
	}

	// Units track the clock times, never the other way around.
	if ts.ClockOutTime != nil {
		units := timesheet.Units(ts.ClockInTime, *ts.ClockOutTime)
		ts.Units = &units
	}

	if err := s.TimesheetRepository.Update(ctx, ts); err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to update timesheet: %w", err)
	}

	updated, err := s.TimesheetRepository.GetByID(ctx, req.ID)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to get updated timesheet: %w", err)
	}

	return mapTimesheetToResponse(updated), nil
}

// mapTimesheetToResponse converts a Timesheet entity to TimesheetResponse
func mapTimesheetToResponse(ts timesheet.Timesheet) timesheet.TimesheetResponse {
	var patientName, employeeName string
	if ts.PatientName != nil {
		patientName = *ts.PatientName
	}
	if ts.EmployeeName != nil {
		employeeName = *ts.EmployeeName
	}

	resp := timesheet.TimesheetResponse{
		ID:                 ts.ID,
		PatientID:          ts.PatientID,
		EmployeeID:         ts.EmployeeID,
		PatientName:        patientName,
		EmployeeName:       employeeName,
		ClockInTime:        ts.ClockInTime.UTC().Format(time.RFC3339),
		ClockOutTime:       timePtrToString(ts.ClockOutTime),
		ClockInLocation:    ts.ClockInLocation,
		ClockInValidation:  ts.ClockInValidation,
		ClockOutLocation:   ts.ClockOutLocation,
		ClockOutValidation: ts.ClockOutValidation,
		PatientLatitude:    ts.PatientLatitude,
		PatientLongitude:   ts.PatientLongitude,
		Units:              ts.Units,
		Status:             ts.Status,
	}

	if !ts.CreatedAt.IsZero() {
		resp.CreatedAt = ts.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !ts.UpdatedAt.IsZero() {
		resp.UpdatedAt = ts.UpdatedAt.UTC().Format(time.RFC3339)
	}

	return resp
}
