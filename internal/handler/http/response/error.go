package response

import (
	"errors"
	"net/http"

	"github.com/carebridge-health/evv-timeclock-go/internal/domain/employee"
	"github.com/carebridge-health/evv-timeclock-go/internal/domain/patient"
	"github.com/carebridge-health/evv-timeclock-go/internal/domain/timesheet"
	"github.com/carebridge-health/evv-timeclock-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, timesheet.ErrOpenSessionExists):
		Conflict(w, "Employee already has an open session")
	case errors.Is(err, timesheet.ErrAlreadyClockedOut):
		Conflict(w, "Timesheet is already clocked out")
	case errors.Is(err, timesheet.ErrNoOpenSession):
		NotFound(w, "No open session found")
	case errors.Is(err, timesheet.ErrPatientMissingCoordinates):
		BadRequest(w, "Patient address has no GPS coordinates", nil)

	// Reference data errors
	case errors.Is(err, patient.ErrPatientNotFound):
		NotFound(w, "Patient not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
