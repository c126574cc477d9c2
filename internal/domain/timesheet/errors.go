package timesheet

import "errors"

// Timesheet domain errors
var (
	// Clock event errors
	ErrOpenSessionExists         = errors.New("employee already has an open session")
	ErrNoOpenSession             = errors.New("no open session found")
	ErrAlreadyClockedOut         = errors.New("timesheet is already clocked out")
	ErrPatientMissingCoordinates = errors.New("patient address has no GPS coordinates")

	// General errors
	ErrTimesheetNotFound = errors.New("timesheet not found")
)
