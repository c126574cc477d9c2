package employee

import "time"

type Employee struct {
	ID           string
	FirstName    string
	LastName     string
	EmployeeCode string

	// IsComplete marks an employee record with all payroll/EVV-required
	// fields filled in. Only complete employees may clock in.
	IsComplete bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns the display name used in list responses.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
