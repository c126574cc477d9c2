package employee

import "context"

// EmployeeRepository defines data access methods for employee records.
type EmployeeRepository interface {
	// List retrieves employees, optionally restricted to records marked
	// complete for payroll/EVV.
	List(ctx context.Context, onlyComplete bool) ([]Employee, error)

	// GetByID retrieves an employee by ID.
	GetByID(ctx context.Context, id string) (Employee, error)
}
