package employee

type EmployeeResponse struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmployeeCode string `json:"employee_code"`
	IsComplete   bool   `json:"is_complete"`
}

type ListEmployeesResponse struct {
	TotalCount int64              `json:"total_count"`
	Employees  []EmployeeResponse `json:"employees"`
}

// ToResponse converts an Employee entity to its API shape.
func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		EmployeeCode: e.EmployeeCode,
		IsComplete:   e.IsComplete,
	}
}
