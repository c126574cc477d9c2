package http

import (
	"net/http"

	"github.com/carebridge-health/evv-timeclock-go/internal/domain/employee"
	"github.com/carebridge-health/evv-timeclock-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeHandler(employeeRepo employee.EmployeeRepository) EmployeeHandler {
	return &employeeHandlerImpl{employeeRepo: employeeRepo}
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	onlyComplete := r.URL.Query().Get("is_complete") == "true"

	employees, err := h.employeeRepo.List(r.Context(), onlyComplete)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToResponse(e))
	}

	response.Success(w, employee.ListEmployeesResponse{
		TotalCount: int64(len(responses)),
		Employees:  responses,
	})
}
