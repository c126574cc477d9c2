package http

import (
	"net/http"

	"github.com/carebridge-health/evv-timeclock-go/internal/domain/patient"
	"github.com/carebridge-health/evv-timeclock-go/internal/handler/http/response"
)

type PatientHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type patientHandlerImpl struct {
	patientRepo patient.PatientRepository
}

func NewPatientHandler(patientRepo patient.PatientRepository) PatientHandler {
	return &patientHandlerImpl{patientRepo: patientRepo}
}

// List implements PatientHandler.
func (h *patientHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	onlyComplete := r.URL.Query().Get("is_complete") == "true"

	patients, err := h.patientRepo.List(r.Context(), onlyComplete)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]patient.PatientResponse, 0, len(patients))
	for _, p := range patients {
		responses = append(responses, patient.ToResponse(p))
	}

	response.Success(w, patient.ListPatientsResponse{
		TotalCount: int64(len(responses)),
		Patients:   responses,
	})
}
