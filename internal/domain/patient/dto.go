package patient

type PatientResponse struct {
	ID               string   `json:"id"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	MedicaidID       string   `json:"medicaid_id"`
	Address          *string  `json:"address,omitempty"`
	AddressLatitude  *float64 `json:"address_latitude"`
	AddressLongitude *float64 `json:"address_longitude"`
	IsComplete       bool     `json:"is_complete"`
}

type ListPatientsResponse struct {
	TotalCount int64             `json:"total_count"`
	Patients   []PatientResponse `json:"patients"`
}

// ToResponse converts a Patient entity to its API shape.
func ToResponse(p Patient) PatientResponse {
	return PatientResponse{
		ID:               p.ID,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		MedicaidID:       p.MedicaidID,
		Address:          p.Address,
		AddressLatitude:  p.AddressLatitude,
		AddressLongitude: p.AddressLongitude,
		IsComplete:       p.IsComplete,
	}
}
