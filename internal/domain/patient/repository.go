package patient

import "context"

// PatientRepository defines data access methods for patient records.
type PatientRepository interface {
	// List retrieves patients, optionally restricted to records marked
	// complete for billing.
	List(ctx context.Context, onlyComplete bool) ([]Patient, error)

	// GetByID retrieves a patient by ID.
	GetByID(ctx context.Context, id string) (Patient, error)
}
