package patient

import "time"

type Patient struct {
	ID         string
	FirstName  string
	LastName   string
	MedicaidID string
	Address    *string

	// Geocoded from Address; nil until the address has been geocoded. A
	// patient without coordinates cannot anchor a geofence.
	AddressLatitude  *float64
	AddressLongitude *float64

	// IsComplete marks a patient record with all billing-required fields
	// filled in. The clock workflow only offers complete patients.
	IsComplete bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCoordinates reports whether the patient address can anchor a geofence.
func (p Patient) HasCoordinates() bool {
	return p.AddressLatitude != nil && p.AddressLongitude != nil
}

// FullName returns the display name used in list responses.
func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
