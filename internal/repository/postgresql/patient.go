package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/carebridge-health/evv-timeclock-go/internal/domain/patient"
	"github.com/carebridge-health/evv-timeclock-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type patientRepository struct {
	db *database.DB
}

func NewPatientRepository(db *database.DB) patient.PatientRepository {
	return &patientRepository{db: db}
}

// List implements patient.PatientRepository.
func (r *patientRepository) List(ctx context.Context, onlyComplete bool) ([]patient.Patient, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, first_name, last_name, medicaid_id, address,
			   address_latitude, address_longitude, is_complete,
			   created_at, updated_at
		FROM patients
	`
	if onlyComplete {
		query += ` WHERE is_complete = TRUE`
	}
	query += ` ORDER BY last_name, first_name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	var patients []patient.Patient
	for rows.Next() {
		var p patient.Patient
		if err := rows.Scan(
			&p.ID, &p.FirstName, &p.LastName, &p.MedicaidID, &p.Address,
			&p.AddressLatitude, &p.AddressLongitude, &p.IsComplete,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read patients: %w", err)
	}

	return patients, nil
}

// GetByID implements patient.PatientRepository.
func (r *patientRepository) GetByID(ctx context.Context, id string) (patient.Patient, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, first_name, last_name, medicaid_id, address,
			   address_latitude, address_longitude, is_complete,
			   created_at, updated_at
		FROM patients
		WHERE id = $1
	`

	var p patient.Patient
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.MedicaidID, &p.Address,
		&p.AddressLatitude, &p.AddressLongitude, &p.IsComplete,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return patient.Patient{}, patient.ErrPatientNotFound
		}
		return patient.Patient{}, fmt.Errorf("failed to get patient: %w", err)
	}

	return p, nil
}
