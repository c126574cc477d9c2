package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carebridge-health/evv-timeclock-go/internal/domain/timesheet"
	"github.com/carebridge-health/evv-timeclock-go/internal/pkg/database"
	"github.com/carebridge-health/evv-timeclock-go/internal/pkg/geo"
	"github.com/jackc/pgx/v5"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepository{db: db}
}

const timesheetColumns = `
	t.id, t.patient_id, t.employee_id,
	t.clock_in_time, t.clock_out_time,
	t.clock_in_latitude, t.clock_in_longitude, t.clock_in_accuracy, t.clock_in_captured_at,
	t.clock_in_distance_feet, t.clock_in_radius_feet, t.clock_in_valid,
	t.clock_out_latitude, t.clock_out_longitude, t.clock_out_accuracy, t.clock_out_captured_at,
	t.clock_out_distance_feet, t.clock_out_radius_feet, t.clock_out_valid,
	t.units, t.status, t.created_at, t.updated_at,
	p.first_name || ' ' || p.last_name AS patient_name,
	e.first_name || ' ' || e.last_name AS employee_name,
	p.address_latitude, p.address_longitude
`

const timesheetJoins = `
	FROM timesheets t
	JOIN patients p ON p.id = t.patient_id
	JOIN employees e ON e.id = t.employee_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTimesheet(row rowScanner) (timesheet.Timesheet, error) {
	var (
		ts timesheet.Timesheet

		outLat, outLon, outAcc    *float64
		outCapturedAt             *time.Time
		outDistance, outRadius    *float64
		outValid                  *bool
		patientName, employeeName string
	)

	err := row.Scan(
		&ts.ID, &ts.PatientID, &ts.EmployeeID,
		&ts.ClockInTime, &ts.ClockOutTime,
		&ts.ClockInLocation.Latitude, &ts.ClockInLocation.Longitude,
		&ts.ClockInLocation.Accuracy, &ts.ClockInLocation.CapturedAt,
		&ts.ClockInValidation.DistanceFeet, &ts.ClockInValidation.AllowedRadiusFeet,
		&ts.ClockInValidation.Valid,
		&outLat, &outLon, &outAcc, &outCapturedAt,
		&outDistance, &outRadius, &outValid,
		&ts.Units, &ts.Status, &ts.CreatedAt, &ts.UpdatedAt,
		&patientName, &employeeName,
		&ts.PatientLatitude, &ts.PatientLongitude,
	)
	if err != nil {
		return timesheet.Timesheet{}, err
	}

	ts.PatientName = &patientName
	ts.EmployeeName = &employeeName

	if outLat != nil && outLon != nil && outCapturedAt != nil {
		loc := timesheet.Location{
			Latitude:   *outLat,
			Longitude:  *outLon,
			CapturedAt: *outCapturedAt,
		}
		if outAcc != nil {
			loc.Accuracy = *outAcc
		}
		ts.ClockOutLocation = &loc
	}
	if outDistance != nil && outRadius != nil && outValid != nil {
		ts.ClockOutValidation = &geo.Validation{
			Valid:             *outValid,
			DistanceFeet:      *outDistance,
			AllowedRadiusFeet: *outRadius,
		}
	}

	return ts, nil
}

// Create implements timesheet.TimesheetRepository.
func (r *timesheetRepository) Create(ctx context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheets (
			id, patient_id, employee_id, clock_in_time,
			clock_in_latitude, clock_in_longitude, clock_in_accuracy, clock_in_captured_at,
			clock_in_distance_feet, clock_in_radius_feet, clock_in_valid,
			status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		ts.ID,
		ts.PatientID,
		ts.EmployeeID,
		ts.ClockInTime,
		ts.ClockInLocation.Latitude,
		ts.ClockInLocation.Longitude,
		ts.ClockInLocation.Accuracy,
		ts.ClockInLocation.CapturedAt,
		ts.ClockInValidation.DistanceFeet,
		ts.ClockInValidation.AllowedRadiusFeet,
		ts.ClockInValidation.Valid,
		ts.Status,
	).Scan(&ts.CreatedAt, &ts.UpdatedAt)

	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to create timesheet: %w", err)
	}

	return ts, nil
}

// GetByID implements timesheet.TimesheetRepository.
func (r *timesheetRepository) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timesheetColumns + timesheetJoins + ` WHERE t.id = $1`

	ts, err := scanTimesheet(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to get timesheet: %w", err)
	}

	return ts, nil
}

// GetOpenSession implements timesheet.TimesheetRepository.
func (r *timesheetRepository) GetOpenSession(ctx context.Context, employeeID string) (*timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timesheetColumns + timesheetJoins + `
		WHERE t.employee_id = $1
		  AND t.clock_out_time IS NULL
		ORDER BY t.clock_in_time DESC
		LIMIT 1`

	ts, err := scanTimesheet(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	return &ts, nil
}

// GetLatestOpenSession implements timesheet.TimesheetRepository.
func (r *timesheetRepository) GetLatestOpenSession(ctx context.Context) (*timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timesheetColumns + timesheetJoins + `
		WHERE t.clock_out_time IS NULL
		ORDER BY t.clock_in_time DESC
		LIMIT 1`

	ts, err := scanTimesheet(q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest open session: %w", err)
	}

	return &ts, nil
}

// Update implements timesheet.TimesheetRepository.
func (r *timesheetRepository) Update(ctx context.Context, ts timesheet.Timesheet) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets SET
			clock_in_time = $2,
			clock_out_time = $3,
			clock_out_latitude = $4,
			clock_out_longitude = $5,
			clock_out_accuracy = $6,
			clock_out_captured_at = $7,
			clock_out_distance_feet = $8,
			clock_out_radius_feet = $9,
			clock_out_valid = $10,
			units = $11,
			status = $12,
			updated_at = NOW()
		WHERE id = $1
	`

	var (
		outLat, outLon, outAcc *float64
		outCapturedAt          *time.Time
		outDistance, outRadius *float64
		outValid               *bool
	)
	if ts.ClockOutLocation != nil {
		outLat = &ts.ClockOutLocation.Latitude
		outLon = &ts.ClockOutLocation.Longitude
		outAcc = &ts.ClockOutLocation.Accuracy
		outCapturedAt = &ts.ClockOutLocation.CapturedAt
	}
	if ts.ClockOutValidation != nil {
		outDistance = &ts.ClockOutValidation.DistanceFeet
		outRadius = &ts.ClockOutValidation.AllowedRadiusFeet
		outValid = &ts.ClockOutValidation.Valid
	}

	tag, err := q.Exec(ctx, query,
		ts.ID,
		ts.ClockInTime,
		ts.ClockOutTime,
		outLat, outLon, outAcc, outCapturedAt,
		outDistance, outRadius, outValid,
		ts.Units,
		ts.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update timesheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimesheetNotFound
	}

	return nil
}

// List implements timesheet.TimesheetRepository.
func (r *timesheetRepository) List(ctx context.Context, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, int64, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []any
	)

	addCondition := func(cond string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.EmployeeID != nil {
		addCondition("t.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.PatientID != nil {
		addCondition("t.patient_id = $%d", *filter.PatientID)
	}
	if filter.Status != nil {
		addCondition("t.status = $%d", *filter.Status)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		addCondition("t.clock_in_time >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		addCondition("t.clock_in_time < ($%d::date + INTERVAL '1 day')", *filter.EndDate)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) ` + timesheetJoins + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count timesheets: %w", err)
	}

	// SortBy/SortOrder are whitelisted by TimesheetFilter.Validate.
	orderBy := fmt.Sprintf(" ORDER BY t.%s %s", filter.SortBy, strings.ToUpper(filter.SortOrder))

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	listQuery := `SELECT ` + timesheetColumns + timesheetJoins + where + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	var timesheets []timesheet.Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		timesheets = append(timesheets, ts)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read timesheets: %w", err)
	}

	return timesheets, total, nil
}

// MarkStaleOpenSessions implements timesheet.TimesheetRepository.
func (r *timesheetRepository) MarkStaleOpenSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET status = $1, updated_at = NOW()
		WHERE clock_out_time IS NULL
		  AND status = $2
		  AND clock_in_time < $3
	`

	tag, err := q.Exec(ctx, query, timesheet.StatusNeedsReview, timesheet.StatusOpen, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to flag stale open sessions: %w", err)
	}

	return tag.RowsAffected(), nil
}
