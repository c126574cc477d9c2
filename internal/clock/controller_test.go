package clock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/carebridge-health/evv-timeclock-go/internal/domain/employee"
	"github.com/carebridge-health/evv-timeclock-go/internal/domain/patient"
	"github.com/carebridge-health/evv-timeclock-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu sync.Mutex

	active    *timesheet.TimesheetResponse
	activeErr error

	clockInCalls  int
	clockOutCalls int
	clockInReqs   []timesheet.ManualClockInRequest
	clockOutReqs  []timesheet.ManualClockOutRequest
	clockInErr    error
	clockOutErr   error

	// When set, clock-in blocks until released. Used to hold a submission
	// in flight.
	blockClockIn chan struct{}
}

func (f *fakeAPI) ListPatients(ctx context.Context, onlyComplete bool) ([]patient.PatientResponse, error) {
	return []patient.PatientResponse{}, nil
}

func (f *fakeAPI) ListEmployees(ctx context.Context, onlyComplete bool) ([]employee.EmployeeResponse, error) {
	return []employee.EmployeeResponse{}, nil
}

func (f *fakeAPI) ActiveTimesheet(ctx context.Context, employeeID string) (*timesheet.TimesheetResponse, error) {
	return f.active, f.activeErr
}

func (f *fakeAPI) ManualClockIn(ctx context.Context, req timesheet.ManualClockInRequest) (timesheet.TimesheetResponse, error) {
	if f.blockClockIn != nil {
		<-f.blockClockIn
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.clockInCalls++
	f.clockInReqs = append(f.clockInReqs, req)
	if f.clockInErr != nil {
		return timesheet.TimesheetResponse{}, f.clockInErr
	}

	lat, lon := 39.96, -82.99
	return timesheet.TimesheetResponse{
		ID:               "ts-100",
		PatientID:        req.PatientID,
		EmployeeID:       req.EmployeeID,
		ClockInTime:      req.Timestamp.Format(time.RFC3339),
		PatientLatitude:  &lat,
		PatientLongitude: &lon,
		Status:           timesheet.StatusOpen,
	}, nil
}

func (f *fakeAPI) ManualClockOut(ctx context.Context, req timesheet.ManualClockOutRequest) (timesheet.TimesheetResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.clockOutCalls++
	f.clockOutReqs = append(f.clockOutReqs, req)
	if f.clockOutErr != nil {
		return timesheet.TimesheetResponse{}, f.clockOutErr
	}

	return timesheet.TimesheetResponse{ID: req.TimesheetID, Status: timesheet.StatusClosed}, nil
}

func nearbyProvider() *StaticLocationProvider {
	// ~460 ft from the test patient at (39.96, -82.99).
	return &StaticLocationProvider{Latitude: 39.961, Longitude: -82.991, Accuracy: 10}
}

func farProvider() *StaticLocationProvider {
	// Miles away from the test patient.
	return &StaticLocationProvider{Latitude: 40.00, Longitude: -83.05, Accuracy: 10}
}

func testPatient() patient.PatientResponse {
	lat, lon := 39.96, -82.99
	return patient.PatientResponse{
		ID:               "p-1",
		FirstName:        "Dorothy",
		LastName:         "Weaver",
		AddressLatitude:  &lat,
		AddressLongitude: &lon,
		IsComplete:       true,
	}
}

func testEmployee() employee.EmployeeResponse {
	return employee.EmployeeResponse{ID: "e-1", FirstName: "Marcus", LastName: "Bell"}
}

func TestStart_NoOpenSession(t *testing.T) {
	c := NewController(&fakeAPI{}, nearbyProvider(), 500)

	st, err := c.Start(context.Background())
	require.NoError(t, err)

	assert.Equal(t, PhaseSeekingPatient, st.Phase)
	assert.Equal(t, ClockIn, st.ClockType)
	assert.Empty(t, st.TimesheetID)
}

func TestStart_OpenSessionEntersClockOutDirectly(t *testing.T) {
	lat, lon := 39.96, -82.99
	api := &fakeAPI{
		active: &timesheet.TimesheetResponse{
			ID:               "ts-55",
			PatientID:        "p-1",
			EmployeeID:       "e-1",
			PatientLatitude:  &lat,
			PatientLongitude: &lon,
			Status:           timesheet.StatusOpen,
		},
	}
	c := NewController(api, nearbyProvider(), 500)

	st, err := c.Start(context.Background())
	require.NoError(t, err)

	assert.Equal(t, PhaseOpenSessionAwaitingLocation, st.Phase)
	assert.Equal(t, ClockOut, st.ClockType)
	assert.Equal(t, "ts-55", st.TimesheetID)

	// Patient/employee selection is fixed by the open session.
	st = c.SelectPatient(testPatient())
	assert.Equal(t, PhaseOpenSessionAwaitingLocation, st.Phase)
	assert.Nil(t, st.Patient)
}

func TestSelectPatient_ClearsCapturedLocation(t *testing.T) {
	c := NewController(&fakeAPI{}, nearbyProvider(), 500)
	_, err := c.Start(context.Background())
	require.NoError(t, err)

	c.SelectPatient(testPatient())
	_, err = c.SelectEmployee(testEmployee())
	require.NoError(t, err)

	st, err := c.CaptureLocation(context.Background())
	require.NoError(t, err)
	require.NotNil(t, st.Location)
	require.NotNil(t, st.Validation)

	st = c.SelectPatient(testPatient())
	assert.Nil(t, st.Location)
	assert.Nil(t, st.Validation)
	assert.Equal(t, PhaseAwaitingLocation, st.Phase)
}

func TestSelectEmployee_PatientWithoutCoordinatesBlocks(t *testing.T) {
	c := NewController(&fakeAPI{}, nearbyProvider(), 500)
	_, err := c.Start(context.Background())
	require.NoError(t, err)

	c.SelectPatient(patient.PatientResponse{ID: "p-2", FirstName: "Ray", LastName: "Holt"})
	st, err := c.SelectEmployee(testEmployee())

	assert.ErrorIs(t, err, ErrPatientMissingCoordinates)
	assert.Equal(t, PhaseSeekingEmployee, st.Phase)

	_, err = c.CaptureLocation(context.Background())
	assert.ErrorIs(t, err, ErrPatientMissingCoordinates)
}

func TestSubmit_MissingSelection(t *testing.T) {
	api := &fakeAPI{}
	c := NewController(api, nearbyProvider(), 500)
	_, err := c.Start(context.Background())
	require.NoError(t, err)

	// No patient, employee or location yet.
	_, err = c.Submit(context.Background(), false)
	assert.ErrorIs(t, err, ErrMissingSelection)

	c.SelectPatient(testPatient())
	_, err = c.SelectEmployee(testEmployee())
	require.NoError(t, err)

	// Still no location captured.
	_, err = c.Submit(context.Background(), false)
	assert.ErrorIs(t, err, ErrMissingSelection)

	assert.Equal(t, 0, api.clockInCalls)
}

func TestSubmit_GeofenceViolationRequiresConfirmation(t *testing.T) {
	api := &fakeAPI{}
	c := NewController(api, farProvider(), 500)
	_, err := c.Start(context.Background())
	require.NoError(t, err)

	c.SelectPatient(testPatient())
	_, err = c.SelectEmployee(testEmployee())
	require.NoError(t, err)

	st, err := c.CaptureLocation(context.Background())
	require.NoError(t, err)
	require.NotNil(t, st.Validation)
	assert.False(t, st.Validation.Valid)
	assert.Greater(t, st.Validation.DistanceFeet, 500.0)

	// Without the confirmation flag the network must not be touched.
	_, err = c.Submit(context.Background(), false)
	assert.ErrorIs(t, err, ErrGeofenceNotConfirmed)
	assert.Equal(t, 0, api.clockInCalls)

	// With explicit confirmation the submission goes through.
	st, err = c.Submit(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, api.clockInCalls)
	assert.Equal(t, ClockOut, st.ClockType)
}

func TestSubmit_ClockInFlipsToClockOut(t *testing.T) {
	api := &fakeAPI{}
	c := NewController(api, nearbyProvider(), 500)
	_, err := c.Start(context.Background())
	require.NoError(t, err)

	c.SelectPatient(testPatient())
	_, err = c.SelectEmployee(testEmployee())
	require.NoError(t, err)
	_, err = c.CaptureLocation(context.Background())
	require.NoError(t, err)

	st, err := c.Submit(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, PhaseOpenSessionAwaitingLocation, st.Phase)
	assert.Equal(t, ClockOut, st.ClockType)
	assert.Equal(t, "ts-100", st.TimesheetID)

	// Location artifacts are single-use per clock action.
	assert.Nil(t, st.Location)
	assert.Nil(t, st.Validation)
}

func TestSubmit_FullShiftUsesSameTimesheetID(t *testing.T) {
	api := &fakeAPI{}
	c := NewController(api, nearbyProvider(), 500)
	_, err := c.Start(context.Background())
	require.NoError(t, err)

	c.SelectPatient(testPatient())
	_, err = c.SelectEmployee(testEmployee())
	require.NoError(t, err)
	_, err = c.CaptureLocation(context.Background())
	require.NoError(t, err)
	_, err = c.Submit(context.Background(), false)
	require.NoError(t, err)

	// Clock out from a slightly different spot.
	c.provider = &StaticLocationProvider{Latitude: 39.9605, Longitude: -82.9905, Accuracy: 8}
	_, err = c.CaptureLocation(context.Background())
	require.NoError(t, err)

	st, err := c.Submit(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, PhaseClosed, st.Phase)

	require.Len(t, api.clockInReqs, 1)
	require.Len(t, api.clockOutReqs, 1)
	assert.Equal(t, "ts-100", api.clockOutReqs[0].TimesheetID)

	// The clock-out fix is captured independently, never reused.
	assert.NotEqual(t, api.clockInReqs[0].Location.Latitude, api.clockOutReqs[0].Location.Latitude)
	assert.NotEqual(t, api.clockInReqs[0].Validation.DistanceFeet, api.clockOutReqs[0].Validation.DistanceFeet)
}

func TestSubmit_FailurePreservesState(t *testing.T) {
	api := &fakeAPI{
		clockInErr: &APIError{StatusCode: 409, ErrorCode: "CONFLICT", Message: "Employee already has an open session"},
	}
	c := NewController(api, nearbyProvider(), 500)
	_, err := c.Start(context.Background())
	require.NoError(t, err)

	c.SelectPatient(testPatient())
	_, err = c.SelectEmployee(testEmployee())
	require.NoError(t, err)
	_, err = c.CaptureLocation(context.Background())
	require.NoError(t, err)

	st, err := c.Submit(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Employee already has an open session")

	// Everything stays so the user can retry without re-entering data.
	assert.Equal(t, PhaseReadyToSubmit, st.Phase)
	assert.NotNil(t, st.Patient)
	assert.NotNil(t, st.Employee)
	assert.NotNil(t, st.Location)
	assert.NotNil(t, st.Validation)
}

func TestSubmit_SingleFlight(t *testing.T) {
	release := make(chan struct{})
	api := &fakeAPI{blockClockIn: release}
	c := NewController(api, nearbyProvider(), 500)
	_, err := c.Start(context.Background())
	require.NoError(t, err)

	c.SelectPatient(testPatient())
	_, err = c.SelectEmployee(testEmployee())
	require.NoError(t, err)
	_, err = c.CaptureLocation(context.Background())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background(), false)
		done <- err
	}()

	// Wait until the first submission is in flight.
	require.Eventually(t, func() bool {
		return c.State().Phase == PhaseSubmitting
	}, time.Second, 5*time.Millisecond)

	_, err = c.Submit(context.Background(), false)
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, api.clockInCalls)
}

func TestSubmit_AfterClosed(t *testing.T) {
	lat, lon := 39.96, -82.99
	api := &fakeAPI{
		active: &timesheet.TimesheetResponse{
			ID:               "ts-9",
			PatientLatitude:  &lat,
			PatientLongitude: &lon,
			Status:           timesheet.StatusOpen,
		},
	}
	c := NewController(api, nearbyProvider(), 500)
	_, err := c.Start(context.Background())
	require.NoError(t, err)

	_, err = c.CaptureLocation(context.Background())
	require.NoError(t, err)
	st, err := c.Submit(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, PhaseClosed, st.Phase)

	_, err = c.Submit(context.Background(), false)
	assert.ErrorIs(t, err, ErrSessionClosed)
}
