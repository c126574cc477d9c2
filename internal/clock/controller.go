package clock

import (
	"context"
	"sync"
	"time"

	"github.com/carebridge-health/evv-timeclock-go/internal/domain/employee"
	"github.com/carebridge-health/evv-timeclock-go/internal/domain/patient"
	"github.com/carebridge-health/evv-timeclock-go/internal/domain/timesheet"
	"github.com/carebridge-health/evv-timeclock-go/internal/pkg/geo"
)

// Phase is the explicit state of the clock workflow. The phase is the only
// source of truth for what the session is doing; nothing is inferred from
// scattered flags.
type Phase string

const (
	PhaseSeekingPatient              Phase = "seeking_patient"
	PhaseSeekingEmployee             Phase = "seeking_employee"
	PhaseAwaitingLocation            Phase = "awaiting_location"
	PhaseReadyToSubmit               Phase = "ready_to_submit"
	PhaseSubmitting                  Phase = "submitting"
	PhaseOpenSessionAwaitingLocation Phase = "open_session_awaiting_location"
	PhaseSubmittingOut               Phase = "submitting_out"
	PhaseClosed                      Phase = "closed"
)

type ClockType string

const (
	ClockIn  ClockType = "IN"
	ClockOut ClockType = "OUT"
)

// DefaultRadiusFeet is used when the caller does not configure a radius.
const DefaultRadiusFeet = 500.0

// State is a snapshot of the session. Mutations happen only through the
// Controller's operations.
type State struct {
	Phase     Phase
	ClockType ClockType

	// TimesheetID is assigned by the server on clock-in; empty before that.
	TimesheetID string

	Patient  *patient.PatientResponse
	Employee *employee.EmployeeResponse

	// Location and Validation are single-use per clock action; they are
	// cleared after every successful submission and whenever a new patient
	// is selected.
	Location   *timesheet.Location
	Validation *geo.Validation
}

// Controller owns the manual clock-in/out lifecycle: open-session detection,
// patient/employee selection, location capture and submission. All methods
// are safe for concurrent use; at most one submission is in flight at a time.
type Controller struct {
	api        API
	provider   LocationProvider
	radiusFeet float64

	mu    sync.Mutex
	state State

	// Geofence anchor for the current session. For IN it follows the
	// selected patient; for OUT it comes from the open session.
	anchorLat float64
	anchorLon float64
	hasAnchor bool
}

func NewController(api API, provider LocationProvider, radiusFeet float64) *Controller {
	if radiusFeet <= 0 {
		radiusFeet = DefaultRadiusFeet
	}
	return &Controller{
		api:        api,
		provider:   provider,
		radiusFeet: radiusFeet,
	}
}

// Start queries the server for an open session. When one exists the
// controller enters the clock-out phase directly, with patient and employee
// fixed by the session; otherwise it starts at patient selection.
func (c *Controller) Start(ctx context.Context) (State, error) {
	active, err := c.api.ActiveTimesheet(ctx, "")
	if err != nil {
		return State{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if active == nil {
		c.state = State{
			Phase:     PhaseSeekingPatient,
			ClockType: ClockIn,
		}
		c.hasAnchor = false
		return c.state, nil
	}

	c.state = State{
		Phase:       PhaseOpenSessionAwaitingLocation,
		ClockType:   ClockOut,
		TimesheetID: active.ID,
	}
	c.hasAnchor = false
	if active.PatientLatitude != nil && active.PatientLongitude != nil {
		c.anchorLat = *active.PatientLatitude
		c.anchorLon = *active.PatientLongitude
		c.hasAnchor = true
	}

	return c.state, nil
}

// SelectPatient records the patient for a clock-in and clears any previously
// captured location and validation, since the geofence center follows the
// patient's address. A no-op while clocking out.
func (c *Controller) SelectPatient(p patient.PatientResponse) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.ClockType == ClockOut {
		return c.state
	}

	c.state.Patient = &p
	c.state.Location = nil
	c.state.Validation = nil

	c.hasAnchor = false
	if p.AddressLatitude != nil && p.AddressLongitude != nil {
		c.anchorLat = *p.AddressLatitude
		c.anchorLon = *p.AddressLongitude
		c.hasAnchor = true
	}

	if c.state.Employee != nil && c.hasAnchor {
		c.state.Phase = PhaseAwaitingLocation
	} else {
		c.state.Phase = PhaseSeekingEmployee
	}

	return c.state
}

// SelectEmployee records the employee for a clock-in. When the selected
// patient has no address coordinates the machine stays blocked and the
// missing-coordinates condition is returned; capture is not allowed until a
// patient with coordinates is chosen.
func (c *Controller) SelectEmployee(e employee.EmployeeResponse) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.ClockType == ClockOut {
		return c.state, nil
	}

	c.state.Employee = &e

	if c.state.Patient == nil {
		c.state.Phase = PhaseSeekingPatient
		return c.state, nil
	}

	if !c.hasAnchor {
		c.state.Phase = PhaseSeekingEmployee
		return c.state, ErrPatientMissingCoordinates
	}

	c.state.Phase = PhaseAwaitingLocation
	return c.state, nil
}

// CaptureLocation takes one fix from the provider and computes the geofence
// validation against the session's anchor. An out-of-radius fix does not
// block the transition; it only changes what Submit requires.
func (c *Controller) CaptureLocation(ctx context.Context) (State, error) {
	c.mu.Lock()
	if c.state.Phase == PhaseClosed {
		c.mu.Unlock()
		return c.state, ErrSessionClosed
	}
	if !c.hasAnchor {
		st := c.state
		c.mu.Unlock()
		return st, ErrPatientMissingCoordinates
	}
	anchorLat, anchorLon := c.anchorLat, c.anchorLon
	c.mu.Unlock()

	loc, err := c.provider.CurrentPosition(ctx)
	if err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.state, err
	}
	if loc.CapturedAt.IsZero() {
		loc.CapturedAt = time.Now().UTC()
	}

	validation := geo.Validate(loc.Latitude, loc.Longitude, anchorLat, anchorLon, c.radiusFeet)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Location = &loc
	c.state.Validation = &validation

	if c.state.ClockType == ClockIn {
		c.state.Phase = PhaseReadyToSubmit
	}

	return c.state, nil
}

// Submit sends the pending clock event. confirmedOverride must be true when
// the captured fix failed the geofence check; obtaining that confirmation is
// the caller's responsibility, the controller only enforces that it
// happened. On failure all in-memory state is preserved so the caller can
// retry, and the server's reason is returned verbatim.
func (c *Controller) Submit(ctx context.Context, confirmedOverride bool) (State, error) {
	c.mu.Lock()

	switch c.state.Phase {
	case PhaseSubmitting, PhaseSubmittingOut:
		st := c.state
		c.mu.Unlock()
		return st, ErrSubmitInFlight
	case PhaseClosed:
		st := c.state
		c.mu.Unlock()
		return st, ErrSessionClosed
	}

	clockType := c.state.ClockType

	if clockType == ClockIn {
		if c.state.Patient == nil || c.state.Employee == nil || c.state.Location == nil {
			st := c.state
			c.mu.Unlock()
			return st, ErrMissingSelection
		}
	} else {
		if c.state.Location == nil {
			st := c.state
			c.mu.Unlock()
			return st, ErrMissingSelection
		}
	}

	if c.state.Validation == nil || (!c.state.Validation.Valid && !confirmedOverride) {
		st := c.state
		c.mu.Unlock()
		return st, ErrGeofenceNotConfirmed
	}

	// Snapshot the request under the lock, then release it for the network
	// call. The submitting phase is the single-flight guard.
	location := *c.state.Location
	validation := *c.state.Validation
	var inReq timesheet.ManualClockInRequest
	var outReq timesheet.ManualClockOutRequest

	if clockType == ClockIn {
		c.state.Phase = PhaseSubmitting
		inReq = timesheet.ManualClockInRequest{
			PatientID:  c.state.Patient.ID,
			EmployeeID: c.state.Employee.ID,
			Location:   location,
			Validation: validation,
			Timestamp:  time.Now().UTC(),
		}
	} else {
		c.state.Phase = PhaseSubmittingOut
		outReq = timesheet.ManualClockOutRequest{
			TimesheetID: c.state.TimesheetID,
			Location:    location,
			Validation:  validation,
			Timestamp:   time.Now().UTC(),
		}
	}
	c.mu.Unlock()

	if clockType == ClockIn {
		created, err := c.api.ManualClockIn(ctx, inReq)

		c.mu.Lock()
		defer c.mu.Unlock()

		if err != nil {
			c.state.Phase = PhaseReadyToSubmit
			return c.state, err
		}

		// The session is now open: flip to OUT, drop the single-use
		// location artifacts and anchor the geofence to the session.
		c.state.Phase = PhaseOpenSessionAwaitingLocation
		c.state.ClockType = ClockOut
		c.state.TimesheetID = created.ID
		c.state.Location = nil
		c.state.Validation = nil
		if created.PatientLatitude != nil && created.PatientLongitude != nil {
			c.anchorLat = *created.PatientLatitude
			c.anchorLon = *created.PatientLongitude
			c.hasAnchor = true
		}

		return c.state, nil
	}

	_, err := c.api.ManualClockOut(ctx, outReq)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state.Phase = PhaseOpenSessionAwaitingLocation
		return c.state, err
	}

	c.state.Phase = PhaseClosed
	c.state.Location = nil
	c.state.Validation = nil

	return c.state, nil
}

// State returns a snapshot of the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
