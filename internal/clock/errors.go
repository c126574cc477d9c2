package clock

import "errors"

var (
	// ErrMissingSelection blocks Submit until patient, employee and location
	// are all present (IN), or a location is present (OUT).
	ErrMissingSelection = errors.New("patient, employee and location must be selected before submitting")

	// ErrGeofenceNotConfirmed is returned when the captured fix failed the
	// geofence check and the caller has not supplied an explicit override
	// confirmation. No network call is made.
	ErrGeofenceNotConfirmed = errors.New("location is outside the allowed radius and the override was not confirmed")

	// ErrPatientMissingCoordinates means the selected patient's address has
	// no GPS coordinates, so no geofence can be computed.
	ErrPatientMissingCoordinates = errors.New("selected patient has no address coordinates")

	// ErrSubmitInFlight guards against a double submit while a clock event
	// is still being sent.
	ErrSubmitInFlight = errors.New("a clock submission is already in flight")

	// ErrLocationUnavailable wraps device/location-permission failures.
	ErrLocationUnavailable = errors.New("device location is unavailable")

	// ErrSessionClosed is returned for operations after the session reached
	// its terminal state.
	ErrSessionClosed = errors.New("clock session is already closed")
)
