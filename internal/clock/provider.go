package clock

import (
	"context"
	"time"

	"github.com/carebridge-health/evv-timeclock-go/internal/domain/timesheet"
)

// LocationProvider supplies the device's current GPS fix. Implementations
// should return an error wrapping ErrLocationUnavailable when permission is
// denied or no signal is available.
type LocationProvider interface {
	CurrentPosition(ctx context.Context) (timesheet.Location, error)
}

// StaticLocationProvider returns a fixed coordinate, stamped at call time.
// Used by the CLI (coordinates from flags) and in tests.
type StaticLocationProvider struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
}

func (p *StaticLocationProvider) CurrentPosition(ctx context.Context) (timesheet.Location, error) {
	return timesheet.Location{
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		Accuracy:   p.Accuracy,
		CapturedAt: time.Now().UTC(),
	}, nil
}
