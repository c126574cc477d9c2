package geo

import "math"

const (
	earthRadiusMeters = 6371000
	feetPerMeter      = 3.28084
)

// DistanceFeet returns the great-circle (haversine) distance between two
// coordinates in feet. Pure function of its inputs.
func DistanceFeet(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c * feetPerMeter
}

// Validation is the outcome of checking a captured position against a
// geofence centered on a target address.
type Validation struct {
	Valid             bool    `json:"valid"`
	DistanceFeet      float64 `json:"distance_feet"`
	AllowedRadiusFeet float64 `json:"allowed_radius_feet"`
}

// Validate reports whether (lat, lon) falls within radiusFeet of the target.
// The radius is caller-supplied configuration, never a constant here.
func Validate(lat, lon, targetLat, targetLon, radiusFeet float64) Validation {
	distance := DistanceFeet(lat, lon, targetLat, targetLon)
	return Validation{
		Valid:             distance <= radiusFeet,
		DistanceFeet:      distance,
		AllowedRadiusFeet: radiusFeet,
	}
}
