package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceFeet_Identity(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{39.96, -82.99},
		{-33.8688, 151.2093},
		{89.9, 179.9},
	}
	for _, p := range points {
		assert.Zero(t, DistanceFeet(p[0], p[1], p[0], p[1]))
	}
}

func TestDistanceFeet_Symmetry(t *testing.T) {
	pairs := [][4]float64{
		{39.96, -82.99, 39.961, -82.991},
		{40.00, -83.05, 39.96, -82.99},
		{0, 0, 0, 1},
		{-10.5, 20.25, 30.75, -40.125},
	}
	for _, p := range pairs {
		ab := DistanceFeet(p[0], p[1], p[2], p[3])
		ba := DistanceFeet(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-9)
	}
}

func TestDistanceFeet_KnownDistances(t *testing.T) {
	// One degree of longitude on the equator is ~111.19 km.
	assert.InDelta(t, 364813, DistanceFeet(0, 0, 0, 1), 5)

	// A block away from the patient address.
	assert.InDelta(t, 459.7, DistanceFeet(39.961, -82.991, 39.96, -82.99), 0.5)

	// Several miles away.
	assert.InDelta(t, 22232, DistanceFeet(40.00, -83.05, 39.96, -82.99), 5)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name       string
		lat, lon   float64
		tLat, tLon float64
		radius     float64
		wantValid  bool
	}{
		{"same point", 39.96, -82.99, 39.96, -82.99, 500, true},
		{"inside radius", 39.961, -82.991, 39.96, -82.99, 500, true},
		{"outside radius", 40.00, -83.05, 39.96, -82.99, 500, false},
		{"tight radius excludes", 39.961, -82.991, 39.96, -82.99, 100, false},
		{"wide radius includes", 40.00, -83.05, 39.96, -82.99, 25000, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := Validate(c.lat, c.lon, c.tLat, c.tLon, c.radius)
			assert.Equal(t, c.wantValid, v.Valid)
			assert.Equal(t, c.radius, v.AllowedRadiusFeet)
			assert.Equal(t, v.Valid, v.DistanceFeet <= v.AllowedRadiusFeet)
		})
	}
}

func TestValidate_BoundaryIsInclusive(t *testing.T) {
	d := DistanceFeet(39.961, -82.991, 39.96, -82.99)
	v := Validate(39.961, -82.991, 39.96, -82.99, d)
	assert.True(t, v.Valid)
}
