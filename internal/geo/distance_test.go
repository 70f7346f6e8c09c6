package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_AbsentCoordinates(t *testing.T) {
	a := &Coordinates{Latitude: 40.0, Longitude: -75.0}

	assert.True(t, math.IsInf(DistanceKm(a, nil), 1))
	assert.True(t, math.IsInf(DistanceKm(nil, a), 1))
	assert.True(t, math.IsInf(DistanceKm(nil, nil), 1))
}

func TestDistanceKm_Identity(t *testing.T) {
	a := &Coordinates{Latitude: 40.0, Longitude: -75.0}

	assert.Equal(t, 0.0, DistanceKm(a, a))
}

func TestDistanceKm_Symmetry(t *testing.T) {
	a := &Coordinates{Latitude: 40.7128, Longitude: -74.0060}
	b := &Coordinates{Latitude: 51.5074, Longitude: -0.1278}

	assert.Equal(t, DistanceKm(a, b), DistanceKm(b, a))
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// New York to London is roughly 5570 km.
	a := &Coordinates{Latitude: 40.7128, Longitude: -74.0060}
	b := &Coordinates{Latitude: 51.5074, Longitude: -0.1278}

	d := DistanceKm(a, b)
	assert.InDelta(t, 5570, d, 20)
}

func TestDistanceKm_ShortDistance(t *testing.T) {
	a := &Coordinates{Latitude: 40.0, Longitude: -75.0}
	b := &Coordinates{Latitude: 40.001, Longitude: -75.001}

	d := DistanceKm(a, b)
	assert.Greater(t, d, 0.0)
	assert.Less(t, d, 1.0)
}

func TestCoordinates_Valid(t *testing.T) {
	tests := []struct {
		name   string
		coords *Coordinates
		want   bool
	}{
		{"nil", nil, false},
		{"valid", &Coordinates{Latitude: 40, Longitude: -75}, true},
		{"lat out of range", &Coordinates{Latitude: 91, Longitude: 0}, false},
		{"lon out of range", &Coordinates{Latitude: 0, Longitude: 181}, false},
		{"nan", &Coordinates{Latitude: math.NaN(), Longitude: 0}, false},
		{"inf", &Coordinates{Latitude: 0, Longitude: math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.coords.Valid())
		})
	}
}
