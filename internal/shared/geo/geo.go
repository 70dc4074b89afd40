package geo

import (
	"errors"
	"math"
)

var ErrInvalidCoordinates = errors.New("coordinates out of range")

// Coordinates is a [lat, lng] pair in degrees. It encodes as a two-element
// JSON array, the layout map widgets expect.
type Coordinates [2]float64

func New(lat, lng float64) Coordinates {
	return Coordinates{lat, lng}
}

func (c Coordinates) Lat() float64 { return c[0] }

func (c Coordinates) Lng() float64 { return c[1] }

// Validate reports whether both components are finite and within the WGS84
// latitude/longitude bounds.
func (c Coordinates) Validate() error {
	lat, lng := c.Lat(), c.Lng()
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return ErrInvalidCoordinates
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}
