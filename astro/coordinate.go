package astro

import "fmt"

// GeoCoordinate is an observer position: geodetic latitude and longitude in
// degrees (east positive) and altitude above sea level in metres.
//
// Constructing a GeoCoordinate directly with a struct literal skips
// validation; that is the permissive path for callers that already hold
// validated values. Everyone else should use NewGeoCoordinate.
type GeoCoordinate struct {
	Lat      float64
	Lng      float64
	Altitude float64
}

// NewGeoCoordinate validates and builds a GeoCoordinate.
// Latitude must lie in [-90, 90] and longitude in [-180, 180].
func NewGeoCoordinate(lat, lng, altitude float64) (GeoCoordinate, error) {
	if lat < -90 || lat > 90 {
		return GeoCoordinate{}, fmt.Errorf("invalid latitude %v: must be between -90 and 90", lat)
	}
	if lng < -180 || lng > 180 {
		return GeoCoordinate{}, fmt.Errorf("invalid longitude %v: must be between -180 and 180", lng)
	}
	return GeoCoordinate{Lat: lat, Lng: lng, Altitude: altitude}, nil
}

// MustGeoCoordinate is like NewGeoCoordinate but panics on invalid input.
// Convenience for literal coordinates in tests and examples; the explicit
// error form is the primary API.
func MustGeoCoordinate(lat, lng, altitude float64) GeoCoordinate {
	c, err := NewGeoCoordinate(lat, lng, altitude)
	if err != nil {
		panic(err)
	}
	return c
}
