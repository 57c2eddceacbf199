// Package greatcircle measures distances on a spherical Earth.
package greatcircle

import "github.com/golang/geo/s2"

// EarthRadius is the mean Earth radius in meters (IUGG).
const EarthRadius = 6371008.8

// Distance returns the great-circle distance in meters between two
// (longitude, latitude) pairs given in degrees.
func Distance(a, b [2]float64) float64 {
	// s2 takes latitude first.
	la := s2.LatLngFromDegrees(a[1], a[0])
	lb := s2.LatLngFromDegrees(b[1], b[0])
	return la.Distance(lb).Radians() * EarthRadius
}
