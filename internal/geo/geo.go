package geo

import "math"

// Coordinate is a geographic point (WGS 84).
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Geocoder resolves a human-readable place label to a coordinate. The bool
// is false when the place is unknown; an error means the lookup itself
// failed. Callers treat both as "no coordinate available".
type Geocoder interface {
	// Resolve looks up a place label such as "Oakland, CA"
	Resolve(place string) (Coordinate, bool, error)
	// Close closes the geocoder and releases resources
	Close() error
}

const earthRadiusMiles = 3958.8

// DistanceMiles returns the great-circle distance between two coordinates.
func DistanceMiles(from, to Coordinate) float64 {
	lat1 := from.Lat * math.Pi / 180
	lat2 := to.Lat * math.Pi / 180
	dLat := (to.Lat - from.Lat) * math.Pi / 180
	dLon := (to.Lon - from.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
