package domain

// Immutable geographic coordinates (latitude, longitude) in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lat, lon] for map-client compatibility.
func (c Coordinate) ToLatLon() []float64 { return []float64{c.Lat, c.Lon} }
