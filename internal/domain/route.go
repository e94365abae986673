package domain

// Represents a resolved driving route between two points.
// A RouteResult is the output of a routing provider and describes the
// road path along with aggregate distance and duration metrics.
// It is immutable planning data and contains no side effects.
type RouteResult struct {
	DistanceMiles float64
	DurationHours float64
	// Ordered road path; first element is the pickup, last the dropoff.
	Path []Coordinate
}

// A labeled point of interest along the route (pickup, midpoint, dropoff).
type Stop struct {
	Position Coordinate
	Label    string
}

// Assembled map payload for a rendering client: the full polyline,
// exactly three labeled stops, and the map center (the midpoint stop).
type MapInfo struct {
	Route  []Coordinate
	Stops  []Stop
	Center Coordinate
}
