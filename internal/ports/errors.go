package ports

import "fmt"

// ValidationError reports malformed client input. Fatal to the single
// request; surfaced to callers as a client error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// GeocodeError reports that every provider in the chain was exhausted
// for one query. No coordinate is ever fabricated in its place.
type GeocodeError struct {
	Query string
	Last  error
}

func (e *GeocodeError) Error() string {
	if e.Last != nil {
		return fmt.Sprintf("no geocode result for %q: %v", e.Query, e.Last)
	}
	return fmt.Sprintf("no geocode result for %q", e.Query)
}

func (e *GeocodeError) Unwrap() error { return e.Last }

// RouteError reports that the routing provider returned no usable route.
type RouteError struct {
	Reason string
	Cause  error
}

func (e *RouteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("routing failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("routing failed: %s", e.Reason)
}

func (e *RouteError) Unwrap() error { return e.Cause }

// AssemblyError reports an unusable route payload at assembly time.
// Defensive: unreachable when the routing provider honors its contract.
type AssemblyError struct {
	Reason string
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("map assembly failed: %s", e.Reason)
}

// ResolutionError wraps any geocoding, routing or assembly failure at
// the route-resolution boundary so callers handle one failure type.
type ResolutionError struct {
	Stage string
	Cause error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("route resolution failed at %s: %v", e.Stage, e.Cause)
}

func (e *ResolutionError) Unwrap() error { return e.Cause }
