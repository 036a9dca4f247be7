package models

import (
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/geo"
)

// RouteStep is a single maneuver in a computed route, anchored at a
// geographic point. Steps are ordered from origin toward destination.
type RouteStep struct {
	Location geo.Point              `json:"location"`
	Type     types.ManeuverType     `json:"type"`
	Modifier types.ManeuverModifier `json:"modifier,omitempty"`
}

// Route is the active route for a tracking session. At most one route is
// live per session; a recomputation overwrites it wholesale, never merges.
type Route struct {
	Steps           []RouteStep `json:"steps"`
	Polyline        []geo.Point `json:"polyline"`
	DistanceMeters  float64     `json:"distance_meters"`
	DurationSeconds float64     `json:"duration_seconds"`
	Destination     geo.Point   `json:"destination"`

	// Fallback marks a straight-line route produced after the routing
	// service could not be reached. Fallback routes carry no steps.
	Fallback bool `json:"fallback,omitempty"`

	// Arrived marks a route whose origin was already within arrival
	// distance of the destination. No network call was made for it.
	Arrived bool `json:"arrived,omitempty"`
}

// StepLocations returns the maneuver anchors in path order.
func (r *Route) StepLocations() []geo.Point {
	locs := make([]geo.Point, len(r.Steps))
	for i, s := range r.Steps {
		locs[i] = s.Location
	}
	return locs
}
