package models

import (
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
)

// Instruction is the maneuver guidance derived from the current position
// against the current route. It is recomputed on every position update and
// discarded when tracking stops; a stale position/route pairing is never
// rendered.
type Instruction struct {
	Text           string        `json:"text"`
	DistanceMeters int           `json:"distance_meters"`
	Urgency        types.Urgency `json:"urgency"`
}

// NavigationUpdate is one outbound guidance frame for the device. Route is
// only set when the route itself changed; FitBounds tells the client to
// re-fit the map view, which background reroutes never do.
type NavigationUpdate struct {
	Instruction *Instruction `json:"instruction,omitempty"`

	// DistanceToDestination is always present so fallback routes without
	// steps still get straight-line guidance.
	DistanceToDestination int `json:"distance_to_destination_meters"`

	Route     *Route `json:"route,omitempty"`
	FitBounds bool   `json:"fit_bounds,omitempty"`
}
