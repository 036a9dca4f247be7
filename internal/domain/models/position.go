package models

import (
	"time"

	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/geo"
)

// PositionUpdate is one sample from the device's continuous location feed.
// Each update fully replaces the previous one; no history is kept beyond
// the last known position and the position at the last route calculation.
type PositionUpdate struct {
	Location       geo.Point `json:"location"`
	AccuracyMeters float64   `json:"accuracy_meters,omitempty"`
	HeadingDegrees *float64  `json:"heading_degrees,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// TrackingStatus is pushed to the device whenever the session state or
// accuracy mode changes.
type TrackingStatus struct {
	State   types.TrackingState `json:"state"`
	Mode    types.AccuracyMode  `json:"accuracy_mode,omitempty"`
	Message string              `json:"message,omitempty"`
}
