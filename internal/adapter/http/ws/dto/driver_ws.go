package dto

import (
	"time"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/geo"
)

// Inbound frame types, sent by the driver device.
const (
	MsgStartTracking    = "start_tracking"
	MsgStopTracking     = "stop_tracking"
	MsgPosition         = "position"
	MsgPositionError    = "position_error"
	MsgSetDestination   = "set_destination"
	MsgClearDestination = "clear_destination"
	MsgRefresh          = "refresh"
)

// Outbound frame types, sent to the driver device.
const (
	MsgTrackingStatus     = "tracking_status"
	MsgNavigation         = "navigation"
	MsgConfigurePositions = "configure_positions"
	MsgWakeLock           = "wake_lock"
	MsgError              = "error"
)

// Inbound position sample. Heading is absent when the device is stationary.
type PositionFrame struct {
	Type           string   `json:"type"`
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	AccuracyMeters float64  `json:"accuracy_meters"`
	HeadingDegrees *float64 `json:"heading_degrees,omitempty"`
	Timestamp      int64    `json:"timestamp,omitempty"` // unix millis
}

func (f PositionFrame) ToModel() models.PositionUpdate {
	ts := time.Now().UTC()
	if f.Timestamp > 0 {
		ts = time.UnixMilli(f.Timestamp).UTC()
	}
	return models.PositionUpdate{
		Location:       geo.Point{Lat: f.Lat, Lng: f.Lng},
		AccuracyMeters: f.AccuracyMeters,
		HeadingDegrees: f.HeadingDegrees,
		Timestamp:      ts,
	}
}

// Inbound positioning failure reported by the device.
type PositionErrorFrame struct {
	Type string `json:"type"`
	Code string `json:"code"` // permission_denied | unavailable | timeout
}

type SetDestinationFrame struct {
	Type string  `json:"type"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type TrackingStatusFrame struct {
	Type    string              `json:"type"`
	State   types.TrackingState `json:"state"`
	Mode    types.AccuracyMode  `json:"accuracy_mode,omitempty"`
	Message string              `json:"message,omitempty"`
}

type NavigationFrame struct {
	Type string `json:"type"`
	models.NavigationUpdate
}

type ConfigurePositionsFrame struct {
	Type string             `json:"type"`
	Mode types.AccuracyMode `json:"accuracy_mode"`
}

type WakeLockFrame struct {
	Type string `json:"type"`
	Held bool   `json:"held"`
}

type ErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
