package types

import "errors"

var (
	// Positioning errors
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrPositionTimeout     = errors.New("position acquisition timed out")
	ErrSessionActive       = errors.New("tracking session already active")

	// Navigation errors
	ErrStaleRoute = errors.New("route computed for a stale session")

	// Storefront errors
	ErrPinNotFound      = errors.New("pin not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrEmptyImport      = errors.New("import batch is empty")
	ErrEmptyCart        = errors.New("order has no lines")
	ErrInvalidPin       = errors.New("invalid unlock pin")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrInvalidCoord     = errors.New("invalid coordinates")
	ErrDriverNotTracked = errors.New("driver has no active connection")
)
