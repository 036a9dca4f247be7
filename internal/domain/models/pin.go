package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Nhongkham198/pinCustomer/pkg/geo"
)

// Pin is a customer delivery point. Pins are created by the import
// collaborator, deleted by gated driver action, or moved to history on
// successful delivery. They are never silently dropped.
type Pin struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Location   geo.Point `json:"location"`
	OrderValue *float64  `json:"order_value,omitempty"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// DeliveredPin is a completed delivery kept in history.
type DeliveredPin struct {
	ID          uuid.UUID `json:"id"`
	PinID       uuid.UUID `json:"pin_id"`
	Name        string    `json:"name"`
	Location    geo.Point `json:"location"`
	OrderValue  *float64  `json:"order_value,omitempty"`
	Note        string    `json:"note,omitempty"`
	DeliveredAt time.Time `json:"delivered_at"`
}
