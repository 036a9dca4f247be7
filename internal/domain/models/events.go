package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Nhongkham198/pinCustomer/pkg/geo"
)

// OrderCreatedEvent is published to the orders fanout exchange. The thermal
// printer and chat-notification collaborators consume it as-is.
type OrderCreatedEvent struct {
	OrderID      uuid.UUID  `json:"order_id"`
	CustomerName string     `json:"customer_name"`
	Lines        []CartLine `json:"lines"`
	Total        float64    `json:"total"`
	Timestamp    time.Time  `json:"timestamp"`
}

// DeliveryCompletedEvent is published when a pin is moved to history.
type DeliveryCompletedEvent struct {
	PinID       uuid.UUID `json:"pin_id"`
	Name        string    `json:"name"`
	Location    geo.Point `json:"location"`
	OrderValue  *float64  `json:"order_value,omitempty"`
	DeliveredAt time.Time `json:"delivered_at"`
}
