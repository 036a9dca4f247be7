package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
)

// CartLine is one menu item in an order.
type CartLine struct {
	MenuItem  string  `json:"menu_item"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Note      string  `json:"note,omitempty"`
}

// Order is a submitted storefront order. The printer/chat collaborators
// consume it from the orders fanout; this service only persists and
// publishes it.
type Order struct {
	ID           uuid.UUID         `json:"id"`
	CustomerName string            `json:"customer_name"`
	Phone        string            `json:"phone,omitempty"`
	Lines        []CartLine        `json:"lines"`
	Total        float64           `json:"total"`
	Status       types.OrderStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

// Subtotal recomputes the order total from its lines.
func (o *Order) Subtotal() float64 {
	var sum float64
	for _, l := range o.Lines {
		sum += l.UnitPrice * float64(l.Quantity)
	}
	return sum
}
