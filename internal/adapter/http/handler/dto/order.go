package dto

import (
	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
)

type OrderLineRequest struct {
	MenuItem  string  `json:"menu_item"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Note      string  `json:"note,omitempty"`
}

type SubmitOrderRequest struct {
	CustomerName string             `json:"customer_name"`
	Phone        string             `json:"phone,omitempty"`
	Lines        []OrderLineRequest `json:"lines"`
}

func (r SubmitOrderRequest) ToModel() models.Order {
	lines := make([]models.CartLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, models.CartLine{
			MenuItem:  l.MenuItem,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Note:      l.Note,
		})
	}
	return models.Order{
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Lines:        lines,
	}
}
