package dto

import (
	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/geo"
)

type CreatePinRequest struct {
	Name       string   `json:"name"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	OrderValue *float64 `json:"order_value,omitempty"`
	Note       string   `json:"note,omitempty"`
}

func (r CreatePinRequest) ToModel() models.Pin {
	return models.Pin{
		Name:       r.Name,
		Location:   geo.Point{Lat: r.Lat, Lng: r.Lng},
		OrderValue: r.OrderValue,
		Note:       r.Note,
	}
}

type ImportPinsRequest struct {
	Mode types.ImportMode   `json:"mode"`
	Pins []CreatePinRequest `json:"pins"`
}

func (r ImportPinsRequest) ToModels() []models.Pin {
	pins := make([]models.Pin, 0, len(r.Pins))
	for _, p := range r.Pins {
		pins = append(pins, p.ToModel())
	}
	return pins
}
