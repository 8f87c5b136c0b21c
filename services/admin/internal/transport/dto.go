package transport

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/cellar_society/internal/service"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ProductRequest struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Region      string          `json:"region"`
	Vintage     int             `json:"vintage"`
	Price       decimal.Decimal `json:"price"`
	Alcohol     float64         `json:"alcohol"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
}

func (r ProductRequest) Input() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Type:        r.Type,
		Region:      r.Region,
		Vintage:     r.Vintage,
		Price:       r.Price,
		Alcohol:     r.Alcohol,
		Stock:       r.Stock,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
}

type StatusRequest struct {
	Status string `json:"status"`
}

type MessageRequest struct {
	Message string `json:"message"`
}

type UnreadResponse struct {
	Unread int64 `json:"unread"`
}

type MarkReadResponse struct {
	Marked int64 `json:"marked"`
}
