package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/cellar_society/internal/domain"
)

type Admin struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"       json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"           json:"username"`
	PasswordHash string    `gorm:"column:password;not null"       json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime"                 json:"created_at"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string          `gorm:"not null"                  json:"name"`
	Type        string          `gorm:"not null;index"            json:"type"`
	Region      string          `gorm:"not null"                  json:"region"`
	Vintage     int             `gorm:"not null"                  json:"vintage"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Alcohol     float64         `gorm:"not null"                  json:"alcohol"`
	Stock       int             `gorm:"not null"                  json:"stock"`
	Description string          `                                 json:"description"`
	ImageURL    string          `gorm:"column:image_url"          json:"image_url"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"            json:"created_at"`
}

type Customer struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name         string    `gorm:"not null"                  json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"      json:"email"`
	PasswordHash string    `gorm:"column:password;not null"  json:"-"`
	Phone        string    `                                 json:"phone"`
	Address      string    `                                 json:"address"`
	JoinedAt     time.Time `gorm:"autoCreateTime"            json:"joined_at"`
}

type Order struct {
	ID                    uint               `gorm:"primaryKey;autoIncrement"           json:"id"`
	CustomerID            uint               `gorm:"not null;index"                     json:"customer_id"`
	ProductID             uint               `gorm:"not null;index"                     json:"product_id"`
	Quantity              int                `gorm:"not null"                           json:"quantity"`
	TotalPrice            decimal.Decimal    `gorm:"type:decimal(10,2);not null"        json:"total_price"`
	Status                domain.OrderStatus `gorm:"type:varchar(20);not null;default:Pending;index" json:"status"`
	OrderDate             time.Time          `gorm:"autoCreateTime"                     json:"order_date"`
	ShippedDate           *time.Time         `                                          json:"shipped_date,omitempty"`
	EstimatedDeliveryDate *time.Time         `                                          json:"estimated_delivery_date,omitempty"`
}

type Message struct {
	ID         uint              `gorm:"primaryKey;autoIncrement"                     json:"id"`
	CustomerID uint              `gorm:"not null;index:idx_messages_customer,priority:1" json:"customer_id"`
	SenderType domain.SenderRole `gorm:"type:varchar(10);not null"                    json:"sender_type"`
	Body       string            `gorm:"column:message;not null"                      json:"message"`
	IsRead     bool              `gorm:"not null;default:false"                       json:"is_read"`
	CreatedAt  time.Time         `gorm:"autoCreateTime;index:idx_messages_customer,priority:2" json:"created_at"`
}

// OrderView is an order joined with the customer and product columns the
// portals list alongside it.
type OrderView struct {
	Order
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email,omitempty"`
	CustomerPhone   string `json:"customer_phone,omitempty"`
	CustomerAddress string `json:"customer_address,omitempty"`
	ProductName     string `json:"product_name"`
	ProductType     string `json:"product_type,omitempty"`
	ProductRegion   string `json:"product_region,omitempty"`
	ProductVintage  int    `json:"product_vintage,omitempty"`
	ProductImage    string `json:"product_image,omitempty"`
}

type Conversation struct {
	CustomerID    uint      `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	LastMessageAt time.Time `json:"last_message_at"`
	Unread        int64     `json:"unread"`
}

type SchemaMigration struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}
