package events

import "time"

const (
	TopicOrders   = "order_events"
	TopicMessages = "message_events"
	TopicProducts = "product_events"
)

const (
	OrderPlaced        = "order_placed"
	OrderStatusChanged = "order_status_changed"
	MessagePosted      = "message_posted"
	ProductCreated     = "product_created"
	ProductUpdated     = "product_updated"
	ProductDeleted     = "product_deleted"
)

type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    uint      `json:"order_id"`
	CustomerID uint      `json:"customer_id"`
	ProductID  uint      `json:"product_id"`
	Quantity   int       `json:"quantity"`
	From       string    `json:"from,omitempty"`
	Status     string    `json:"status"`
	Actor      string    `json:"actor"`
	Timestamp  time.Time `json:"timestamp"`
}

type MessageEvent struct {
	Type       string    `json:"type"`
	MessageID  uint      `json:"message_id"`
	CustomerID uint      `json:"customer_id"`
	Sender     string    `json:"sender"`
	Timestamp  time.Time `json:"timestamp"`
}

type ProductEvent struct {
	Type      string    `json:"type"`
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
