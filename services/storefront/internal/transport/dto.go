package transport

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/cellar_society/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
}

type CartItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartLine struct {
	Product  models.Product  `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	Items     []CartLine      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

type CheckoutRequest struct {
	Address string `json:"address"`
}

type ProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type PasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type DeleteAccountRequest struct {
	Password    string `json:"password"`
	ConfirmText string `json:"confirm_text"`
}

type ProfileResponse struct {
	Customer       models.Customer  `json:"customer"`
	RecentlyViewed []models.Product `json:"recently_viewed"`
	RecentSearches []string         `json:"recent_searches"`
	UnreadMessages int64            `json:"unread_messages"`
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
