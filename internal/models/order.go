package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus represents the fulfilment state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a line of an order, stored inline with the order
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order represents a buyer's order placed with a seller
type Order struct {
	ID         uuid.UUID   `gorm:"type:text;primary_key" json:"id"`
	BuyerName  string      `gorm:"not null" json:"buyerName"`
	BuyerEmail string      `gorm:"not null" json:"buyerEmail"`
	SellerID   string      `gorm:"index" json:"sellerId"`
	Total      float64     `gorm:"not null" json:"total"`
	Status     OrderStatus `gorm:"index;not null;default:pending" json:"status"`
	Items      []OrderItem `gorm:"serializer:json;type:text" json:"items"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// BeforeCreate hook to generate UUID
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
