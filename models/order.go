package models

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. Cancelling a non-delivered order restores its stock through
// the ledger.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderItem is a product snapshot captured at checkout time.
type OrderItem struct {
	ProductID   uuid.UUID `json:"product_id" bson:"product_id"`
	ProductSlug string    `json:"product_slug" bson:"product_slug"`
	Name        string    `json:"name" bson:"name"`
	Price       float64   `json:"price" bson:"price"`
	Quantity    int       `json:"quantity" bson:"quantity"`
}

// Order is a payment-less checkout record.
type Order struct {
	ID            uuid.UUID   `json:"id" bson:"_id"`
	Reference     string      `json:"reference" bson:"reference"`
	CustomerName  string      `json:"customer_name" bson:"customer_name"`
	CustomerPhone string      `json:"customer_phone" bson:"customer_phone"`
	CustomerEmail string      `json:"customer_email" bson:"customer_email"`
	Address       string      `json:"address" bson:"address"`
	AreaSlug      string      `json:"area_slug" bson:"area_slug"`
	Items         []OrderItem `json:"items" bson:"items"`
	Subtotal      float64     `json:"subtotal" bson:"subtotal"`
	ShippingFee   float64     `json:"shipping_fee" bson:"shipping_fee"`
	Total         float64     `json:"total" bson:"total"`
	Status        string      `json:"status" bson:"status"`
	CreatedAt     time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" bson:"updated_at"`
}

// CheckoutItem is a single product + quantity in a checkout request.
type CheckoutItem struct {
	ProductSlug string `json:"product_slug" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest is the storefront checkout payload.
type CheckoutRequest struct {
	CustomerName  string         `json:"customer_name" binding:"required"`
	CustomerPhone string         `json:"customer_phone" binding:"required"`
	CustomerEmail string         `json:"customer_email"`
	Address       string         `json:"address" binding:"required"`
	AreaSlug      string         `json:"area" binding:"required"`
	Items         []CheckoutItem `json:"items" binding:"required,dive"`
}

// UpdateOrderStatusRequest is the admin payload for moving an order through
// its lifecycle.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderPlacedEvent is published to the order events topic after checkout.
type OrderPlacedEvent struct {
	EventType string    `json:"event_type"`
	OrderID   string    `json:"order_id"`
	Reference string    `json:"reference"`
	AreaSlug  string    `json:"area_slug"`
	Total     float64   `json:"total"`
	Items     int       `json:"items"`
	Timestamp time.Time `json:"timestamp"`
}
