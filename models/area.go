package models

import (
	"time"

	"github.com/google/uuid"
)

// ShippingArea is a deliverable region with a flat shipping fee.
type ShippingArea struct {
	ID           uuid.UUID `json:"id" bson:"_id"`
	Slug         string    `json:"slug" bson:"slug"`
	Name         string    `json:"name" bson:"name"`
	Fee          float64   `json:"fee" bson:"fee"`
	DeliveryDays int       `json:"delivery_days" bson:"delivery_days"`
	Active       bool      `json:"active" bson:"active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// CreateAreaRequest is the admin payload for creating a shipping area.
type CreateAreaRequest struct {
	Slug         string  `json:"slug" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Fee          float64 `json:"fee" binding:"gte=0"`
	DeliveryDays int     `json:"delivery_days" binding:"gte=0"`
	Active       *bool   `json:"active"`
}

// UpdateAreaRequest carries partial updates; nil fields are left untouched.
type UpdateAreaRequest struct {
	Name         *string  `json:"name"`
	Fee          *float64 `json:"fee" binding:"omitempty,gte=0"`
	DeliveryDays *int     `json:"delivery_days" binding:"omitempty,gte=0"`
	Active       *bool    `json:"active"`
}
