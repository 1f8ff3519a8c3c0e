package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item. Stock and InStock are only written through the
// stock ledger so that InStock == (Stock > 0) holds after every mutation.
type Product struct {
	ID            uuid.UUID  `json:"id" bson:"_id"`
	Slug          string     `json:"slug" bson:"slug"`
	Name          string     `json:"name" bson:"name"`
	Description   string     `json:"description" bson:"description"`
	Price         float64    `json:"price" bson:"price"`
	OriginalPrice *float64   `json:"original_price,omitempty" bson:"original_price,omitempty"`
	Stock         int        `json:"stock" bson:"stock"`
	InStock       bool       `json:"in_stock" bson:"in_stock"`
	CategoryID    uuid.UUID  `json:"category_id" bson:"category_id"`
	Images        []string   `json:"images" bson:"images"`
	IsFeatured    bool       `json:"is_featured" bson:"is_featured"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" bson:"updated_at"`
	DeletedAt     *time.Time `json:"-" bson:"deleted_at,omitempty"`
}

// CreateProductRequest is the admin payload for creating a product.
type CreateProductRequest struct {
	Slug          string   `json:"slug" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	OriginalPrice *float64 `json:"original_price" binding:"omitempty,gt=0"`
	Stock         int      `json:"stock" binding:"gte=0"`
	CategorySlug  string   `json:"category" binding:"required"`
	Images        []string `json:"images"`
	IsFeatured    bool     `json:"is_featured"`
}

// UpdateProductRequest carries partial updates; nil fields are left untouched.
// Stock is intentionally absent — stock changes go through the ledger.
type UpdateProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" binding:"omitempty,gt=0"`
	OriginalPrice *float64 `json:"original_price" binding:"omitempty,gt=0"`
	CategorySlug  *string  `json:"category"`
	Images        []string `json:"images"`
	IsFeatured    *bool    `json:"is_featured"`
}
