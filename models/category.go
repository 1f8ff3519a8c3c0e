package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products by reference. Deleting a category is blocked while
// any product still references it.
type Category struct {
	ID          uuid.UUID `json:"id" bson:"_id"`
	Slug        string    `json:"slug" bson:"slug"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Image       string    `json:"image" bson:"image"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// CreateCategoryRequest is the admin payload for creating a category.
type CreateCategoryRequest struct {
	Slug        string `json:"slug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// UpdateCategoryRequest carries partial updates; nil fields are left untouched.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}
