package repository

import "errors"

// Sentinel errors surfaced by the repositories. Services translate these to
// caller-facing failures; anything else is a storage failure.
var (
	ErrNotFound          = errors.New("document not found")
	ErrDuplicateSlug     = errors.New("slug already exists")
	ErrStockConflict     = errors.New("stock changed concurrently")
	ErrInsufficientStock = errors.New("insufficient stock")
)
