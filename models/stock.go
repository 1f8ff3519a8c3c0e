package models

import (
	"time"

	"github.com/google/uuid"
)

// Stock change types recorded in the ledger.
const (
	StockChangeManual  = "manual"
	StockChangeOrder   = "order"
	StockChangeRestock = "restock"
)

// Alert classifications.
const (
	AlertOutOfStock = "out_of_stock"
	AlertLowStock   = "low_stock"
)

// StockHistoryEntry is an append-only record of a single stock mutation.
// Entries are never updated or deleted once written.
type StockHistoryEntry struct {
	ID            uuid.UUID `json:"id" bson:"_id"`
	ProductID     uuid.UUID `json:"product_id" bson:"product_id"`
	PreviousStock int       `json:"previous_stock" bson:"previous_stock"`
	NewStock      int       `json:"new_stock" bson:"new_stock"`
	Delta         int       `json:"delta" bson:"delta"`
	ChangeType    string    `json:"change_type" bson:"change_type"`
	Reason        string    `json:"reason" bson:"reason"`
	ActorID       string    `json:"actor_id" bson:"actor_id"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// StockAlert is computed on demand and not persisted.
type StockAlert struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductSlug  string    `json:"product_slug"`
	CurrentStock int       `json:"current_stock"`
	AlertType    string    `json:"alert_type"`
	Threshold    int       `json:"threshold"`
}

// AdjustStockRequest is the admin payload for a manual stock adjustment.
type AdjustStockRequest struct {
	NewStock *int   `json:"new_stock" binding:"required"`
	Reason   string `json:"reason"`
}

// StockAdjustResult reports the outcome of a ledger adjustment.
type StockAdjustResult struct {
	ProductID     uuid.UUID `json:"product_id"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Delta         int       `json:"delta"`
	InStock       bool      `json:"in_stock"`
}
