package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/cache"
	apperrors "github.com/ahmedharati210-cyber/life-accessories-app-sub001/errors"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/models"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/repository"
)

// maxAdjustRetries bounds the compare-and-swap loop for manual adjustments.
const maxAdjustRetries = 3

const defaultHistoryLimit = 50

// StockService is the stock ledger: the only writer of product stock. Every
// mutation lands as an immutable history entry, and in_stock always equals
// stock > 0 after a ledger write.
type StockService struct {
	products repository.ProductRepository
	history  repository.StockHistoryRepository
	store    cache.Store
}

func NewStockService(products repository.ProductRepository, history repository.StockHistoryRepository, store cache.Store) *StockService {
	return &StockService{products: products, history: history, store: store}
}

// AdjustStock sets a product's stock to newStock. The write is a
// compare-and-swap on the previously read value, so two concurrent
// adjustments serialize: each history entry's previous/new pair reflects the
// actual order the writes landed in.
func (s *StockService) AdjustStock(ctx context.Context, productID uuid.UUID, newStock int, reason, actorID string) (*models.StockAdjustResult, error) {
	if newStock < 0 {
		return nil, apperrors.ErrInvalidStockValue
	}

	for attempt := 0; attempt < maxAdjustRetries; attempt++ {
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.ErrNotFound
			}
			return nil, fmt.Errorf("failed to read product: %w", err)
		}

		previous := product.Stock
		if err := s.products.CompareAndSetStock(ctx, productID, previous, newStock); err != nil {
			if errors.Is(err, repository.ErrStockConflict) {
				zap.L().Warn("Stock adjustment lost CAS race, retrying",
					zap.String("product_id", productID.String()),
					zap.Int("attempt", attempt+1),
				)
				continue
			}
			return nil, fmt.Errorf("failed to write stock: %w", err)
		}

		if err := s.recordChange(ctx, product, previous, newStock, models.StockChangeManual, reason, actorID); err != nil {
			// The stock write already landed; surface the gap rather than
			// pretend the ledger is complete.
			return nil, fmt.Errorf("stock updated but history write failed: %w", err)
		}

		s.invalidateProduct(ctx, product.Slug)

		return &models.StockAdjustResult{
			ProductID:     productID,
			PreviousStock: previous,
			NewStock:      newStock,
			Delta:         newStock - previous,
			InStock:       newStock > 0,
		}, nil
	}

	return nil, apperrors.ErrAdjustmentConflict
}

// DeductForOrder removes quantity units atomically (guarded by
// stock >= quantity) and records an order-typed ledger entry.
func (s *StockService) DeductForOrder(ctx context.Context, product *models.Product, quantity int, orderRef string) (*models.Product, error) {
	updated, err := s.products.DeductStock(ctx, product.ID, quantity)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, apperrors.ErrInsufficientStock
		}
		return nil, fmt.Errorf("failed to deduct stock: %w", err)
	}

	if err := s.recordChange(ctx, updated, updated.Stock+quantity, updated.Stock, models.StockChangeOrder, "order "+orderRef, "storefront"); err != nil {
		zap.L().Error("Order stock deducted but history write failed",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
	}

	s.invalidateProduct(ctx, updated.Slug)
	return updated, nil
}

// RestoreForOrder returns quantity units to stock (order cancelled) and
// records a restock-typed ledger entry.
func (s *StockService) RestoreForOrder(ctx context.Context, productID uuid.UUID, quantity int, orderRef string) error {
	updated, err := s.products.RestoreStock(ctx, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to restore stock: %w", err)
	}

	if err := s.recordChange(ctx, updated, updated.Stock-quantity, updated.Stock, models.StockChangeRestock, "order "+orderRef+" cancelled", "system"); err != nil {
		zap.L().Error("Stock restored but history write failed",
			zap.String("product_id", productID.String()),
			zap.Error(err),
		)
	}

	s.invalidateProduct(ctx, updated.Slug)
	return nil
}

// GetStockHistory returns the most recent ledger entries for one product.
func (s *StockService) GetStockHistory(ctx context.Context, productID uuid.UUID, limit int) ([]models.StockHistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	entries, err := s.history.FindByProduct(ctx, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read stock history: %w", err)
	}
	return entries, nil
}

// GetAllStockHistory returns ledger entries across all products,
// most-recent-first, paginated.
func (s *StockService) GetAllStockHistory(ctx context.Context, page, limit int) ([]models.StockHistoryEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	entries, total, err := s.history.FindAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read stock history: %w", err)
	}
	return entries, total, nil
}

func (s *StockService) recordChange(ctx context.Context, product *models.Product, previous, next int, changeType, reason, actorID string) error {
	entry := &models.StockHistoryEntry{
		ID:            uuid.New(),
		ProductID:     product.ID,
		PreviousStock: previous,
		NewStock:      next,
		Delta:         next - previous,
		ChangeType:    changeType,
		Reason:        reason,
		ActorID:       actorID,
		CreatedAt:     time.Now().UTC(),
	}
	return s.history.Insert(ctx, entry)
}

func (s *StockService) invalidateProduct(ctx context.Context, slug string) {
	s.store.InvalidateType(ctx, cache.TypeProducts, slug)
}
