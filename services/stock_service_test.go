package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/cache"
	apperrors "github.com/ahmedharati210-cyber/life-accessories-app-sub001/errors"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/models"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/repository"
)

func testProduct(stock int) *models.Product {
	return &models.Product{
		ID:      uuid.New(),
		Slug:    "ceramic-mug",
		Name:    "Ceramic Mug",
		Price:   12.50,
		Stock:   stock,
		InStock: stock > 0,
	}
}

func TestAdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		products := new(MockProductRepository)
		history := new(MockStockHistoryRepository)
		svc := NewStockService(products, history, cache.NewMemoryStore())

		product := testProduct(3)
		products.On("FindByID", ctx, product.ID).Return(product, nil)
		products.On("CompareAndSetStock", ctx, product.ID, 3, 20).Return(nil)
		history.On("Insert", ctx, mock.MatchedBy(func(e *models.StockHistoryEntry) bool {
			return e.ProductID == product.ID &&
				e.PreviousStock == 3 &&
				e.NewStock == 20 &&
				e.Delta == 17 &&
				e.ChangeType == models.StockChangeManual &&
				e.Reason == "restock delivery" &&
				e.ActorID == "admin"
		})).Return(nil)

		result, err := svc.AdjustStock(ctx, product.ID, 20, "restock delivery", "admin")

		assert.NoError(t, err)
		assert.Equal(t, 3, result.PreviousStock)
		assert.Equal(t, 20, result.NewStock)
		assert.Equal(t, 17, result.Delta)
		assert.True(t, result.InStock)
		products.AssertExpectations(t)
		history.AssertExpectations(t)
	})

	t.Run("AdjustToZeroClearsInStock", func(t *testing.T) {
		products := new(MockProductRepository)
		history := new(MockStockHistoryRepository)
		svc := NewStockService(products, history, cache.NewMemoryStore())

		product := testProduct(5)
		products.On("FindByID", ctx, product.ID).Return(product, nil)
		products.On("CompareAndSetStock", ctx, product.ID, 5, 0).Return(nil)
		history.On("Insert", ctx, mock.Anything).Return(nil)

		result, err := svc.AdjustStock(ctx, product.ID, 0, "", "admin")

		assert.NoError(t, err)
		assert.False(t, result.InStock)
	})

	t.Run("NegativeStockRejected", func(t *testing.T) {
		products := new(MockProductRepository)
		history := new(MockStockHistoryRepository)
		svc := NewStockService(products, history, cache.NewMemoryStore())

		result, err := svc.AdjustStock(ctx, uuid.New(), -1, "", "admin")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, apperrors.ErrInvalidStockValue)
		// Invalid input never reaches the database or the ledger.
		products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		history.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("ProductNotFound", func(t *testing.T) {
		products := new(MockProductRepository)
		history := new(MockStockHistoryRepository)
		svc := NewStockService(products, history, cache.NewMemoryStore())

		id := uuid.New()
		products.On("FindByID", ctx, id).Return(nil, repository.ErrNotFound)

		_, err := svc.AdjustStock(ctx, id, 10, "", "admin")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("RetriesOnConflictThenSucceeds", func(t *testing.T) {
		products := new(MockProductRepository)
		history := new(MockStockHistoryRepository)
		svc := NewStockService(products, history, cache.NewMemoryStore())

		product := testProduct(3)
		products.On("FindByID", ctx, product.ID).Return(product, nil)
		products.On("CompareAndSetStock", ctx, product.ID, 3, 20).
			Return(repository.ErrStockConflict).Once()
		products.On("CompareAndSetStock", ctx, product.ID, 3, 20).
			Return(nil).Once()
		history.On("Insert", ctx, mock.Anything).Return(nil)

		result, err := svc.AdjustStock(ctx, product.ID, 20, "", "admin")

		assert.NoError(t, err)
		assert.Equal(t, 20, result.NewStock)
		products.AssertExpectations(t)
	})

	t.Run("GivesUpAfterMaxRetries", func(t *testing.T) {
		products := new(MockProductRepository)
		history := new(MockStockHistoryRepository)
		svc := NewStockService(products, history, cache.NewMemoryStore())

		product := testProduct(3)
		products.On("FindByID", ctx, product.ID).Return(product, nil)
		products.On("CompareAndSetStock", ctx, product.ID, 3, 20).
			Return(repository.ErrStockConflict)

		_, err := svc.AdjustStock(ctx, product.ID, 20, "", "admin")

		assert.ErrorIs(t, err, apperrors.ErrAdjustmentConflict)
		history.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("HistoryFailureSurfaced", func(t *testing.T) {
		products := new(MockProductRepository)
		history := new(MockStockHistoryRepository)
		svc := NewStockService(products, history, cache.NewMemoryStore())

		product := testProduct(3)
		products.On("FindByID", ctx, product.ID).Return(product, nil)
		products.On("CompareAndSetStock", ctx, product.ID, 3, 20).Return(nil)
		history.On("Insert", ctx, mock.Anything).Return(assert.AnError)

		_, err := svc.AdjustStock(ctx, product.ID, 20, "", "admin")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "history write failed")
	})
}

func TestDeductForOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("RecordsOrderEntry", func(t *testing.T) {
		products := new(MockProductRepository)
		history := new(MockStockHistoryRepository)
		svc := NewStockService(products, history, cache.NewMemoryStore())

		product := testProduct(10)
		after := *product
		after.Stock = 7
		products.On("DeductStock", ctx, product.ID, 3).Return(&after, nil)
		history.On("Insert", ctx, mock.MatchedBy(func(e *models.StockHistoryEntry) bool {
			return e.PreviousStock == 10 && e.NewStock == 7 && e.Delta == -3 &&
				e.ChangeType == models.StockChangeOrder
		})).Return(nil)

		updated, err := svc.DeductForOrder(ctx, product, 3, "ORD-AB12CD34EF")

		assert.NoError(t, err)
		assert.Equal(t, 7, updated.Stock)
		history.AssertExpectations(t)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		products := new(MockProductRepository)
		history := new(MockStockHistoryRepository)
		svc := NewStockService(products, history, cache.NewMemoryStore())

		product := testProduct(1)
		products.On("DeductStock", ctx, product.ID, 3).Return(nil, repository.ErrInsufficientStock)

		_, err := svc.DeductForOrder(ctx, product, 3, "ORD-AB12CD34EF")

		assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
		history.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestGetStockHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownProduct", func(t *testing.T) {
		products := new(MockProductRepository)
		history := new(MockStockHistoryRepository)
		svc := NewStockService(products, history, cache.NewMemoryStore())

		id := uuid.New()
		products.On("FindByID", ctx, id).Return(nil, repository.ErrNotFound)

		_, err := svc.GetStockHistory(ctx, id, 10)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("DefaultLimit", func(t *testing.T) {
		products := new(MockProductRepository)
		history := new(MockStockHistoryRepository)
		svc := NewStockService(products, history, cache.NewMemoryStore())

		product := testProduct(4)
		products.On("FindByID", ctx, product.ID).Return(product, nil)
		history.On("FindByProduct", ctx, product.ID, 50).
			Return([]models.StockHistoryEntry{{ProductID: product.ID}}, nil)

		entries, err := svc.GetStockHistory(ctx, product.ID, 0)

		assert.NoError(t, err)
		assert.Len(t, entries, 1)
		history.AssertExpectations(t)
	})
}
