package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/models"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/sender"
)

func TestCheckLowStockAlerts(t *testing.T) {
	ctx := context.Background()

	lowProducts := []*models.Product{
		{ID: uuid.New(), Slug: "empty-shelf", Name: "Empty Shelf", Stock: 0},
		{ID: uuid.New(), Slug: "last-few", Name: "Last Few", Stock: 3},
	}

	t.Run("ClassifiesAlerts", func(t *testing.T) {
		products := new(MockProductRepository)
		email := new(MockEmailSender)
		svc := NewAlertService(products, email, "ops@example.com", 5)

		products.On("FindStockAtOrBelow", ctx, 5).Return(lowProducts, nil)

		alerts, err := svc.CheckLowStockAlerts(ctx, false)

		assert.NoError(t, err)
		assert.Len(t, alerts, 2)
		assert.Equal(t, models.AlertOutOfStock, alerts[0].AlertType)
		assert.Equal(t, models.AlertLowStock, alerts[1].AlertType)
		assert.Equal(t, 5, alerts[0].Threshold)
		// notify=false never touches the sender
		email.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotifySendsOneEmailPerAlert", func(t *testing.T) {
		products := new(MockProductRepository)
		email := new(MockEmailSender)
		svc := NewAlertService(products, email, "ops@example.com", 5)

		products.On("FindStockAtOrBelow", ctx, 5).Return(lowProducts, nil)
		email.On("SendEmail", ctx, "ops@example.com", mock.Anything, mock.Anything).
			Return(sender.SendResult{}, nil).Twice()

		alerts, err := svc.CheckLowStockAlerts(ctx, true)

		assert.NoError(t, err)
		assert.Len(t, alerts, 2)
		email.AssertExpectations(t)
	})

	t.Run("FailedDispatchKeepsAlert", func(t *testing.T) {
		products := new(MockProductRepository)
		email := new(MockEmailSender)
		svc := NewAlertService(products, email, "ops@example.com", 5)

		products.On("FindStockAtOrBelow", ctx, 5).Return(lowProducts, nil)
		email.On("SendEmail", ctx, "ops@example.com", mock.Anything, mock.Anything).
			Return(sender.SendResult{}, assert.AnError)

		alerts, err := svc.CheckLowStockAlerts(ctx, true)

		assert.NoError(t, err)
		assert.Len(t, alerts, 2)
	})

	t.Run("NoRecipientSkipsDispatch", func(t *testing.T) {
		products := new(MockProductRepository)
		email := new(MockEmailSender)
		svc := NewAlertService(products, email, "", 5)

		products.On("FindStockAtOrBelow", ctx, 5).Return(lowProducts, nil)

		alerts, err := svc.CheckLowStockAlerts(ctx, true)

		assert.NoError(t, err)
		assert.Len(t, alerts, 2)
		email.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DefaultThreshold", func(t *testing.T) {
		products := new(MockProductRepository)
		svc := NewAlertService(products, nil, "", 0)

		products.On("FindStockAtOrBelow", ctx, DefaultLowStockThreshold).
			Return([]*models.Product{}, nil)

		alerts, err := svc.CheckLowStockAlerts(ctx, false)

		assert.NoError(t, err)
		assert.Empty(t, alerts)
		products.AssertExpectations(t)
	})
}
