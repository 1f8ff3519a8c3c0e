package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/models"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/repository"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/sender"
)

// DefaultLowStockThreshold flags products for replenishment at or below this
// count.
const DefaultLowStockThreshold = 5

// AlertService scans products for depleted stock. Evaluation is stateless:
// repeated runs re-report products that remain low, and no alert state is
// persisted.
type AlertService struct {
	products  repository.ProductRepository
	email     sender.EmailSender
	recipient string
	threshold int
}

func NewAlertService(products repository.ProductRepository, email sender.EmailSender, recipient string, threshold int) *AlertService {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return &AlertService{products: products, email: email, recipient: recipient, threshold: threshold}
}

// CheckLowStockAlerts classifies every product at or below the threshold as
// out_of_stock (zero) or low_stock (positive). With notify set, one email is
// dispatched per alert; a failed dispatch is logged and never removes the
// alert from the returned list.
func (s *AlertService) CheckLowStockAlerts(ctx context.Context, notify bool) ([]models.StockAlert, error) {
	products, err := s.products.FindStockAtOrBelow(ctx, s.threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}

	alerts := make([]models.StockAlert, 0, len(products))
	for _, p := range products {
		alertType := models.AlertLowStock
		if p.Stock == 0 {
			alertType = models.AlertOutOfStock
		}
		alerts = append(alerts, models.StockAlert{
			ProductID:    p.ID,
			ProductName:  p.Name,
			ProductSlug:  p.Slug,
			CurrentStock: p.Stock,
			AlertType:    alertType,
			Threshold:    s.threshold,
		})
	}

	if notify {
		for _, alert := range alerts {
			s.notify(ctx, alert)
		}
	}

	return alerts, nil
}

func (s *AlertService) notify(ctx context.Context, alert models.StockAlert) {
	if s.email == nil || s.recipient == "" {
		zap.L().Warn("Alert notifications not configured, skipping dispatch",
			zap.String("product_slug", alert.ProductSlug),
		)
		return
	}

	subject := fmt.Sprintf("Low stock: %s", alert.ProductName)
	if alert.AlertType == models.AlertOutOfStock {
		subject = fmt.Sprintf("Out of stock: %s", alert.ProductName)
	}

	body := fmt.Sprintf(
		"<p><strong>%s</strong> (%s) is down to <strong>%d</strong> units (threshold %d).</p>",
		alert.ProductName, alert.ProductSlug, alert.CurrentStock, alert.Threshold,
	)

	if _, err := s.email.SendEmail(ctx, s.recipient, subject, body); err != nil {
		zap.L().Warn("Alert notification failed",
			zap.String("product_slug", alert.ProductSlug),
			zap.String("alert_type", alert.AlertType),
			zap.Error(err),
		)
	}
}
