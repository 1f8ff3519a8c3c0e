package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/ahmedharati210-cyber/life-accessories-app-sub001/errors"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/events"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/models"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/repository"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/sender"
)

const defaultOrdersPerPage = 20

var validOrderStatuses = map[string]bool{
	models.OrderStatusPending:   true,
	models.OrderStatusConfirmed: true,
	models.OrderStatusShipped:   true,
	models.OrderStatusDelivered: true,
	models.OrderStatusCancelled: true,
}

// OrderService handles payment-less checkout and the admin order lifecycle.
// All stock movement goes through the ledger, including the compensation path
// when a later item in a checkout cannot be deducted.
type OrderService struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	areas     repository.AreaRepository
	ledger    *StockService
	publisher events.Publisher
	email     sender.EmailSender
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	areas repository.AreaRepository,
	ledger *StockService,
	publisher events.Publisher,
	email sender.EmailSender,
) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		areas:     areas,
		ledger:    ledger,
		publisher: publisher,
		email:     email,
	}
}

// Checkout validates the cart, deducts stock per item through the ledger and
// persists the order. If any deduction fails, previously deducted items are
// restored so no partial deduction survives a failed checkout.
func (s *OrderService) Checkout(ctx context.Context, req models.CheckoutRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	area, err := s.areas.FindBySlug(ctx, req.AreaSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrAreaUnavailable
		}
		return nil, fmt.Errorf("failed to resolve shipping area: %w", err)
	}
	if !area.Active {
		return nil, apperrors.ErrAreaUnavailable
	}

	reference := newOrderReference()

	var orderItems []models.OrderItem
	var subtotal float64
	deducted := make([]models.OrderItem, 0, len(req.Items))

	for _, item := range req.Items {
		product, err := s.products.FindBySlug(ctx, item.ProductSlug)
		if err != nil {
			s.compensate(ctx, deducted, reference)
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.New(404, fmt.Sprintf("Product '%s' not found", item.ProductSlug), nil)
			}
			return nil, fmt.Errorf("failed to read product: %w", err)
		}

		if _, err := s.ledger.DeductForOrder(ctx, product, item.Quantity, reference); err != nil {
			s.compensate(ctx, deducted, reference)
			return nil, err
		}

		orderItem := models.OrderItem{
			ProductID:   product.ID,
			ProductSlug: product.Slug,
			Name:        product.Name,
			Price:       product.Price,
			Quantity:    item.Quantity,
		}
		deducted = append(deducted, orderItem)
		orderItems = append(orderItems, orderItem)
		subtotal += product.Price * float64(item.Quantity)
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:            uuid.New(),
		Reference:     reference,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Address:       req.Address,
		AreaSlug:      area.Slug,
		Items:         orderItems,
		Subtotal:      subtotal,
		ShippingFee:   area.Fee,
		Total:         subtotal + area.Fee,
		Status:        models.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.compensate(ctx, deducted, reference)
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.publisher.PublishOrderPlaced(ctx, models.OrderPlacedEvent{
		EventType: "order_placed",
		OrderID:   order.ID.String(),
		Reference: order.Reference,
		AreaSlug:  order.AreaSlug,
		Total:     order.Total,
		Items:     len(order.Items),
		Timestamp: now,
	})

	if order.CustomerEmail != "" && s.email != nil {
		go s.sendConfirmation(order)
	}

	return order, nil
}

// List returns orders for the back office, most-recent-first.
func (s *OrderService) List(ctx context.Context, page, limit int, status string) ([]models.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultOrdersPerPage
	}
	if status != "" && !validOrderStatuses[status] {
		return nil, 0, apperrors.ErrInvalidOrderStatus
	}

	orders, total, err := s.orders.FindAll(ctx, page, limit, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

// Get returns one order by id.
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read order: %w", err)
	}
	return order, nil
}

// UpdateStatus moves an order through its lifecycle. Cancelling a
// non-delivered order restores its stock through the ledger.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validOrderStatuses[status] {
		return apperrors.ErrInvalidOrderStatus
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if order.Status == models.OrderStatusCancelled || order.Status == models.OrderStatusDelivered {
		return apperrors.ErrInvalidOrderStatus
	}
	if status == order.Status {
		return nil
	}

	matched, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if matched == 0 {
		return apperrors.ErrNotFound
	}

	if status == models.OrderStatusCancelled {
		for _, item := range order.Items {
			if err := s.ledger.RestoreForOrder(ctx, item.ProductID, item.Quantity, order.Reference); err != nil {
				zap.L().Error("Failed to restore stock for cancelled order",
					zap.String("order_id", order.ID.String()),
					zap.String("product_id", item.ProductID.String()),
					zap.Error(err),
				)
			}
		}
	}

	return nil
}

// compensate restores stock for items already deducted by a checkout that
// cannot complete.
func (s *OrderService) compensate(ctx context.Context, deducted []models.OrderItem, reference string) {
	for _, item := range deducted {
		if err := s.ledger.RestoreForOrder(ctx, item.ProductID, item.Quantity, reference); err != nil {
			zap.L().Error("Checkout compensation failed",
				zap.String("reference", reference),
				zap.String("product_id", item.ProductID.String()),
				zap.Error(err),
			)
		}
	}
}

func (s *OrderService) sendConfirmation(order *models.Order) {
	bgCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var lines []string
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("<li>%s × %d — %.2f</li>", item.Name, item.Quantity, item.Price*float64(item.Quantity)))
	}
	body := fmt.Sprintf(
		"<p>Thanks for your order, %s!</p><p>Reference: <strong>%s</strong></p><ul>%s</ul><p>Shipping: %.2f<br>Total: <strong>%.2f</strong></p>",
		order.CustomerName, order.Reference, strings.Join(lines, ""), order.ShippingFee, order.Total,
	)

	if _, err := s.email.SendEmail(bgCtx, order.CustomerEmail, "Order confirmed: "+order.Reference, body); err != nil {
		zap.L().Warn("Order confirmation email failed",
			zap.String("reference", order.Reference),
			zap.Error(err),
		)
	}
}

func newOrderReference() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}
