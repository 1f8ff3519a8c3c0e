package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	apperrors "github.com/ahmedharati210-cyber/life-accessories-app-sub001/errors"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/models"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/repository"
)

// AreaService manages shipping areas. Area data is small and admin-mutated;
// it is served straight from the database.
type AreaService struct {
	areas repository.AreaRepository
}

func NewAreaService(areas repository.AreaRepository) *AreaService {
	return &AreaService{areas: areas}
}

// List returns shipping areas, optionally only the active ones (storefront).
func (s *AreaService) List(ctx context.Context, activeOnly bool) ([]*models.ShippingArea, error) {
	areas, err := s.areas.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipping areas: %w", err)
	}
	return areas, nil
}

// Create inserts a shipping area.
func (s *AreaService) Create(ctx context.Context, req models.CreateAreaRequest) (*models.ShippingArea, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	area := &models.ShippingArea{
		ID:           uuid.New(),
		Slug:         req.Slug,
		Name:         req.Name,
		Fee:          req.Fee,
		DeliveryDays: req.DeliveryDays,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.areas.Create(ctx, area); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, apperrors.ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to insert shipping area: %w", err)
	}
	return area, nil
}

// Update applies a partial update to a shipping area.
func (s *AreaService) Update(ctx context.Context, id uuid.UUID, req models.UpdateAreaRequest) error {
	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Fee != nil {
		updates["fee"] = *req.Fee
	}
	if req.DeliveryDays != nil {
		updates["delivery_days"] = *req.DeliveryDays
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		return apperrors.ErrInvalidInput
	}

	matched, err := s.areas.Update(ctx, id, updates)
	if err != nil {
		return fmt.Errorf("failed to update shipping area: %w", err)
	}
	if matched == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a shipping area. Existing orders keep their area slug
// snapshot, so deletion does not cascade.
func (s *AreaService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.areas.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete shipping area: %w", err)
	}
	if deleted == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
