package product

import (
	"context"
	"strings"
	"time"

	"salespoint/internal/core/apperror"
	"salespoint/internal/core/id"
	"salespoint/internal/core/types"
	"salespoint/pkg/logger"
)

// Service implements product catalog operations.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput holds fields for product creation.
type CreateInput struct {
	Name      string
	SKU       string
	UnitPrice int64
	Category  string
	Brand     string
	MinStock  int64
}

// Create validates and persists a new product.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Product, error) {
	if err := validate(in.Name, in.SKU, in.UnitPrice, in.MinStock); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &Product{
		ID:        id.New(),
		Name:      strings.TrimSpace(in.Name),
		SKU:       strings.ToUpper(strings.TrimSpace(in.SKU)),
		UnitPrice: types.MinorUnits(in.UnitPrice),
		Category:  strings.TrimSpace(in.Category),
		Brand:     strings.TrimSpace(in.Brand),
		MinStock:  in.MinStock,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.Info(ctx, "product created", "product_id", p.ID, "sku", p.SKU)
	return p, nil
}

// UpdateInput holds fields for product update. Nil pointers mean "unchanged".
type UpdateInput struct {
	Name      *string
	UnitPrice *int64
	Category  *string
	Brand     *string
	MinStock  *int64
	Active    *bool
}

// Update applies partial changes to an existing product.
func (s *Service) Update(ctx context.Context, productID id.ID, in UpdateInput) (*Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, apperror.NewValidation("name must not be empty")
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.UnitPrice != nil {
		if *in.UnitPrice < 0 {
			return nil, apperror.NewValidation("unit price must not be negative")
		}
		p.UnitPrice = types.MinorUnits(*in.UnitPrice)
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Brand != nil {
		p.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, apperror.NewValidation("min stock must not be negative")
		}
		p.MinStock = *in.MinStock
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID returns a product by id.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// List returns products matching the filter plus the unfiltered-by-paging count.
func (s *Service) List(ctx context.Context, filter Filter) ([]Product, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

// Delete removes a product from the catalog.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	return s.repo.Delete(ctx, productID)
}

func validate(name, sku string, unitPrice, minStock int64) error {
	if strings.TrimSpace(name) == "" {
		return apperror.NewValidation("name must not be empty")
	}
	if strings.TrimSpace(sku) == "" {
		return apperror.NewValidation("sku must not be empty")
	}
	if unitPrice < 0 {
		return apperror.NewValidation("unit price must not be negative")
	}
	if minStock < 0 {
		return apperror.NewValidation("min stock must not be negative")
	}
	return nil
}
