package customer

import (
	"context"
	"strings"
	"time"

	"salespoint/internal/core/apperror"
	"salespoint/internal/core/id"
)

// Service implements customer catalog operations.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput holds fields for customer creation.
type CreateInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// Create validates and persists a new customer profile.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Customer, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperror.NewValidation("name must not be empty")
	}

	now := time.Now().UTC()
	c := &Customer{
		ID:        id.New(),
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(strings.ToLower(in.Email)),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateInput holds fields for customer update. Nil pointers mean "unchanged".
type UpdateInput struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

// Update applies partial changes to a customer profile.
func (s *Service) Update(ctx context.Context, customerID id.ID, in UpdateInput) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, apperror.NewValidation("name must not be empty")
		}
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		c.Email = strings.TrimSpace(strings.ToLower(*in.Email))
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID returns a customer by id.
func (s *Service) GetByID(ctx context.Context, customerID id.ID) (*Customer, error) {
	return s.repo.GetByID(ctx, customerID)
}

// List returns customers matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]Customer, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

// Delete removes a customer profile.
func (s *Service) Delete(ctx context.Context, customerID id.ID) error {
	return s.repo.Delete(ctx, customerID)
}
