package store

import (
	"context"
	"regexp"
	"strings"
	"time"

	"salespoint/internal/core/apperror"
	"salespoint/internal/core/id"
	"salespoint/pkg/logger"
)

// codePattern restricts store codes to 2-6 uppercase alphanumerics.
var codePattern = regexp.MustCompile(`^[A-Z0-9]{2,6}$`)

// Service implements store catalog operations.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput holds fields for store creation.
type CreateInput struct {
	Code    string
	Name    string
	Address string
	Phone   string
}

// Create validates and persists a new store.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Store, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if !codePattern.MatchString(code) {
		return nil, apperror.NewValidation("code must be 2-6 uppercase alphanumerics")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperror.NewValidation("name must not be empty")
	}

	now := time.Now().UTC()
	st := &Store{
		ID:        id.New(),
		Code:      code,
		Name:      strings.TrimSpace(in.Name),
		Address:   strings.TrimSpace(in.Address),
		Phone:     strings.TrimSpace(in.Phone),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}

	logger.Info(ctx, "store created", "store_id", st.ID, "code", st.Code)
	return st, nil
}

// UpdateInput holds fields for store update. Nil pointers mean "unchanged".
// The code is immutable once created; historical invoice numbers reference it.
type UpdateInput struct {
	Name    *string
	Address *string
	Phone   *string
	Active  *bool
}

// Update applies partial changes to an existing store.
func (s *Service) Update(ctx context.Context, storeID id.ID, in UpdateInput) (*Store, error) {
	st, err := s.repo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, apperror.NewValidation("name must not be empty")
		}
		st.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		st.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		st.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Active != nil {
		st.Active = *in.Active
	}
	st.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// GetByID returns a store by id.
func (s *Service) GetByID(ctx context.Context, storeID id.ID) (*Store, error) {
	return s.repo.GetByID(ctx, storeID)
}

// List returns stores, optionally only active ones.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]Store, error) {
	return s.repo.List(ctx, activeOnly)
}

// Delete removes a store.
func (s *Service) Delete(ctx context.Context, storeID id.ID) error {
	return s.repo.Delete(ctx, storeID)
}
