package store

import (
	"context"

	"salespoint/internal/core/id"
)

// Repository is the store storage contract.
type Repository interface {
	Create(ctx context.Context, s *Store) error
	Update(ctx context.Context, s *Store) error
	GetByID(ctx context.Context, storeID id.ID) (*Store, error)
	List(ctx context.Context, activeOnly bool) ([]Store, error)
	Delete(ctx context.Context, storeID id.ID) error
}
