package customer

import (
	"context"

	"salespoint/internal/core/id"
)

// Repository is the customer storage contract.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, customerID id.ID) (*Customer, error)
	List(ctx context.Context, filter Filter) ([]Customer, int64, error)
	Delete(ctx context.Context, customerID id.ID) error
}
