package product

import (
	"context"

	"salespoint/internal/core/id"
)

// Repository is the product storage contract.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	GetBySKU(ctx context.Context, sku string) (*Product, error)
	List(ctx context.Context, filter Filter) ([]Product, int64, error)
	Delete(ctx context.Context, productID id.ID) error
}
