// Package product is the product master-data catalog. The sale core reads
// it for price and name snapshots at checkout time.
package product

import (
	"time"

	"salespoint/internal/core/id"
	"salespoint/internal/core/types"
)

// Product is a sellable item.
type Product struct {
	ID        id.ID            `db:"id" json:"id"`
	Name      string           `db:"name" json:"name"`
	SKU       string           `db:"sku" json:"sku"`
	UnitPrice types.MinorUnits `db:"unit_price" json:"unitPrice"`
	Category  string           `db:"category" json:"category"`
	Brand     string           `db:"brand" json:"brand,omitempty"`

	// MinStock is the low-stock alert threshold.
	MinStock int64 `db:"min_stock" json:"minStock"`

	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Filter narrows product listings.
type Filter struct {
	Search   string // matches name or SKU
	Category string
	Active   *bool
	Limit    int
	Offset   int
}
