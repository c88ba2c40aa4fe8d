// Package inventory implements the stock ledger: per product, per location
// quantity records with atomic debit and credit operations.
package inventory

import (
	"time"

	"salespoint/internal/core/id"
	"salespoint/internal/core/location"
)

// Record is one row of the stock ledger: the on-hand quantity of a product
// at a sales location. Quantity is never negative.
type Record struct {
	ID        id.ID             `db:"id" json:"id"`
	ProductID id.ID             `db:"product_id" json:"productId"`
	Location  location.Location `db:"-" json:"location"`
	Quantity  int64             `db:"quantity" json:"quantity"`

	// Optional provenance metadata.
	Supplier    string `db:"supplier" json:"supplier,omitempty"`
	BatchNumber string `db:"batch_number" json:"batchNumber,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// LowStockItem is a product whose on-hand quantity at a location fell below
// its minimum stock threshold.
type LowStockItem struct {
	ProductID   id.ID             `db:"product_id" json:"productId"`
	SKU         string            `db:"sku" json:"sku"`
	ProductName string            `db:"product_name" json:"productName"`
	Location    location.Location `db:"-" json:"location"`
	Quantity    int64             `db:"quantity" json:"quantity"`
	MinStock    int64             `db:"min_stock" json:"minStock"`
}
