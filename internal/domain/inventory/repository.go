package inventory

import (
	"context"

	"salespoint/internal/core/id"
	"salespoint/internal/core/location"
)

// Repository is the storage contract for the stock ledger.
//
// Debit must be atomic at the statement level: the availability check and
// the decrement happen as one conditional update, so concurrent debits can
// never drive a quantity below zero.
type Repository interface {
	// GetByProductAndLocation returns the ledger record for a product at a
	// location, or apperror.NotFound when no record exists.
	GetByProductAndLocation(ctx context.Context, productID id.ID, loc location.Location) (*Record, error)

	// Debit decrements the on-hand quantity and returns the id of the
	// record debited. Fails with apperror NO_INVENTORY_RECORD when the
	// record is absent and INSUFFICIENT_STOCK when the quantity is too low.
	Debit(ctx context.Context, productID id.ID, loc location.Location, qty int64) (id.ID, error)

	// Credit increments the on-hand quantity, creating the record when it
	// does not exist yet.
	Credit(ctx context.Context, productID id.ID, loc location.Location, qty int64) error

	// CreditRecord increments the quantity of an existing record by id.
	// Reversals use it to restore the exact row a sale debited.
	CreditRecord(ctx context.Context, recordID id.ID, qty int64) error

	// ListByLocation returns all ledger records at a location.
	ListByLocation(ctx context.Context, loc location.Location) ([]Record, error)

	// LowStock returns records whose quantity is below the product's
	// minimum stock threshold.
	LowStock(ctx context.Context) ([]LowStockItem, error)
}
