package sales

import (
	"context"

	"salespoint/internal/core/id"
)

// Repository is the transaction storage contract.
type Repository interface {
	// Create inserts the transaction and its items in one go.
	Create(ctx context.Context, t *Transaction) error

	// GetByID returns the transaction with its items loaded, or
	// apperror.NotFound.
	GetByID(ctx context.Context, txID id.ID) (*Transaction, error)

	// UpdateStatus moves a transaction from one status to another as an
	// atomic conditional update. When the row is not in the expected
	// from-status, fails with apperror INVALID_STATE_TRANSITION carrying
	// the actual current status.
	UpdateStatus(ctx context.Context, txID id.ID, from, to Status) error

	// SetRefundedAmount records the refunded amount on the transaction.
	SetRefundedAmount(ctx context.Context, txID id.ID, amount int64) error

	// List returns transactions matching the filter (items not loaded)
	// and the total match count.
	List(ctx context.Context, filter Filter) ([]Transaction, int64, error)
}

// ActionStore appends audit actions. Append-only by contract.
type ActionStore interface {
	Append(ctx context.Context, action *Action) error
	ListByTransaction(ctx context.Context, txID id.ID) ([]Action, error)
}
