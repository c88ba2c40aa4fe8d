// Package tx defines the transaction boundary the sales core depends on.
// Checkout, cancel and refund each run as one unit: ledger debits, counter
// increments and document writes commit together or not at all.
package tx

import (
	"context"
)

// Manager runs a function inside a database transaction.
// The postgres implementation lives in infrastructure/storage/postgres.
type Manager interface {
	// RunInTransaction executes fn within a transaction: commit when fn
	// returns nil, rollback otherwise. A nested call joins the transaction
	// already carried by ctx instead of opening a new one.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager adds read-only transactions for listing and report
// queries that must see one consistent snapshot.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction. Writes fail.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
