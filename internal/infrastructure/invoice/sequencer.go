// Package invoice provides the PostgreSQL-backed invoice sequencer.
package invoice

import (
	"context"
	"fmt"

	"salespoint/internal/core/apperror"
	"salespoint/internal/domain/invoice"
	"salespoint/internal/infrastructure/storage/postgres"
)

// QuerierProvider yields the active querier for a context.
// *postgres.TxManager satisfies it.
type QuerierProvider interface {
	GetQuerier(ctx context.Context) postgres.Querier
}

var _ invoice.Sequencer = (*PGSequencer)(nil)

// PGSequencer issues per-location sequence numbers from the
// invoice_counters table.
//
// The increment is a single UPSERT, so concurrent callers for the same
// location serialize on the row and never see the same value. Called
// inside the checkout transaction, a rolled-back checkout reclaims its
// number, keeping per-location sequences gapless.
type PGSequencer struct {
	db QuerierProvider
}

// NewPGSequencer creates the sequencer.
func NewPGSequencer(db QuerierProvider) *PGSequencer {
	return &PGSequencer{db: db}
}

const nextNumberSQL = `
	INSERT INTO invoice_counters (location_key, current_number, updated_at)
	VALUES ($1, 1, now())
	ON CONFLICT (location_key)
	DO UPDATE SET
		current_number = invoice_counters.current_number + 1,
		updated_at = now()
	RETURNING current_number
`

// Next returns the next sequence number for a location key, starting at 1.
func (s *PGSequencer) Next(ctx context.Context, locationKey string) (int64, error) {
	if locationKey == "" {
		return 0, apperror.NewValidation("location key must not be empty")
	}

	var number int64
	row := s.db.GetQuerier(ctx).QueryRow(ctx, nextNumberSQL, locationKey)
	if err := row.Scan(&number); err != nil {
		return 0, apperror.NewDatabase(fmt.Errorf("next invoice number for %s: %w", locationKey, err))
	}
	return number, nil
}
