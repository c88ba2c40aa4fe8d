package inventory

import (
	"context"

	"salespoint/internal/core/apperror"
	"salespoint/internal/core/id"
	"salespoint/internal/core/location"
	"salespoint/pkg/logger"
)

// Service exposes ledger operations to the rest of the application.
// Mutating calls are expected to run inside a transaction opened by the
// caller (the sales processor wraps checkout and cancel in one unit).
type Service struct {
	repo Repository
}

// NewService creates the inventory service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetAvailable returns the on-hand quantity for a product at a location.
// A missing ledger record reads as zero availability.
func (s *Service) GetAvailable(ctx context.Context, productID id.ID, loc location.Location) (int64, error) {
	rec, err := s.repo.GetByProductAndLocation(ctx, productID, loc)
	if err != nil {
		if apperror.IsNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	return rec.Quantity, nil
}

// Debit removes qty units of a product from a location and returns the
// id of the ledger record debited.
func (s *Service) Debit(ctx context.Context, productID id.ID, loc location.Location, qty int64) (id.ID, error) {
	if qty <= 0 {
		return id.Nil(), apperror.NewValidation("quantity must be positive")
	}

	recordID, err := s.repo.Debit(ctx, productID, loc, qty)
	if err != nil {
		return id.Nil(), err
	}

	logger.Debug(ctx, "inventory debited",
		"product_id", productID,
		"location", loc.Key(),
		"quantity", qty,
	)
	return recordID, nil
}

// Credit adds qty units of a product at a location, creating the ledger
// record when absent. Used for receiving stock.
func (s *Service) Credit(ctx context.Context, productID id.ID, loc location.Location, qty int64) error {
	if qty <= 0 {
		return apperror.NewValidation("quantity must be positive")
	}

	if err := s.repo.Credit(ctx, productID, loc, qty); err != nil {
		return err
	}

	logger.Debug(ctx, "inventory credited",
		"product_id", productID,
		"location", loc.Key(),
		"quantity", qty,
	)
	return nil
}

// CreditRecord adds qty units back to a specific ledger record.
// Cancellations use it so stock returns to the row the sale came from.
func (s *Service) CreditRecord(ctx context.Context, recordID id.ID, qty int64) error {
	if qty <= 0 {
		return apperror.NewValidation("quantity must be positive")
	}
	return s.repo.CreditRecord(ctx, recordID, qty)
}

// ListByLocation returns all ledger records at a location.
func (s *Service) ListByLocation(ctx context.Context, loc location.Location) ([]Record, error) {
	return s.repo.ListByLocation(ctx, loc)
}

// LowStock reports products below their minimum stock threshold.
func (s *Service) LowStock(ctx context.Context) ([]LowStockItem, error) {
	return s.repo.LowStock(ctx)
}
