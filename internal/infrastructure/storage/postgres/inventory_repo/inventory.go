// Package inventory_repo is the PostgreSQL implementation of the stock
// ledger repository.
package inventory_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"salespoint/internal/core/apperror"
	"salespoint/internal/core/id"
	"salespoint/internal/core/location"
	"salespoint/internal/domain/inventory"
	"salespoint/internal/infrastructure/storage/postgres"
)

const inventoryTable = "inventory_records"

var _ inventory.Repository = (*InventoryRepo)(nil)

// InventoryRepo implements inventory.Repository.
type InventoryRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewInventoryRepo creates the repository.
func NewInventoryRepo(txm *postgres.TxManager) *InventoryRepo {
	return &InventoryRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// recordRow is the scan target; location_key maps to the Location variant.
type recordRow struct {
	ID          id.ID     `db:"id"`
	ProductID   id.ID     `db:"product_id"`
	LocationKey string    `db:"location_key"`
	Quantity    int64     `db:"quantity"`
	Supplier    string    `db:"supplier"`
	BatchNumber string    `db:"batch_number"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r recordRow) toDomain() (inventory.Record, error) {
	loc, err := location.ParseKey(r.LocationKey)
	if err != nil {
		return inventory.Record{}, err
	}
	return inventory.Record{
		ID:          r.ID,
		ProductID:   r.ProductID,
		Location:    loc,
		Quantity:    r.Quantity,
		Supplier:    r.Supplier,
		BatchNumber: r.BatchNumber,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

// GetByProductAndLocation returns the ledger row for a (product, location)
// pair.
func (r *InventoryRepo) GetByProductAndLocation(ctx context.Context, productID id.ID, loc location.Location) (*inventory.Record, error) {
	q := r.builder.Select(
		"id", "product_id", "location_key", "quantity",
		"supplier", "batch_number", "created_at", "updated_at",
	).From(inventoryTable).
		Where(squirrel.Eq{
			"product_id":   productID,
			"location_key": loc.Key(),
		}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row recordRow
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("inventory record", productID)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get inventory record: %w", err))
	}

	rec, err := row.toDomain()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return &rec, nil
}

const debitSQL = `
	UPDATE inventory_records
	SET quantity = quantity - $1, updated_at = now()
	WHERE product_id = $2 AND location_key = $3 AND quantity >= $1
	RETURNING id
`

// Debit decrements stock with a single conditional update. The availability
// check and the decrement are one statement, so concurrent debits against
// the same row cannot both pass the check.
func (r *InventoryRepo) Debit(ctx context.Context, productID id.ID, loc location.Location, qty int64) (id.ID, error) {
	querier := r.txm.GetQuerier(ctx)

	var recordID id.ID
	err := querier.QueryRow(ctx, debitSQL, qty, productID, loc.Key()).Scan(&recordID)
	if err == nil {
		return recordID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), apperror.NewDatabase(fmt.Errorf("debit inventory: %w", err))
	}

	// No row matched: either the record is missing or the quantity is
	// short. Look up which, for a precise error.
	var available int64
	err = querier.QueryRow(ctx,
		`SELECT quantity FROM inventory_records WHERE product_id = $1 AND location_key = $2`,
		productID, loc.Key(),
	).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), apperror.NewNoInventoryRecord(productID.String(), loc.Key())
	}
	if err != nil {
		return id.Nil(), apperror.NewDatabase(fmt.Errorf("check inventory: %w", err))
	}
	return id.Nil(), apperror.NewInsufficientStock(productID.String(), qty, available)
}

const creditSQL = `
	INSERT INTO inventory_records (id, product_id, location_key, quantity, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	ON CONFLICT (product_id, location_key)
	DO UPDATE SET
		quantity = inventory_records.quantity + EXCLUDED.quantity,
		updated_at = now()
`

// Credit increments stock, creating the ledger row on first receipt.
func (r *InventoryRepo) Credit(ctx context.Context, productID id.ID, loc location.Location, qty int64) error {
	querier := r.txm.GetQuerier(ctx)
	_, err := querier.Exec(ctx, creditSQL, id.New(), productID, loc.Key(), qty)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("credit inventory: %w", err))
	}
	return nil
}

// CreditRecord increments the quantity of an existing row by id.
func (r *InventoryRepo) CreditRecord(ctx context.Context, recordID id.ID, qty int64) error {
	querier := r.txm.GetQuerier(ctx)
	tag, err := querier.Exec(ctx,
		`UPDATE inventory_records SET quantity = quantity + $1, updated_at = now() WHERE id = $2`,
		qty, recordID,
	)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("credit inventory record: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("inventory record", recordID)
	}
	return nil
}

// ListByLocation returns all ledger rows at a location, ordered by product.
func (r *InventoryRepo) ListByLocation(ctx context.Context, loc location.Location) ([]inventory.Record, error) {
	q := r.builder.Select(
		"id", "product_id", "location_key", "quantity",
		"supplier", "batch_number", "created_at", "updated_at",
	).From(inventoryTable).
		Where(squirrel.Eq{"location_key": loc.Key()}).
		OrderBy("product_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []recordRow
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("list inventory: %w", err))
	}

	records := make([]inventory.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			return nil, apperror.NewInternal(err)
		}
		records = append(records, rec)
	}
	return records, nil
}

const lowStockSQL = `
	SELECT i.product_id, p.sku, p.name AS product_name,
	       i.location_key, i.quantity, p.min_stock
	FROM inventory_records i
	JOIN products p ON p.id = i.product_id
	WHERE p.active AND i.quantity < p.min_stock
	ORDER BY i.quantity ASC
`

type lowStockRow struct {
	ProductID   id.ID  `db:"product_id"`
	SKU         string `db:"sku"`
	ProductName string `db:"product_name"`
	LocationKey string `db:"location_key"`
	Quantity    int64  `db:"quantity"`
	MinStock    int64  `db:"min_stock"`
}

// LowStock reports rows below the product min-stock threshold.
func (r *InventoryRepo) LowStock(ctx context.Context) ([]inventory.LowStockItem, error) {
	var rows []lowStockRow
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, lowStockSQL); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("low stock report: %w", err))
	}

	items := make([]inventory.LowStockItem, 0, len(rows))
	for _, row := range rows {
		loc, err := location.ParseKey(row.LocationKey)
		if err != nil {
			return nil, apperror.NewInternal(err)
		}
		items = append(items, inventory.LowStockItem{
			ProductID:   row.ProductID,
			SKU:         row.SKU,
			ProductName: row.ProductName,
			Location:    loc,
			Quantity:    row.Quantity,
			MinStock:    row.MinStock,
		})
	}
	return items, nil
}
