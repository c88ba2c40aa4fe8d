package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"salespoint/internal/core/apperror"
	"salespoint/internal/core/id"
	"salespoint/internal/domain/catalogs/store"
	"salespoint/internal/infrastructure/storage/postgres"
)

const storesTable = "stores"

var _ store.Repository = (*StoreRepo)(nil)

// StoreRepo implements store.Repository.
type StoreRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewStoreRepo creates the repository.
func NewStoreRepo(txm *postgres.TxManager) *StoreRepo {
	return &StoreRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var storeColumns = []string{
	"id", "code", "name", "address", "phone",
	"active", "created_at", "updated_at",
}

// Create inserts a new store.
func (r *StoreRepo) Create(ctx context.Context, s *store.Store) error {
	q := r.builder.Insert(storesTable).
		Columns(storeColumns...).
		Values(s.ID, s.Code, s.Name, s.Address, s.Phone, s.Active, s.CreatedAt, s.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("store", "code", s.Code)
		}
		return apperror.NewDatabase(fmt.Errorf("insert store: %w", err))
	}
	return nil
}

// Update rewrites all mutable fields. The code column stays untouched.
func (r *StoreRepo) Update(ctx context.Context, s *store.Store) error {
	q := r.builder.Update(storesTable).
		Set("name", s.Name).
		Set("address", s.Address).
		Set("phone", s.Phone).
		Set("active", s.Active).
		Set("updated_at", s.UpdatedAt).
		Where(squirrel.Eq{"id": s.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("update store: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("store", s.ID)
	}
	return nil
}

// GetByID returns a store by id.
func (r *StoreRepo) GetByID(ctx context.Context, storeID id.ID) (*store.Store, error) {
	q := r.builder.Select(storeColumns...).
		From(storesTable).
		Where(squirrel.Eq{"id": storeID}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var s store.Store
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("store", storeID)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get store: %w", err))
	}
	return &s, nil
}

// List returns stores ordered by code.
func (r *StoreRepo) List(ctx context.Context, activeOnly bool) ([]store.Store, error) {
	q := r.builder.Select(storeColumns...).From(storesTable)
	if activeOnly {
		q = q.Where(squirrel.Eq{"active": true})
	}
	q = q.OrderBy("code")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var stores []store.Store
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &stores, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("list stores: %w", err))
	}
	return stores, nil
}

// Delete removes a store.
func (r *StoreRepo) Delete(ctx context.Context, storeID id.ID) error {
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx,
		`DELETE FROM stores WHERE id = $1`, storeID)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NewConflict("store is referenced by transactions or inventory")
		}
		return apperror.NewDatabase(fmt.Errorf("delete store: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("store", storeID)
	}
	return nil
}
