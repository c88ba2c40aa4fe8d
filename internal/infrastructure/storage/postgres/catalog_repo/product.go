// Package catalog_repo provides PostgreSQL implementations for the
// master-data catalog repositories.
package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"salespoint/internal/core/apperror"
	"salespoint/internal/core/id"
	"salespoint/internal/domain/catalogs/product"
	"salespoint/internal/infrastructure/storage/postgres"
)

const productsTable = "products"

var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewProductRepo creates the repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var productColumns = []string{
	"id", "name", "sku", "unit_price", "category", "brand",
	"min_stock", "active", "created_at", "updated_at",
}

// Create inserts a new product.
func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	q := r.builder.Insert(productsTable).
		Columns(productColumns...).
		Values(
			p.ID, p.Name, p.SKU, int64(p.UnitPrice), p.Category, p.Brand,
			p.MinStock, p.Active, p.CreatedAt, p.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("product", "sku", p.SKU)
		}
		return apperror.NewDatabase(fmt.Errorf("insert product: %w", err))
	}
	return nil
}

// Update rewrites all mutable fields.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	q := r.builder.Update(productsTable).
		Set("name", p.Name).
		Set("unit_price", int64(p.UnitPrice)).
		Set("category", p.Category).
		Set("brand", p.Brand).
		Set("min_stock", p.MinStock).
		Set("active", p.Active).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("update product: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", p.ID)
	}
	return nil
}

// GetByID returns a product by id.
func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	return r.getOne(ctx, squirrel.Eq{"id": productID}, productID)
}

// GetBySKU returns a product by SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*product.Product, error) {
	return r.getOne(ctx, squirrel.Eq{"sku": sku}, sku)
}

func (r *ProductRepo) getOne(ctx context.Context, where squirrel.Eq, key any) (*product.Product, error) {
	q := r.builder.Select(productColumns...).
		From(productsTable).
		Where(where).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p product.Product
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", key)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get product: %w", err))
	}
	return &p, nil
}

// List returns products matching the filter and the total match count.
func (r *ProductRepo) List(ctx context.Context, filter product.Filter) ([]product.Product, int64, error) {
	base := r.builder.Select(productColumns...).From(productsTable)
	countQ := r.builder.Select("COUNT(*)").From(productsTable)

	apply := func(q squirrel.SelectBuilder) squirrel.SelectBuilder {
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			q = q.Where(squirrel.Or{
				squirrel.ILike{"name": pattern},
				squirrel.ILike{"sku": pattern},
			})
		}
		if filter.Category != "" {
			q = q.Where(squirrel.Eq{"category": filter.Category})
		}
		if filter.Active != nil {
			q = q.Where(squirrel.Eq{"active": *filter.Active})
		}
		return q
	}

	base = apply(base).OrderBy("name")
	countQ = apply(countQ)

	if filter.Limit > 0 {
		base = base.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		base = base.Offset(uint64(filter.Offset))
	}

	sql, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	var products []product.Product
	if err := pgxscan.Select(ctx, querier, &products, sql, args...); err != nil {
		return nil, 0, apperror.NewDatabase(fmt.Errorf("list products: %w", err))
	}

	sql, args, err = countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int64
	if err := querier.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, apperror.NewDatabase(fmt.Errorf("count products: %w", err))
	}

	return products, total, nil
}

// Delete removes a product.
func (r *ProductRepo) Delete(ctx context.Context, productID id.ID) error {
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx,
		`DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NewConflict("product is referenced by transactions or inventory")
		}
		return apperror.NewDatabase(fmt.Errorf("delete product: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID)
	}
	return nil
}
