package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"salespoint/internal/core/apperror"
	"salespoint/internal/core/id"
	"salespoint/internal/domain/catalogs/customer"
	"salespoint/internal/infrastructure/storage/postgres"
)

const customersTable = "customers"

var _ customer.Repository = (*CustomerRepo)(nil)

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewCustomerRepo creates the repository.
func NewCustomerRepo(txm *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var customerColumns = []string{
	"id", "name", "phone", "email", "address", "created_at", "updated_at",
}

// Create inserts a new customer.
func (r *CustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	q := r.builder.Insert(customersTable).
		Columns(customerColumns...).
		Values(c.ID, c.Name, c.Phone, c.Email, c.Address, c.CreatedAt, c.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("insert customer: %w", err))
	}
	return nil
}

// Update rewrites all mutable fields.
func (r *CustomerRepo) Update(ctx context.Context, c *customer.Customer) error {
	q := r.builder.Update(customersTable).
		Set("name", c.Name).
		Set("phone", c.Phone).
		Set("email", c.Email).
		Set("address", c.Address).
		Set("updated_at", c.UpdatedAt).
		Where(squirrel.Eq{"id": c.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("update customer: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("customer", c.ID)
	}
	return nil
}

// GetByID returns a customer by id.
func (r *CustomerRepo) GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	q := r.builder.Select(customerColumns...).
		From(customersTable).
		Where(squirrel.Eq{"id": customerID}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c customer.Customer
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("customer", customerID)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get customer: %w", err))
	}
	return &c, nil
}

// List returns customers matching the filter and the total match count.
func (r *CustomerRepo) List(ctx context.Context, filter customer.Filter) ([]customer.Customer, int64, error) {
	base := r.builder.Select(customerColumns...).From(customersTable)
	countQ := r.builder.Select("COUNT(*)").From(customersTable)

	apply := func(q squirrel.SelectBuilder) squirrel.SelectBuilder {
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			q = q.Where(squirrel.Or{
				squirrel.ILike{"name": pattern},
				squirrel.ILike{"phone": pattern},
				squirrel.ILike{"email": pattern},
			})
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
	var customers []customer.Customer
	if err := pgxscan.Select(ctx, querier, &customers, sql, args...); err != nil {
		return nil, 0, apperror.NewDatabase(fmt.Errorf("list customers: %w", err))
	}

	sql, args, err = countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int64
	if err := querier.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, apperror.NewDatabase(fmt.Errorf("count customers: %w", err))
	}

	return customers, total, nil
}

// Delete removes a customer.
func (r *CustomerRepo) Delete(ctx context.Context, customerID id.ID) error {
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx,
		`DELETE FROM customers WHERE id = $1`, customerID)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NewConflict("customer is referenced by transactions")
		}
		return apperror.NewDatabase(fmt.Errorf("delete customer: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("customer", customerID)
	}
	return nil
}
