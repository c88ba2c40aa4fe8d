// Package sales_repo is the PostgreSQL implementation of the sales
// transaction repository.
package sales_repo

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
	"salespoint/internal/core/types"
	"salespoint/internal/domain/sales"
	"salespoint/internal/infrastructure/storage/postgres"
)

const (
	transactionsTable = "sales_transactions"
	itemsTable        = "sales_transaction_items"
)

var _ sales.Repository = (*TransactionRepo)(nil)

// TransactionRepo implements sales.Repository.
type TransactionRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewTransactionRepo creates the repository.
func NewTransactionRepo(txm *postgres.TxManager) *TransactionRepo {
	return &TransactionRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

type transactionRow struct {
	ID             id.ID     `db:"id"`
	InvoiceNumber  string    `db:"invoice_number"`
	Type           string    `db:"transaction_type"`
	LocationKey    string    `db:"location_key"`
	StoreName      string    `db:"store_name"`
	CashierID      id.ID     `db:"cashier_id"`
	CashierName    string    `db:"cashier_name"`
	CustomerID     *id.ID    `db:"customer_id"`
	Subtotal       int64     `db:"subtotal"`
	Tax            int64     `db:"tax"`
	Total          int64     `db:"total"`
	PaymentMethod  string    `db:"payment_method"`
	Status         string    `db:"status"`
	RefundedAmount int64     `db:"refunded_amount"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

var transactionColumns = []string{
	"id", "invoice_number", "transaction_type", "location_key", "store_name",
	"cashier_id", "cashier_name", "customer_id",
	"subtotal", "tax", "total",
	"payment_method", "status", "refunded_amount",
	"created_at", "updated_at",
}

func (r transactionRow) toDomain() (sales.Transaction, error) {
	loc, err := location.ParseKey(r.LocationKey)
	if err != nil {
		return sales.Transaction{}, err
	}
	return sales.Transaction{
		ID:             r.ID,
		InvoiceNumber:  r.InvoiceNumber,
		Type:           sales.TransactionType(r.Type),
		Location:       loc,
		StoreName:      r.StoreName,
		CashierID:      r.CashierID,
		CashierName:    r.CashierName,
		CustomerID:     r.CustomerID,
		Subtotal:       types.MinorUnits(r.Subtotal),
		Tax:            types.MinorUnits(r.Tax),
		Total:          types.MinorUnits(r.Total),
		PaymentMethod:  sales.PaymentMethod(r.PaymentMethod),
		Status:         sales.Status(r.Status),
		RefundedAmount: types.MinorUnits(r.RefundedAmount),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}, nil
}

// Create inserts the transaction and its items.
func (r *TransactionRepo) Create(ctx context.Context, t *sales.Transaction) error {
	querier := r.txm.GetQuerier(ctx)

	insertTx := r.builder.Insert(transactionsTable).
		Columns(transactionColumns...).
		Values(
			t.ID, t.InvoiceNumber, string(t.Type), t.Location.Key(), t.StoreName,
			t.CashierID, t.CashierName, t.CustomerID,
			int64(t.Subtotal), int64(t.Tax), int64(t.Total),
			string(t.PaymentMethod), string(t.Status), int64(t.RefundedAmount),
			t.CreatedAt, t.UpdatedAt,
		)

	sql, args, err := insertTx.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("sales transaction", "invoice_number", t.InvoiceNumber)
		}
		return apperror.NewDatabase(fmt.Errorf("insert transaction: %w", err))
	}

	if len(t.Items) == 0 {
		return nil
	}

	insertItems := r.builder.Insert(itemsTable).Columns(
		"id", "transaction_id", "product_id", "product_name", "sku",
		"inventory_record_id", "quantity", "unit_price", "line_total",
	)
	for _, item := range t.Items {
		insertItems = insertItems.Values(
			item.ID, item.TransactionID, item.ProductID, item.ProductName, item.SKU,
			item.InventoryRecordID, item.Quantity, int64(item.UnitPrice), int64(item.LineTotal),
		)
	}

	sql, args, err = insertItems.ToSql()
	if err != nil {
		return fmt.Errorf("build items insert: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("insert transaction items: %w", err))
	}
	return nil
}

// GetByID returns the transaction with its items loaded.
func (r *TransactionRepo) GetByID(ctx context.Context, txID id.ID) (*sales.Transaction, error) {
	q := r.builder.Select(transactionColumns...).
		From(transactionsTable).
		Where(squirrel.Eq{"id": txID}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	var row transactionRow
	if err := pgxscan.Get(ctx, querier, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sales transaction", txID)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get transaction: %w", err))
	}

	t, err := row.toDomain()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	items, err := r.getItems(ctx, txID)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return &t, nil
}

type itemRow struct {
	ID                id.ID  `db:"id"`
	TransactionID     id.ID  `db:"transaction_id"`
	ProductID         id.ID  `db:"product_id"`
	ProductName       string `db:"product_name"`
	SKU               string `db:"sku"`
	InventoryRecordID id.ID  `db:"inventory_record_id"`
	Quantity          int64  `db:"quantity"`
	UnitPrice         int64  `db:"unit_price"`
	LineTotal         int64  `db:"line_total"`
}

func (r *TransactionRepo) getItems(ctx context.Context, txID id.ID) ([]sales.TransactionItem, error) {
	q := r.builder.Select(
		"id", "transaction_id", "product_id", "product_name", "sku",
		"inventory_record_id", "quantity", "unit_price", "line_total",
	).From(itemsTable).
		Where(squirrel.Eq{"transaction_id": txID}).
		OrderBy("id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	var rows []itemRow
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("get transaction items: %w", err))
	}

	items := make([]sales.TransactionItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, sales.TransactionItem{
			ID:                row.ID,
			TransactionID:     row.TransactionID,
			ProductID:         row.ProductID,
			ProductName:       row.ProductName,
			SKU:               row.SKU,
			InventoryRecordID: row.InventoryRecordID,
			Quantity:          row.Quantity,
			UnitPrice:         types.MinorUnits(row.UnitPrice),
			LineTotal:         types.MinorUnits(row.LineTotal),
		})
	}
	return items, nil
}

// UpdateStatus moves a transaction between statuses as a conditional
// update. A zero affected-row count means the row was not in the expected
// status (or does not exist); the follow-up read tells which.
func (r *TransactionRepo) UpdateStatus(ctx context.Context, txID id.ID, from, to sales.Status) error {
	querier := r.txm.GetQuerier(ctx)
	tag, err := querier.Exec(ctx,
		`UPDATE sales_transactions SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		string(to), txID, string(from),
	)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("update status: %w", err))
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var current string
	err = querier.QueryRow(ctx, `SELECT status FROM sales_transactions WHERE id = $1`, txID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFound("sales transaction", txID)
	}
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("read status: %w", err))
	}
	return apperror.NewInvalidStateTransition(current, string(to))
}

// SetRefundedAmount records the refunded amount.
func (r *TransactionRepo) SetRefundedAmount(ctx context.Context, txID id.ID, amount int64) error {
	querier := r.txm.GetQuerier(ctx)
	tag, err := querier.Exec(ctx,
		`UPDATE sales_transactions SET refunded_amount = $1, updated_at = now() WHERE id = $2`,
		amount, txID,
	)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("set refunded amount: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("sales transaction", txID)
	}
	return nil
}

// List returns transactions matching the filter and the total match count.
// Items are not loaded.
func (r *TransactionRepo) List(ctx context.Context, filter sales.Filter) ([]sales.Transaction, int64, error) {
	base := r.builder.Select(transactionColumns...).From(transactionsTable)
	countQ := r.builder.Select("COUNT(*)").From(transactionsTable)

	apply := func(q squirrel.SelectBuilder) squirrel.SelectBuilder {
		if filter.Status != "" {
			q = q.Where(squirrel.Eq{"status": string(filter.Status)})
		}
		if filter.Type != "" {
			q = q.Where(squirrel.Eq{"transaction_type": string(filter.Type)})
		}
		if filter.StoreID != nil {
			q = q.Where(squirrel.Eq{"location_key": filter.StoreID.String()})
		}
		if filter.CashierID != nil {
			q = q.Where(squirrel.Eq{"cashier_id": *filter.CashierID})
		}
		if filter.InvoiceNumber != "" {
			q = q.Where(squirrel.ILike{"invoice_number": "%" + filter.InvoiceNumber + "%"})
		}
		if filter.From != nil {
			q = q.Where(squirrel.GtOrEq{"created_at": *filter.From})
		}
		if filter.To != nil {
			q = q.Where(squirrel.Lt{"created_at": *filter.To})
		}
		return q
	}

	base = apply(base).OrderBy("created_at DESC")
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
	var rows []transactionRow
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, 0, apperror.NewDatabase(fmt.Errorf("list transactions: %w", err))
	}

	out := make([]sales.Transaction, 0, len(rows))
	for _, row := range rows {
		t, err := row.toDomain()
		if err != nil {
			return nil, 0, apperror.NewInternal(err)
		}
		out = append(out, t)
	}

	sql, args, err = countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int64
	if err := querier.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, apperror.NewDatabase(fmt.Errorf("count transactions: %w", err))
	}

	return out, total, nil
}
