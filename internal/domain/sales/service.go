package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"salespoint/internal/core/apperror"
	appctx "salespoint/internal/core/context"
	"salespoint/internal/core/id"
	"salespoint/internal/core/location"
	"salespoint/internal/core/tx"
	"salespoint/internal/core/types"
	"salespoint/internal/domain/catalogs/product"
	"salespoint/internal/domain/catalogs/store"
	"salespoint/internal/domain/inventory"
	"salespoint/internal/domain/invoice"
	"salespoint/pkg/logger"
)

// ProductLookup resolves products for price and name snapshots.
type ProductLookup interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}

// StoreLookup resolves stores for invoice prefixes and name snapshots.
type StoreLookup interface {
	GetByID(ctx context.Context, storeID id.ID) (*store.Store, error)
}

// Config holds sales processor settings.
type Config struct {
	// TaxRate is the fractional tax rate applied to the subtotal.
	TaxRate types.TaxRate

	// DCPrefix is the invoice prefix for distribution-center sales.
	DCPrefix string
}

// DefaultConfig returns the stock configuration: 10% tax, "DC" prefix.
func DefaultConfig() Config {
	return Config{
		TaxRate:  decimal.NewFromFloat(0.10),
		DCPrefix: location.DCKey,
	}
}

// Service is the sales transaction processor: checkout, cancel, refund.
//
// Every mutating operation runs as one storage transaction. Inventory
// debits, the invoice counter increment and the transaction insert commit
// together or not at all.
type Service struct {
	cfg      Config
	repo     Repository
	actions  ActionStore
	inv      *inventory.Service
	issuer   *invoice.Issuer
	products ProductLookup
	stores   StoreLookup
	txm      tx.Manager
	now      func() time.Time
}

// NewService wires the sales processor.
func NewService(
	cfg Config,
	repo Repository,
	actions ActionStore,
	inv *inventory.Service,
	issuer *invoice.Issuer,
	products ProductLookup,
	stores StoreLookup,
	txm tx.Manager,
) *Service {
	if cfg.DCPrefix == "" {
		cfg.DCPrefix = location.DCKey
	}
	return &Service{
		cfg:      cfg,
		repo:     repo,
		actions:  actions,
		inv:      inv,
		issuer:   issuer,
		products: products,
		stores:   stores,
		txm:      txm,
		now:      time.Now,
	}
}

// MaxLineQuantity caps a single cart line. Keeps line totals far away
// from int64 overflow at any realistic unit price.
const MaxLineQuantity = 1_000_000

// CartItem is one line of an incoming cart.
type CartItem struct {
	ProductID id.ID
	Quantity  int64
}

// CheckoutInput is the request to finalize a sale.
// A nil StoreID means a distribution-center sale.
type CheckoutInput struct {
	Items         []CartItem
	PaymentMethod PaymentMethod
	StoreID       *id.ID
	CustomerID    *id.ID
}

// Checkout turns a cart into a persisted, stock-consistent sale.
//
// All line debits, the invoice number increment, the transaction insert and
// the created-action append form one atomic unit. Any failure leaves zero
// observable side effects.
func (s *Service) Checkout(ctx context.Context, in CheckoutInput) (*Transaction, error) {
	if len(in.Items) == 0 {
		return nil, apperror.NewEmptyCart()
	}
	if !ValidPaymentMethod(in.PaymentMethod) {
		return nil, apperror.NewValidation("unknown payment method")
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewValidation("item quantity must be positive")
		}
		if item.Quantity > MaxLineQuantity {
			return nil, apperror.NewValidation("item quantity exceeds maximum").
				WithDetail("max", int64(MaxLineQuantity))
		}
	}

	cashier, err := s.cashierFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var result *Transaction
	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		loc, prefix, storeName, err := s.resolveLocation(ctx, in.StoreID)
		if err != nil {
			return err
		}

		txID := id.New()
		now := s.now().UTC()

		var subtotal types.MinorUnits
		items := make([]TransactionItem, 0, len(in.Items))
		for _, line := range in.Items {
			p, err := s.products.GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}

			recordID, err := s.inv.Debit(ctx, p.ID, loc, line.Quantity)
			if err != nil {
				return err
			}

			lineTotal := types.MinorUnits(int64(p.UnitPrice) * line.Quantity)
			subtotal += lineTotal
			items = append(items, TransactionItem{
				ID:                id.New(),
				TransactionID:     txID,
				ProductID:         p.ID,
				ProductName:       p.Name,
				SKU:               p.SKU,
				InventoryRecordID: recordID,
				Quantity:          line.Quantity,
				UnitPrice:         p.UnitPrice,
				LineTotal:         lineTotal,
			})
		}

		taxAmount := types.Tax(subtotal, s.cfg.TaxRate)

		invoiceNumber, err := s.issuer.Issue(ctx, loc.Key(), invoice.Config{Prefix: prefix}, now)
		if err != nil {
			return err
		}

		txType := TypeDCSale
		if loc.IsStore() {
			txType = TypeStoreSale
		}

		t := &Transaction{
			ID:            txID,
			InvoiceNumber: invoiceNumber,
			Type:          txType,
			Location:      loc,
			StoreName:     storeName,
			CashierID:     cashier.id,
			CashierName:   cashier.name,
			CustomerID:    in.CustomerID,
			Subtotal:      subtotal,
			Tax:           taxAmount,
			Total:         subtotal + taxAmount,
			PaymentMethod: in.PaymentMethod,
			Status:        StatusCompleted,
			CreatedAt:     now,
			UpdatedAt:     now,
			Items:         items,
		}

		if err := s.repo.Create(ctx, t); err != nil {
			return err
		}

		if err := s.appendAction(ctx, t.ID, cashier.id, ActionCreated, map[string]any{
			"invoice_number": t.InvoiceNumber,
			"total":          int64(t.Total),
			"item_count":     len(t.Items),
		}); err != nil {
			return err
		}

		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "checkout completed",
		"transaction_id", result.ID,
		"invoice_number", result.InvoiceNumber,
		"total", result.Total.String(),
	)
	return result, nil
}

// Cancel fully reverses a transaction: every line's inventory record is
// credited back by its original quantity and the status becomes cancelled.
// Allowed from completed or pending only.
func (s *Service) Cancel(ctx context.Context, txID id.ID, reason string) (*Transaction, error) {
	cashier, err := s.cashierFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var result *Transaction
	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err := s.repo.GetByID(ctx, txID)
		if err != nil {
			return err
		}
		if !t.Status.CanCancel() {
			return apperror.NewInvalidStateTransition(string(t.Status), string(StatusCancelled))
		}

		for _, item := range t.Items {
			if err := s.inv.CreditRecord(ctx, item.InventoryRecordID, item.Quantity); err != nil {
				return err
			}
		}

		if err := s.repo.UpdateStatus(ctx, t.ID, t.Status, StatusCancelled); err != nil {
			return err
		}

		if err := s.appendAction(ctx, t.ID, cashier.id, ActionCancelled, map[string]any{
			"reason":          reason,
			"previous_status": string(t.Status),
		}); err != nil {
			return err
		}

		t.Status = StatusCancelled
		t.UpdatedAt = s.now().UTC()
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "transaction cancelled",
		"transaction_id", result.ID,
		"invoice_number", result.InvoiceNumber,
	)
	return result, nil
}

// Refund records a monetary reversal on a completed transaction. A nil
// amount refunds the full total; a given amount must not exceed it.
//
// Refunds never touch inventory. Stock returns go through Cancel.
func (s *Service) Refund(ctx context.Context, txID id.ID, amount *int64, reason string) (*Transaction, error) {
	cashier, err := s.cashierFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var result *Transaction
	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err := s.repo.GetByID(ctx, txID)
		if err != nil {
			return err
		}
		if !t.Status.CanRefund() {
			return apperror.NewInvalidStateTransition(string(t.Status), string(StatusRefunded))
		}

		refund := t.Total
		if amount != nil {
			refund = types.MinorUnits(*amount)
		}
		if refund <= 0 || refund > t.Total {
			return apperror.NewInvalidRefundAmount(int64(refund), int64(t.Total))
		}

		if err := s.repo.UpdateStatus(ctx, t.ID, t.Status, StatusRefunded); err != nil {
			return err
		}
		if err := s.repo.SetRefundedAmount(ctx, t.ID, int64(refund)); err != nil {
			return err
		}

		if err := s.appendAction(ctx, t.ID, cashier.id, ActionRefunded, map[string]any{
			"amount": int64(refund),
			"reason": reason,
		}); err != nil {
			return err
		}

		t.Status = StatusRefunded
		t.RefundedAmount = refund
		t.UpdatedAt = s.now().UTC()
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "transaction refunded",
		"transaction_id", result.ID,
		"amount", result.RefundedAmount.String(),
	)
	return result, nil
}

// GetByID returns a transaction with its items.
func (s *Service) GetByID(ctx context.Context, txID id.ID) (*Transaction, error) {
	return s.repo.GetByID(ctx, txID)
}

// List returns transactions matching the filter and the total match count.
func (s *Service) List(ctx context.Context, filter Filter) ([]Transaction, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

// GetReceipt loads a transaction and projects it to a receipt view.
func (s *Service) GetReceipt(ctx context.Context, txID id.ID) (*ReceiptView, error) {
	t, err := s.repo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	view := BuildReceipt(t)
	return &view, nil
}

// Actions returns the audit trail of a transaction, oldest first.
func (s *Service) Actions(ctx context.Context, txID id.ID) ([]Action, error) {
	return s.actions.ListByTransaction(ctx, txID)
}

type cashierIdentity struct {
	id   id.ID
	name string
}

func (s *Service) cashierFromContext(ctx context.Context) (cashierIdentity, error) {
	user := appctx.GetUser(ctx)
	if user == nil {
		return cashierIdentity{}, apperror.NewUnauthorized("cashier identity required")
	}
	cashierID, err := id.Parse(user.UserID)
	if err != nil {
		return cashierIdentity{}, apperror.NewUnauthorized("invalid cashier identity")
	}
	name := user.FullName
	if name == "" {
		name = user.Username
	}
	return cashierIdentity{id: cashierID, name: name}, nil
}

// resolveLocation maps an optional store id to a location, its invoice
// prefix and a display-name snapshot.
func (s *Service) resolveLocation(ctx context.Context, storeID *id.ID) (location.Location, string, string, error) {
	if storeID == nil {
		return location.DistributionCenter(), s.cfg.DCPrefix, "", nil
	}
	st, err := s.stores.GetByID(ctx, *storeID)
	if err != nil {
		return location.Location{}, "", "", err
	}
	if !st.Active {
		return location.Location{}, "", "", apperror.NewValidation("store is not active")
	}
	return location.Store(st.ID), st.Code, st.Name, nil
}

func (s *Service) appendAction(ctx context.Context, txID, userID id.ID, kind ActionType, data map[string]any) error {
	return s.actions.Append(ctx, &Action{
		ID:            id.New(),
		TransactionID: txID,
		Type:          kind,
		Data:          data,
		UserID:        userID,
		CreatedAt:     s.now().UTC(),
	})
}
