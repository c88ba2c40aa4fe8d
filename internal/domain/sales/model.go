// Package sales implements the sales transaction core: checkout, reversal
// and receipt projection.
package sales

import (
	"time"

	"salespoint/internal/core/id"
	"salespoint/internal/core/location"
	"salespoint/internal/core/types"
)

// TransactionType distinguishes retail store sales from distribution-center
// wholesale sales.
type TransactionType string

const (
	TypeStoreSale TransactionType = "STORE_SALE"
	TypeDCSale    TransactionType = "DC_SALE"
)

// PaymentMethod is how the sale was paid.
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCard    PaymentMethod = "card"
	PaymentDigital PaymentMethod = "digital"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentDigital:
		return true
	}
	return false
}

// Status is the transaction lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

// CanCancel reports whether a transaction in this status may be cancelled.
func (s Status) CanCancel() bool {
	return s == StatusCompleted || s == StatusPending
}

// CanRefund reports whether a transaction in this status may be refunded.
func (s Status) CanRefund() bool {
	return s == StatusCompleted
}

// ActionType is the kind of audit action appended to a transaction.
type ActionType string

const (
	ActionCreated   ActionType = "created"
	ActionCancelled ActionType = "cancelled"
	ActionRefunded  ActionType = "refunded"
)

// Transaction is a persisted sale. Cashier and store names are snapshotted
// at checkout so receipts stay accurate when master data changes later.
type Transaction struct {
	ID            id.ID           `db:"id" json:"id"`
	InvoiceNumber string          `db:"invoice_number" json:"invoiceNumber"`
	Type          TransactionType `db:"transaction_type" json:"type"`

	Location  location.Location `db:"-" json:"location"`
	StoreName string            `db:"store_name" json:"storeName,omitempty"`

	CashierID   id.ID  `db:"cashier_id" json:"cashierId"`
	CashierName string `db:"cashier_name" json:"cashierName"`
	CustomerID  *id.ID `db:"customer_id" json:"customerId,omitempty"`

	Subtotal types.MinorUnits `db:"subtotal" json:"subtotal"`
	Tax      types.MinorUnits `db:"tax" json:"tax"`
	Total    types.MinorUnits `db:"total" json:"total"`

	PaymentMethod PaymentMethod `db:"payment_method" json:"paymentMethod"`
	Status        Status        `db:"status" json:"status"`

	// RefundedAmount is set once the transaction is refunded.
	RefundedAmount types.MinorUnits `db:"refunded_amount" json:"refundedAmount,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	Items []TransactionItem `db:"-" json:"items"`
}

// TransactionItem is one cart line of a persisted sale. Unit price, line
// total and product name are immutable snapshots taken at sale time.
type TransactionItem struct {
	ID            id.ID `db:"id" json:"id"`
	TransactionID id.ID `db:"transaction_id" json:"transactionId"`
	ProductID     id.ID `db:"product_id" json:"productId"`

	ProductName string `db:"product_name" json:"productName"`
	SKU         string `db:"sku" json:"sku"`

	// InventoryRecordID is the exact ledger row debited; cancellation
	// credits stock back to this row.
	InventoryRecordID id.ID `db:"inventory_record_id" json:"inventoryRecordId"`

	Quantity  int64            `db:"quantity" json:"quantity"`
	UnitPrice types.MinorUnits `db:"unit_price" json:"unitPrice"`
	LineTotal types.MinorUnits `db:"line_total" json:"lineTotal"`
}

// Action is an append-only audit row on a transaction. Never updated
// or deleted.
type Action struct {
	ID            id.ID          `db:"id" json:"id"`
	TransactionID id.ID          `db:"transaction_id" json:"transactionId"`
	Type          ActionType     `db:"action_type" json:"type"`
	Data          map[string]any `db:"-" json:"data,omitempty"`
	UserID        id.ID          `db:"user_id" json:"userId"`
	CreatedAt     time.Time      `db:"created_at" json:"createdAt"`
}

// Filter narrows transaction listings.
type Filter struct {
	Status        Status
	Type          TransactionType
	StoreID       *id.ID
	CashierID     *id.ID
	InvoiceNumber string // substring match
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}
