package sales

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespoint/internal/core/id"
	"salespoint/internal/core/location"
)

func sampleTransaction() *Transaction {
	storeID := id.New()
	return &Transaction{
		ID:            id.New(),
		InvoiceNumber: "MAIN-20260114-0042",
		Type:          TypeStoreSale,
		Location:      location.Store(storeID),
		StoreName:     "Main Street",
		CashierName:   "Jane Doe",
		Subtotal:      2550,
		Tax:           255,
		Total:         2805,
		PaymentMethod: PaymentCard,
		Status:        StatusCompleted,
		CreatedAt:     time.Date(2026, 1, 14, 12, 0, 0, 0, time.UTC),
		Items: []TransactionItem{
			{ProductName: "Americano", SKU: "AM-01", Quantity: 2, UnitPrice: 1000, LineTotal: 2000},
			{ProductName: "Bagel", SKU: "BG-01", Quantity: 1, UnitPrice: 550, LineTotal: 550},
		},
	}
}

func TestBuildReceipt(t *testing.T) {
	view := BuildReceipt(sampleTransaction())

	assert.Equal(t, "MAIN-20260114-0042", view.InvoiceNumber)
	assert.Equal(t, "Main Street", view.StoreName)
	assert.Equal(t, "Jane Doe", view.CashierName)
	assert.Equal(t, "25.50", view.Subtotal)
	assert.Equal(t, "2.55", view.Tax)
	assert.Equal(t, "28.05", view.Total)
	assert.Equal(t, "card", view.PaymentMethod)

	require.Len(t, view.Lines, 2)
	assert.Equal(t, ReceiptLine{
		ProductName: "Americano",
		SKU:         "AM-01",
		Quantity:    2,
		UnitPrice:   "10.00",
		LineTotal:   "20.00",
	}, view.Lines[0])
}

func TestBuildReceipt_DCLabel(t *testing.T) {
	tx := sampleTransaction()
	tx.Type = TypeDCSale
	tx.Location = location.DistributionCenter()
	tx.StoreName = ""

	view := BuildReceipt(tx)
	assert.Equal(t, DCDisplayName, view.StoreName)
}

func TestBuildReceipt_Idempotent(t *testing.T) {
	tx := sampleTransaction()

	first := BuildReceipt(tx)
	second := BuildReceipt(tx)
	assert.Equal(t, first, second)
}
