package sales

import (
	"time"
)

// DCDisplayName is the receipt label for distribution-center sales.
const DCDisplayName = "Distribution Center"

// ReceiptLine is one printable line item.
type ReceiptLine struct {
	ProductName string `json:"productName"`
	SKU         string `json:"sku"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	LineTotal   string `json:"lineTotal"`
}

// ReceiptView is the printable projection of a transaction.
type ReceiptView struct {
	InvoiceNumber string        `json:"invoiceNumber"`
	Date          time.Time     `json:"date"`
	StoreName     string        `json:"storeName"`
	CashierName   string        `json:"cashierName"`
	Lines         []ReceiptLine `json:"lines"`
	Subtotal      string        `json:"subtotal"`
	Tax           string        `json:"tax"`
	Total         string        `json:"total"`
	PaymentMethod string        `json:"paymentMethod"`
	Status        string        `json:"status"`
}

// BuildReceipt projects a loaded transaction to its receipt view.
// Pure: no storage access, deterministic for the same input. Used both for
// the live checkout receipt and for historical reprints.
func BuildReceipt(t *Transaction) ReceiptView {
	storeName := t.StoreName
	if !t.Location.IsStore() {
		storeName = DCDisplayName
	}

	lines := make([]ReceiptLine, 0, len(t.Items))
	for _, item := range t.Items {
		lines = append(lines, ReceiptLine{
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.String(),
			LineTotal:   item.LineTotal.String(),
		})
	}

	return ReceiptView{
		InvoiceNumber: t.InvoiceNumber,
		Date:          t.CreatedAt,
		StoreName:     storeName,
		CashierName:   t.CashierName,
		Lines:         lines,
		Subtotal:      t.Subtotal.String(),
		Tax:           t.Tax.String(),
		Total:         t.Total.String(),
		PaymentMethod: string(t.PaymentMethod),
		Status:        string(t.Status),
	}
}
