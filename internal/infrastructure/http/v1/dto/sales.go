package dto

// CheckoutItemRequest is one cart line.
type CheckoutItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0,lte=1000000"`
}

// CheckoutRequest finalizes a sale. A missing storeId means a
// distribution-center sale.
type CheckoutRequest struct {
	Items             []CheckoutItemRequest `json:"items" binding:"required,dive"`
	PaymentMethod     string                `json:"paymentMethod" binding:"required,oneof=cash card digital"`
	StoreID           *string               `json:"storeId" binding:"omitempty,uuid"`
	CustomerProfileID *string               `json:"customerProfileId" binding:"omitempty,uuid"`
}

// CancelRequest reverses a transaction.
type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RefundRequest refunds a transaction. A missing refundAmount refunds the
// full total. Amount is in minor units.
type RefundRequest struct {
	RefundAmount *int64 `json:"refundAmount" binding:"omitempty,gt=0"`
	Reason       string `json:"reason"`
}

// TransactionListQuery filters the transaction listing.
type TransactionListQuery struct {
	Status        string `form:"status" binding:"omitempty,oneof=pending completed cancelled refunded"`
	Type          string `form:"type" binding:"omitempty,oneof=STORE_SALE DC_SALE"`
	StoreID       string `form:"storeId" binding:"omitempty,uuid"`
	CashierID     string `form:"cashierId" binding:"omitempty,uuid"`
	InvoiceNumber string `form:"invoiceNumber"`
	From          string `form:"from" binding:"omitempty"`
	To            string `form:"to" binding:"omitempty"`
	Limit         int    `form:"limit"`
	Offset        int    `form:"offset"`
}
