package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"salespoint/internal/core/apperror"
	"salespoint/internal/core/id"
	"salespoint/internal/domain/sales"
	"salespoint/internal/infrastructure/http/v1/dto"
)

// SalesHandler serves checkout, reversal, listing and receipts.
type SalesHandler struct {
	BaseHandler
	svc *sales.Service
}

// NewSalesHandler creates the handler.
func NewSalesHandler(svc *sales.Service) *SalesHandler {
	return &SalesHandler{svc: svc}
}

// Checkout handles POST /api/v1/sales-transactions.
func (h *SalesHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !h.BindJSON(c, &req) {
		return
	}

	input := sales.CheckoutInput{
		PaymentMethod: sales.PaymentMethod(req.PaymentMethod),
	}
	for _, item := range req.Items {
		productID, err := id.Parse(item.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId").WithDetail("productId", item.ProductID))
			return
		}
		input.Items = append(input.Items, sales.CartItem{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}
	if req.StoreID != nil {
		storeID, err := id.Parse(*req.StoreID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid storeId"))
			return
		}
		input.StoreID = &storeID
	}
	if req.CustomerProfileID != nil {
		customerID, err := id.Parse(*req.CustomerProfileID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid customerProfileId"))
			return
		}
		input.CustomerID = &customerID
	}

	result, err := h.svc.Checkout(c.Request.Context(), input)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, result)
}

// Cancel handles POST /api/v1/sales-transactions/:id/cancel.
func (h *SalesHandler) Cancel(c *gin.Context) {
	txID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CancelRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.svc.Cancel(c.Request.Context(), txID, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Refund handles POST /api/v1/sales-transactions/:id/refund.
func (h *SalesHandler) Refund(c *gin.Context) {
	txID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.RefundRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.svc.Refund(c.Request.Context(), txID, req.RefundAmount, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Get handles GET /api/v1/sales-transactions/:id.
func (h *SalesHandler) Get(c *gin.Context) {
	txID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), txID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Receipt handles GET /api/v1/sales-transactions/:id/receipt.
func (h *SalesHandler) Receipt(c *gin.Context) {
	txID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.svc.GetReceipt(c.Request.Context(), txID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, view)
}

// Actions handles GET /api/v1/sales-transactions/:id/actions.
func (h *SalesHandler) Actions(c *gin.Context) {
	txID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	actions, err := h.svc.Actions(c.Request.Context(), txID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, actions)
}

// List handles GET /api/v1/sales-transactions.
func (h *SalesHandler) List(c *gin.Context) {
	var q dto.TransactionListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	filter := sales.Filter{
		Status:        sales.Status(q.Status),
		Type:          sales.TransactionType(q.Type),
		InvoiceNumber: q.InvoiceNumber,
		Limit:         q.Limit,
		Offset:        q.Offset,
	}
	if q.StoreID != "" {
		storeID, err := id.Parse(q.StoreID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid storeId"))
			return
		}
		filter.StoreID = &storeID
	}
	if q.CashierID != "" {
		cashierID, err := id.Parse(q.CashierID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid cashierId"))
			return
		}
		filter.CashierID = &cashierID
	}
	if q.From != "" {
		from, err := time.Parse(time.RFC3339, q.From)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid from timestamp, expected RFC3339"))
			return
		}
		filter.From = &from
	}
	if q.To != "" {
		to, err := time.Parse(time.RFC3339, q.To)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid to timestamp, expected RFC3339"))
			return
		}
		filter.To = &to
	}

	items, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset})
}
