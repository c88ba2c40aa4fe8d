package handlers

import (
	"github.com/gin-gonic/gin"

	"salespoint/internal/domain/catalogs/customer"
	"salespoint/internal/infrastructure/http/v1/dto"
)

// CustomerHandler serves the customer catalog CRUD.
type CustomerHandler struct {
	BaseHandler
	svc *customer.Service
}

// NewCustomerHandler creates the handler.
func NewCustomerHandler(svc *customer.Service) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// Create handles POST /api/v1/catalog/customers.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cust, err := h.svc.Create(c.Request.Context(), customer.CreateInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, cust)
}

// Update handles PUT /api/v1/catalog/customers/:id.
func (h *CustomerHandler) Update(c *gin.Context) {
	customerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cust, err := h.svc.Update(c.Request.Context(), customerID, customer.UpdateInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cust)
}

// Get handles GET /api/v1/catalog/customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	customerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	cust, err := h.svc.GetByID(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cust)
}

// List handles GET /api/v1/catalog/customers.
func (h *CustomerHandler) List(c *gin.Context) {
	var q dto.CustomerListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	items, total, err := h.svc.List(c.Request.Context(), customer.Filter{
		Search: q.Search,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: items, Total: total, Limit: q.Limit, Offset: q.Offset})
}

// Delete handles DELETE /api/v1/catalog/customers/:id.
func (h *CustomerHandler) Delete(c *gin.Context) {
	customerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), customerID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
