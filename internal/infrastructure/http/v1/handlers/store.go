package handlers

import (
	"github.com/gin-gonic/gin"

	"salespoint/internal/domain/catalogs/store"
	"salespoint/internal/infrastructure/http/v1/dto"
)

// StoreHandler serves the store catalog CRUD.
type StoreHandler struct {
	BaseHandler
	svc *store.Service
}

// NewStoreHandler creates the handler.
func NewStoreHandler(svc *store.Service) *StoreHandler {
	return &StoreHandler{svc: svc}
}

// Create handles POST /api/v1/catalog/stores.
func (h *StoreHandler) Create(c *gin.Context) {
	var req dto.CreateStoreRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s, err := h.svc.Create(c.Request.Context(), store.CreateInput{
		Code:    req.Code,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, s)
}

// Update handles PUT /api/v1/catalog/stores/:id.
func (h *StoreHandler) Update(c *gin.Context) {
	storeID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStoreRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s, err := h.svc.Update(c.Request.Context(), storeID, store.UpdateInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Active:  req.Active,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, s)
}

// Get handles GET /api/v1/catalog/stores/:id.
func (h *StoreHandler) Get(c *gin.Context) {
	storeID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	s, err := h.svc.GetByID(c.Request.Context(), storeID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, s)
}

// List handles GET /api/v1/catalog/stores.
func (h *StoreHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	stores, err := h.svc.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, stores)
}

// Delete handles DELETE /api/v1/catalog/stores/:id.
func (h *StoreHandler) Delete(c *gin.Context) {
	storeID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), storeID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
