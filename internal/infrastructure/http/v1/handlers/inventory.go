package handlers

import (
	"github.com/gin-gonic/gin"

	"salespoint/internal/core/apperror"
	"salespoint/internal/core/id"
	"salespoint/internal/core/location"
	"salespoint/internal/domain/inventory"
	"salespoint/internal/infrastructure/http/v1/dto"
)

// InventoryHandler serves stock reads and receiving.
type InventoryHandler struct {
	BaseHandler
	svc *inventory.Service
}

// NewInventoryHandler creates the handler.
func NewInventoryHandler(svc *inventory.Service) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// locationFromQuery resolves the optional storeId query parameter; absent
// means the distribution center.
func (h *InventoryHandler) locationFromQuery(c *gin.Context) (location.Location, bool) {
	raw := c.Query("storeId")
	if raw == "" {
		return location.DistributionCenter(), true
	}
	storeID, err := id.Parse(raw)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid storeId"))
		return location.Location{}, false
	}
	return location.Store(storeID), true
}

// Availability handles GET /api/v1/inventory/availability.
func (h *InventoryHandler) Availability(c *gin.Context) {
	productID, err := id.Parse(c.Query("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId"))
		return
	}
	loc, ok := h.locationFromQuery(c)
	if !ok {
		return
	}

	available, err := h.svc.GetAvailable(c.Request.Context(), productID, loc)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.AvailabilityResponse{
		ProductID: productID.String(),
		Location:  loc.Key(),
		Available: available,
	})
}

// List handles GET /api/v1/inventory.
func (h *InventoryHandler) List(c *gin.Context) {
	loc, ok := h.locationFromQuery(c)
	if !ok {
		return
	}

	records, err := h.svc.ListByLocation(c.Request.Context(), loc)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, records)
}

// LowStock handles GET /api/v1/inventory/low-stock.
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// Receive handles POST /api/v1/inventory/receive, crediting stock at a
// location.
func (h *InventoryHandler) Receive(c *gin.Context) {
	var req dto.ReceiveStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	loc := location.DistributionCenter()
	if req.StoreID != nil {
		storeID, err := id.Parse(*req.StoreID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid storeId"))
			return
		}
		loc = location.Store(storeID)
	}

	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId"))
		return
	}
	if err := h.svc.Credit(c.Request.Context(), productID, loc, req.Quantity); err != nil {
		h.Error(c, err)
		return
	}

	available, err := h.svc.GetAvailable(c.Request.Context(), productID, loc)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.AvailabilityResponse{
		ProductID: productID.String(),
		Location:  loc.Key(),
		Available: available,
	})
}
