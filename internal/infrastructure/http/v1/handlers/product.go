package handlers

import (
	"github.com/gin-gonic/gin"

	"salespoint/internal/domain/catalogs/product"
	"salespoint/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the product catalog CRUD.
type ProductHandler struct {
	BaseHandler
	svc *product.Service
}

// NewProductHandler creates the handler.
func NewProductHandler(svc *product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// Create handles POST /api/v1/catalog/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.svc.Create(c.Request.Context(), product.CreateInput{
		Name:      req.Name,
		SKU:       req.SKU,
		UnitPrice: req.UnitPrice,
		Category:  req.Category,
		Brand:     req.Brand,
		MinStock:  req.MinStock,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, p)
}

// Update handles PUT /api/v1/catalog/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.svc.Update(c.Request.Context(), productID, product.UpdateInput{
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Category:  req.Category,
		Brand:     req.Brand,
		MinStock:  req.MinStock,
		Active:    req.Active,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// Get handles GET /api/v1/catalog/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// List handles GET /api/v1/catalog/products.
func (h *ProductHandler) List(c *gin.Context) {
	var q dto.ProductListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	items, total, err := h.svc.List(c.Request.Context(), product.Filter{
		Search:   q.Search,
		Category: q.Category,
		Active:   q.Active,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: items, Total: total, Limit: q.Limit, Offset: q.Offset})
}

// Delete handles DELETE /api/v1/catalog/products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
