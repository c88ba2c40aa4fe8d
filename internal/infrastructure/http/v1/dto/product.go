package dto

// CreateProductRequest creates a catalog product. UnitPrice is in minor
// units.
type CreateProductRequest struct {
	Name      string `json:"name" binding:"required"`
	SKU       string `json:"sku" binding:"required"`
	UnitPrice int64  `json:"unitPrice" binding:"required,gte=0"`
	Category  string `json:"category"`
	Brand     string `json:"brand"`
	MinStock  int64  `json:"minStock" binding:"gte=0"`
}

// UpdateProductRequest applies partial changes.
type UpdateProductRequest struct {
	Name      *string `json:"name"`
	UnitPrice *int64  `json:"unitPrice" binding:"omitempty,gte=0"`
	Category  *string `json:"category"`
	Brand     *string `json:"brand"`
	MinStock  *int64  `json:"minStock" binding:"omitempty,gte=0"`
	Active    *bool   `json:"active"`
}

// ProductListQuery filters the product listing.
type ProductListQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Active   *bool  `form:"active"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}
