package dto

// AvailabilityResponse reports on-hand stock for a product at a location.
type AvailabilityResponse struct {
	ProductID string `json:"productId"`
	Location  string `json:"location"`
	Available int64  `json:"available"`
}

// ReceiveStockRequest credits stock at a location. A missing storeId
// targets the distribution center.
type ReceiveStockRequest struct {
	ProductID string  `json:"productId" binding:"required,uuid"`
	StoreID   *string `json:"storeId" binding:"omitempty,uuid"`
	Quantity  int64   `json:"quantity" binding:"required,gt=0"`
}
