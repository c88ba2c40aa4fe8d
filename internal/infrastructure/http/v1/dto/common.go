// Package dto defines request/response shapes for the v1 HTTP API.
package dto

// ListResponse wraps paginated listings.
type ListResponse struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Limit int   `json:"limit"`
	Offset int  `json:"offset"`
}

// IDResponse is the minimal creation response.
type IDResponse struct {
	ID string `json:"id"`
}

// StatusResponse reports a simple status string.
type StatusResponse struct {
	Status string `json:"status"`
}
