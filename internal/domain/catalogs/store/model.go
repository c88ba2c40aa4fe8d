// Package store is the sales-location master-data catalog. Each store
// carries a short code used as the invoice number prefix.
package store

import (
	"time"

	"salespoint/internal/core/id"
)

// Store is a physical sales location.
type Store struct {
	ID id.ID `db:"id" json:"id"`

	// Code is a short uppercase alphanumeric code, e.g. "MAIN".
	// Used as the invoice number prefix for sales at this store.
	Code string `db:"code" json:"code"`

	Name    string `db:"name" json:"name"`
	Address string `db:"address" json:"address,omitempty"`
	Phone   string `db:"phone" json:"phone,omitempty"`

	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
