// Package customer is the customer-profile master-data catalog.
// Transactions reference customers optionally, for loyalty and lookup.
package customer

import (
	"time"

	"salespoint/internal/core/id"
)

// Customer is an optional buyer profile attached to transactions.
type Customer struct {
	ID      id.ID  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Phone   string `db:"phone" json:"phone,omitempty"`
	Email   string `db:"email" json:"email,omitempty"`
	Address string `db:"address" json:"address,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Filter narrows customer listings.
type Filter struct {
	Search string // matches name, phone or email
	Limit  int
	Offset int
}
