package auth

import (
	"context"

	"salespoint/internal/core/id"
)

// Repository is the user storage contract.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID id.ID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
