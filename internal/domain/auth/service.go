package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"salespoint/internal/core/apperror"
	"salespoint/internal/core/id"
	"salespoint/pkg/logger"
)

// Service implements login and account management.
type Service struct {
	repo   Repository
	issuer *TokenIssuer
}

func NewService(repo Repository, issuer *TokenIssuer) *Service {
	return &Service{repo: repo, issuer: issuer}
}

// LoginResult is the successful login payload.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Login verifies credentials and issues a token.
// Failures are deliberately uniform: the caller cannot distinguish an
// unknown username from a wrong password.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if !u.Active {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, err := s.issuer.Issue(u)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user logged in", "user_id", u.ID, "username", u.Username)
	return &LoginResult{Token: token, User: u}, nil
}

// RegisterInput holds fields for account creation.
type RegisterInput struct {
	Username string
	FullName string
	Password string
	Roles    []string
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" {
		return nil, apperror.NewValidation("username must not be empty")
	}
	if len(in.Password) < 8 {
		return nil, apperror.NewValidation("password must be at least 8 characters")
	}
	if len(in.Roles) == 0 {
		in.Roles = []string{RoleCashier}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	now := time.Now().UTC()
	u := &User{
		ID:           id.New(),
		Username:     username,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: string(hash),
		Roles:        in.Roles,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// GetByID returns a user account by id.
func (s *Service) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}
