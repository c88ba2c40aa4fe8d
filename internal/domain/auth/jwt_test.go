package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespoint/internal/core/id"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	u := &User{
		ID:       id.New(),
		Username: "jdoe",
		FullName: "Jane Doe",
		Roles:    []string{RoleCashier, RoleManager},
	}

	token, err := issuer.Issue(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.Subject)
	assert.Equal(t, "jdoe", claims.Username)
	assert.Equal(t, "Jane Doe", claims.FullName)
	assert.Equal(t, []string{RoleCashier, RoleManager}, claims.Roles)
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)
	other := NewTokenIssuer("secret-b", time.Hour)

	token, err := issuer.Issue(&User{ID: id.New(), Username: "jdoe"})
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)
	issuer.now = func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	}

	token, err := issuer.Issue(&User{ID: id.New(), Username: "jdoe"})
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	_, err := issuer.Validate("not.a.token")
	assert.Error(t, err)
}
