package auth

import (
	"testing"
	"time"

	"storefront/internal/domain"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
)

func testIssuer() *TokenIssuer {
	return NewTokenIssuer([]byte("test-secret"), time.Hour, 720*time.Hour)
}

func testUser() *domain.User {
	return &domain.User{
		ID:        "u-1",
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Johnson",
		Role:      domain.RoleCustomer,
	}
}

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	issuer := testIssuer()

	token, expiry, err := issuer.Issue(testUser(), false)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims, err := issuer.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
	assert.False(t, claims.Persistent)

	identity := claims.Identity()
	assert.Equal(t, "u-1", identity.UserID)
	assert.Equal(t, "Alice", identity.FirstName)
	assert.False(t, identity.IsAdmin())
}

func TestTokenIssuer_RememberMeWindow(t *testing.T) {
	issuer := testIssuer()

	token, expiry, err := issuer.Issue(testUser(), true)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(720*time.Hour), expiry, 5*time.Second)

	claims, err := issuer.Parse(token)
	assert.NoError(t, err)
	assert.True(t, claims.Persistent)
}

func TestTokenIssuer_ParseRejectsBadTokens(t *testing.T) {
	issuer := testIssuer()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{
			name: "wrong secret",
			token: func() string {
				other := NewTokenIssuer([]byte("other-secret"), time.Hour, 720*time.Hour)
				tok, _, _ := other.Issue(testUser(), false)
				return tok
			}(),
		},
		{
			name: "expired",
			token: func() string {
				claims := &Claims{
					Username: "alice",
					Role:     domain.RoleCustomer,
					StandardClaims: jwt.StandardClaims{
						Subject:   "u-1",
						IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
						ExpiresAt: time.Now().Add(-time.Hour).Unix(),
					},
				}
				tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
				return tok
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := issuer.Parse(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestTokenIssuer_Refresh(t *testing.T) {
	issuer := testIssuer()

	makeClaims := func(remaining time.Duration, persistent bool) *Claims {
		return &Claims{
			Username:   "alice",
			Role:       domain.RoleCustomer,
			Persistent: persistent,
			StandardClaims: jwt.StandardClaims{
				Subject:   "u-1",
				ExpiresAt: time.Now().Add(remaining).Unix(),
			},
		}
	}

	t.Run("refreshes when under half the window remains", func(t *testing.T) {
		token, expiry, ok, err := issuer.Refresh(makeClaims(10*time.Minute, false))
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

		renewed, err := issuer.Parse(token)
		assert.NoError(t, err)
		assert.Equal(t, "alice", renewed.Username)
		assert.False(t, renewed.Persistent)
	})

	t.Run("no refresh while most of the window remains", func(t *testing.T) {
		token, _, ok, err := issuer.Refresh(makeClaims(50*time.Minute, false))
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, token)
	})

	t.Run("persistent sessions keep their long window", func(t *testing.T) {
		token, expiry, ok, err := issuer.Refresh(makeClaims(100*time.Hour, true))
		assert.NoError(t, err)
		assert.True(t, ok)

		renewed, err := issuer.Parse(token)
		assert.NoError(t, err)
		assert.True(t, renewed.Persistent)
		assert.WithinDuration(t, time.Now().Add(720*time.Hour), expiry, 5*time.Second)
	})
}
