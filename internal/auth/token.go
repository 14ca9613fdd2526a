package auth

import (
	"errors"
	"time"

	"storefront/internal/domain"

	"github.com/dgrijalva/jwt-go"
)

var ErrInvalidToken = errors.New("invalid or expired session token")

type Claims struct {
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	FirstName  string      `json:"firstName"`
	LastName   string      `json:"lastName"`
	Role       domain.Role `json:"role"`
	Persistent bool        `json:"persistent"`
	jwt.StandardClaims
}

func (c *Claims) Identity() Identity {
	return Identity{
		UserID:    c.Subject,
		Username:  c.Username,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Role:      c.Role,
	}
}

// TokenIssuer creates and validates the self-contained session credential.
// There is no server-side revocation list: a token stays valid until its
// expiry, logout only clears the client's copy.
type TokenIssuer struct {
	secret      []byte
	ttl         time.Duration
	rememberTTL time.Duration
}

func NewTokenIssuer(secret []byte, ttl, rememberTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl, rememberTTL: rememberTTL}
}

func (t *TokenIssuer) window(persistent bool) time.Duration {
	if persistent {
		return t.rememberTTL
	}
	return t.ttl
}

// Issue builds a signed credential for the user. rememberMe selects the
// long-lived window.
func (t *TokenIssuer) Issue(user *domain.User, rememberMe bool) (string, time.Time, error) {
	now := time.Now()
	expiry := now.Add(t.window(rememberMe))

	claims := &Claims{
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Role:       user.Role,
		Persistent: rememberMe,
		StandardClaims: jwt.StandardClaims{
			Subject:   user.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: expiry.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiry, nil
}

// Parse validates a credential and returns its claims. Missing, malformed
// or expired tokens all come back as ErrInvalidToken; callers treat that
// as anonymous.
func (t *TokenIssuer) Parse(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Refresh implements sliding expiration: when less than half of the
// credential's window remains, a fresh token with the same identity and
// persistence flag is issued. Returns ok=false when no refresh is due.
func (t *TokenIssuer) Refresh(claims *Claims) (string, time.Time, bool, error) {
	window := t.window(claims.Persistent)
	remaining := time.Until(time.Unix(claims.ExpiresAt, 0))
	if remaining >= window/2 {
		return "", time.Time{}, false, nil
	}

	now := time.Now()
	expiry := now.Add(window)

	renewed := &Claims{
		Username:   claims.Username,
		Email:      claims.Email,
		FirstName:  claims.FirstName,
		LastName:   claims.LastName,
		Role:       claims.Role,
		Persistent: claims.Persistent,
		StandardClaims: jwt.StandardClaims{
			Subject:   claims.Subject,
			IssuedAt:  now.Unix(),
			ExpiresAt: expiry.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, renewed)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, false, err
	}
	return signed, expiry, true, nil
}
