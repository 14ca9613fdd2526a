package http

import (
	"log"
	"net/http"
	"strings"
	"time"

	"storefront/internal/auth"
	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "storefront_session"
	identityKey   = "identity"
)

// Authenticate resolves the session credential from the cookie or a
// bearer header. A missing, malformed or expired credential leaves the
// request anonymous rather than rejecting it; role checks happen in
// RequireRoles. Valid credentials slide: when the window is half used a
// renewed cookie is issued.
func Authenticate(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := issuer.Parse(tokenFromRequest(c))
		if err != nil {
			c.Next()
			return
		}

		c.Set(identityKey, claims.Identity())

		if renewed, expiry, ok, err := issuer.Refresh(claims); err == nil && ok {
			setSessionCookie(c, renewed, expiry)
		}

		c.Next()
	}
}

// RequireRoles denies anonymous callers and callers whose role is not in
// the allowed set.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "authentication required",
				"redirect": "/account/login",
			})
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		log.Printf("access denied for %q (role %s) on %s", identity.Username, identity.Role, c.FullPath())
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":    "access denied",
			"redirect": "/account/access-denied",
		})
	}
}

func CurrentIdentity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func setSessionCookie(c *gin.Context, token string, expiry time.Time) {
	c.SetCookie(sessionCookie, token, int(time.Until(expiry).Seconds()), "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}
