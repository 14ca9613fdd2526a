package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/auth"
	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testRouter(issuer *auth.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Authenticate(issuer))
	r.GET("/admin-only", RequireRoles(domain.RoleAdmin), func(c *gin.Context) {
		identity, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"username": identity.Username})
	})
	r.GET("/any-role", RequireRoles(domain.RoleAdmin, domain.RoleCustomer), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func issueToken(t *testing.T, issuer *auth.TokenIssuer, role domain.Role) string {
	t.Helper()
	token, _, err := issuer.Issue(&domain.User{
		ID:       "u-1",
		Username: "alice",
		Role:     role,
	}, false)
	assert.NoError(t, err)
	return token
}

func TestRequireRoles(t *testing.T) {
	issuer := auth.NewTokenIssuer([]byte("test-secret"), time.Hour, 720*time.Hour)
	router := testRouter(issuer)

	t.Run("anonymous request is unauthorized with login redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/any-role", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "/account/login")
	})

	t.Run("garbage token is treated as anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/any-role", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("customer is forbidden from admin routes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, issuer, domain.RoleCustomer))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "/account/access-denied")
	})

	t.Run("admin passes the role check", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, issuer, domain.RoleAdmin))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice")
	})

	t.Run("cookie credential is accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/any-role", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: issueToken(t, issuer, domain.RoleCustomer)})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthenticateSlidingRefresh(t *testing.T) {
	// A short window means the freshly issued token is already past its
	// halfway point by the next request.
	issuer := auth.NewTokenIssuer([]byte("test-secret"), time.Second, 720*time.Hour)
	router := testRouter(issuer)

	token := issueToken(t, issuer, domain.RoleCustomer)
	time.Sleep(600 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/any-role", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	renewed := ""
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == sessionCookie {
			renewed = cookie.Value
		}
	}
	assert.NotEmpty(t, renewed)
	assert.NotEqual(t, token, renewed)
}

func TestIsLocalURL(t *testing.T) {
	assert.True(t, isLocalURL("/orders"))
	assert.True(t, isLocalURL("/"))
	assert.False(t, isLocalURL(""))
	assert.False(t, isLocalURL("//evil.example.com"))
	assert.False(t, isLocalURL("/\\evil.example.com"))
	assert.False(t, isLocalURL("https://evil.example.com"))
}
