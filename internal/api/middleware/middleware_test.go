package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxserv365/concierge/internal/config"
	"github.com/luxserv365/concierge/pkg/types"
	"github.com/luxserv365/concierge/pkg/utils"
)

func setupJWT(t *testing.T) *MemoryRevoker {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JwtSecret = "middleware-test-secret"
	config.Issuer = "luxserv-test"
	Init()
	r := NewMemoryRevoker()
	old := CurrentRevoker()
	UseRevoker(r)
	t.Cleanup(func() { UseRevoker(old) })
	return r
}

func protectedRouter(guards ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuthMiddleware()}, guards...)
	handlers = append(handlers, func(c *gin.Context) {
		actor, _ := utils.GetActorFromContext(c)
		c.String(http.StatusOK, actor)
	})
	r.GET("/owners/:email", handlers...)
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// --------------------- Tokens ---------------------
func TestGenerateAndParseToken(t *testing.T) {
	setupJWT(t)

	token, exp, err := GenerateToken(types.Claims{Username: "admin", Role: types.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, types.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "luxserv-test", claims.Issuer)
}

func TestParseToken_Expired(t *testing.T) {
	setupJWT(t)

	claims := types.Claims{Username: "admin", Role: types.RoleAdmin}
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        "old",
		Issuer:    "luxserv-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString([]byte("middleware-test-secret"))
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)

	w := get(protectedRouter(), "/owners/x", signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token expired")
}

func TestParseToken_WrongKey(t *testing.T) {
	setupJWT(t)

	claims := types.Claims{Username: "admin", Role: types.RoleAdmin}
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        "x",
		Issuer:    "luxserv-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString([]byte("someone-else"))
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.Error(t, err)
}

// --------------------- JWTAuthMiddleware ---------------------
func TestJWTAuthMiddleware(t *testing.T) {
	revoker := setupJWT(t)
	r := protectedRouter()

	w := get(r, "/owners/x", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/owners/x", nil)
	req.Header.Set("Authorization", "Token abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, _, err := GenerateToken(types.Claims{Username: "admin", Role: types.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	w = get(r, "/owners/x", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())

	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.NoError(t, revoker.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time))
	w = get(r, "/owners/x", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token revoked")
}

func TestJWTAuthMiddleware_Cookie(t *testing.T) {
	setupJWT(t)
	token, _, err := GenerateToken(types.Claims{Email: "olive@example.com", Role: types.RoleOwner}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/owners/x", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	protectedRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "olive@example.com", w.Body.String())
}

// --------------------- Auth ---------------------
func TestAuthRoles(t *testing.T) {
	setupJWT(t)
	auth := NewAuth()

	adminTok, _, _ := GenerateToken(types.Claims{Username: "admin", Role: types.RoleAdmin}, time.Hour)
	ownerTok, _, _ := GenerateToken(types.Claims{Email: "olive@example.com", Role: types.RoleOwner}, time.Hour)

	adminOnly := protectedRouter(auth.Admin())
	assert.Equal(t, http.StatusOK, get(adminOnly, "/owners/x", adminTok).Code)
	assert.Equal(t, http.StatusForbidden, get(adminOnly, "/owners/x", ownerTok).Code)

	ownerOnly := protectedRouter(auth.Owner())
	assert.Equal(t, http.StatusOK, get(ownerOnly, "/owners/x", ownerTok).Code)
	assert.Equal(t, http.StatusForbidden, get(ownerOnly, "/owners/x", adminTok).Code)

	self := protectedRouter(auth.OwnerOrAdmin("email"))
	assert.Equal(t, http.StatusOK, get(self, "/owners/Olive@Example.com", ownerTok).Code)
	assert.Equal(t, http.StatusForbidden, get(self, "/owners/mallory@example.com", ownerTok).Code)
	assert.Equal(t, http.StatusOK, get(self, "/owners/mallory@example.com", adminTok).Code)
}

// --------------------- Revocation ---------------------
func TestMemoryRevoker_ForgetsExpiredEntries(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	r := NewMemoryRevoker()
	r.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, r.Revoke(ctx, "a", now.Add(time.Minute)))
	require.NoError(t, r.Revoke(ctx, "past", now.Add(-time.Minute)))

	revoked, _ := r.IsRevoked(ctx, "a")
	assert.True(t, revoked)
	revoked, _ = r.IsRevoked(ctx, "past")
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, _ = r.IsRevoked(ctx, "a")
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "b", now.Add(time.Minute)))
	r.mu.Lock()
	_, stillThere := r.revoked["a"]
	r.mu.Unlock()
	assert.False(t, stillThere)
}

// --------------------- CORS ---------------------
func TestCORSMiddleware_Preflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.luxserv.test/"}))
	r.POST("/api/guest-requests", func(c *gin.Context) { c.Status(http.StatusCreated) })

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/guest-requests", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := preflight("https://app.luxserv.test")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.luxserv.test", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight("https://evil.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestOriginAllowed(t *testing.T) {
	allow := OriginAllowed([]string{"https://app.luxserv.test"})
	assert.True(t, allow("https://app.luxserv.test"))
	assert.True(t, allow("http://localhost:5173"))
	assert.False(t, allow("https://other.test"))
	assert.True(t, OriginAllowed([]string{"*"})("https://other.test"))
}
