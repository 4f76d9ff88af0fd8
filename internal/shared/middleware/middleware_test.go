package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartslot/internal/shared/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour},
	}
}

func mintToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func sessionClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"sid":     "sess-1",
		"user_id": "u1",
		"email":   "ada@example.test",
		"role":    role,
		"type":    "session",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
}

func newTestRouter(cfg *config.Config, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	handlers := append([]gin.HandlerFunc{SessionAuth(cfg)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		role, _ := c.Get("user_role")
		sid, _ := c.Get("session_id")
		c.JSON(http.StatusOK, gin.H{"role": role, "sid": sid})
	})
	engine.GET("/protected", handlers...)
	return engine
}

func perform(engine *gin.Engine, header, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", "Bearer "+header)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestSessionAuthAcceptsBearerToken(t *testing.T) {
	cfg := testConfig()
	token := mintToken(t, cfg.JWT.Secret, sessionClaims("USER"))

	rec := perform(newTestRouter(cfg), token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sess-1")
}

func TestSessionAuthAcceptsCookie(t *testing.T) {
	cfg := testConfig()
	token := mintToken(t, cfg.JWT.Secret, sessionClaims("USER"))

	rec := perform(newTestRouter(cfg), "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionAuthRejectsMissingToken(t *testing.T) {
	rec := perform(newTestRouter(testConfig()), "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()
	token := mintToken(t, "other-secret", sessionClaims("USER"))

	rec := perform(newTestRouter(cfg), token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthRejectsExpiredToken(t *testing.T) {
	cfg := testConfig()
	claims := sessionClaims("USER")
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	token := mintToken(t, cfg.JWT.Secret, claims)

	rec := perform(newTestRouter(cfg), token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthRejectsWrongTokenType(t *testing.T) {
	cfg := testConfig()
	claims := sessionClaims("USER")
	claims["type"] = "refresh"
	token := mintToken(t, cfg.JWT.Secret, claims)

	rec := perform(newTestRouter(cfg), token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRolesGate(t *testing.T) {
	cfg := testConfig()

	staffOnly := newTestRouter(cfg, RequireRoles("STAFF", "ADMIN"))

	userToken := mintToken(t, cfg.JWT.Secret, sessionClaims("USER"))
	rec := perform(staffOnly, userToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	staffToken := mintToken(t, cfg.JWT.Secret, sessionClaims("STAFF"))
	rec = perform(staffOnly, staffToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	adminToken := mintToken(t, cfg.JWT.Secret, sessionClaims("ADMIN"))
	rec = perform(staffOnly, adminToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuthPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	engine := gin.New()
	engine.GET("/open", OptionalAuth(cfg), func(c *gin.Context) {
		_, signedIn := c.Get("session_id")
		c.JSON(http.StatusOK, gin.H{"signed_in": signedIn})
	})

	// No token: still 200, no session on the context.
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "false")

	// Valid token: session lands on the context.
	token := mintToken(t, cfg.JWT.Secret, sessionClaims("USER"))
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), "true")
}
