package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/services-marketplace/internal/config"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestParseToken_RoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	signed := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub":  float64(42),
		"role": "PROVIDER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	ident, err := ParseToken(cfg, signed)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if ident.UserID != 42 || ident.Role != "PROVIDER" {
		t.Fatalf("identity mismatch: %+v", ident)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	signed := signToken(t, "other-secret", jwt.MapClaims{
		"sub":  float64(42),
		"role": "CUSTOMER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	if _, err := ParseToken(cfg, signed); err == nil {
		t.Fatal("expected verification error with wrong secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	signed := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub":  float64(42),
		"role": "CUSTOMER",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := ParseToken(cfg, signed); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: "test-secret"}

	r := gin.New()
	r.Use(AuthMiddleware(cfg))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.MustGet(ContextUserID),
			"role":    c.MustGet(ContextUserRole),
		})
	})

	// sem header
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: expected 401, got %d", w.Code)
	}

	// header malformado
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("malformed header: expected 401, got %d", w.Code)
	}

	// token válido
	signed := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub":  float64(7),
		"role": "CUSTOMER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
}
