package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeflow/internal/domain"
	"tradeflow/internal/middleware"
	"tradeflow/internal/port"
	"tradeflow/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	verifier := new(mocks.MockTokenVerifier)
	verifier.On("Verify", "valid-token").Return(&port.AuthClaims{
		Subject: "user-123",
		Email:   "analyst@example.com",
		Role:    "authenticated",
	}, nil)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(verifier))
	r.GET("/test", func(c *gin.Context) {
		uid, _ := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": uid, "role": middleware.GetRole(c)})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer valid-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user-123", body["user_id"])
	assert.Equal(t, "authenticated", body["role"])
	verifier.AssertExpectations(t)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	verifier := new(mocks.MockTokenVerifier)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(verifier))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	verifier.AssertNotCalled(t, "Verify", "")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	verifier := new(mocks.MockTokenVerifier)
	verifier.On("Verify", "bad").Return(nil, domain.ErrUnauthorized)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(verifier))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer bad")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name    string
		isAdmin bool
		want    int
	}{
		{"admin allowed", true, http.StatusOK},
		{"non-admin forbidden", false, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := new(mocks.MockTokenVerifier)
			verifier.On("Verify", "tok").Return(&port.AuthClaims{Subject: "u", IsAdmin: tt.isAdmin}, nil)

			r := gin.New()
			r.Use(middleware.AuthMiddleware(verifier), middleware.RequireAdmin())
			r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/admin", http.NoBody)
			req.Header.Set("Authorization", "Bearer tok")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
