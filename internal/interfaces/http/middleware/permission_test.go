package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/invento/backend/internal/domain/identity"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performWithRole(t *testing.T, handler gin.HandlerFunc, method, role string) *httptest.ResponseRecorder {
	t.Helper()

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if role != "" {
			c.Set(JWTRoleKey, role)
		}
		c.Next()
	})
	router.Use(handler)
	register := func(path string) {
		router.Handle(method, path, func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
	}
	register("/resource")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/resource", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name   string
		method string
		role   string
		status int
	}{
		{"admin can read", http.MethodGet, string(identity.RoleAdmin), http.StatusOK},
		{"admin can write", http.MethodPost, string(identity.RoleAdmin), http.StatusOK},
		{"viewer can read", http.MethodGet, string(identity.RoleViewer), http.StatusOK},
		{"viewer cannot write", http.MethodPost, string(identity.RoleViewer), http.StatusForbidden},
		{"viewer cannot delete", http.MethodDelete, string(identity.RoleViewer), http.StatusForbidden},
		{"unknown role rejected", http.MethodGet, "superuser", http.StatusForbidden},
		{"missing role unauthorized", http.MethodGet, "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performWithRole(t, RequireRole(), tt.method, tt.role)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		status int
	}{
		{"admin allowed", string(identity.RoleAdmin), http.StatusOK},
		{"viewer forbidden", string(identity.RoleViewer), http.StatusForbidden},
		{"missing role unauthorized", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performWithRole(t, RequireAdmin(), http.MethodGet, tt.role)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
